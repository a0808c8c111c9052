// Copyright (c) 2025, Canonical Ltd.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import "time"

// Exporter health timeouts.
const (
	// ExporterHealthRetryCount is the number of restarts attempted for a
	// failed exporter before it is reported as crashed.
	ExporterHealthRetryCount = 3

	// ExporterHealthRetryInterval is the wait between a restart and the next check.
	ExporterHealthRetryInterval = 3 * time.Second

	// ExporterMonitorInterval is the default period of the health monitor loop.
	ExporterMonitorInterval = 5 * time.Minute

	// ExporterRestartInterval is the period over which automatic restarts are
	// capped at ExporterHealthRetryCount.
	ExporterRestartInterval = time.Minute
)

// Service manager timeouts.
const (
	// ServiceJobTimeout bounds how long a start, stop or restart job is waited on.
	ServiceJobTimeout = 90 * time.Second

	// ServiceManagerCallTimeout is the timeout for a single service manager call
	// that does not enqueue a job (reload, enable, state queries).
	ServiceManagerCallTimeout = 30 * time.Second
)

// Server timeouts for the status server.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second

	// StatusHandlerTimeout bounds the service manager queries made per request.
	StatusHandlerTimeout = 10 * time.Second
)
