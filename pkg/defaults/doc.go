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

// Package defaults provides centralized configuration constants for the agent.
//
// This package defines filesystem locations, service names, timeout values and
// retry parameters used across the codebase. Centralizing these values ensures
// consistency and makes tuning easier.
//
// # Categories
//
//   - Exporter: service name, config and unit paths, template names, option defaults
//   - Exporter health: restart attempts, retry interval, monitor period
//   - Service manager: job and call timeouts
//   - Server: HTTP timeouts of the status server
//
// # Usage
//
//	cfg := exporter.Config{
//	    Name:       defaults.ExporterName,
//	    ConfigPath: defaults.ExporterConfigPath,
//	}
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ServiceJobTimeout)
//	defer cancel()
package defaults
