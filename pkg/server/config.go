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

package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/canonical/hardware-observer/pkg/defaults"
)

// Config holds server configuration.
type Config struct {
	Name    string
	Version string

	Address string
	Port    int

	RateLimit      rate.Limit // requests per second
	RateLimitBurst int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// HandlerTimeout bounds the service manager queries made per request.
	HandlerTimeout time.Duration
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Name:              "hwobserver",
		Version:           "dev",
		Port:              defaults.StatusServerPort,
		RateLimit:         20,
		RateLimitBurst:    40,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
		HandlerTimeout:    defaults.StatusHandlerTimeout,
	}
}
