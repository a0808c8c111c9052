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

package cli

import (
	"context"

	"github.com/canonical/hardware-observer/pkg/exporter"
	"github.com/canonical/hardware-observer/pkg/health"
	"github.com/canonical/hardware-observer/pkg/server"
)

func runServer(ctx context.Context, exp *exporter.Exporter, opts serveOptions) error {
	cfg := server.NewConfig()
	cfg.Name = name
	cfg.Version = version
	cfg.Address = opts.address
	cfg.Port = opts.port

	srvOpts := []server.Option{server.WithConfig(cfg)}
	var jobs []server.Job

	if opts.interval > 0 {
		mon := health.NewMonitor(exp)
		srvOpts = append(srvOpts, server.WithMonitor(mon))
		jobs = append(jobs, func(ctx context.Context) error {
			return mon.Run(ctx, opts.interval)
		})
	}

	return server.Run(ctx, server.New(exp, srvOpts...), jobs...)
}
