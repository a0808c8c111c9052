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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/canonical/hardware-observer/pkg/defaults"
	"github.com/canonical/hardware-observer/pkg/exporter"
	"github.com/canonical/hardware-observer/pkg/logging"
)

const (
	name           = "hwobserver"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Execute runs the root command with the process arguments.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "Install and supervise the hardware exporter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("HWOBSERVER_LOG_LEVEL", logging.EnvVarLogLevel),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the options file",
				Sources: cli.EnvVars("HWOBSERVER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "charm-dir",
				Usage:   "Working directory of the exporter service (default: current directory)",
				Sources: cli.EnvVars("HWOBSERVER_CHARM_DIR"),
			},
			&cli.StringSliceFlag{
				Name:    "tools",
				Usage:   "Hardware tools present on the host, overrides the options file",
				Sources: cli.EnvVars("HWOBSERVER_TOOLS"),
			},
			&cli.BoolFlag{
				Name:    "strict-tools",
				Usage:   "Fail instead of warning when a tool has no collector",
				Sources: cli.EnvVars("HWOBSERVER_STRICT_TOOLS"),
			},
			&cli.StringFlag{
				Name:    "templates-dir",
				Usage:   "Load templates from this directory instead of the built-in ones",
				Sources: cli.EnvVars("HWOBSERVER_TEMPLATES_DIR"),
			},
			&cli.StringFlag{
				Name:    "exporter-config-path",
				Value:   defaults.ExporterConfigPath,
				Usage:   "Install path of the exporter config",
				Sources: cli.EnvVars("HWOBSERVER_EXPORTER_CONFIG_PATH"),
			},
			&cli.StringFlag{
				Name:    "exporter-service-path",
				Value:   defaults.ExporterServicePath,
				Usage:   "Install path of the exporter systemd unit",
				Sources: cli.EnvVars("HWOBSERVER_EXPORTER_SERVICE_PATH"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			installCmd(),
			uninstallCmd(),
			serviceCmd("start", "Start the exporter service", (*exporter.Exporter).Start),
			serviceCmd("stop", "Stop the exporter service", (*exporter.Exporter).Stop),
			serviceCmd("restart", "Restart the exporter service", (*exporter.Exporter).Restart),
			serviceCmd("enable", "Enable the exporter service at boot", (*exporter.Exporter).Enable),
			serviceCmd("disable", "Disable the exporter service at boot", (*exporter.Exporter).Disable),
			statusCmd(),
			checkCmd(),
			serveCmd(),
		},
	}
}
