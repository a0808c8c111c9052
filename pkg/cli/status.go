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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/canonical/hardware-observer/pkg/defaults"
	apperrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/health"
	"github.com/canonical/hardware-observer/pkg/serializer"
)

func newFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported: %v)", serializer.SupportedFormats()),
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show whether the exporter is installed, active and healthy",
		Flags: []cli.Flag{newFormatFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := serializer.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			_, exp, err := setup(cmd)
			if err != nil {
				return err
			}

			st, err := exp.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to query exporter status: %w", err)
			}
			return serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(st)
		},
	}
}

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Check exporter health, restarting it while it has failed",
		Description: fmt.Sprintf(`Check whether the exporter service has failed. A failed service is
restarted and checked again up to %d times, %s apart. The command fails
when the exporter is not installed or does not recover.`,
			defaults.ExporterHealthRetryCount, defaults.ExporterHealthRetryInterval),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "retries",
				Value: defaults.ExporterHealthRetryCount,
				Usage: "Number of restart attempts",
			},
			&cli.DurationFlag{
				Name:  "retry-interval",
				Value: defaults.ExporterHealthRetryInterval,
				Usage: "Wait between a restart and the next check",
			},
			newFormatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := serializer.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			if cmd.Int("retries") < 0 {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
					"retries must not be negative", map[string]any{"retries": cmd.Int("retries")})
			}
			if cmd.Duration("retry-interval") < 0 {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
					"retry interval must not be negative", map[string]any{"retry_interval": cmd.Duration("retry-interval").String()})
			}

			_, exp, err := setup(cmd)
			if err != nil {
				return err
			}

			mon := health.NewMonitor(exp,
				health.WithRetries(cmd.Int("retries")),
				health.WithRetryInterval(cmd.Duration("retry-interval")),
			)
			res := mon.Check(ctx)
			if err := serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(res); err != nil {
				return err
			}

			if !res.Healthy() {
				return fmt.Errorf("exporter is %s: %s", res.Status, res.Message)
			}
			return nil
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve status endpoints and supervise the exporter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Usage:   "Listen address",
				Sources: cli.EnvVars("HWOBSERVER_ADDRESS"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   defaults.StatusServerPort,
				Usage:   "Listen port",
				Sources: cli.EnvVars("HWOBSERVER_PORT"),
			},
			&cli.DurationFlag{
				Name:    "interval",
				Value:   defaults.ExporterMonitorInterval,
				Usage:   "Health check interval, 0 disables the monitor",
				Sources: cli.EnvVars("HWOBSERVER_INTERVAL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Duration("interval") < 0 {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
					"interval must not be negative", map[string]any{"interval": cmd.Duration("interval").String()})
			}

			_, exp, err := setup(cmd)
			if err != nil {
				return err
			}
			return runServer(ctx, exp, serveOptions{
				address:  cmd.String("address"),
				port:     cmd.Int("port"),
				interval: cmd.Duration("interval"),
			})
		},
	}
}

type serveOptions struct {
	address  string
	port     int
	interval time.Duration
}
