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

	"github.com/urfave/cli/v3"

	"github.com/canonical/hardware-observer/pkg/config"
	apperrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/exporter"
	"github.com/canonical/hardware-observer/pkg/hwtool"
	"github.com/canonical/hardware-observer/pkg/render"
	"github.com/canonical/hardware-observer/pkg/systemd"
)

// newServiceManager is replaced in tests.
var newServiceManager = func() systemd.Manager {
	return systemd.NewDBusManager()
}

// loadOptions reads the options file and applies the --tools override.
func loadOptions(cmd *cli.Command) (*config.Options, error) {
	opts, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("tools") {
		opts.Tools = cmd.StringSlice("tools")
	}

	whitelist := opts.Whitelist()
	if cmd.Bool("strict-tools") {
		if err := whitelist.Validate(); err != nil {
			return nil, err
		}
	} else if unknown := whitelist.Unknown(); len(unknown) > 0 {
		slog.Warn("ignoring unknown hardware tools", "tools", unknown)
	}
	return opts, nil
}

// newExporter builds the exporter from global flags and options.
func newExporter(cmd *cli.Command, opts *config.Options) (*exporter.Exporter, error) {
	charmDir := cmd.String("charm-dir")
	if charmDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve charm directory: %w", err)
		}
		charmDir = wd
	}

	cfg := exporter.DefaultConfig(charmDir)
	cfg.ConfigPath = cmd.String("exporter-config-path")
	cfg.ServicePath = cmd.String("exporter-service-path")

	expOpts := []exporter.Option{
		exporter.WithWhitelist(opts.Whitelist()),
	}
	if dir := cmd.String("templates-dir"); dir != "" {
		expOpts = append(expOpts, exporter.WithRenderer(render.NewFromDir(dir)))
	}

	return exporter.New(cfg, newServiceManager(), expOpts...), nil
}

// setup is the common prologue of every exporter command.
func setup(cmd *cli.Command) (*config.Options, *exporter.Exporter, error) {
	opts, err := loadOptions(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load options: %w", err)
	}
	exp, err := newExporter(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	return opts, exp, nil
}

func installCmd() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Render and install the exporter config and systemd unit",
		Description: fmt.Sprintf(`Render the exporter config and systemd unit from templates, write them
to disk and reload systemd. Collectors are enabled for the whitelisted
hardware tools: %s.

With --start the service is also enabled and started.`, hwtool.Known()),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "start",
				Usage: "Enable and start the service after installing",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, exp, err := setup(cmd)
			if err != nil {
				return err
			}

			ok, err := exp.Install(ctx, opts.RenderParams())
			if err != nil {
				return fmt.Errorf("failed to install exporter: %w", err)
			}
			if !ok {
				return apperrors.NewWithContext(apperrors.ErrCodeFilesystem, "failed to install exporter files, see logs",
					map[string]any{"config_path": exp.Config().ConfigPath, "service_path": exp.Config().ServicePath})
			}

			if cmd.Bool("start") {
				if err := exp.Enable(ctx); err != nil {
					return fmt.Errorf("failed to enable exporter: %w", err)
				}
				if err := exp.Start(ctx); err != nil {
					return fmt.Errorf("failed to start exporter: %w", err)
				}
			}

			fmt.Fprintln(cmd.Root().Writer, "exporter installed")
			return nil
		},
	}
}

func uninstallCmd() *cli.Command {
	return &cli.Command{
		Name:  "uninstall",
		Usage: "Remove the exporter config and systemd unit",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stop",
				Usage: "Stop and disable the service before removing its files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, exp, err := setup(cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("stop") && exp.Installed() {
				if err := exp.Stop(ctx); err != nil {
					return fmt.Errorf("failed to stop exporter: %w", err)
				}
				if err := exp.Disable(ctx); err != nil {
					return fmt.Errorf("failed to disable exporter: %w", err)
				}
			}

			ok, err := exp.Uninstall(ctx)
			if err != nil {
				return fmt.Errorf("failed to uninstall exporter: %w", err)
			}
			if !ok {
				return apperrors.NewWithContext(apperrors.ErrCodeFilesystem, "failed to remove exporter files, see logs",
					map[string]any{"config_path": exp.Config().ConfigPath, "service_path": exp.Config().ServicePath})
			}

			fmt.Fprintln(cmd.Root().Writer, "exporter uninstalled")
			return nil
		},
	}
}

// serviceCmd builds a command that runs one service operation.
func serviceCmd(op, usage string, fn func(*exporter.Exporter, context.Context) error) *cli.Command {
	return &cli.Command{
		Name:  op,
		Usage: usage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, exp, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := fn(exp, ctx); err != nil {
				return fmt.Errorf("failed to %s exporter: %w", op, err)
			}
			fmt.Fprintf(cmd.Root().Writer, "exporter %s done\n", op)
			return nil
		},
	}
}
