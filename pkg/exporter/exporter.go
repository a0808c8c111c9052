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

package exporter

import (
	"context"
	"log/slog"

	apperrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/hwtool"
	"github.com/canonical/hardware-observer/pkg/installer"
	"github.com/canonical/hardware-observer/pkg/render"
	"github.com/canonical/hardware-observer/pkg/systemd"
)

// Exporter installs the exporter's config and unit files and drives the
// exporter service through the service manager.
//
// It is not safe for concurrent use: callers issue one operation at a time.
type Exporter struct {
	cfg       Config
	renderer  *render.Renderer
	files     *installer.Installer
	svc       systemd.Manager
	whitelist hwtool.Whitelist
	logger    *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRenderer sets the template renderer. Defaults to the embedded templates.
func WithRenderer(r *render.Renderer) Option {
	return func(e *Exporter) {
		e.renderer = r
	}
}

// WithInstaller sets the file installer.
func WithInstaller(i *installer.Installer) Option {
	return func(e *Exporter) {
		e.files = i
	}
}

// WithWhitelist sets the detected tools used to select collectors.
func WithWhitelist(w hwtool.Whitelist) Option {
	return func(e *Exporter) {
		e.whitelist = w
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// New creates an Exporter for cfg that controls the service through svc.
func New(cfg Config, svc systemd.Manager, opts ...Option) *Exporter {
	e := &Exporter{
		cfg:    cfg,
		svc:    svc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = render.New()
	}
	if e.files == nil {
		e.files = installer.New(installer.WithLogger(e.logger))
	}
	e.logger = e.logger.With("exporter", cfg.Name)
	return e
}

// Config returns the exporter configuration.
func (e *Exporter) Config() Config {
	return e.cfg
}

// Installed reports whether both the config file and the unit file exist.
// It is evaluated on every call.
func (e *Exporter) Installed() bool {
	return installer.Exists(e.cfg.ConfigPath) && installer.Exists(e.cfg.ServicePath)
}

// Install renders and writes the config and unit files, then reloads the
// service manager. A write failure is logged and reported as false with a nil
// error. Template and service manager failures are returned as errors and
// mean the caller should stop. Nothing after a failed step runs, in
// particular no reload is issued.
func (e *Exporter) Install(ctx context.Context, p RenderParams) (bool, error) {
	e.logger.Info("installing exporter")

	configContent, err := e.renderer.RenderConfig(e.cfg.ConfigTemplate, e.whitelist, p)
	if err != nil {
		e.logger.Error("failed to render exporter config", "error", err)
		recordOperation("install", false)
		return false, err
	}
	serviceContent, err := e.renderer.RenderService(e.cfg.ServiceTemplate, e.cfg.CharmDir, e.cfg.ConfigPath)
	if err != nil {
		e.logger.Error("failed to render exporter service", "error", err)
		recordOperation("install", false)
		return false, err
	}

	if !e.files.Install(e.cfg.ConfigPath, configContent) || !e.files.Install(e.cfg.ServicePath, serviceContent) {
		e.logger.Error("failed to install exporter")
		recordOperation("install", false)
		return false, nil
	}

	if err := e.svc.Reload(ctx); err != nil {
		e.logger.Error("failed to reload service manager after install", "error", err)
		recordOperation("install", false)
		return false, err
	}

	e.logger.Info("exporter installed", "collectors", e.whitelist.Collectors())
	recordOperation("install", true)
	return true, nil
}

// Uninstall removes the config and unit files and reloads the service
// manager. Both removals are attempted; if either fails the result is false
// and no reload is issued. The service is not stopped first.
func (e *Exporter) Uninstall(ctx context.Context) (bool, error) {
	e.logger.Info("uninstalling exporter")

	configRemoved := e.files.Uninstall(e.cfg.ConfigPath)
	serviceRemoved := e.files.Uninstall(e.cfg.ServicePath)
	if !configRemoved || !serviceRemoved {
		e.logger.Error("failed to uninstall exporter")
		recordOperation("uninstall", false)
		return false, nil
	}

	if err := e.svc.Reload(ctx); err != nil {
		e.logger.Error("failed to reload service manager after uninstall", "error", err)
		recordOperation("uninstall", false)
		return false, err
	}

	e.logger.Info("exporter uninstalled")
	recordOperation("uninstall", true)
	return true, nil
}

// notInstalled logs and returns the error reported by runtime operations
// when the exporter files are missing.
func (e *Exporter) notInstalled(op string) error {
	e.logger.Error("exporter is not installed",
		"operation", op,
		"config_path", e.cfg.ConfigPath,
		"service_path", e.cfg.ServicePath,
	)
	recordNotInstalled(op)
	return apperrors.NewWithContext(apperrors.ErrCodeNotInstalled, "exporter is not installed", map[string]any{
		"exporter":  e.cfg.Name,
		"operation": op,
	})
}

// IsNotInstalled reports whether err was returned because the exporter is
// not installed.
func IsNotInstalled(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeNotInstalled)
}

// finish records the outcome of a runtime operation and logs a failure
// with the operation name before handing err back.
func (e *Exporter) finish(op string, err error) error {
	recordOperation(op, err == nil)
	if err != nil {
		e.logger.Error("exporter operation failed", "operation", op, "error", err)
	}
	return err
}

// Start starts the exporter service.
func (e *Exporter) Start(ctx context.Context) error {
	if !e.Installed() {
		return e.notInstalled("start")
	}
	return e.finish("start", e.svc.Start(ctx, e.cfg.Name))
}

// Stop stops the exporter service.
func (e *Exporter) Stop(ctx context.Context) error {
	if !e.Installed() {
		return e.notInstalled("stop")
	}
	return e.finish("stop", e.svc.Stop(ctx, e.cfg.Name))
}

// Restart restarts the exporter service.
func (e *Exporter) Restart(ctx context.Context) error {
	if !e.Installed() {
		return e.notInstalled("restart")
	}
	return e.finish("restart", e.svc.Restart(ctx, e.cfg.Name))
}

// Enable enables the exporter service at boot. A unit file installed outside
// the service manager's search path is enabled by its path.
func (e *Exporter) Enable(ctx context.Context) error {
	if !e.Installed() {
		return e.notInstalled("enable")
	}
	return e.finish("enable", e.svc.Enable(ctx, systemd.EnableTarget(e.cfg.Name, e.cfg.ServicePath)))
}

// Disable disables the exporter service at boot.
func (e *Exporter) Disable(ctx context.Context) error {
	if !e.Installed() {
		return e.notInstalled("disable")
	}
	return e.finish("disable", e.svc.Disable(ctx, e.cfg.Name))
}

// CheckActive reports whether the service manager has the exporter running.
func (e *Exporter) CheckActive(ctx context.Context) (bool, error) {
	if !e.Installed() {
		return false, e.notInstalled("check_active")
	}
	active, err := e.svc.IsRunning(ctx, e.cfg.Name)
	if err != nil {
		e.logger.Error("exporter query failed", "operation", "check_active", "error", err)
		return false, err
	}
	return active, nil
}

// CheckHealth reports whether the exporter service is not in the failed state.
func (e *Exporter) CheckHealth(ctx context.Context) (bool, error) {
	if !e.Installed() {
		return false, e.notInstalled("check_health")
	}
	failed, err := e.svc.HasFailed(ctx, e.cfg.Name)
	if err != nil {
		e.logger.Error("exporter query failed", "operation", "check_health", "error", err)
		return false, err
	}
	return !failed, nil
}
