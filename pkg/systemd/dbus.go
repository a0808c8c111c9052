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

package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/canonical/hardware-observer/pkg/defaults"
	apperrors "github.com/canonical/hardware-observer/pkg/errors"
)

// jobMode is the mode systemctl uses for start, stop and restart.
const jobMode = "replace"

// jobDone is the result reported for a job that finished successfully.
const jobDone = "done"

// conn is the part of *dbus.Conn used by DBusManager.
type conn interface {
	Close()
	StartUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	StopUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	RestartUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	EnableUnitFilesContext(ctx context.Context, files []string, runtime bool, force bool) (bool, []dbus.EnableUnitFileChange, error)
	DisableUnitFilesContext(ctx context.Context, files []string, runtime bool) ([]dbus.DisableUnitFileChange, error)
	GetUnitPropertiesContext(ctx context.Context, unit string) (map[string]any, error)
	ReloadContext(ctx context.Context) error
}

// dialer opens a connection to systemd.
type dialer func(ctx context.Context) (conn, error)

func dialSystem(ctx context.Context) (conn, error) {
	c, err := dbus.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DBusManager talks to systemd over D-Bus. A connection is opened per call.
type DBusManager struct {
	dial        dialer
	jobTimeout  time.Duration
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewDBusManager returns a Manager backed by the system bus.
func NewDBusManager() *DBusManager {
	return &DBusManager{
		dial:        dialSystem,
		jobTimeout:  defaults.ServiceJobTimeout,
		callTimeout: defaults.ServiceManagerCallTimeout,
		logger:      slog.Default(),
	}
}

func (m *DBusManager) withConn(ctx context.Context, op, unit string, fn func(c conn) error) error {
	c, err := m.dial(ctx)
	if err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
			"failed to connect to systemd", err, map[string]any{"operation": op, "unit": unit})
	}
	defer c.Close()

	if err := fn(c); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeServiceManager,
			fmt.Sprintf("systemd %s failed", op), err, map[string]any{"operation": op, "unit": unit})
	}
	return nil
}

func (m *DBusManager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.callTimeout)
}

type jobFunc func(ctx context.Context, name string, mode string, ch chan<- string) (int, error)

func (m *DBusManager) runJob(ctx context.Context, op, name string, job func(c conn) jobFunc) error {
	unit := UnitName(name)
	ctx, cancel := context.WithTimeout(ctx, m.jobTimeout)
	defer cancel()

	return m.withConn(ctx, op, unit, func(c conn) error {
		ch := make(chan string, 1)
		if _, err := job(c)(ctx, unit, jobMode, ch); err != nil {
			return err
		}
		select {
		case result := <-ch:
			if result != jobDone {
				return fmt.Errorf("job finished with result %q", result)
			}
			m.logger.Debug("systemd job done", "operation", op, "unit", unit)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Start starts the unit and waits for the job to finish.
func (m *DBusManager) Start(ctx context.Context, name string) error {
	return m.runJob(ctx, "start", name, func(c conn) jobFunc { return c.StartUnitContext })
}

// Stop stops the unit and waits for the job to finish.
func (m *DBusManager) Stop(ctx context.Context, name string) error {
	return m.runJob(ctx, "stop", name, func(c conn) jobFunc { return c.StopUnitContext })
}

// Restart restarts the unit and waits for the job to finish.
func (m *DBusManager) Restart(ctx context.Context, name string) error {
	return m.runJob(ctx, "restart", name, func(c conn) jobFunc { return c.RestartUnitContext })
}

// Enable enables the unit and reloads the manager, as systemctl enable does.
// An absolute path is handed to systemd unchanged.
func (m *DBusManager) Enable(ctx context.Context, name string) error {
	ctx, cancel := m.callContext(ctx)
	defer cancel()

	unit := name
	if !filepath.IsAbs(name) {
		unit = UnitName(name)
	}
	return m.withConn(ctx, "enable", unit, func(c conn) error {
		if _, _, err := c.EnableUnitFilesContext(ctx, []string{unit}, false, true); err != nil {
			return err
		}
		return c.ReloadContext(ctx)
	})
}

// Disable disables the unit and reloads the manager.
func (m *DBusManager) Disable(ctx context.Context, name string) error {
	ctx, cancel := m.callContext(ctx)
	defer cancel()

	unit := UnitName(name)
	return m.withConn(ctx, "disable", unit, func(c conn) error {
		if _, err := c.DisableUnitFilesContext(ctx, []string{unit}, false); err != nil {
			return err
		}
		return c.ReloadContext(ctx)
	})
}

// ActiveState returns the ActiveState property of the unit.
func (m *DBusManager) ActiveState(ctx context.Context, name string) (string, error) {
	ctx, cancel := m.callContext(ctx)
	defer cancel()

	unit := UnitName(name)
	var state string
	err := m.withConn(ctx, "query", unit, func(c conn) error {
		props, err := c.GetUnitPropertiesContext(ctx, unit)
		if err != nil {
			return err
		}
		s, ok := props["ActiveState"].(string)
		if !ok {
			return fmt.Errorf("unit has no ActiveState property")
		}
		state = s
		return nil
	})
	return state, err
}

// IsRunning reports whether the unit is active.
func (m *DBusManager) IsRunning(ctx context.Context, name string) (bool, error) {
	state, err := m.ActiveState(ctx, name)
	if err != nil {
		return false, err
	}
	return state == StateActive, nil
}

// HasFailed reports whether the unit is in the failed state.
func (m *DBusManager) HasFailed(ctx context.Context, name string) (bool, error) {
	state, err := m.ActiveState(ctx, name)
	if err != nil {
		return false, err
	}
	return state == StateFailed, nil
}

// Reload asks systemd to re-read all unit files.
func (m *DBusManager) Reload(ctx context.Context) error {
	ctx, cancel := m.callContext(ctx)
	defer cancel()

	return m.withConn(ctx, "daemon-reload", "", func(c conn) error {
		return c.ReloadContext(ctx)
	})
}
