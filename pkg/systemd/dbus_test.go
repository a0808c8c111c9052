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
	"errors"
	"testing"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/canonical/hardware-observer/pkg/errors"
)

type fakeConn struct {
	jobResult   string
	jobErr      error
	holdJob     bool
	props       map[string]any
	propsErr    error
	reloadErr   error
	enableErr   error
	calls       []string
	closed      int
	lastUnit    string
	lastMode    string
	enableFiles []string
}

func (c *fakeConn) Close() { c.closed++ }

func (c *fakeConn) job(op string) jobFunc {
	return func(_ context.Context, name, mode string, ch chan<- string) (int, error) {
		c.calls = append(c.calls, op)
		c.lastUnit = name
		c.lastMode = mode
		if c.jobErr != nil {
			return 0, c.jobErr
		}
		if !c.holdJob {
			ch <- c.jobResult
		}
		return 1, nil
	}
}

func (c *fakeConn) StartUnitContext(ctx context.Context, name, mode string, ch chan<- string) (int, error) {
	return c.job("start")(ctx, name, mode, ch)
}

func (c *fakeConn) StopUnitContext(ctx context.Context, name, mode string, ch chan<- string) (int, error) {
	return c.job("stop")(ctx, name, mode, ch)
}

func (c *fakeConn) RestartUnitContext(ctx context.Context, name, mode string, ch chan<- string) (int, error) {
	return c.job("restart")(ctx, name, mode, ch)
}

func (c *fakeConn) EnableUnitFilesContext(_ context.Context, files []string, _ bool, _ bool) (bool, []dbus.EnableUnitFileChange, error) {
	c.calls = append(c.calls, "enable")
	c.enableFiles = files
	return true, nil, c.enableErr
}

func (c *fakeConn) DisableUnitFilesContext(_ context.Context, files []string, _ bool) ([]dbus.DisableUnitFileChange, error) {
	c.calls = append(c.calls, "disable")
	c.enableFiles = files
	return nil, nil
}

func (c *fakeConn) GetUnitPropertiesContext(_ context.Context, unit string) (map[string]any, error) {
	c.calls = append(c.calls, "properties")
	c.lastUnit = unit
	return c.props, c.propsErr
}

func (c *fakeConn) ReloadContext(_ context.Context) error {
	c.calls = append(c.calls, "reload")
	return c.reloadErr
}

func newTestManager(c *fakeConn) *DBusManager {
	m := NewDBusManager()
	m.dial = func(context.Context) (conn, error) { return c, nil }
	return m
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "hardware-exporter.service", UnitName("hardware-exporter"))
	assert.Equal(t, "hardware-exporter.service", UnitName("hardware-exporter.service"))
}

func TestDBusManagerJobs(t *testing.T) {
	tests := []struct {
		name string
		run  func(m *DBusManager) error
		op   string
	}{
		{name: "start", op: "start", run: func(m *DBusManager) error { return m.Start(context.Background(), "hardware-exporter") }},
		{name: "stop", op: "stop", run: func(m *DBusManager) error { return m.Stop(context.Background(), "hardware-exporter") }},
		{name: "restart", op: "restart", run: func(m *DBusManager) error { return m.Restart(context.Background(), "hardware-exporter") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeConn{jobResult: "done"}
			require.NoError(t, tt.run(newTestManager(c)))
			assert.Equal(t, []string{tt.op}, c.calls)
			assert.Equal(t, "hardware-exporter.service", c.lastUnit)
			assert.Equal(t, "replace", c.lastMode)
			assert.Equal(t, 1, c.closed)
		})
	}
}

func TestDBusManagerJobFailed(t *testing.T) {
	c := &fakeConn{jobResult: "failed"}
	err := newTestManager(c).Start(context.Background(), "hardware-exporter")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeServiceManager))
	assert.Contains(t, err.Error(), `"failed"`)
}

func TestDBusManagerJobEnqueueError(t *testing.T) {
	cause := errors.New("unit not found")
	c := &fakeConn{jobErr: cause}
	err := newTestManager(c).Restart(context.Background(), "hardware-exporter")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestDBusManagerJobTimeout(t *testing.T) {
	c := &fakeConn{holdJob: true}
	m := newTestManager(c)
	m.jobTimeout = 10 * time.Millisecond

	err := m.Stop(context.Background(), "hardware-exporter")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDBusManagerDialError(t *testing.T) {
	m := NewDBusManager()
	m.dial = func(context.Context) (conn, error) { return nil, errors.New("no bus") }

	err := m.Reload(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnavailable))
	assert.False(t, apperrors.HasCode(err, apperrors.ErrCodeServiceManager))
}

func TestDBusManagerEnableDisableReload(t *testing.T) {
	c := &fakeConn{}
	m := newTestManager(c)

	require.NoError(t, m.Enable(context.Background(), "hardware-exporter"))
	assert.Equal(t, []string{"enable", "reload"}, c.calls)
	assert.Equal(t, []string{"hardware-exporter.service"}, c.enableFiles)

	c.calls = nil
	require.NoError(t, m.Disable(context.Background(), "hardware-exporter"))
	assert.Equal(t, []string{"disable", "reload"}, c.calls)
}

func TestDBusManagerEnableUnitFilePath(t *testing.T) {
	c := &fakeConn{}
	m := newTestManager(c)

	require.NoError(t, m.Enable(context.Background(), "/opt/charm/hardware-exporter.service"))
	assert.Equal(t, []string{"/opt/charm/hardware-exporter.service"}, c.enableFiles)
	assert.Equal(t, []string{"enable", "reload"}, c.calls)
}

func TestEnableTarget(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "etc", path: "/etc/systemd/system/hardware-exporter.service", want: "hardware-exporter"},
		{name: "lib", path: "/lib/systemd/system/hardware-exporter.service", want: "hardware-exporter"},
		{name: "usr lib", path: "/usr/lib/systemd/system/hardware-exporter.service", want: "hardware-exporter"},
		{name: "outside search path", path: "/var/lib/charm/hardware-exporter.service", want: "/var/lib/charm/hardware-exporter.service"},
		{name: "nested under search path", path: "/etc/systemd/system/extra/hardware-exporter.service", want: "/etc/systemd/system/extra/hardware-exporter.service"},
		{name: "unset", path: "", want: "hardware-exporter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnableTarget("hardware-exporter", tt.path))
		})
	}
}

func TestDBusManagerEnableError(t *testing.T) {
	c := &fakeConn{enableErr: errors.New("no such file")}
	err := newTestManager(c).Enable(context.Background(), "hardware-exporter")
	require.Error(t, err)
	assert.Equal(t, []string{"enable"}, c.calls)
}

func TestDBusManagerStates(t *testing.T) {
	tests := []struct {
		state      string
		wantActive bool
		wantFailed bool
	}{
		{state: StateActive, wantActive: true, wantFailed: false},
		{state: StateInactive, wantActive: false, wantFailed: false},
		{state: StateFailed, wantActive: false, wantFailed: true},
		{state: "activating", wantActive: false, wantFailed: false},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			c := &fakeConn{props: map[string]any{"ActiveState": tt.state}}
			m := newTestManager(c)

			active, err := m.IsRunning(context.Background(), "hardware-exporter")
			require.NoError(t, err)
			assert.Equal(t, tt.wantActive, active)

			failed, err := m.HasFailed(context.Background(), "hardware-exporter")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFailed, failed)
		})
	}
}

func TestDBusManagerStateErrors(t *testing.T) {
	c := &fakeConn{props: map[string]any{}}
	_, err := newTestManager(c).IsRunning(context.Background(), "hardware-exporter")
	require.Error(t, err)

	c = &fakeConn{propsErr: errors.New("access denied")}
	_, err = newTestManager(c).HasFailed(context.Background(), "hardware-exporter")
	require.Error(t, err)
}

func TestFakeManager(t *testing.T) {
	ctx := context.Background()
	f := NewFakeManager()

	running, err := f.IsRunning(ctx, "svc")
	require.NoError(t, err)
	assert.False(t, running)

	f.SetFailed("svc", true)
	require.NoError(t, f.Restart(ctx, "svc"))
	failed, err := f.HasFailed(ctx, "svc")
	require.NoError(t, err)
	assert.False(t, failed)

	f.FailOn("stop", errors.New("boom"))
	assert.Error(t, f.Stop(ctx, "svc"))
	running, _ = f.IsRunning(ctx, "svc")
	assert.True(t, running)

	assert.Equal(t, 1, f.CallCount("restart"))
	assert.Len(t, f.Calls(), 5)

	f.Reset()
	assert.Empty(t, f.Calls())
}
