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

package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/hardware-observer/pkg/defaults"
	apperrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/exporter"
	"github.com/canonical/hardware-observer/pkg/systemd"
)

// fakeTarget returns scripted health results, one per call. The last
// entry repeats once the script runs out.
type fakeTarget struct {
	health     []bool
	healthErr  error
	active     bool
	restartErr error
	checks     int
	restarts   int
}

func (f *fakeTarget) CheckHealth(context.Context) (bool, error) {
	if f.healthErr != nil {
		return false, f.healthErr
	}
	i := f.checks
	if i >= len(f.health) {
		i = len(f.health) - 1
	}
	f.checks++
	return f.health[i], nil
}

func (f *fakeTarget) CheckActive(context.Context) (bool, error) {
	return f.active, nil
}

func (f *fakeTarget) Restart(context.Context) error {
	f.restarts++
	return f.restartErr
}

func newTestMonitor(target Target, opts ...Option) *Monitor {
	base := []Option{WithRetries(3), WithRetryInterval(time.Millisecond), WithRestartLimit(time.Hour, 100)}
	return NewMonitor(target, append(base, opts...)...)
}

func TestMonitorCheck(t *testing.T) {
	tests := []struct {
		name         string
		target       *fakeTarget
		wantStatus   Status
		wantRestarts int
		wantChecks   int
		wantMessage  string
	}{
		{
			name:       "healthy first time",
			target:     &fakeTarget{health: []bool{true}, active: true},
			wantStatus: StatusHealthy,
			wantChecks: 1,
		},
		{
			name:         "recovers after one restart",
			target:       &fakeTarget{health: []bool{false, true}, active: true},
			wantStatus:   StatusRecovered,
			wantRestarts: 1,
			wantChecks:   2,
		},
		{
			name:         "recovers on last attempt",
			target:       &fakeTarget{health: []bool{false, false, false, true}},
			wantStatus:   StatusRecovered,
			wantRestarts: 3,
			wantChecks:   4,
		},
		{
			name:         "never recovers",
			target:       &fakeTarget{health: []bool{false}},
			wantStatus:   StatusCrashed,
			wantRestarts: 3,
			wantChecks:   4,
			wantMessage:  defaults.ExporterCrashMessage,
		},
		{
			name:         "restart errors keep retrying",
			target:       &fakeTarget{health: []bool{false}, restartErr: errors.New("job failed")},
			wantStatus:   StatusCrashed,
			wantRestarts: 3,
			wantChecks:   4,
			wantMessage:  defaults.ExporterCrashMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMonitor(tt.target)

			res := m.Check(context.Background())
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantRestarts, res.Restarts)
			assert.Equal(t, tt.wantRestarts, tt.target.restarts)
			assert.Equal(t, tt.wantChecks, tt.target.checks)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Equal(t, tt.target.active, res.Active)
			assert.Equal(t, res, m.Last())
		})
	}
}

func TestMonitorCheckNotInstalled(t *testing.T) {
	cfg := exporter.DefaultConfig(t.TempDir())
	dir := t.TempDir()
	cfg.ConfigPath = dir + "/config.yaml"
	cfg.ServicePath = dir + "/exporter.service"
	svc := systemd.NewFakeManager()
	exp := exporter.New(cfg, svc)

	m := newTestMonitor(exp)
	res := m.Check(context.Background())

	assert.Equal(t, StatusNotInstalled, res.Status)
	assert.False(t, res.Healthy())
	assert.Zero(t, res.Restarts)
	assert.Empty(t, svc.Calls())
}

func TestMonitorCheckThrottled(t *testing.T) {
	target := &fakeTarget{health: []bool{false}}
	m := newTestMonitor(target, WithRestartLimit(time.Hour, 1))

	res := m.Check(context.Background())
	assert.Equal(t, StatusThrottled, res.Status)
	assert.Equal(t, 1, res.Restarts)
	assert.Equal(t, defaults.ExporterCrashMessage, res.Message)

	res = m.Check(context.Background())
	assert.Equal(t, StatusThrottled, res.Status)
	assert.Zero(t, res.Restarts)
	assert.Equal(t, 1, target.restarts)
}

func TestMonitorCheckCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := &fakeTarget{health: []bool{false}}
	res := newTestMonitor(target).Check(ctx)

	assert.Equal(t, StatusUnknown, res.Status)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestMonitorMetrics(t *testing.T) {
	before := testutil.ToFloat64(restartsTotal)

	m := newTestMonitor(&fakeTarget{health: []bool{false, true}, active: true})
	res := m.Check(context.Background())
	require.True(t, res.Healthy())

	assert.Equal(t, before+1, testutil.ToFloat64(restartsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(healthyGauge))
	assert.Equal(t, float64(1), testutil.ToFloat64(activeGauge))

	m = newTestMonitor(&fakeTarget{health: []bool{false}})
	m.Check(context.Background())
	assert.Equal(t, float64(0), testutil.ToFloat64(healthyGauge))
	assert.Equal(t, float64(0), testutil.ToFloat64(activeGauge))
}

func TestMonitorRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	target := &fakeTarget{health: []bool{true}}
	err := newTestMonitor(target).Run(ctx, 5*time.Millisecond)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, target.checks, 2)
}

func TestMonitorRunRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		t.Run(interval.String(), func(t *testing.T) {
			target := &fakeTarget{health: []bool{true}}
			err := newTestMonitor(target).Run(context.Background(), interval)

			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
			assert.Zero(t, target.checks)
		})
	}
}

func TestMonitorNegativeRetries(t *testing.T) {
	tests := []struct {
		name         string
		target       *fakeTarget
		wantStatus   Status
		wantChecks   int
		wantRestarts int
	}{
		{name: "healthy is still checked", target: &fakeTarget{health: []bool{true}}, wantStatus: StatusHealthy, wantChecks: 1},
		{name: "failed is not restarted", target: &fakeTarget{health: []bool{false}}, wantStatus: StatusCrashed, wantChecks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(tt.target, WithRetries(-1), WithRetryInterval(-time.Second))
			res := m.Check(context.Background())

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantChecks, tt.target.checks)
			assert.Equal(t, tt.wantRestarts, tt.target.restarts)
		})
	}
}
