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
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/canonical/hardware-observer/pkg/defaults"
	apperrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/exporter"
)

// Status summarizes the outcome of a health check.
type Status string

const (
	StatusHealthy      Status = "healthy"
	StatusRecovered    Status = "recovered"
	StatusCrashed      Status = "crashed"
	StatusThrottled    Status = "throttled"
	StatusNotInstalled Status = "not_installed"
	StatusUnknown      Status = "unknown"
)

// Target is the exporter surface the monitor needs.
type Target interface {
	CheckHealth(ctx context.Context) (bool, error)
	CheckActive(ctx context.Context) (bool, error)
	Restart(ctx context.Context) error
}

var errThrottled = errors.New("exporter restart throttled")

// Result is the outcome of one Check.
type Result struct {
	Status   Status    `json:"status" yaml:"status"`
	Message  string    `json:"message,omitempty" yaml:"message,omitempty"`
	Active   bool      `json:"active" yaml:"active"`
	Restarts int       `json:"restarts" yaml:"restarts"`
	Checked  time.Time `json:"checked" yaml:"checked"`
	Err      error     `json:"-" yaml:"-"`
}

// Monitor checks the exporter and restarts it while it is unhealthy.
type Monitor struct {
	target   Target
	retries  int
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger

	mu   sync.RWMutex
	last Result
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithRetries sets how many restarts are attempted before giving up.
// Negative values are treated as zero.
func WithRetries(n int) Option {
	return func(m *Monitor) {
		m.retries = max(n, 0)
	}
}

// WithRetryInterval sets the wait between a restart and the next check.
// Negative values are treated as zero.
func WithRetryInterval(d time.Duration) Option {
	return func(m *Monitor) {
		m.interval = max(d, 0)
	}
}

// WithRestartLimit caps restarts to burst per every, across checks.
func WithRestartLimit(every time.Duration, burst int) Option {
	return func(m *Monitor) {
		m.limiter = rate.NewLimiter(rate.Every(every), burst)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = l
	}
}

// NewMonitor creates a Monitor for target.
func NewMonitor(target Target, opts ...Option) *Monitor {
	m := &Monitor{
		target:   target,
		retries:  defaults.ExporterHealthRetryCount,
		interval: defaults.ExporterHealthRetryInterval,
		logger:   slog.Default(),
		last:     Result{Status: StatusUnknown},
	}
	for _, opt := range opts {
		opt(m)
	}
	// The health condition must run at least once per Check.
	m.retries = max(m.retries, 0)
	if m.limiter == nil {
		m.limiter = rate.NewLimiter(rate.Every(defaults.ExporterRestartInterval), m.retries)
	}
	return m
}

// Last returns the most recent Check result.
func (m *Monitor) Last() Result {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Check verifies exporter health. While unhealthy it restarts the exporter,
// waits the retry interval and checks again, up to the retry count. An
// exporter that never recovers is reported as crashed.
func (m *Monitor) Check(ctx context.Context) Result {
	restarts := 0
	backoff := wait.Backoff{
		Duration: m.interval,
		Factor:   1,
		Steps:    m.retries + 1,
	}

	err := wait.ExponentialBackoffWithContext(ctx, backoff, func(ctx context.Context) (bool, error) {
		healthy, err := m.target.CheckHealth(ctx)
		if err != nil {
			return false, err
		}
		if healthy {
			return true, nil
		}
		if restarts == m.retries {
			return false, nil
		}
		if !m.limiter.Allow() {
			return false, errThrottled
		}
		restarts++
		m.logger.Warn("exporter unhealthy, restarting", "attempt", restarts, "retries", m.retries)
		restartsTotal.Inc()
		if err := m.target.Restart(ctx); err != nil {
			m.logger.Error("exporter restart failed", "attempt", restarts, "error", err)
		}
		return false, nil
	})

	res := Result{Restarts: restarts, Checked: time.Now().UTC(), Err: err}
	switch {
	case err == nil && restarts == 0:
		res.Status = StatusHealthy
	case err == nil:
		res.Status = StatusRecovered
		m.logger.Info("exporter recovered", "restarts", restarts)
	case errors.Is(err, errThrottled):
		res.Status = StatusThrottled
		res.Message = defaults.ExporterCrashMessage
		m.logger.Warn("exporter restart throttled", "restarts", restarts)
	case exporter.IsNotInstalled(err):
		res.Status = StatusNotInstalled
		res.Message = "exporter is not installed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		res.Status = StatusUnknown
		res.Message = err.Error()
	case wait.Interrupted(err):
		res.Status = StatusCrashed
		res.Message = defaults.ExporterCrashMessage
		m.logger.Error(defaults.ExporterCrashMessage, "restarts", restarts)
	default:
		res.Status = StatusUnknown
		res.Message = err.Error()
		m.logger.Error("exporter health check failed", "error", err)
	}

	healthyGauge.Set(boolToFloat(res.Healthy()))
	if res.Status != StatusNotInstalled && ctx.Err() == nil {
		active, aerr := m.target.CheckActive(ctx)
		if aerr != nil {
			m.logger.Warn("exporter active check failed", "error", aerr)
		}
		res.Active = active
	}
	activeGauge.Set(boolToFloat(res.Active))

	m.mu.Lock()
	m.last = res
	m.mu.Unlock()
	return res
}

// Healthy reports whether the exporter was healthy at the end of the check.
func (r Result) Healthy() bool {
	return r.Status == StatusHealthy || r.Status == StatusRecovered
}

// Run calls Check every interval until ctx is done. A non-positive
// interval is rejected before the first check.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"monitor interval must be positive", map[string]any{"interval": interval.String()})
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		res := m.Check(ctx)
		m.logger.Debug("exporter health checked", "status", res.Status, "restarts", res.Restarts)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
