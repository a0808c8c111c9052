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
	"path/filepath"
	"strings"
)

// Manager is the subset of the host service manager the agent relies on.
// Every call is synchronous: start, stop and restart return once the queued
// job has finished.
type Manager interface {
	Start(ctx context.Context, name string) error
	Stop(ctx context.Context, name string) error
	Restart(ctx context.Context, name string) error
	// Enable accepts a service name or an absolute unit file path. A path
	// is linked into the unit search path first, as systemctl enable does.
	Enable(ctx context.Context, name string) error
	Disable(ctx context.Context, name string) error
	IsRunning(ctx context.Context, name string) (bool, error)
	HasFailed(ctx context.Context, name string) (bool, error)
	// Reload makes the manager re-read unit files. It must be called after a
	// unit file is written or removed.
	Reload(ctx context.Context) error
}

// Active states reported by systemd.
const (
	StateActive   = "active"
	StateInactive = "inactive"
	StateFailed   = "failed"
)

// UnitName returns the unit name for a service name.
func UnitName(name string) string {
	if strings.HasSuffix(name, ".service") {
		return name
	}
	return name + ".service"
}

// unitSearchPaths are the system unit directories systemd loads from.
var unitSearchPaths = []string{
	"/etc/systemd/system",
	"/run/systemd/system",
	"/lib/systemd/system",
	"/usr/lib/systemd/system",
}

// EnableTarget returns what to pass to Enable for the unit file at path. It
// is the service name when path sits in a unit search directory, and the
// absolute path otherwise so systemd can link it.
func EnableTarget(name, path string) string {
	if path == "" {
		return name
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return name
	}
	dir := filepath.Dir(abs)
	for _, p := range unitSearchPaths {
		if dir == p {
			return name
		}
	}
	return abs
}
