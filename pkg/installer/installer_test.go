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

package installer

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstaller(buf *bytes.Buffer, opts ...Option) *Installer {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return New(append([]Option{WithLogger(logger)}, opts...)...)
}

func TestInstallWritesContent(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "exporter.yaml")

	ok := newTestInstaller(&logs).Install(path, "port: 10000\n")
	require.True(t, ok)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "port: 10000\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())
	assert.Contains(t, logs.String(), "writing file done")
}

func TestInstallOverwrites(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "exporter.yaml")
	inst := newTestInstaller(&logs)

	require.True(t, inst.Install(path, "a much longer first version\n"))
	require.True(t, inst.Install(path, "short\n"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(got))
}

func TestInstallFileMode(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "secret.yaml")

	require.True(t, newTestInstaller(&logs, WithFileMode(0o600)).Install(path, "x"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestInstallMissingDirectory(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "exporter.yaml")

	ok := newTestInstaller(&logs).Install(path, "x")
	assert.False(t, ok)
	assert.False(t, Exists(path))
	assert.Contains(t, logs.String(), "writing file failed")
}

func TestInstallPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	var logs bytes.Buffer
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	ok := newTestInstaller(&logs).Install(filepath.Join(dir, "exporter.yaml"), "x")
	assert.False(t, ok)
}

func TestUninstall(t *testing.T) {
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "exporter.service")
	inst := newTestInstaller(&logs)
	require.True(t, inst.Install(path, "[Unit]\n"))

	assert.True(t, inst.Uninstall(path))
	assert.False(t, Exists(path))

	// second removal is a no-op
	assert.True(t, inst.Uninstall(path))
}

func TestUninstallPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	var logs bytes.Buffer
	dir := t.TempDir()
	path := filepath.Join(dir, "exporter.service")
	inst := newTestInstaller(&logs)
	require.True(t, inst.Install(path, "[Unit]\n"))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	assert.False(t, inst.Uninstall(path))
	assert.True(t, Exists(path))
	assert.Contains(t, logs.String(), "removing file failed")
}
