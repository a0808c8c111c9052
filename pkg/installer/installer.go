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
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/renameio/v2"
)

// DefaultFileMode is the mode of installed files.
const DefaultFileMode os.FileMode = 0o644

// Installer writes and removes files at fixed paths. Failures are logged and
// reported as false, never returned as errors.
type Installer struct {
	mode   os.FileMode
	logger *slog.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithFileMode sets the mode of installed files.
func WithFileMode(mode os.FileMode) Option {
	return func(i *Installer) {
		i.mode = mode
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = l
	}
}

// New creates an Installer.
func New(opts ...Option) *Installer {
	i := &Installer{
		mode:   DefaultFileMode,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install replaces the file at path with content. Readers see either the old
// or the new content, never a partial write. An existing file keeps its mode.
func (i *Installer) Install(path, content string) bool {
	i.logger.Info("writing file", "path", path)
	if err := renameio.WriteFile(path, []byte(content), i.mode, renameio.WithStaticPermissions(i.mode)); err != nil {
		i.logger.Error("writing file failed", "path", path, "error", err)
		return false
	}
	i.logger.Info("writing file done", "path", path, "size_bytes", len(content))
	return true
}

// Uninstall removes the file at path. A missing file counts as removed.
func (i *Installer) Uninstall(path string) bool {
	i.logger.Info("removing file", "path", path)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		i.logger.Error("removing file failed", "path", path, "error", err)
		return false
	}
	i.logger.Info("removing file done", "path", path)
	return true
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
