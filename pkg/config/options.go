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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/canonical/hardware-observer/pkg/defaults"
	apperrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/exporter"
	"github.com/canonical/hardware-observer/pkg/hwtool"
)

// LogLevels are the exporter log levels accepted in exporter-log-level.
var LogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}

// Options mirrors the operator-facing configuration of the exporter.
type Options struct {
	ExporterPort     int      `yaml:"exporter-port"`
	ExporterLogLevel string   `yaml:"exporter-log-level"`
	CollectTimeout   int      `yaml:"collect-timeout"`
	RedfishHost      string   `yaml:"redfish-host"`
	RedfishUsername  string   `yaml:"redfish-username"`
	RedfishPassword  string   `yaml:"redfish-password"`
	Tools            []string `yaml:"tools"`
}

// Default returns Options populated with the exporter defaults.
func Default() *Options {
	return &Options{
		ExporterPort:     defaults.ExporterPort,
		ExporterLogLevel: defaults.ExporterLogLevel,
		CollectTimeout:   defaults.ExporterCollectTimeout,
	}
}

// Load reads options from a YAML file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
			"failed to read options file", err, map[string]any{"path": path})
	}
	if err := Parse(data, opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// Parse decodes YAML into opts, overriding only the keys present, then
// normalizes and validates the result. Unknown keys are rejected.
func Parse(data []byte, opts *Options) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to parse options", err)
	}
	opts.Normalize()
	return opts.Validate()
}

// Normalize upper-cases the log level and trims string fields.
func (o *Options) Normalize() {
	o.ExporterLogLevel = cases.Upper(language.Und).String(strings.TrimSpace(o.ExporterLogLevel))
	o.RedfishHost = strings.TrimSpace(o.RedfishHost)
	o.RedfishUsername = strings.TrimSpace(o.RedfishUsername)
}

// Validate checks the options the exporter cannot start without.
func (o *Options) Validate() error {
	if o.ExporterPort < 1 || o.ExporterPort > 65535 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("exporter-port must be between 1 and 65535, got %d", o.ExporterPort),
			map[string]any{"exporter-port": o.ExporterPort})
	}
	if !slices.Contains(LogLevels, o.ExporterLogLevel) {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("exporter-log-level must be one of %s, got %q", strings.Join(LogLevels, ", "), o.ExporterLogLevel),
			map[string]any{"exporter-log-level": o.ExporterLogLevel})
	}
	if o.CollectTimeout <= 0 {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("collect-timeout must be positive, got %d", o.CollectTimeout),
			map[string]any{"collect-timeout": o.CollectTimeout})
	}
	return nil
}

// Redfish returns the Redfish descriptor, empty when no field is set.
func (o *Options) Redfish() exporter.RedfishParams {
	return exporter.RedfishParams{
		Host:     o.RedfishHost,
		Username: o.RedfishUsername,
		Password: o.RedfishPassword,
	}
}

// RenderParams converts the options into exporter render parameters.
func (o *Options) RenderParams() exporter.RenderParams {
	return exporter.RenderParams{
		Port:           o.ExporterPort,
		Level:          o.ExporterLogLevel,
		CollectTimeout: o.CollectTimeout,
		Redfish:        o.Redfish(),
	}
}

// Whitelist returns the configured tools.
func (o *Options) Whitelist() hwtool.Whitelist {
	return hwtool.ParseWhitelist(o.Tools...)
}
