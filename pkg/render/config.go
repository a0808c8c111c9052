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

package render

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/canonical/hardware-observer/pkg/hwtool"
)

// RedfishParams describes how the exporter reaches a Redfish endpoint.
// The zero value means Redfish is not configured.
type RedfishParams struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"-" yaml:"-"`
}

// IsEmpty reports whether no Redfish connection parameter is set.
func (p RedfishParams) IsEmpty() bool {
	return p == RedfishParams{}
}

// ConfigValues are the exporter settings substituted into the config template.
type ConfigValues struct {
	Port           int
	Level          string
	CollectTimeout int
	Redfish        RedfishParams
}

// ExporterConfig is the parsed form of a rendered exporter config.
type ExporterConfig struct {
	Port             int      `yaml:"port"`
	Level            string   `yaml:"level"`
	CollectTimeout   int      `yaml:"collect_timeout"`
	EnableCollectors []string `yaml:"enable_collectors"`
	RedfishHost      string   `yaml:"redfish_host,omitempty"`
	RedfishUsername  string   `yaml:"redfish_username,omitempty"`
	RedfishPassword  string   `yaml:"redfish_password,omitempty"`
}

// RenderConfig renders the exporter config. Collectors come from the
// whitelist in order; Redfish is enabled iff any Redfish parameter is set.
func (r *Renderer) RenderConfig(templateName string, whitelist hwtool.Whitelist, v ConfigValues) (string, error) {
	return r.Render(templateName, map[string]any{
		"Port":            v.Port,
		"Level":           v.Level,
		"CollectTimeout":  v.CollectTimeout,
		"Collectors":      whitelist.Collectors(),
		"RedfishEnable":   !v.Redfish.IsEmpty(),
		"RedfishHost":     v.Redfish.Host,
		"RedfishUsername": v.Redfish.Username,
		"RedfishPassword": v.Redfish.Password,
	})
}

// RenderService renders the systemd unit of the exporter.
func (r *Renderer) RenderService(templateName, charmDir, configFile string) (string, error) {
	return r.Render(templateName, map[string]any{
		"CharmDir":   charmDir,
		"ConfigFile": configFile,
	})
}

// ParseExporterConfig parses rendered exporter config content.
func ParseExporterConfig(content []byte) (*ExporterConfig, error) {
	var cfg ExporterConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse exporter config: %w", err)
	}
	return &cfg, nil
}
