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
	"github.com/canonical/hardware-observer/pkg/defaults"
	"github.com/canonical/hardware-observer/pkg/render"
)

// Config locates one exporter on the host. It is built once at startup and
// handed to New; nothing in this package reads process-wide path globals.
type Config struct {
	// Name is the service name used for service manager lookups.
	Name string
	// ConfigPath is where the rendered exporter config is installed.
	ConfigPath string
	// ServicePath is where the rendered systemd unit is installed.
	ServicePath string
	// CharmDir is rendered into the unit as the working directory.
	CharmDir string
	// ConfigTemplate and ServiceTemplate name the templates to render.
	ConfigTemplate  string
	ServiceTemplate string
}

// DefaultConfig returns the hardware exporter configuration for charmDir.
func DefaultConfig(charmDir string) Config {
	return Config{
		Name:            defaults.ExporterName,
		ConfigPath:      defaults.ExporterConfigPath,
		ServicePath:     defaults.ExporterServicePath,
		CharmDir:        charmDir,
		ConfigTemplate:  defaults.ExporterConfigTemplate,
		ServiceTemplate: defaults.ExporterServiceTemplate,
	}
}

// RenderParams are the values rendered into the exporter config.
type RenderParams = render.ConfigValues

// RedfishParams is the optional Redfish connection descriptor.
type RedfishParams = render.RedfishParams
