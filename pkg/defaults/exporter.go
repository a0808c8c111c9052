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

package defaults

import "fmt"

// ExporterName is the service name of the hardware exporter.
const ExporterName = "hardware-exporter"

var (
	// ExporterConfigPath is where the rendered exporter config is installed.
	ExporterConfigPath = fmt.Sprintf("/etc/%s-config.yaml", ExporterName)

	// ExporterServicePath is where the rendered systemd unit is installed.
	ExporterServicePath = fmt.Sprintf("/etc/systemd/system/%s.service", ExporterName)

	// ExporterConfigTemplate is the template name of the exporter config.
	ExporterConfigTemplate = fmt.Sprintf("%s-config.yaml.tmpl", ExporterName)

	// ExporterServiceTemplate is the template name of the systemd unit.
	ExporterServiceTemplate = fmt.Sprintf("%s.service.tmpl", ExporterName)

	// ExporterCrashMessage is reported when the exporter stays unhealthy after retries.
	ExporterCrashMessage = "Hardware exporter crashed unexpectedly, please refer to systemd logs..."
)

// Exporter option defaults, matching the charm configuration.
const (
	ExporterPort           = 10000
	ExporterLogLevel       = "INFO"
	ExporterCollectTimeout = 10
)

// StatusServerPort is the default port of the agent status server.
const StatusServerPort = 10100
