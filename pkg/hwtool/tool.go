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

package hwtool

import (
	"slices"
	"strings"

	apperrors "github.com/canonical/hardware-observer/pkg/errors"
)

// Tool identifies a hardware-management tool the exporter can collect through.
type Tool string

const (
	StorCLI    Tool = "storcli"
	SSACLI     Tool = "ssacli"
	SAS2IRCU   Tool = "sas2ircu"
	SAS3IRCU   Tool = "sas3ircu"
	PercCLI    Tool = "perccli"
	IPMIDCMI   Tool = "ipmi_dcmi"
	IPMISEL    Tool = "ipmi_sel"
	IPMISensor Tool = "ipmi_sensor"
	Redfish    Tool = "redfish"
)

// collectorMapping maps a tool to the exporter collectors it enables.
var collectorMapping = map[Tool][]string{
	StorCLI:    {"collector.mega_raid"},
	PercCLI:    {"collector.poweredge_raid"},
	SAS2IRCU:   {"collector.lsi_sas_2"},
	SAS3IRCU:   {"collector.lsi_sas_3"},
	SSACLI:     {"collector.hpe_ssa"},
	IPMIDCMI:   {"collector.ipmi_dcmi"},
	IPMISEL:    {"collector.ipmi_sel"},
	IPMISensor: {"collector.ipmi_sensor"},
	Redfish:    {"collector.redfish"},
}

// resources names the charm resource that ships a vendor tool binary.
var resources = map[Tool]string{
	StorCLI:  "storcli-deb",
	PercCLI:  "perccli-deb",
	SAS2IRCU: "sas2ircu-bin",
	SAS3IRCU: "sas3ircu-bin",
}

// Known returns every tool present in the collector mapping, sorted.
func Known() []Tool {
	tools := make([]Tool, 0, len(collectorMapping))
	for t := range collectorMapping {
		tools = append(tools, t)
	}
	slices.Sort(tools)
	return tools
}

// IsKnown reports whether t has an entry in the collector mapping.
func (t Tool) IsKnown() bool {
	_, ok := collectorMapping[t]
	return ok
}

// Collectors returns the collectors enabled by t, or nil for an unknown tool.
// The returned slice is a copy.
func (t Tool) Collectors() []string {
	return slices.Clone(collectorMapping[t])
}

// Resource returns the resource name that provides t's binary.
func (t Tool) Resource() (string, bool) {
	r, ok := resources[t]
	return r, ok
}

func (t Tool) String() string {
	return string(t)
}

// Whitelist is the ordered set of tools detected as usable on the host.
type Whitelist []Tool

// Collectors returns the collectors for every whitelisted tool in whitelist
// order. Unknown tools contribute nothing and duplicates are kept.
func (w Whitelist) Collectors() []string {
	collectors := make([]string, 0, len(w))
	for _, t := range w {
		collectors = append(collectors, collectorMapping[t]...)
	}
	return collectors
}

// Resources returns the resources backing the whitelisted tools, in
// whitelist order and without duplicates. Tools installed from the host
// archive have no resource and are skipped.
func (w Whitelist) Resources() []string {
	var out []string
	for _, t := range w {
		if r, ok := t.Resource(); ok && !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

// Strings returns the whitelist as plain identifiers.
func (w Whitelist) Strings() []string {
	out := make([]string, len(w))
	for i, t := range w {
		out[i] = string(t)
	}
	return out
}

// ParseWhitelist builds a whitelist from raw identifiers. Entries may be
// comma separated; blanks are skipped. Identifiers are not validated against
// the mapping, unknown tools are kept and later ignored by Collectors.
func ParseWhitelist(values ...string) Whitelist {
	var w Whitelist
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			w = append(w, Tool(part))
		}
	}
	return w
}

// Unknown returns the whitelisted tools that have no collector mapping.
func (w Whitelist) Unknown() []Tool {
	var out []Tool
	for _, t := range w {
		if !t.IsKnown() {
			out = append(out, t)
		}
	}
	return out
}

// Validate returns an INVALID_REQUEST error naming every tool without a
// collector mapping.
func (w Whitelist) Validate() error {
	unknown := w.Unknown()
	if len(unknown) == 0 {
		return nil
	}
	names := Whitelist(unknown).Strings()
	return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
		"unsupported tools: "+strings.Join(names, ", "),
		map[string]any{"tools": names, "supported": Whitelist(Known()).Strings()})
}
