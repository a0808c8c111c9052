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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	healthyGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwobserver_exporter_healthy",
			Help: "Whether the hardware exporter passed its last health check",
		},
	)

	activeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hwobserver_exporter_active",
			Help: "Whether the hardware exporter service was active at the last check",
		},
	)

	restartsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hwobserver_exporter_restarts_total",
			Help: "Total number of automatic exporter restarts",
		},
	)
)
