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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultSkipped = "not_installed"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hwobserver_exporter_operations_total",
			Help: "Total number of exporter lifecycle operations by result",
		},
		[]string{"operation", "result"},
	)
)

func recordOperation(op string, ok bool) {
	result := resultSuccess
	if !ok {
		result = resultFailure
	}
	operationsTotal.WithLabelValues(op, result).Inc()
}

func recordNotInstalled(op string) {
	operationsTotal.WithLabelValues(op, resultSkipped).Inc()
}
