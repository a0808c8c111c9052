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

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/canonical/hardware-observer/pkg/exporter"
	"github.com/canonical/hardware-observer/pkg/health"
	"github.com/canonical/hardware-observer/pkg/serializer"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason,omitempty"`
}

// StatusResponse is the body of /status.
type StatusResponse struct {
	Exporter  *exporter.Status `json:"exporter"`
	Monitor   *health.Result   `json:"monitor,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "no such route", false,
			map[string]any{"path": r.URL.Path})
		return
	}

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.isReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    []string{"GET /health", "GET /ready", "GET /status", "GET /metrics"},
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleHealth reports 200 while the exporter service has not failed.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.HandlerTimeout)
	defer cancel()

	healthy, err := s.reporter.CheckHealth(ctx)
	if err != nil {
		WriteErrorFromErr(w, r, err, "exporter health check failed")
		return
	}

	if !healthy {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Reason:    "exporter service has failed",
		})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Timestamp: time.Now().UTC(),
			Reason:    "server is not accepting traffic",
		})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.config.HandlerTimeout)
	defer cancel()

	st, err := s.reporter.Status(ctx)
	if err != nil {
		WriteErrorFromErr(w, r, err, "exporter status query failed")
		return
	}

	resp := StatusResponse{Exporter: st, Timestamp: time.Now().UTC()}
	if s.monitor != nil {
		last := s.monitor.Last()
		resp.Monitor = &last
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		"method not allowed", false, map[string]any{"method": r.Method})
	return false
}
