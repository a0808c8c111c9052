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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	cerrors "github.com/canonical/hardware-observer/pkg/errors"
)

func newTestServer() *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(100, 200),
		logger:      discardLogger(),
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	valid := uuid.New().String()

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generates when missing", header: ""},
		{name: "keeps valid id", header: valid, wantSame: true},
		{name: "replaces invalid id", header: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := newTestServer().requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = r.Context().Value(contextKeyRequestID).(string)
			})

			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if _, err := uuid.Parse(captured); err != nil {
				t.Fatalf("expected valid UUID, got %q", captured)
			}
			if tt.wantSame && captured != tt.header {
				t.Errorf("expected %s, got %s", tt.header, captured)
			}
			if !tt.wantSame && captured == tt.header {
				t.Errorf("expected a generated id, got %s", captured)
			}
			if rec.Header().Get("X-Request-Id") != captured {
				t.Errorf("expected header %s, got %s", captured, rec.Header().Get("X-Request-Id"))
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer()
	s.rateLimiter = rate.NewLimiter(rate.Limit(1), 1)

	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("first request: expected %d, got %d", http.StatusOK, rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Errorf("expected Retry-After 1, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	handler := newTestServer().panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestStatusRecorder(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBytes  int
	}{
		{
			name:       "implicit ok",
			write:      func(w http.ResponseWriter) { _, _ = w.Write([]byte("hello")) },
			wantStatus: http.StatusOK,
			wantBytes:  5,
		},
		{
			name: "second header ignored",
			write: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusAccepted)
				w.WriteHeader(http.StatusTeapot)
				_, _ = w.Write([]byte("ok"))
			},
			wantStatus: http.StatusAccepted,
			wantBytes:  2,
		},
		{
			name:       "nothing written",
			write:      func(http.ResponseWriter) {},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			sr := recordResponse(rec)
			tt.write(sr)

			if sr.Status() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, sr.Status())
			}
			if sr.bytes != tt.wantBytes {
				t.Errorf("expected %d bytes, got %d", tt.wantBytes, sr.bytes)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected underlying status %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestRecordResponseReusesRecorder(t *testing.T) {
	outer := recordResponse(httptest.NewRecorder())
	if inner := recordResponse(outer); inner != outer {
		t.Error("expected the existing recorder to be reused")
	}
	if outer.Unwrap() == nil {
		t.Error("expected Unwrap to expose the underlying writer")
	}
}

func TestRouteLabelOutsideMux(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	if got := routeLabel(req); got != unmatchedRoute {
		t.Errorf("expected %q, got %q", unmatchedRoute, got)
	}
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code      cerrors.ErrorCode
		want      int
		retryable bool
	}{
		{cerrors.ErrCodeInvalidRequest, http.StatusBadRequest, false},
		{cerrors.ErrCodeNotInstalled, http.StatusServiceUnavailable, true},
		{cerrors.ErrCodeServiceManager, http.StatusServiceUnavailable, true},
		{cerrors.ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{cerrors.ErrCodeTemplate, http.StatusInternalServerError, false},
		{cerrors.ErrCodeInternal, http.StatusInternalServerError, false},
		{cerrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Errorf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
			if got := RetryableFromCode(tt.code); got != tt.retryable {
				t.Errorf("RetryableFromCode(%q) = %v, want %v", tt.code, got, tt.retryable)
			}
		})
	}
}
