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

	"github.com/google/uuid"

	cerrors "github.com/canonical/hardware-observer/pkg/errors"
	"github.com/canonical/hardware-observer/pkg/serializer"
)

// Error codes specific to the HTTP layer.
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound          = "NOT_FOUND"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code cerrors.ErrorCode) int {
	switch code {
	case cerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case cerrors.ErrCodeNotInstalled, cerrors.ErrCodeUnavailable, cerrors.ErrCodeServiceManager:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RetryableFromCode reports whether a client may retry a request that
// failed with code.
func RetryableFromCode(code cerrors.ErrorCode) bool {
	switch code {
	case cerrors.ErrCodeNotInstalled, cerrors.ErrCodeUnavailable, cerrors.ErrCodeServiceManager:
		return true
	default:
		return false
	}
}

// WriteError writes an ErrorResponse carrying the request ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestIDFrom(r.Context()),
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err to a status and writes it.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string) {
	code := cerrors.CodeOf(err)
	if code == "" {
		code = cerrors.ErrCodeInternal
	}
	WriteError(w, r, HTTPStatusFromCode(code), string(code), message,
		RetryableFromCode(code), map[string]any{"error": err.Error()})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}
