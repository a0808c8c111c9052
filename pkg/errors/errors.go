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

package errors

import (
	stderrors "errors"
	"log/slog"
	"sort"
	"strings"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotInstalled indicates a runtime operation was requested while the
	// exporter config or service unit file is missing.
	ErrCodeNotInstalled ErrorCode = "NOT_INSTALLED"
	// ErrCodeTemplate indicates a missing or invalid template. It is not retried.
	ErrCodeTemplate ErrorCode = "TEMPLATE"
	// ErrCodeFilesystem indicates a file could not be written or removed.
	ErrCodeFilesystem ErrorCode = "FILESYSTEM"
	// ErrCodeServiceManager indicates the host service manager rejected or failed a request.
	ErrCodeServiceManager ErrorCode = "SERVICE_MANAGER"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
	// ErrCodeUnavailable indicates a service or resource is temporarily unavailable.
	ErrCodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// StructuredError carries a code callers can branch on, a message for
// operators and, optionally, the failing cause and a set of key/value fields
// identifying what was being acted on.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface. Context fields are not part of the
// text; they are emitted through LogValue.
func (e *StructuredError) Error() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Code))
	b.WriteString("] ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// With returns e with key set in its context fields.
func (e *StructuredError) With(key string, value any) *StructuredError {
	if e.Context == nil {
		e.Context = make(map[string]any, 1)
	}
	e.Context[key] = value
	return e
}

// LogValue renders the error as a slog group so that code and context
// fields land as separate attributes instead of one flattened string.
func (e *StructuredError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Context)+3)
	attrs = append(attrs,
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	)
	if e.Cause != nil {
		attrs = append(attrs, slog.String("cause", e.Cause.Error()))
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, e.Context[k]))
	}
	return slog.GroupValue(attrs...)
}

func build(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause, Context: context}
}

// New returns an error with no cause.
func New(code ErrorCode, message string) *StructuredError {
	return build(code, message, nil, nil)
}

// NewWithContext returns an error with no cause carrying context fields.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return build(code, message, nil, context)
}

// Wrap classifies cause under code. A nil cause yields the same as New.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return build(code, message, cause, nil)
}

// WrapWithContext is Wrap with context fields.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return build(code, message, cause, context)
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or an empty code when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// HasCode reports whether err's chain contains a StructuredError with the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var se *StructuredError
		if !stderrors.As(err, &se) {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Cause
	}
	return false
}
