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

// Package errors provides structured error types for better observability
// and programmatic error handling across the agent.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeServiceManager,
//	    "failed to start exporter",
//	    cause,
//	    map[string]any{
//	        "unit": "hardware-exporter.service",
//	    },
//	)
//
// Fields can also be attached after construction:
//
//	errors.New(errors.ErrCodeFilesystem, "failed to write file").With("path", p)
//
// Logged through slog, a StructuredError expands into a group holding its
// code, message, cause and context fields.
//
// A StructuredError returned across the exporter lifecycle boundary means
// the owning orchestration should stop and surface an error status.
package errors
