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

package serializer

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// encodeFailureBody is sent when a response value cannot be encoded.
const encodeFailureBody = `{"code":"INTERNAL","message":"response encoding failed"}` + "\n"

// RespondJSON writes data as a compact JSON body with statusCode. Status
// replies describe live host state and are marked as not cacheable. When
// data cannot be encoded nothing of it is sent and the reply is a 500 with a
// fixed JSON body.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("response encoding failed", "status", statusCode, "error", err)
		body = []byte(encodeFailureBody)
		statusCode = http.StatusInternalServerError
	} else {
		body = append(body, '\n')
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Cache-Control", "no-store")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}
