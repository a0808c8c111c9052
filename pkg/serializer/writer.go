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
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats lists the accepted format names.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// ParseFormat converts s to a Format. Unknown names are an error.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unsupported format %q, must be one of %s", s, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// Writer serializes values to an io.Writer in a fixed format.
type Writer struct {
	format Format
	output io.Writer
}

// NewWriter creates a Writer. A nil output means stdout and an unknown
// format falls back to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		format = FormatJSON
	}
	return &Writer{format: format, output: output}
}

// Format returns the writer's format.
func (w *Writer) Format() Format {
	return w.format
}

// Serialize writes v in the writer's format.
func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return w.serializeTable(v)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeTable(v any) error {
	flat := make(map[string]any)
	flatten(flat, reflect.ValueOf(v), "")
	if len(flat) == 0 {
		_, err := fmt.Fprintln(w.output, "<empty>")
		return err
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", k, flat[k])
	}
	return tw.Flush()
}

// flatten walks v and records leaf values under dotted keys. Struct fields
// use their json tag name when present; fields tagged "-" are skipped.
// Structs implementing fmt.Stringer, such as time.Time, are leaves.
func flatten(out map[string]any, v reflect.Value, prefix string) {
	if !v.IsValid() {
		return
	}
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		v = v.Elem()
	}

	//nolint:exhaustive // leaves handled by default
	switch v.Kind() {
	case reflect.Struct:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			out[keyOr(prefix)] = s.String()
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := field.Name
			if tag, ok := field.Tag.Lookup("json"); ok {
				tag, _, _ = strings.Cut(tag, ",")
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			flatten(out, v.Field(i), join(prefix, name))
		}
	case reflect.Map:
		for _, k := range v.MapKeys() {
			flatten(out, v.MapIndex(k), join(prefix, fmt.Sprint(k.Interface())))
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			out[keyOr(prefix)] = "[]"
			return
		}
		for i := 0; i < v.Len(); i++ {
			flatten(out, v.Index(i), join(prefix, fmt.Sprintf("[%d]", i)))
		}
	default:
		out[keyOr(prefix)] = v.Interface()
	}
}

func keyOr(prefix string) string {
	if prefix == "" {
		return "value"
	}
	return prefix
}

func join(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + "." + suffix
}
