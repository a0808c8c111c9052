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

package render

import (
	"embed"
	"os"
	"path/filepath"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// TemplateFunc retrieves template content by name.
type TemplateFunc func(name string) (string, bool)

// NewTemplateGetter creates a TemplateFunc from a map of template names to content.
func NewTemplateGetter(templates map[string]string) TemplateFunc {
	return func(name string) (string, bool) {
		tmpl, ok := templates[name]
		return tmpl, ok
	}
}

// EmbeddedTemplates returns a TemplateFunc over the templates compiled into the binary.
func EmbeddedTemplates() TemplateFunc {
	return func(name string) (string, bool) {
		b, err := embedded.ReadFile("templates/" + filepath.Base(name))
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}

// DirTemplates returns a TemplateFunc that reads templates from dir. Names are
// resolved relative to dir and cannot escape it.
func DirTemplates(dir string) TemplateFunc {
	return func(name string) (string, bool) {
		b, err := os.ReadFile(filepath.Join(dir, filepath.Base(name)))
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
