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
	"bytes"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	apperrors "github.com/canonical/hardware-observer/pkg/errors"
)

// Renderer renders named templates with sprig helpers available.
type Renderer struct {
	// templateGetter is a function that retrieves template content by name.
	templateGetter TemplateFunc
}

// New creates a renderer over the embedded templates.
func New() *Renderer {
	return NewTemplateRenderer(EmbeddedTemplates())
}

// NewFromDir creates a renderer that loads templates from dir.
func NewFromDir(dir string) *Renderer {
	return NewTemplateRenderer(DirTemplates(dir))
}

// NewTemplateRenderer creates a new template renderer with the given template getter.
func NewTemplateRenderer(getter TemplateFunc) *Renderer {
	return &Renderer{
		templateGetter: getter,
	}
}

// Render renders a template with the given data. Missing map keys are errors
// so a template never renders partially.
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	tmplContent, ok := r.templateGetter(name)
	if !ok {
		return "", apperrors.NewWithContext(apperrors.ErrCodeTemplate,
			"template not found", map[string]any{"template": name})
	}

	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(tmplContent)
	if err != nil {
		return "", apperrors.WrapWithContext(apperrors.ErrCodeTemplate,
			"failed to parse template", err, map[string]any{"template": name})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", apperrors.WrapWithContext(apperrors.ErrCodeTemplate,
			"failed to execute template", err, map[string]any{"template": name})
	}

	slog.Debug("template rendered", "template", name, "size_bytes", buf.Len())

	return buf.String(), nil
}
