// Package render produces the exporter config file and systemd unit from
// text/template sources.
//
// Templates are looked up by name through a TemplateFunc: the embedded set
// compiled into the binary, a directory on disk, or an in-memory map in tests.
// Sprig functions (quote, default, indent, ...) are available to every
// template and unknown keys fail rendering instead of producing "<no value>".
//
//	r := render.New()
//	content, err := r.RenderConfig(defaults.ExporterConfigTemplate,
//	    hwtool.Whitelist{hwtool.StorCLI},
//	    render.ConfigValues{Port: 10000, Level: "INFO", CollectTimeout: 10})
//
// Every failure is a StructuredError with code TEMPLATE and is never retried.
package render
