package exporter

import (
	"context"
)

// Status is a point-in-time view of the exporter derived from the
// filesystem and the service manager.
type Status struct {
	Name        string   `json:"name" yaml:"name"`
	Installed   bool     `json:"installed" yaml:"installed"`
	Active      bool     `json:"active" yaml:"active"`
	Healthy     bool     `json:"healthy" yaml:"healthy"`
	ConfigPath  string   `json:"configPath" yaml:"configPath"`
	ServicePath string   `json:"servicePath" yaml:"servicePath"`
	Collectors  []string `json:"collectors" yaml:"collectors"`
	Tools       []string `json:"tools" yaml:"tools"`
	Resources   []string `json:"resources" yaml:"resources"`
}

// Status queries the current exporter state. When the exporter is not
// installed the service manager is not consulted.
func (e *Exporter) Status(ctx context.Context) (*Status, error) {
	st := &Status{
		Name:        e.cfg.Name,
		ConfigPath:  e.cfg.ConfigPath,
		ServicePath: e.cfg.ServicePath,
		Collectors:  e.whitelist.Collectors(),
		Tools:       e.whitelist.Strings(),
		Resources:   append([]string{}, e.whitelist.Resources()...),
	}
	if !e.Installed() {
		return st, nil
	}
	st.Installed = true

	active, err := e.svc.IsRunning(ctx, e.cfg.Name)
	if err != nil {
		return nil, err
	}
	failed, err := e.svc.HasFailed(ctx, e.cfg.Name)
	if err != nil {
		return nil, err
	}
	st.Active = active
	st.Healthy = !failed
	return st, nil
}
