package registry

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry is the read-only mapping from template name to Template. It is
// built once from a serialized artifact, shared across every resolution in
// the process, and never mutated afterwards, so concurrent readers need no
// locking. The caller owns construction and threads the handle through the
// resolver and rewriter explicitly.
type Registry struct {
	templates map[string]Template
}

// Empty returns a registry with no templates. Resolution against it treats
// every invocation source as an inline pattern.
func Empty() *Registry {
	return &Registry{templates: map[string]Template{}}
}

// New builds a registry from an already-decoded template mapping.
func New(templates map[string]Template) *Registry {
	out := make(map[string]Template, len(templates))
	for name, tpl := range templates {
		out[name] = tpl
	}
	return &Registry{templates: out}
}

// Parse decodes a serialized registry artifact: a YAML mapping from template
// name to record. Empty input yields an empty registry.
func Parse(data []byte) (*Registry, error) {
	if len(data) == 0 {
		return Empty(), nil
	}

	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Source: "artifact", Err: err}
	}

	templates := make(map[string]Template, len(raw))
	for name, record := range raw {
		tpl, err := decodeTemplate(name, record)
		if err != nil {
			return nil, err
		}
		templates[name] = tpl
	}
	return &Registry{templates: templates}, nil
}

// Lookup returns the named template and whether it exists.
func (r *Registry) Lookup(name string) (Template, bool) {
	tpl, ok := r.templates[name]
	return tpl, ok
}

// Len reports the number of templates.
func (r *Registry) Len() int {
	return len(r.templates)
}

// Names returns the template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
