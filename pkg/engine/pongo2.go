package engine

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// Pongo2 is the logic-capable engine: Django/Jinja2-style patterns with
// conditionals, loops, and filters. Autoescaping is disabled on the template
// set because rendered output is code or data, never markup.
type Pongo2 struct {
	set *pongo2.TemplateSet
}

// NewPongo2 constructs the engine with its own isolated template set.
func NewPongo2() *Pongo2 {
	set := pongo2.NewSet("composer", pongo2.DefaultLoader)
	pongo2.SetAutoescape(false)
	return &Pongo2{set: set}
}

// Name implements Engine.
func (*Pongo2) Name() string { return "pongo2" }

// Render implements Engine. Parameters are injected as plain string context
// values.
func (p *Pongo2) Render(pattern string, params map[string]string) (string, error) {
	tpl, err := p.set.FromString(pattern)
	if err != nil {
		return "", fmt.Errorf("parse pattern: %w", err)
	}

	ctx := make(pongo2.Context, len(params))
	for key, value := range params {
		ctx[key] = value
	}

	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("execute pattern: %w", err)
	}
	return out, nil
}
