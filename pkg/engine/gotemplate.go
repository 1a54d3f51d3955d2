package engine

import (
	"fmt"
	"strings"
	"text/template"
)

// GoTemplate renders patterns with the standard text/template language.
// text/template performs no output escaping, which matches the engine
// contract for code fragments. Missing keys are a hard error rather than the
// default "<no value>" placeholder, so a pattern can never silently emit an
// incomplete result.
type GoTemplate struct{}

// Name implements Engine.
func (GoTemplate) Name() string { return "go-template" }

// Render implements Engine.
func (GoTemplate) Render(pattern string, params map[string]string) (string, error) {
	tmpl, err := template.New("pattern").Option("missingkey=error").Parse(pattern)
	if err != nil {
		return "", fmt.Errorf("parse pattern: %w", err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, params); err != nil {
		return "", fmt.Errorf("execute pattern: %w", err)
	}
	return sb.String(), nil
}
