package registry

import (
	"errors"
	"fmt"
)

var errMissingPattern = errors.New("pattern is required")

// LoadError reports an I/O or artifact-parse failure while loading the
// registry. It always identifies the artifact source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("registry: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// InvalidTemplateError reports a registry record that could not be decoded
// into a Template.
type InvalidTemplateError struct {
	Name string
	Err  error
}

func (e *InvalidTemplateError) Error() string {
	return fmt.Sprintf("registry: template %q: %v", e.Name, e.Err)
}

func (e *InvalidTemplateError) Unwrap() error { return e.Err }
