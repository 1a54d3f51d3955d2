package engine

import (
	"fmt"
	"strings"
)

// UnknownEngineError reports a render request naming an engine that is not
// registered (or was never compiled in).
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("engine: unknown or disabled engine %q", e.Name)
}

// UnsubstitutedVariablesError lists the placeholders still present in a
// rendered pattern after every supplied parameter was substituted. Names that
// were satisfied are never reported, even when the pattern repeats them.
type UnsubstitutedVariablesError struct {
	Names []string
}

func (e *UnsubstitutedVariablesError) Error() string {
	return fmt.Sprintf("engine: pattern contains unsubstituted variables: %s", strings.Join(e.Names, ", "))
}

// RenderError wraps a failure from a named engine so invocation sites can
// report which renderer rejected the pattern.
type RenderError struct {
	Engine string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("engine: %s: %v", e.Engine, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
