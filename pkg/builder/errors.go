package builder

import "fmt"

// DuplicateTemplateError reports two discovered source files defining the
// same template name. Template names must be unique across the whole
// discovery set; the artifact would otherwise silently drop one definition.
type DuplicateTemplateError struct {
	Name string
	Path string
}

func (e *DuplicateTemplateError) Error() string {
	return fmt.Sprintf("builder: duplicate template %q (redefined in %s)", e.Name, e.Path)
}

// SourceError reports a template source file that could not be read or
// decoded.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("builder: source %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }
