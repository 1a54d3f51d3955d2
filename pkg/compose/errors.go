package compose

import (
	"fmt"

	"github.com/goliatone/go-composer/pkg/parser"
)

// ScopeCode classifies scope validation failures inside a composition block.
type ScopeCode string

const (
	// CodeDuplicateName reports a statement re-using a name already defined
	// earlier in the same block, whether by let or const.
	CodeDuplicateName ScopeCode = "duplicate_name"
	// CodeUndefinedVariable reports a variable reference that does not
	// resolve to an earlier let binding. Forward references and references to
	// const bindings fail with this code too.
	CodeUndefinedVariable ScopeCode = "undefined_variable"
)

// ScopeError describes a duplicate name or an unresolvable variable
// reference. It localizes the fault with the name and its source position.
type ScopeError struct {
	Code ScopeCode
	Name string
	Pos  parser.Position
}

func (e *ScopeError) Error() string {
	switch e.Code {
	case CodeDuplicateName:
		return fmt.Sprintf("compose: duplicate definition of %q at %s", e.Name, e.Pos)
	case CodeUndefinedVariable:
		return fmt.Sprintf("compose: undefined variable %q at %s", e.Name, e.Pos)
	default:
		return fmt.Sprintf("compose: scope error %s for %q at %s", e.Code, e.Name, e.Pos)
	}
}

// DepthError reports invocation nesting beyond the resolver's depth cap. It
// is a fatal guard against runaway recursion, reported instead of a stack
// overflow.
type DepthError struct {
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("compose: invocation nesting exceeds depth limit %d", e.Depth)
}
