package parser

// Invocation is a single request to resolve a named or inline pattern against
// key/value parameters. Source is always the raw string literal from the
// first positional argument; whether it names a registry template or is an
// inline pattern is decided at resolution time.
type Invocation struct {
	Source string
	Pos    Position
	Params []Param
}

// Param is one key = value argument of an invocation. Params preserve source
// order; when the same key appears twice the later occurrence overwrites the
// earlier one during resolution (insertion-order map semantics, kept from the
// original design rather than rejected).
type Param struct {
	Key   string
	Pos   Position
	Value ParamValue
}

// ParamKind tags the ParamValue union.
type ParamKind int

const (
	// ParamLiteral is a string, integer, float, or boolean literal already in
	// canonical string form.
	ParamLiteral ParamKind = iota
	// ParamVariable references a let binding, resolved later against scope.
	ParamVariable
	// ParamNested is a nested invocation resolved recursively.
	ParamNested
)

// ParamValue is the tagged union of parameter value shapes.
type ParamValue struct {
	Kind     ParamKind
	Pos      Position
	Literal  string
	Variable string
	Nested   *Invocation
}

// StatementKind distinguishes private let bindings from exported consts.
type StatementKind int

const (
	StmtLet StatementKind = iota
	StmtConst
)

func (k StatementKind) String() string {
	if k == StmtConst {
		return "const"
	}
	return "let"
}

// Statement is one binding inside a composition block.
type Statement struct {
	Kind  StatementKind
	Attrs []string
	Name  string
	Pos   Position
	Call  Invocation
}

// Block is an ordered sequence of let/const statements. Order matters: only
// earlier let bindings are visible to later statements.
type Block struct {
	Statements []Statement
}
