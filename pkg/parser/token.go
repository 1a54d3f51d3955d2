package parser

import "strconv"

// Position locates a token within the lexed source fragment. Offsets are byte
// based; Line and Column are 1-based for error reporting.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String renders the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Kind tags a node in the generic syntax tree shared by the grammar parser
// and the eager rewriter.
type Kind int

const (
	// KindIdent is a bare identifier or keyword.
	KindIdent Kind = iota
	// KindLiteral is a string, integer, float, or boolean literal.
	KindLiteral
	// KindGroup is a bracketed sub-sequence of nodes.
	KindGroup
	// KindOther is any punctuation token the tree does not interpret.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "identifier"
	case KindLiteral:
		return "literal"
	case KindGroup:
		return "group"
	case KindOther:
		return "punct"
	default:
		return "unknown"
	}
}

// LitKind narrows KindLiteral nodes to their literal type.
type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitFloat
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitInt:
		return "integer"
	case LitFloat:
		return "float"
	case LitBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Delim identifies the bracket pair wrapping a KindGroup node.
type Delim byte

const (
	DelimParen   Delim = '('
	DelimBracket Delim = '['
	DelimBrace   Delim = '{'
)

// Open returns the opening bracket character.
func (d Delim) Open() byte { return byte(d) }

// Close returns the matching closing bracket character.
func (d Delim) Close() byte {
	switch d {
	case DelimParen:
		return ')'
	case DelimBracket:
		return ']'
	case DelimBrace:
		return '}'
	default:
		return 0
	}
}

// Node is one element of the tagged syntax tree. Exactly one of the
// kind-specific fields is meaningful depending on Kind:
//
//   - KindIdent: Ident holds the identifier text.
//   - KindLiteral: Lit tags the literal type, Text holds the raw source
//     spelling, and Value holds the canonical string form (string contents
//     unquoted, booleans as "true"/"false", numbers as written).
//   - KindGroup: Delim and Children describe the bracketed sub-tree.
//   - KindOther: Text holds the punctuation character(s).
//
// Leading preserves the whitespace that preceded the token in the source so
// fragments survive a lex → rewrite → render round trip byte-for-byte where
// nothing was evaluated.
type Node struct {
	Kind     Kind
	Pos      Position
	Leading  string
	Ident    string
	Lit      LitKind
	Text     string
	Value    string
	Delim    Delim
	Children []Node
}

// IsIdent reports whether the node is an identifier with the given name.
func (n Node) IsIdent(name string) bool {
	return n.Kind == KindIdent && n.Ident == name
}

// IsPunct reports whether the node is a punctuation token with the given text.
func (n Node) IsPunct(text string) bool {
	return n.Kind == KindOther && n.Text == text
}

// StringLit returns the node as a string literal token.
func StringLit(value string, pos Position) Node {
	return Node{
		Kind:  KindLiteral,
		Pos:   pos,
		Lit:   LitString,
		Text:  strconv.Quote(value),
		Value: value,
	}
}
