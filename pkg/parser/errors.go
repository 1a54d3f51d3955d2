package parser

import "fmt"

// ErrorCode classifies grammar and lexing failures so callers can react to
// the offending construct without string matching.
type ErrorCode string

const (
	// CodeUnexpectedToken covers generic grammar violations.
	CodeUnexpectedToken ErrorCode = "unexpected_token"
	// CodeUnterminatedString reports a string literal without a closing quote.
	CodeUnterminatedString ErrorCode = "unterminated_string"
	// CodeInvalidEscape reports an unsupported escape sequence in a string.
	CodeInvalidEscape ErrorCode = "invalid_escape"
	// CodeUnterminatedGroup reports a bracket without a matching close.
	CodeUnterminatedGroup ErrorCode = "unterminated_group"
	// CodeUnbalancedGroup reports a closing bracket with no open group.
	CodeUnbalancedGroup ErrorCode = "unbalanced_group"
	// CodeInvalidSource reports an invocation whose first argument is not a
	// string literal.
	CodeInvalidSource ErrorCode = "invalid_source"
	// CodeInvalidParameterSyntax reports an invocation argument that is not a
	// key = value assignment.
	CodeInvalidParameterSyntax ErrorCode = "invalid_parameter_syntax"
	// CodeInvalidParameterValue reports a parameter value that is neither a
	// literal, a variable reference, nor a nested invocation.
	CodeInvalidParameterValue ErrorCode = "invalid_parameter_value"
	// CodeUnsupportedLiteralType reports a literal kind the grammar does not
	// accept as a parameter value.
	CodeUnsupportedLiteralType ErrorCode = "unsupported_literal_type"
	// CodeAttributesOnLet reports attribute tokens ahead of a let statement.
	CodeAttributesOnLet ErrorCode = "attributes_on_let"
)

// ParseError describes a malformed invocation or composition block. It is
// fatal to the invocation site that produced it and never recovered from.
type ParseError struct {
	Code   ErrorCode
	Pos    Position
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s at %s: %s", e.Code, e.Pos, e.Detail)
}

func errAt(code ErrorCode, pos Position, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
