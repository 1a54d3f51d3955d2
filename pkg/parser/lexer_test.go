package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_TokenKinds(t *testing.T) {
	nodes, err := Lex(`name = template("greeting", count = 42, ratio = 3.14, on = true)`)
	require.NoError(t, err)

	c := newCursor(nodes)

	name, _ := c.next()
	assert.Equal(t, KindIdent, name.Kind)
	assert.Equal(t, "name", name.Ident)

	eq, _ := c.next()
	assert.True(t, eq.IsPunct("="))

	construct, _ := c.next()
	assert.True(t, construct.IsIdent("template"))

	group, ok := c.next()
	require.True(t, ok)
	require.Equal(t, KindGroup, group.Kind)
	assert.Equal(t, DelimParen, group.Delim)

	inner := newCursor(group.Children)
	source, _ := inner.next()
	require.Equal(t, KindLiteral, source.Kind)
	assert.Equal(t, LitString, source.Lit)
	assert.Equal(t, "greeting", source.Value)
	assert.Equal(t, `"greeting"`, source.Text)
}

func TestLex_LiteralValues(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  LitKind
		value string
	}{
		{name: "integer", src: "42", kind: LitInt, value: "42"},
		{name: "integer with separators", src: "1_000", kind: LitInt, value: "1000"},
		{name: "float", src: "3.14", kind: LitFloat, value: "3.14"},
		{name: "bool true", src: "true", kind: LitBool, value: "true"},
		{name: "bool false", src: "false", kind: LitBool, value: "false"},
		{name: "string escapes", src: `"a\n\"b\""`, kind: LitString, value: "a\n\"b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Lex(tt.src)
			require.NoError(t, err)
			require.Len(t, nodes, 1)
			assert.Equal(t, KindLiteral, nodes[0].Kind)
			assert.Equal(t, tt.kind, nodes[0].Lit)
			assert.Equal(t, tt.value, nodes[0].Value)
		})
	}
}

func TestLex_NestedGroups(t *testing.T) {
	nodes, err := Lex(`outer([inner{1}])`)
	require.NoError(t, err)

	c := newCursor(nodes)
	c.next() // outer
	paren, _ := c.next()
	require.Equal(t, KindGroup, paren.Kind)

	bracket := newCursor(paren.Children)
	b, ok := bracket.next()
	require.True(t, ok)
	require.Equal(t, KindGroup, b.Kind)
	assert.Equal(t, DelimBracket, b.Delim)
}

func TestLex_Positions(t *testing.T) {
	nodes, err := Lex("a\n  b")
	require.NoError(t, err)

	c := newCursor(nodes)
	a, _ := c.next()
	assert.Equal(t, 1, a.Pos.Line)
	assert.Equal(t, 1, a.Pos.Column)

	b, _ := c.next()
	assert.Equal(t, 2, b.Pos.Line)
	assert.Equal(t, 3, b.Pos.Column)
	assert.Equal(t, "\n  ", b.Leading)
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code ErrorCode
	}{
		{name: "unterminated group", src: "(a, b", code: CodeUnterminatedGroup},
		{name: "stray close", src: "a)", code: CodeUnbalancedGroup},
		{name: "unterminated string", src: `"abc`, code: CodeUnterminatedString},
		{name: "newline in string", src: "\"ab\nc\"", code: CodeUnterminatedString},
		{name: "invalid escape", src: `"\q"`, code: CodeInvalidEscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lex(tt.src)
			require.Error(t, err)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.code, pe.Code)
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	sources := []string{
		`query.exec(template("q", a = 1), "literal")`,
		"fn(a, b)\n  .chain { x } [idx]",
		`  leading and trailing  `,
		`weird! tokens @#% (nested (deep)) "str"`,
	}

	for _, src := range sources {
		nodes, err := Lex(src)
		require.NoError(t, err)
		assert.Equal(t, src, Render(nodes), "round trip of %q", src)
	}
}
