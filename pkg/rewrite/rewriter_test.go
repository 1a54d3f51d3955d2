package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-composer/pkg/compose"
	"github.com/goliatone/go-composer/pkg/parser"
	"github.com/goliatone/go-composer/pkg/registry"
)

func newTestRewriter(t *testing.T, options ...Option) *Rewriter {
	t.Helper()
	reg, err := registry.Parse([]byte(`
user_query:
  pattern: "SELECT {fields} FROM {table}"
admin_query:
  pattern: "SELECT * FROM admins"
`))
	require.NoError(t, err)
	return New(compose.New(compose.WithRegistry(reg)), options...)
}

func TestRewriteSource_SplicesLiteral(t *testing.T) {
	rw := newTestRewriter(t)

	got, err := rw.RewriteSource(
		`query = template("user_query", fields = "id, name", table = "users");`)
	require.NoError(t, err)
	assert.Equal(t, `query = "SELECT id, name FROM users";`, got)
}

func TestRewriteSource_BangForm(t *testing.T) {
	rw := newTestRewriter(t)

	got, err := rw.RewriteSource(`template!("admin_query")`)
	require.NoError(t, err)
	assert.Equal(t, `"SELECT * FROM admins"`, got)
}

func TestRewriteSource_Concat(t *testing.T) {
	rw := newTestRewriter(t)

	got, err := rw.RewriteSource(`concat(
    template("user_query", fields = "id", table = "users"),
    " UNION ALL ",
    template("admin_query"),
)`)
	require.NoError(t, err)
	assert.Equal(t, `"SELECT id FROM users UNION ALL SELECT * FROM admins"`, got)
}

func TestRewriteSource_RecursesIntoGroups(t *testing.T) {
	rw := newTestRewriter(t)

	got, err := rw.RewriteSource(`run({ q: [template("admin_query")] })`)
	require.NoError(t, err)
	assert.Equal(t, `run({ q: ["SELECT * FROM admins"] })`, got)
}

func TestRewriteSource_UnrecognizedPassthrough(t *testing.T) {
	rw := newTestRewriter(t)

	// No recognized constructs: the fragment must come back byte-for-byte.
	src := `let x = other("user_query") + template + template!;`
	got, err := rw.RewriteSource(src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestRewriteSource_PreservesSurroundingText(t *testing.T) {
	rw := newTestRewriter(t)

	got, err := rw.RewriteSource(`before   template("admin_query")   after`)
	require.NoError(t, err)
	assert.Equal(t, `before   "SELECT * FROM admins"   after`, got)
}

func TestRewriteSource_MultipleSites(t *testing.T) {
	rw := newTestRewriter(t)

	got, err := rw.RewriteSource(
		`a = template("admin_query"); b = template("{n}", n = "2");`)
	require.NoError(t, err)
	assert.Equal(t, `a = "SELECT * FROM admins"; b = "2";`, got)
}

func TestRewriteSource_CustomConstructNames(t *testing.T) {
	rw := newTestRewriter(t, WithConstructNames("tpl", "join"))

	got, err := rw.RewriteSource(`join(tpl("admin_query"), "!")`)
	require.NoError(t, err)
	assert.Equal(t, `"SELECT * FROM admins!"`, got)

	// The default names are no longer recognized.
	src := `template("admin_query")`
	got, err = rw.RewriteSource(src)
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestRewriteSource_ResolutionErrorSurfaces(t *testing.T) {
	rw := newTestRewriter(t)

	_, err := rw.RewriteSource(`template("{v}", v = unbound)`)
	require.Error(t, err)

	var se *compose.ScopeError
	assert.ErrorAs(t, err, &se)
}

func TestRewriteSource_MalformedArgumentsSurface(t *testing.T) {
	rw := newTestRewriter(t)

	_, err := rw.RewriteSource(`template(42)`)
	require.Error(t, err)

	var pe *parser.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, parser.CodeInvalidSource, pe.Code)
}

func TestRewrite_NodesInPlace(t *testing.T) {
	rw := newTestRewriter(t)

	nodes, err := parser.Lex(`x + template("admin_query")`)
	require.NoError(t, err)

	out, err := rw.Rewrite(nodes)
	require.NoError(t, err)

	var lits []string
	for _, n := range out {
		if n.Kind == parser.KindLiteral {
			lits = append(lits, n.Value)
		}
	}
	assert.Equal(t, []string{"SELECT * FROM admins"}, lits)
}
