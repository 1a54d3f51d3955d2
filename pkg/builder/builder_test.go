package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-composer/pkg/registry"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuild_Amalgamates(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()

	writeSource(t, src, "queries.composer.yaml", `
user_query:
  pattern: "SELECT {fields} FROM {table}"
`)
	writeSource(t, src, "nested/admin.composer.yaml", `
admin_query:
  pattern: "SELECT * FROM admins"
  engine: pongo2
`)

	b := New(
		WithPatterns(filepath.Join(src, "**", "*.composer.yaml")),
		WithOutputDir(out),
	)
	path, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, DefaultArtifactName), path)

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin_query", "user_query"}, reg.Names())

	tpl, ok := reg.Lookup("admin_query")
	require.True(t, ok)
	assert.Equal(t, "pongo2", tpl.Engine)
}

func TestBuild_DuplicateAcrossFiles(t *testing.T) {
	src := t.TempDir()

	writeSource(t, src, "a.composer.yaml", "dup:\n  pattern: first\n")
	writeSource(t, src, "b.composer.yaml", "dup:\n  pattern: second\n")

	b := New(
		WithPatterns(filepath.Join(src, "*.composer.yaml")),
		WithOutputDir(t.TempDir()),
	)
	_, err := b.Build(context.Background())
	require.Error(t, err)

	var dup *DuplicateTemplateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "dup", dup.Name)
}

func TestBuild_DefaultEngineStamped(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "q.composer.yaml", `
plain_one:
  pattern: "{x}"
declared:
  pattern: "{{ x }}"
  engine: pongo2
`)

	b := New(
		WithPatterns(filepath.Join(src, "*.composer.yaml")),
		WithOutputDir(t.TempDir()),
		WithDefaultEngine("go-template"),
	)
	path, err := b.Build(context.Background())
	require.NoError(t, err)

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)

	stamped, _ := reg.Lookup("plain_one")
	assert.Equal(t, "go-template", stamped.Engine)
	declared, _ := reg.Lookup("declared")
	assert.Equal(t, "pongo2", declared.Engine)
}

func TestBuild_MissingPattern(t *testing.T) {
	src := t.TempDir()
	path := writeSource(t, src, "bad.composer.yaml", "broken:\n  engine: pongo2\n")

	b := New(
		WithPatterns(filepath.Join(src, "*.composer.yaml")),
		WithOutputDir(t.TempDir()),
	)
	_, err := b.Build(context.Background())
	require.Error(t, err)

	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, path, se.Path)
}

func TestBuild_EmptyDiscoveryWritesEmptyArtifact(t *testing.T) {
	out := t.TempDir()

	b := New(
		WithPatterns(filepath.Join(t.TempDir(), "*.composer.yaml")),
		WithOutputDir(out),
	)
	path, err := b.Build(context.Background())
	require.NoError(t, err)

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestBuild_OverwriteDropsStaleEntries(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, out, DefaultArtifactName, "stale:\n  pattern: old\n")
	writeSource(t, src, "q.composer.yaml", "fresh:\n  pattern: new\n")

	b := New(
		WithPatterns(filepath.Join(src, "*.composer.yaml")),
		WithOutputDir(out),
	)
	path, err := b.Build(context.Background())
	require.NoError(t, err)

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, reg.Names())
}

func TestBuild_AppendKeepsAndReplaces(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, out, DefaultArtifactName, `
kept:
  pattern: old
replaced:
  pattern: old
`)
	writeSource(t, src, "q.composer.yaml", "replaced:\n  pattern: new\n")

	b := New(
		WithPatterns(filepath.Join(src, "*.composer.yaml")),
		WithOutputDir(out),
		WithMergeMode(Append),
	)
	path, err := b.Build(context.Background())
	require.NoError(t, err)

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept", "replaced"}, reg.Names())

	replaced, _ := reg.Lookup("replaced")
	assert.Equal(t, "new", replaced.Pattern)
}

func TestBuild_CancelledContext(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "q.composer.yaml", "x:\n  pattern: y\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(
		WithPatterns(filepath.Join(src, "*.composer.yaml")),
		WithOutputDir(t.TempDir()),
	)
	_, err := b.Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DedupesAndSorts(t *testing.T) {
	src := t.TempDir()
	a := writeSource(t, src, "a.composer.yaml", "x:\n  pattern: y\n")
	b := writeSource(t, src, "b.composer.yaml", "z:\n  pattern: w\n")

	// Overlapping patterns must not produce duplicate entries.
	files, err := Discover([]string{
		filepath.Join(src, "*.composer.yaml"),
		filepath.Join(src, "a.*"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}
