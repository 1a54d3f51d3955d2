package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const artifact = `
user_query:
  pattern: "SELECT {fields} FROM {table} WHERE {condition}"
greeting:
  pattern: "Hello {{ name }}!"
  engine: pongo2
  description: demo template with metadata
  owner: data-team
`

func TestParse(t *testing.T) {
	reg, err := Parse([]byte(artifact))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"greeting", "user_query"}, reg.Names())

	tpl, ok := reg.Lookup("user_query")
	require.True(t, ok)
	assert.Equal(t, "SELECT {fields} FROM {table} WHERE {condition}", tpl.Pattern)
	assert.Empty(t, tpl.Engine)
	assert.Nil(t, tpl.Metadata)

	greeting, ok := reg.Lookup("greeting")
	require.True(t, ok)
	assert.Equal(t, "pongo2", greeting.Engine)

	wantMeta := map[string]any{
		"description": "demo template with metadata",
		"owner":       "data-team",
	}
	if diff := cmp.Diff(wantMeta, greeting.Metadata); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyArtifact(t *testing.T) {
	reg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())

	_, ok := reg.Lookup("anything")
	assert.False(t, ok)
}

func TestParse_MissingPattern(t *testing.T) {
	_, err := Parse([]byte("broken:\n  engine: pongo2\n"))
	require.Error(t, err)

	var invalid *InvalidTemplateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "broken", invalid.Name)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("not: [valid"))
	require.Error(t, err)

	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "composer_registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(artifact), 0o644))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
}

func TestLoadFile_MissingIsEmpty(t *testing.T) {
	reg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}

func TestLoadFS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registry.yaml"), []byte(artifact), 0o644))

	reg, err := LoadFS(os.DirFS(dir), "registry.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	reg, err = LoadFS(os.DirFS(dir), "missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, reg.Len())
}
