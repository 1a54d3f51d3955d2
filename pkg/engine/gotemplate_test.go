package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoTemplate_Render(t *testing.T) {
	got, err := GoTemplate{}.Render("SELECT {{.fields}} FROM {{.table}}", map[string]string{
		"fields": "id, name",
		"table":  "users",
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM users", got)
}

func TestGoTemplate_MissingKeyFails(t *testing.T) {
	_, err := GoTemplate{}.Render("{{.missing}}", map[string]string{})
	require.Error(t, err)
}

func TestGoTemplate_ParseError(t *testing.T) {
	_, err := GoTemplate{}.Render("{{.unclosed", nil)
	require.Error(t, err)
}
