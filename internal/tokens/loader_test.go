package tokens_test

import (
	"path/filepath"
	"testing"

	"bennypowers.dev/cssvars/internal/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtures = filepath.Join("..", "..", "test", "fixtures", "tokens")

func TestLoad(t *testing.T) {
	vars, err := tokens.Load(fixtures, []tokens.TokenFile{{Path: "tokens.json"}})
	require.NoError(t, err)

	assert.Equal(t, "#0000ff", vars["--color-primary"])
	assert.Equal(t, "#0000ff", vars["--color-accent"], "aliases are resolved")
	assert.Equal(t, "4px", vars["--space-small"])
	assert.Equal(t, "16px", vars["--space-large"])
}

func TestLoadPrefix(t *testing.T) {
	vars, err := tokens.Load(fixtures, []tokens.TokenFile{{Path: "tokens.json", Prefix: "ds"}})
	require.NoError(t, err)

	assert.Equal(t, "#0000ff", vars["--ds-color-primary"])
	assert.NotContains(t, vars, "--color-primary")
}

func TestLoadLaterFileWins(t *testing.T) {
	vars, err := tokens.Load(fixtures, []tokens.TokenFile{
		{Path: "tokens.json"},
		{Path: "brand.tokens.yaml"},
	})
	require.NoError(t, err)

	assert.Equal(t, "6px", vars["--space-small"])
	assert.Equal(t, "2px", vars["--radius-small"])
	assert.Equal(t, "16px", vars["--space-large"])
}

func TestLoadGlob(t *testing.T) {
	vars, err := tokens.Load(fixtures, []tokens.TokenFile{{Path: "*.tokens.yaml"}})
	require.NoError(t, err)
	assert.Equal(t, "2px", vars["--radius-small"])
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		spec tokens.TokenFile
	}{
		{name: "empty path", spec: tokens.TokenFile{}},
		{name: "missing file", spec: tokens.TokenFile{Path: "missing.json"}},
		{name: "unsupported type", spec: tokens.TokenFile{Path: "tokens.toml"}},
		{name: "invalid JSON", spec: tokens.TokenFile{Path: "errors/broken.json"}},
		{name: "glob without matches", spec: tokens.TokenFile{Path: "**/*.tokens.json5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Load(fixtures, []tokens.TokenFile{tt.spec})
			assert.Error(t, err)
		})
	}
}

func TestLoadNothing(t *testing.T) {
	vars, err := tokens.Load(fixtures, nil)
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestVariablesMerge(t *testing.T) {
	vars := tokens.Variables{"--a": "1px", "--b": "2px"}
	vars.Merge(tokens.Variables{"--b": "3px", "--c": "4px"})

	assert.Equal(t, tokens.Variables{"--a": "1px", "--b": "3px", "--c": "4px"}, vars)
}
