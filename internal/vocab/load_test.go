package vocab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordpath/internal/errs"
)

func TestLoadFile_YAML(t *testing.T) {
	b, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", b.Version)
	require.Len(t, b.Sets, 3)
	assert.Len(t, b.Symbols, 8)

	c, err := b.Catalog()
	require.NoError(t, err)

	first, err := c.Get("core-first-words")
	require.NoError(t, err)
	assert.Equal(t, LevelBeginner, first.Level)
	assert.Equal(t, AgeRange{Min: 2, Max: 6}, first.AgeRange)
	assert.Equal(t, []string{"want", "more", "stop", "help", "eat", "drink", "play", "go"}, first.Symbols)

	list := c.List()
	assert.Equal(t, "core-first-words", list[0].ID)
	assert.Equal(t, "core-advanced", list[2].ID)

	sym, err := b.SymbolIndex().Resolve(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, "symbols/go.png", sym.Metadata["image"])
}

func TestLoadFile_JSON(t *testing.T) {
	b, err := LoadFile("testdata/catalog.json")
	require.NoError(t, err)
	require.Len(t, b.Sets, 1)
	assert.Equal(t, "animals", b.Sets[0].ID)
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	_, err := LoadFile("testdata/catalog.toml")
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing version", "sets: []\n"},
		{"unknown level", "version: v1.0.0\nsets:\n  - {id: a, name: A, level: expert, symbols: []}\n"},
		{"unknown field", "version: v1.0.0\nsets: []\ncolour: red\n"},
		{"not semver", "version: latest\nsets: []\n"},
		{"unsupported major", "version: v2.0.0\nsets: []\n"},
		{"symbol without name", "version: v1.0.0\nsets: []\nsymbols:\n  - {id: a}\n"},
		{"malformed yaml", "version: [v1\n"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err), "got %v", err)
		})
	}
}

func TestLoad_MinimalJSON(t *testing.T) {
	b, err := Load([]byte(`{"version":"v1.0.0","sets":[]}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, b.Sets)
	assert.Empty(t, b.Symbols)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("sets.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("/tmp/sets.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
}
