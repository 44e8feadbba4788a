package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordpath/internal/errs"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "wordpath.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "dev", cfg.LogMode)
	assert.Equal(t, 5, cfg.Assessment.RecognitionQuestions)
	assert.Equal(t, 3, cfg.Assessment.SentenceQuestions)
	assert.Equal(t, 80.0, cfg.Scoring.StrengthThreshold)
	assert.Equal(t, 7, cfg.Schedule.Intermediate)
}

func TestLoadFromFile_PartialOverride(t *testing.T) {
	p := writeFile(t, `
catalog_path: /srv/catalog.yaml
scoring:
  strength_threshold: 90
schedule:
  advanced: 30
`)
	cfg, err := LoadFromFile(p)
	require.NoError(t, err)

	assert.Equal(t, "/srv/catalog.yaml", cfg.CatalogPath)
	assert.Equal(t, 90.0, cfg.Scoring.StrengthThreshold)
	assert.Equal(t, 50.0, cfg.Scoring.WeaknessThreshold)
	assert.Equal(t, 30, cfg.Schedule.Advanced)
	assert.Equal(t, 3, cfg.Schedule.Beginner)
	assert.Equal(t, "dev", cfg.LogMode)
}

func TestLoadFromFile_Empty(t *testing.T) {
	cfg, err := LoadFromFile(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFromFile(writeFile(t, "unknown_key: 1\n"))
	assert.True(t, errs.IsValidation(err))

	_, err = LoadFromFile(writeFile(t, "scoring: [1, 2\n"))
	assert.True(t, errs.IsValidation(err))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("WORDPATH_DB", "/tmp/w.db")
	t.Setenv("WORDPATH_CATALOG", "")
	t.Setenv("WORDPATH_LOG", "prod")

	cfg := DefaultConfig()
	cfg.CatalogPath = "from-file.yaml"
	cfg.ApplyEnv()

	assert.Equal(t, "/tmp/w.db", cfg.DBPath)
	assert.Equal(t, "from-file.yaml", cfg.CatalogPath)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log mode", func(c *Config) { c.LogMode = "verbose" }},
		{"question counts", func(c *Config) { c.Assessment.SentenceQuestions = -2 }},
		{"thresholds", func(c *Config) { c.Scoring.WeaknessThreshold = 95 }},
		{"intervals", func(c *Config) { c.Schedule.Beginner = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.True(t, errs.IsValidation(cfg.Validate()))
		})
	}
}
