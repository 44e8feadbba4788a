// Package config loads wordpath configuration from defaults, a YAML file
// and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/wordpath/internal/assessment"
	"github.com/abhisek/wordpath/internal/errs"
	"github.com/abhisek/wordpath/internal/schedule"
)

// Config holds all wordpath configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the default data
	// directory location.
	DBPath string `yaml:"db_path"`

	// CatalogPath is a YAML or JSON catalog file. Empty means the sample
	// catalog shipped with the CLI.
	CatalogPath string `yaml:"catalog_path"`

	// LogMode is one of dev, debug or prod.
	LogMode string `yaml:"log_mode"`

	Assessment assessment.GeneratorConfig `yaml:"assessment"`
	Scoring    assessment.ScoringConfig   `yaml:"scoring"`
	Schedule   schedule.Intervals         `yaml:"schedule"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogMode:    "dev",
		Assessment: assessment.DefaultGeneratorConfig(),
		Scoring:    assessment.DefaultScoringConfig(),
		Schedule:   schedule.DefaultIntervals(),
	}
}

// LoadFromFile reads a YAML config file on top of the defaults. Keys absent
// from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errs.Invalid("config file", "%s: %v", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from WORDPATH_* environment variables.
func (c *Config) ApplyEnv() {
	if p := os.Getenv("WORDPATH_DB"); p != "" {
		c.DBPath = p
	}
	if p := os.Getenv("WORDPATH_CATALOG"); p != "" {
		c.CatalogPath = p
	}
	if m := os.Getenv("WORDPATH_LOG"); m != "" {
		c.LogMode = m
	}
}

// Validate checks every section and reports the first problem.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "debug", "prod", "production":
	default:
		return errs.Invalid("log_mode", "%q (want dev, debug or prod)", c.LogMode)
	}
	if err := c.Assessment.Validate(); err != nil {
		return err
	}
	if err := c.Scoring.Validate(); err != nil {
		return err
	}
	return c.Schedule.Validate()
}
