package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abhisek/wordpath/examples"
	"github.com/abhisek/wordpath/internal/app"
	"github.com/abhisek/wordpath/internal/config"
	"github.com/abhisek/wordpath/internal/logger"
	"github.com/abhisek/wordpath/internal/report"
	"github.com/abhisek/wordpath/internal/store"
	"github.com/abhisek/wordpath/internal/vocab"
)

// Populated by PersistentPreRunE.
var (
	cfg config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wordpath",
	Short: "Vocabulary mastery tracking and assessment for AAC learners",
	Long: "wordpath tracks symbol mastery across vocabulary sets, builds learning paths,\n" +
		"generates and scores assessments, and tracks educational goals.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(); err != nil {
			return err
		}
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		l, err := logger.New(c.LogMode)
		if err != nil {
			return err
		}
		cfg, log = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides WORDPATH_DB env var)")
	pf.String("catalog", "", "Path to a YAML or JSON catalog file (overrides WORDPATH_CATALOG env var)")
	pf.String("config", "", "Path to a YAML config file")
	pf.String("log", "", "Log mode: dev, debug or prod (overrides WORDPATH_LOG env var)")
	pf.Bool("plain", false, "Disable colored output")

	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(masteryCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv reads .env from the working directory if present.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// loadConfig layers defaults, the --config file, WORDPATH_* env vars and
// flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	c := config.DefaultConfig()
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		var err error
		if c, err = config.LoadFromFile(p); err != nil {
			return c, err
		}
	}
	c.ApplyEnv()

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		c.CatalogPath = p
	}
	if m, _ := cmd.Flags().GetString("log"); m != "" {
		c.LogMode = m
	}
	return c, c.Validate()
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openEngine wires the engine for a command. The caller must Close it.
func openEngine() (*app.Engine, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	bundle, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	return app.Open(cfg, bundle, dbPath, log)
}

// loadCatalog reads the catalog file at path, or the sample catalog when
// path is empty.
func loadCatalog(path string) (*vocab.Bundle, error) {
	if path == "" {
		return examples.Catalog()
	}
	return vocab.LoadFile(path)
}

// renderer returns a report renderer, colored when stdout is a terminal.
func renderer(cmd *cobra.Command) *report.Renderer {
	plain, _ := cmd.Flags().GetBool("plain")
	color := !plain && isatty.IsTerminal(os.Stdout.Fd())
	return report.New(color)
}
