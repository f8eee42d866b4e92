package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/gravel/internal/config"
	"github.com/marshallshelly/gravel/internal/models"
	"github.com/marshallshelly/gravel/pkg/registry"
	"github.com/marshallshelly/gravel/pkg/runtime"
	"github.com/marshallshelly/gravel/pkg/schema"
)

var (
	// Global flags
	configFile string
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gravel",
	Short: "Gravel - a minimal ORM for MySQL, PostgreSQL and SQLite",
	Long: `Gravel maps declared models to tables and persists their instances through
a bounded connection pool.

This command works with the bundled User, Blog and Comment models:
  - Print the generated SQL for each model
  - Create or reset their tables
  - Find, list and save rows

Connection settings come from gravel.yaml, GRAVEL_* environment variables
and the flags below, in increasing order of precedence.`,
	Version:       "0.3.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	if err := models.RegisterAll(nil); err != nil {
		panic(err)
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Config file (default gravel.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log every statement")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	flags.String("driver", runtime.DefaultDriver, "Database driver (mysql, postgres, sqlite)")
	flags.String("host", "", "Database host")
	flags.Int("port", 0, "Database port")
	flags.String("user", "", "Database user")
	flags.String("password", "", "Database password")
	flags.String("db", "", "Database name, or file path for sqlite")
	flags.Int32("maxsize", runtime.DefaultMaxSize, "Maximum pool size")
	flags.Int32("minsize", runtime.DefaultMinSize, "Connections opened at startup")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// connect loads the configuration and opens the pool.
func connect(cmd *cobra.Command) (*runtime.DB, error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	logger.Debug("loaded config", "config", cfg.Redacted())

	db, err := runtime.Connect(cmd.Context(), cfg, runtime.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// withDB runs fn with an open pool and closes it afterwards.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *runtime.DB) error) error {
	db, err := connect(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return fn(cmd.Context(), db)
}

// resolveSchemas maps model or table names to registered schemas; no names means all.
func resolveSchemas(names []string) ([]*schema.Schema, error) {
	if len(names) == 0 {
		return registry.All(), nil
	}

	out := make([]*schema.Schema, 0, len(names))
	for _, name := range names {
		s, err := registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
