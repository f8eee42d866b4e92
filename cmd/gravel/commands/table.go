package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/gravel/cmd/gravel/output"
	"github.com/marshallshelly/gravel/pkg/model"
	"github.com/marshallshelly/gravel/pkg/runtime"
)

var (
	// Reset flags
	confirmReset bool
)

// createTableCmd creates model tables
var createTableCmd = &cobra.Command{
	Use:   "create-table [model...]",
	Short: "Create tables for models",
	Long: `Create the table of each model if it does not exist yet.

Examples:
  gravel create-table                         # All models
  gravel create-table user --driver sqlite --db awesome.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *runtime.DB) error {
			return runCreateTable(ctx, db, args)
		})
	},
}

// resetCmd drops and recreates model tables
var resetCmd = &cobra.Command{
	Use:   "reset [model...]",
	Short: "Drop and recreate tables, deleting every row",
	Long: `Drop the table of each model and create it again. Every row is lost.

Examples:
  gravel reset user --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmReset {
			return fmt.Errorf("reset deletes every row; pass --yes to confirm")
		}
		return withDB(cmd, func(ctx context.Context, db *runtime.DB) error {
			return runReset(ctx, db, args)
		})
	},
}

func init() {
	rootCmd.AddCommand(createTableCmd)
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&confirmReset, "yes", false, "Confirm dropping the tables")
}

func runCreateTable(ctx context.Context, db *runtime.DB, names []string) error {
	schemas, err := resolveSchemas(names)
	if err != nil {
		return err
	}

	for _, s := range schemas {
		if err := model.Bind(db, s).CreateTable(ctx); err != nil {
			return fmt.Errorf("failed to create table %s: %w", s.Table(), err)
		}
		output.Success("Created table %s", s.Table())
	}
	return nil
}

func runReset(ctx context.Context, db *runtime.DB, names []string) error {
	schemas, err := resolveSchemas(names)
	if err != nil {
		return err
	}

	for _, s := range schemas {
		if err := model.Bind(db, s).DropAndRecreateTable(ctx); err != nil {
			return fmt.Errorf("failed to reset table %s: %w", s.Table(), err)
		}
		output.Warning("Reset table %s", s.Table())
	}
	return nil
}
