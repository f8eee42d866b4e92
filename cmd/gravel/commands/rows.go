package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/gravel/cmd/gravel/output"
	"github.com/marshallshelly/gravel/pkg/model"
	"github.com/marshallshelly/gravel/pkg/registry"
	"github.com/marshallshelly/gravel/pkg/runtime"
)

var (
	// List flags
	listWhere   string
	listOrderBy string
	listLimit   int
	listOffset  int
)

// findCmd fetches one row by primary key
var findCmd = &cobra.Command{
	Use:   "find <model> <pk>",
	Short: "Fetch a row by primary key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *runtime.DB) error {
			return runFind(ctx, db, args[0], args[1])
		})
	},
}

// listCmd fetches many rows
var listCmd = &cobra.Command{
	Use:   "list <model>",
	Short: "List rows of a model",
	Long: `List the rows of a model.

The --where expression is passed to the database as written; identifiers may be
quoted with backticks.

Examples:
  gravel list user
  gravel list blog --where "user_id = '0015...'" --order-by "created_at desc" --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *runtime.DB) error {
			return runList(ctx, db, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listWhere, "where", "w", "", "Filter expression")
	listCmd.Flags().StringVarP(&listOrderBy, "order-by", "o", "", "Order expression")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of rows")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Rows to skip (requires --limit)")
}

func runFind(ctx context.Context, db *runtime.DB, name, pk string) error {
	s, err := registry.Lookup(name)
	if err != nil {
		return err
	}

	inst, found, err := model.Bind(db, s).Find(ctx, pk)
	if err != nil {
		return err
	}
	if !found {
		output.Warning("No %s with %s = %s", s.Model(), s.PrimaryKey().Name, pk)
		return nil
	}

	if jsonOutput {
		return output.JSON(inst.Values())
	}
	output.Record(s.Columns(), inst.Values())
	return nil
}

func runList(ctx context.Context, db *runtime.DB, name string) error {
	s, err := registry.Lookup(name)
	if err != nil {
		return err
	}

	var opts []model.QueryOption
	if listWhere != "" {
		opts = append(opts, model.Where(listWhere))
	}
	if listOrderBy != "" {
		opts = append(opts, model.OrderBy(listOrderBy))
	}
	if listLimit > 0 {
		opts = append(opts, model.Limit(listLimit))
	}
	if listOffset > 0 {
		opts = append(opts, model.Offset(listOffset))
	}

	insts, err := model.Bind(db, s).FindAll(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", s.Model(), err)
	}

	rows := make([]map[string]any, len(insts))
	for i, inst := range insts {
		rows[i] = inst.Values()
	}

	if jsonOutput {
		return output.JSON(rows)
	}
	output.Rows(s.Columns(), rows)
	return nil
}
