package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marshallshelly/gravel/cmd/gravel/output"
	"github.com/marshallshelly/gravel/pkg/model"
	"github.com/marshallshelly/gravel/pkg/registry"
	"github.com/marshallshelly/gravel/pkg/runtime"
	"github.com/marshallshelly/gravel/pkg/schema"
)

// saveCmd inserts a row
var saveCmd = &cobra.Command{
	Use:   "save <model> field=value...",
	Short: "Insert a row",
	Long: `Insert a row built from field=value pairs. Fields left out take their
defaults; the primary key of the saved row is printed.

Examples:
  gravel save user name=zhaojiuhui password=111111
  gravel save blog user_id=0015... name=hello "content=first post"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := registry.Lookup(args[0])
		if err != nil {
			return err
		}
		values, err := parseAssignments(s, args[1:])
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, db *runtime.DB) error {
			return runSave(ctx, db, s, values)
		})
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(ctx context.Context, db *runtime.DB, s *schema.Schema, values map[string]any) error {
	inst, err := model.Bind(db, s).New(values)
	if err != nil {
		return err
	}
	if err := inst.Save(ctx); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.Model(), err)
	}

	if jsonOutput {
		return output.JSON(inst.Values())
	}
	output.Success("Saved %s %s = %v", s.Model(), s.PrimaryKey().Name, inst.PrimaryKey())
	return nil
}

// parseAssignments turns field=value arguments into typed values for s.
// An empty value stores NULL.
func parseAssignments(s *schema.Schema, args []string) (map[string]any, error) {
	values := make(map[string]any, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want field=value", arg)
		}

		f, ok := s.Field(name)
		if !ok {
			return nil, &model.AttributeError{Model: s.Model(), Name: name}
		}

		v, err := parseValue(f, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}

func parseValue(f schema.Field, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}

	switch f.Kind {
	case schema.KindInteger:
		return strconv.ParseInt(raw, 10, 64)
	case schema.KindFloat:
		return strconv.ParseFloat(raw, 64)
	case schema.KindBoolean:
		return strconv.ParseBool(raw)
	default:
		return raw, nil
	}
}
