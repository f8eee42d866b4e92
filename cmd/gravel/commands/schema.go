package commands

import (
	"github.com/spf13/cobra"

	"github.com/marshallshelly/gravel/cmd/gravel/output"
	"github.com/marshallshelly/gravel/pkg/schema"
)

// schemaCmd prints generated SQL
var schemaCmd = &cobra.Command{
	Use:   "schema [model...]",
	Short: "Print the SQL generated for models",
	Long: `Print the statements generated for each model. No database connection is needed.

Statements use backtick identifiers and ? markers; they are rewritten for the
configured driver when executed.

Examples:
  gravel schema                # All models
  gravel schema user blog      # Selected models
  gravel schema --json         # Output in JSON format`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchema(args)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

type schemaSQL struct {
	Model      string   `json:"model"`
	Table      string   `json:"table"`
	PrimaryKey string   `json:"primary_key"`
	Columns    []string `json:"columns"`
	Create     string   `json:"create"`
	Select     string   `json:"select"`
	SelectByPK string   `json:"select_by_key"`
	Insert     string   `json:"insert"`
	Update     string   `json:"update"`
	Delete     string   `json:"delete"`
	Count      string   `json:"count"`
}

func describe(s *schema.Schema) schemaSQL {
	return schemaSQL{
		Model:      s.Model(),
		Table:      s.Table(),
		PrimaryKey: s.PrimaryKey().Name,
		Columns:    s.Columns(),
		Create:     s.CreateSQL(),
		Select:     s.SelectSQL(),
		SelectByPK: s.SelectByKeySQL(),
		Insert:     s.InsertSQL(),
		Update:     s.UpdateSQL(),
		Delete:     s.DeleteSQL(),
		Count:      s.CountSQL(),
	}
}

func runSchema(names []string) error {
	schemas, err := resolveSchemas(names)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := make([]schemaSQL, len(schemas))
		for i, s := range schemas {
			out[i] = describe(s)
		}
		return output.JSON(out)
	}

	for _, s := range schemas {
		output.Section(s.Model())
		for _, f := range append([]schema.Field{s.PrimaryKey()}, s.Fields()...) {
			output.Muted("%s", f)
		}
		output.SQL(s.CreateSQL())
		output.SQL(s.SelectByKeySQL())
		output.SQL(s.InsertSQL())
		output.SQL(s.UpdateSQL())
		output.SQL(s.DeleteSQL())
	}
	return nil
}
