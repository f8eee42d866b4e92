package commands

import (
	"github.com/spf13/cobra"

	"github.com/marshallshelly/gravel/cmd/gravel/output"
	"github.com/marshallshelly/gravel/cmd/gravel/tui"
	"github.com/marshallshelly/gravel/pkg/registry"
	"github.com/marshallshelly/gravel/pkg/runtime"
)

var (
	// Browse flags
	offline bool
)

// browseCmd starts the interactive schema browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse models interactively",
	Long: `Browse the registered models, view their generated SQL, and create, count
or reset their tables.

Without a reachable database (or with --offline) only the SQL view is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var db *runtime.DB
		if !offline {
			var err error
			db, err = connect(cmd)
			if err != nil {
				output.Warning("Browsing offline: %v", err)
			} else {
				defer func() { _ = db.Close() }()
			}
		}
		return tui.RunBrowseUI(registry.All(), db)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().BoolVar(&offline, "offline", false, "Do not connect to the database")
}
