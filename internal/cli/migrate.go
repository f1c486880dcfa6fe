package cli

import (
	"github.com/spf13/cobra"

	"github.com/ndanylov/taskdeck/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.InitDefaultLogger()
		app.MustReadEnv()
		app.MustInitApplicationLogger()

		app.MustConnectPostgres()
		defer app.DisconnectPostgres()

		app.MustMigrate()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
