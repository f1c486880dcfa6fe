package cli

import (
	"github.com/spf13/cobra"

	"github.com/ndanylov/taskdeck/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.InitDefaultLogger()
		app.MustReadEnv()
		app.MustInitApplicationLogger()

		app.MustConnectPostgres()
		defer app.DisconnectPostgres()

		app.MustListenAndServeHTTP()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
