package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasknotify/pkg/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize the calendar transport with Google",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.RemoveToken(); err != nil {
			return err
		}
		if err := auth.Login(cmd.Context(), auth.Scopes); err != nil {
			return err
		}
		log.Printf("Authentication successful! Token saved as %s", auth.TokenFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
