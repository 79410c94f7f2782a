package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Get("/auth/health", nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("ok")
			return nil
		},
	}
}
