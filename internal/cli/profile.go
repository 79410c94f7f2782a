package cli

import (
	"github.com/spf13/cobra"
)

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the authenticated user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if _, err := client.Get("/auth/profile", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSetPasswordCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"password": pass}

			msg, err := client.Put("/auth/change_password", req, nil)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&pass, "pass", "", "New password (required)")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newUpdateCmd() *cobra.Command {
	var username string
	var height, weight float64

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields (only provided flags are changed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the user actually set are sent; omitted fields
			// are left unchanged server-side
			req := map[string]any{}
			if cmd.Flags().Changed("user") {
				req["username"] = username
			}
			if cmd.Flags().Changed("height") {
				req["height"] = height
			}
			if cmd.Flags().Changed("weight") {
				req["weight"] = weight
			}

			msg, err := client.Put("/auth/update_simple_profile", req, nil)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "New username")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")

	return cmd
}
