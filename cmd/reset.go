package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete recorded sign-in activity and roadmap progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if err := st.ActivityRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear activity: %w", err)
		}
		if err := st.ProgressRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear progress: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Cleared sign-in activity and roadmap progress.")
		return nil
	},
}
