package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/abhisek/careerpilot/internal/store"
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Inspect recorded sign-in activity",
}

var activityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sign-in attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if limit < 0 {
			return fmt.Errorf("--limit must not be negative, got %d", limit)
		}
		failed, _ := cmd.Flags().GetBool("failed")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.ActivityRepo().QueryAuthEvents(cmd.Context(), store.QueryOpts{Limit: limit, Failed: failed})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No sign-in activity found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-19s  %-15s  %-28s  %-3s  %s\n",
			"Seq", "Timestamp", "Operation", "Email", "OK", "Error")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			email := ansi.Truncate(e.Email, 28, "...")
			detail := ""
			if !e.Success {
				detail = e.ErrorKind + ": " + e.ErrorMessage
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-15s  %-28s  %-3s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Op,
				email,
				ok,
				detail,
			)
		}
		return nil
	},
}

func init() {
	activityListCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
	activityListCmd.Flags().Bool("failed", false, "Only show failed attempts")

	activityCmd.AddCommand(activityListCmd)
}
