// internal/commands/best.go
package matboard

import (
	"encoding/json"
	"fmt"

	"github.com/mwiater/matboard/internal/ranking"
	"github.com/spf13/cobra"
)

// bestCmd prints the best model on the active discovery set.
var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best model on the active discovery set",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		view := session.View()

		var issues []ranking.Issue
		if view.HasBest {
			issues = ranking.CheckBest(view.Best)
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			payload := struct {
				Set     string          `json:"discovery_set"`
				Best    *ranking.Best   `json:"best"`
				Summary string          `json:"summary"`
				Issues  []ranking.Issue `json:"issues,omitempty"`
			}{Set: string(view.ActiveSet), Summary: view.BestSummary(), Issues: issues}
			if view.HasBest {
				payload.Best = &view.Best
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		}

		fmt.Fprintln(out, view.BestSummary())
		for _, issue := range issues {
			fmt.Fprintf(out, "! %s\n", issue)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bestCmd)
}
