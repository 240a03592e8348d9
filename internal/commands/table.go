// internal/commands/table.go
package matboard

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mwiater/matboard/internal/util"
	"github.com/spf13/cobra"
)

const maxCellWidth = 32

// tableCmd prints the leaderboard as an aligned plain-text table.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the leaderboard as a plain-text table",
	Long:  `Print the leaderboard for the configured discovery set, compliance toggle, columns and sort order. Models marked with '*' are not benchmark-compliant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		view := session.View()

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			rows := make([]map[string]string, 0, len(view.Rows))
			for _, cells := range view.Cells() {
				row := make(map[string]string, len(cells))
				for i, col := range view.Columns {
					row[col.ID] = cells[i]
				}
				rows = append(rows, row)
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		fmt.Fprintf(out, "%s\n\n", view.BestSummary())
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.Join(view.Headers(), "\t"))
		for _, cells := range view.Cells() {
			for i, cell := range cells {
				cells[i] = util.FitCell(cell, maxCellWidth)
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		for _, issue := range view.Issues {
			fmt.Fprintf(out, "! %s\n", issue)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
