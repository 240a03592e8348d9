// internal/commands/tui.go
package matboard

import (
	"github.com/mwiater/matboard/internal/tui"
	"github.com/spf13/cobra"
)

// tuiCmd starts the interactive leaderboard.
var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"ui"},
	Short:   "Browse the leaderboard interactively",
	Long: `Start the interactive leaderboard. Keys: 1/2/3 or d select the discovery set, n toggles
non-compliant models, c opens the column picker, s and r change the sort, enter inspects the
highlighted model, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, result, err := loadSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return tui.Run(session, len(result.Problems))
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
