// internal/commands/show.go
package matboard

import (
	"encoding/json"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/mwiater/matboard/internal/leaderboard"
	"github.com/spf13/cobra"
)

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long:  `The 'show' command groups subcommands that display a model record or the active configuration.`,
}

var showRaw bool

// showModelCmd inspects one model record.
var showModelCmd = &cobra.Command{
	Use:   "model <model_name>",
	Short: "Inspect a single model record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _, err := loadSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		record, ok := session.Record(args[0])
		if !ok {
			return fmt.Errorf("model %q not found", args[0])
		}

		out := cmd.OutOrStdout()
		switch {
		case JSONModeEnabled():
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(record)
		case showRaw:
			_, err := pp.Fprintln(out, record)
			return err
		}

		for _, d := range leaderboard.Describe(record) {
			fmt.Fprintf(out, "%-22s %s\n", d.Label+":", d.Value)
		}
		return nil
	},
}

func init() {
	showModelCmd.Flags().BoolVar(&showRaw, "raw", false, "dump the typed record")
	showCmd.AddCommand(showModelCmd)
	rootCmd.AddCommand(showCmd)
}
