// internal/commands/list.go
package matboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/leaderboard"
	"github.com/spf13/cobra"
)

// listCmd represents the 'list' command group for listing resources.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
	Long:  `The 'list' command groups subcommands that list commands, leaderboard columns and discovery sets.`,
}

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Run: func(cmd *cobra.Command, args []string) {
		runListCommands(cmd.OutOrStdout(), rootCmd)
	},
}

// columnsCmd lists every leaderboard column with its default visibility.
var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List leaderboard columns and whether they are shown by default",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Columns:")
		for _, c := range leaderboard.Catalog() {
			visibility := "shown"
			if c.DefaultHidden {
				visibility = "hidden"
			}
			sortable := ""
			if c.SortKey != "" {
				sortable = " (sortable)"
			}
			fmt.Fprintf(out, "  %-22s %-28s %s%s\n", c.ID, c.Label, visibility, sortable)
		}
	},
}

// setsCmd lists the discovery sets in selector order.
var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List discovery sets",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Discovery sets:")
		for i, set := range discovery.All() {
			marker := ""
			if set == discovery.Default {
				marker = " (default)"
			}
			fmt.Fprintf(out, "  %d %-20s %s%s\n", i+1, set, set.Label(), marker)
		}
	},
}

// runListCommands prints the command tree in a two-column layout.
func runListCommands(out io.Writer, root *cobra.Command) {
	commandData := collectCommandData(root, "", "")

	maxPathLength := 0
	for _, data := range commandData {
		maxPathLength = max(maxPathLength, len(data.path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, data := range commandData {
		if strings.Contains(data.path, "completion") || strings.Contains(data.path, " help") {
			continue
		}
		fmt.Fprintf(out, "  %s%s%s\n", data.path, strings.Repeat(" ", maxPathLength-len(data.path)+2), data.description)
	}
}

// commandInfo holds the path and description of a command for display.
type commandInfo struct {
	path        string
	description string
}

// collectCommandData walks the command tree into a flat slice of path/description pairs.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	all := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		all = append(all, collectCommandData(sub, fullPath, indent+"  ")...)
	}
	return all
}

func init() {
	listCmd.AddCommand(commandsCmd, columnsCmd, setsCmd)
	rootCmd.AddCommand(listCmd)
}
