// internal/commands/export.go
package matboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwiater/matboard/internal/logging"
	"github.com/mwiater/matboard/internal/report"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd renders the current leaderboard view as a Markdown or HTML report.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the leaderboard as a Markdown or HTML report",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(exportFormat))
		if format != "md" && format != "html" {
			return fmt.Errorf("unsupported format %q (use md or html)", exportFormat)
		}

		session, _, err := loadSession(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		data := report.Build(session.View(), activeConfig().Downloads)

		var out io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if format == "html" {
			err = report.WriteHTML(out, data)
		} else {
			err = report.WriteMarkdown(out, data)
		}
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if exportOutput != "" && exportOutput != "-" {
			logging.LogEvent("[EXPORT] format=%s path=%q rows=%d", format, exportOutput, len(data.Rows))
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "report format: md or html")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
