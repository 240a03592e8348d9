// internal/commands/validate.go
package matboard

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mwiater/matboard/internal/loader"
	"github.com/spf13/cobra"
)

// validateCmd checks model metadata files against the schema without building a leaderboard.
var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Validate model metadata files",
	Long: `Validate checks every model metadata file under the given files or directories against the
model schema. With no arguments the configured models directory is checked. Exits non-zero when
any record is rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			paths = []string{activeConfig().ModelsPath()}
		}

		var total loader.Result
		for _, path := range paths {
			result, err := loadPath(path)
			if err != nil {
				return err
			}
			total.Records = append(total.Records, result.Records...)
			total.Problems = append(total.Problems, result.Problems...)
			for name, src := range result.Sources {
				if total.Sources == nil {
					total.Sources = make(map[string]string)
				}
				total.Sources[name] = src
			}
		}

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			payload := struct {
				Valid    []string         `json:"valid"`
				Problems []loader.Problem `json:"problems"`
			}{Valid: []string{}, Problems: total.Problems}
			for _, r := range total.Records {
				payload.Valid = append(payload.Valid, r.ModelName)
			}
			if payload.Problems == nil {
				payload.Problems = []loader.Problem{}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(payload); err != nil {
				return err
			}
		} else {
			pass := color.New(color.FgGreen, color.Bold).SprintFunc()
			fail := color.New(color.FgRed, color.Bold).SprintFunc()
			for _, r := range total.Records {
				fmt.Fprintf(out, "%s %s (%s)\n", pass("PASS"), r.ModelName, total.Sources[r.ModelName])
			}
			for _, p := range total.Problems {
				fmt.Fprintf(out, "%s %s\n", fail("FAIL"), p.String())
			}
			fmt.Fprintf(out, "\n%d valid, %d rejected\n", len(total.Records), len(total.Problems))
		}

		if len(total.Problems) > 0 {
			return fmt.Errorf("%d model record(s) failed validation", len(total.Problems))
		}
		return nil
	},
}

// loadPath validates a single file or a whole directory.
func loadPath(path string) (loader.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return loader.Result{}, fmt.Errorf("validate %q: %w", path, err)
	}
	if info.IsDir() {
		return loader.LoadDir(path)
	}
	return loader.LoadFile(path)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
