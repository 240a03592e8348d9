// internal/commands/schema.go
package matboard

import (
	"fmt"

	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/spf13/cobra"
)

// schemaCmd prints the JSON schema that model metadata files are validated against.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the model metadata JSON schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := modelschema.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
