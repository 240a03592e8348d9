// internal/commands/show_config.go
package matboard

import (
	"github.com/mwiater/matboard/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showConfigFile string

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long: `Show config settings ensuring that the JSON config is loaded properly and overridden by environment variables and flags accordingly.

With --file the given config file is read on its own, without environment or flag overrides.
When that path is the default and missing, the legacy ./config.json is tried.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cmd.Flags().Changed("file") {
			cfg, err := appconfig.Load(showConfigFile)
			if err != nil {
				return err
			}
			appconfig.ShowConfig(out, cfg.ConfigPath, &cfg, cfg)
			return nil
		}

		fallback := appconfig.Config{
			ModelsDir:        viper.GetString("modelsDir"),
			DiscoverySet:     viper.GetString("discoverySet"),
			ShowNonCompliant: viper.GetBool("showNonCompliant"),
			HiddenColumns:    viper.GetStringSlice("hiddenColumns"),
			ShownColumns:     viper.GetStringSlice("shownColumns"),
			SortColumn:       viper.GetString("sortColumn"),
			SortAscending:    viper.GetBool("sortAscending"),
			Debug:            viper.GetBool("debug"),
			JSONMode:         viper.GetBool("jsonMode"),
			LogFile:          viper.GetString("logFile"),
		}
		file := ""
		if cfg := GetConfig(); cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(out, file, GetConfig(), fallback)
		return nil
	},
}

func init() {
	showConfigCmd.Flags().StringVar(&showConfigFile, "file", appconfig.DefaultConfigPath, "read and show this config file only")
	showCmd.AddCommand(showConfigCmd)
}
