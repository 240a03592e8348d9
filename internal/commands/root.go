// internal/commands/root.go
package matboard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mwiater/matboard/internal/appconfig"
	"github.com/mwiater/matboard/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. MATBOARD_MODELSDIR.
const EnvPrefix = "MATBOARD"

var (
	cfgFile       string
	envFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// settings are the persistent flags that viper merges with the config file and environment.
var settings = []string{"debug", "jsonMode", "modelsDir", "discoverySet", "showNonCompliant", "hiddenColumns", "shownColumns", "sortColumn", "sortAscending", "logFile"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "matboard",
	Short:         "matboard: leaderboard of ML models for materials discovery",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
		configPath, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = configPath
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		// Command output owns stdout; log lines only reach it in debug mode.
		logging.SetQuiet(!cfg.Debug)
		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.LogEvent("[CONFIG] %s config=%q models=%q", cmd.CommandPath(), cfg.ConfigPath, cfg.ModelsPath())

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with MATBOARD_* overrides (ignored when missing)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "print machine-readable JSON where supported")
	rootCmd.PersistentFlags().String("modelsDir", "", "directory of model metadata files (default \"models\")")
	rootCmd.PersistentFlags().String("discoverySet", "", "discovery set: full_test_set, unique_prototypes or most_stable_10k")
	rootCmd.PersistentFlags().Bool("showNonCompliant", false, "include models that are not benchmark-compliant")
	rootCmd.PersistentFlags().StringSlice("hiddenColumns", nil, "columns to hide (comma separated ids)")
	rootCmd.PersistentFlags().StringSlice("shownColumns", nil, "hidden-by-default columns to show (comma separated ids)")
	rootCmd.PersistentFlags().String("sortColumn", "", "column to sort by (default F1)")
	rootCmd.PersistentFlags().Bool("sortAscending", false, "sort ascending instead of descending")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	for _, name := range settings {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// loadEnvFile exports the variables of a dotenv file without overriding the real environment.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// ensureConfigLoaded reads the config and returns its path. A missing file is not an
// error; defaults, environment and flags stay in charge and the path is empty.
func ensureConfigLoaded() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return viper.ConfigFileUsed(), nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
