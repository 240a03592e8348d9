// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/leaderboard"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultModelsDir is where model metadata files are read from when the config omits it.
	defaultModelsDir = "models"
	// defaultServerPort is the API port used when the config omits it.
	defaultServerPort = "8080"
)

// Config represents the top-level application configuration.
type Config struct {
	ModelsDir        string            `json:"modelsDir,omitempty" mapstructure:"modelsDir"`
	DiscoverySet     string            `json:"discoverySet,omitempty" mapstructure:"discoverySet"`
	ShowNonCompliant bool              `json:"showNonCompliant" mapstructure:"showNonCompliant"`
	HiddenColumns    []string          `json:"hiddenColumns,omitempty" mapstructure:"hiddenColumns"`
	ShownColumns     []string          `json:"shownColumns,omitempty" mapstructure:"shownColumns"`
	SortColumn       string            `json:"sortColumn,omitempty" mapstructure:"sortColumn"`
	SortAscending    bool              `json:"sortAscending" mapstructure:"sortAscending"`
	LogFile          string            `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug            bool              `json:"debug" mapstructure:"debug"`
	JSONMode         bool              `json:"jsonMode" mapstructure:"jsonMode"`
	ServerPort       string            `json:"serverPort,omitempty" mapstructure:"serverPort"`
	CorsOrigins      []string          `json:"corsOrigins,omitempty" mapstructure:"corsOrigins"`
	Downloads        map[string]string `json:"downloads,omitempty" mapstructure:"downloads"`
	ConfigPath       string            `json:"-" mapstructure:"-"`
}

// ModelsPath returns the model metadata directory, applying a default if not set.
func (c Config) ModelsPath() string {
	if dir := strings.TrimSpace(c.ModelsDir); dir != "" {
		return dir
	}
	return defaultModelsDir
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "matboard.log"
}

// Port returns the API port, applying a default if not set.
func (c Config) Port() string {
	if p := strings.TrimSpace(c.ServerPort); p != "" {
		return p
	}
	return defaultServerPort
}

// LeaderboardOptions converts the view settings into session options.
func (c Config) LeaderboardOptions() (leaderboard.Options, error) {
	set, err := discovery.Parse(c.DiscoverySet)
	if err != nil {
		return leaderboard.Options{}, err
	}
	return leaderboard.Options{
		Set:                 set,
		IncludeNonCompliant: c.ShowNonCompliant,
		HiddenColumns:       c.HiddenColumns,
		ShownColumns:        c.ShownColumns,
		SortKey:             c.SortColumn,
		Ascending:           c.SortAscending,
	}, nil
}

// Validate checks the view settings against the known sets, columns and sort keys.
func (c Config) Validate() error {
	opts, err := c.LeaderboardOptions()
	if err != nil {
		return fmt.Errorf("invalid discoverySet: %w", err)
	}
	if _, err := leaderboard.New(nil, opts); err != nil {
		return fmt.Errorf("invalid view settings: %w", err)
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, err
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				if err := config.Validate(); err != nil {
					return Config{}, err
				}
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
