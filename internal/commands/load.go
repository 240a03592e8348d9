// internal/commands/load.go
package matboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/mwiater/matboard/internal/appconfig"
	"github.com/mwiater/matboard/internal/leaderboard"
	"github.com/mwiater/matboard/internal/loader"
)

// activeConfig returns the loaded config, or defaults when a command runs without the root pre-run.
func activeConfig() appconfig.Config {
	if cfg := GetConfig(); cfg != nil {
		return *cfg
	}
	return appconfig.Config{}
}

// loadSession reads the models directory and opens a leaderboard session with the
// configured view settings. Rejected files are summarized on warn.
func loadSession(warn io.Writer) (*leaderboard.Session, loader.Result, error) {
	cfg := activeConfig()
	result, err := loader.LoadDir(cfg.ModelsPath())
	if err != nil {
		return nil, loader.Result{}, err
	}
	if len(result.Problems) > 0 {
		fmt.Fprintf(warn, "warning: %d model record(s) failed validation and were skipped (run 'matboard validate' for details)\n", len(result.Problems))
	}
	if len(result.Records) == 0 {
		return nil, result, errors.New("no valid model records found in " + cfg.ModelsPath())
	}

	opts, err := cfg.LeaderboardOptions()
	if err != nil {
		return nil, result, err
	}
	session, err := leaderboard.New(result.Records, opts)
	if err != nil {
		return nil, result, err
	}
	return session, result, nil
}
