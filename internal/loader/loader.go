// internal/loader/loader.go
// Package loader reads model metadata files from disk and validates them into records.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/matboard/internal/logging"
	"github.com/mwiater/matboard/internal/modelschema"
	"gopkg.in/yaml.v3"
)

// Problem is a record that was excluded from the leaderboard.
type Problem struct {
	Source     string                  `json:"source"`
	Model      string                  `json:"model_name,omitempty"`
	Violations []modelschema.Violation `json:"violations,omitempty"`
	Err        string                  `json:"error,omitempty"`
}

func (p Problem) String() string {
	name := p.Model
	if name == "" {
		name = "(unnamed)"
	}
	if len(p.Violations) == 0 {
		return fmt.Sprintf("%s [%s]: %s", p.Source, name, p.Err)
	}
	parts := make([]string, len(p.Violations))
	for i, v := range p.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s [%s]: %s", p.Source, name, strings.Join(parts, "; "))
}

// Result holds the accepted records in load order and every excluded one.
type Result struct {
	Records  []modelschema.ModelRecord
	Sources  map[string]string
	Problems []Problem
}

// Raw is one undecoded record together with where it came from.
type Raw struct {
	Source string
	Value  any
}

var extensions = map[string]bool{".yml": true, ".yaml": true, ".json": true}

// LoadDir walks dir for model files and validates every record found. Files and
// directories whose names start with "_" or "." are skipped. The returned error is only
// set when the directory itself cannot be read; bad records end up in Result.Problems.
func LoadDir(dir string) (Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Result{}, fmt.Errorf("models directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return Result{}, fmt.Errorf("models directory %q is not a directory", dir)
	}

	var (
		raws     []Raw
		problems []Problem
	)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := d.Name()
		if path != dir && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !extensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		values, err := ReadFile(path)
		if err != nil {
			problems = append(problems, Problem{Source: path, Err: err.Error()})
			return nil
		}
		raws = append(raws, rawsOf(path, values)...)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("walk models directory %q: %w", dir, err)
	}

	result := Validate(raws)
	result.Problems = append(problems, result.Problems...)
	for _, p := range problems {
		logging.LogEvent("[LOAD] skipped %s", p)
	}
	logging.LogEvent("[LOAD] %s: %d records accepted, %d rejected", dir, len(result.Records), len(result.Problems))
	return result, nil
}

// LoadFile validates the records of a single model file.
func LoadFile(path string) (Result, error) {
	values, err := ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Validate(rawsOf(path, values)), nil
}

// rawsOf names list entries path#index so problems point at the right document.
func rawsOf(path string, values []any) []Raw {
	raws := make([]Raw, len(values))
	for i, v := range values {
		source := path
		if len(values) > 1 {
			source = fmt.Sprintf("%s#%d", path, i)
		}
		raws[i] = Raw{Source: source, Value: v}
	}
	return raws
}

// ReadFile decodes a model file. A file may hold one record or a list of records.
func ReadFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	var doc any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}
	switch v := doc.(type) {
	case nil:
		return nil, errors.New("model file is empty")
	case []any:
		return v, nil
	default:
		return []any{v}, nil
	}
}

// Validate runs schema validation over raws in order and enforces unique model names.
// A later record reusing a name is rejected; the first one wins.
func Validate(raws []Raw) Result {
	result := Result{Sources: make(map[string]string, len(raws))}
	for _, raw := range raws {
		record, err := modelschema.Validate(raw.Value)
		if err != nil {
			p := Problem{Source: raw.Source, Model: rawName(raw.Value)}
			var verr *modelschema.ViolationError
			if errors.As(err, &verr) {
				p.Violations = verr.Violations
				for _, v := range verr.Violations {
					logging.LogViolation(raw.Source, p.Model, v.String())
				}
			} else {
				p.Err = err.Error()
			}
			result.Problems = append(result.Problems, p)
			continue
		}
		if first, dup := result.Sources[record.ModelName]; dup {
			v := modelschema.Violation{
				Field:    "model_name",
				Rule:     "unique",
				Expected: "unique model name",
				Message:  fmt.Sprintf("%q already defined in %s", record.ModelName, first),
			}
			logging.LogViolation(raw.Source, record.ModelName, v.String())
			result.Problems = append(result.Problems, Problem{
				Source:     raw.Source,
				Model:      record.ModelName,
				Violations: []modelschema.Violation{v},
			})
			continue
		}
		result.Sources[record.ModelName] = raw.Source
		result.Records = append(result.Records, record)
	}
	return result
}

func rawName(v any) string {
	if m, ok := v.(map[string]any); ok {
		if name, ok := m["model_name"].(string); ok {
			return name
		}
	}
	return ""
}
