// internal/modelschema/schema.go
package modelschema

import (
	"encoding/json"
	"math"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// RequirementKeyPattern restricts the package names used as requirements keys.
const RequirementKeyPattern = `^[a-zA-Z][a-zA-Z0-9_-]*$`

var (
	compileOnce    sync.Once
	compiledSchema *gojsonschema.Schema
	compileErr     error
)

// Schema returns the record schema as an indented JSON document.
func Schema() ([]byte, error) {
	return json.MarshalIndent(recordSchema(), "", "  ")
}

func loadSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(recordSchema()))
	})
	return compiledSchema, compileErr
}

func recordSchema() map[string]any {
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "number"}
	nullableStr := map[string]any{"type": []string{"string", "null"}}
	count := countSchema()

	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "ModelRecord",
		"type":                 "object",
		"additionalProperties": false,
		"required": []string{
			"model_name", "authors", "repo", "doi", "paper", "requirements",
			"trained_for_benchmark", "training_set", "model_params", "n_estimators",
			"train_task", "test_task", "model_type", "targets",
		},
		"properties": map[string]any{
			"model_name":     map[string]any{"type": "string", "minLength": 1},
			"model_key":      str,
			"model_version":  str,
			"date_added":     str,
			"date_published": str,
			"authors": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    personSchema(true, false),
			},
			"trained_by": map[string]any{
				"type":  "array",
				"items": personSchema(false, true),
			},
			"repo":  str,
			"doi":   str,
			"paper": str,
			"url":   str,
			"pypi":  str,
			"requirements": map[string]any{
				"type":                 "object",
				"propertyNames":        map[string]any{"pattern": RequirementKeyPattern},
				"additionalProperties": str,
			},
			"trained_for_benchmark": map[string]any{"type": "boolean"},
			"training_set": map[string]any{
				"type":        "array",
				"uniqueItems": true,
				"items":       map[string]any{"type": "string", "enum": enumValues(trainingSets)},
			},
			"hyperparams":  hyperparamsSchema(),
			"notes":        notesSchema(),
			"model_params": count,
			"n_estimators": count,
			"train_task":   map[string]any{"type": "string", "enum": enumValues(trainTasks)},
			"test_task":    map[string]any{"type": "string", "enum": enumValues(testTasks)},
			"model_type":   map[string]any{"type": "string", "enum": enumValues(modelTypes)},
			"targets":      map[string]any{"type": "string", "enum": enumValues(targets)},
			"openness":     map[string]any{"type": "string", "enum": enumValues(opennessValues)},
			"status":       map[string]any{"type": "string", "enum": enumValues(statuses)},
			"metrics": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"phonons": sentinelOr(map[string]any{
						"type":       "object",
						"properties": map[string]any{"κ_SRME": num},
					}),
					"geo_opt": sentinelOr(map[string]any{
						"type": "object",
						"properties": map[string]any{
							"pred_file":         nullableStr,
							"pred_col":          nullableStr,
							"rmsd":              num,
							"n_sym_ops_mae":     num,
							"symmetry_decrease": num,
							"symmetry_match":    num,
							"symmetry_increase": num,
							"n_structures":      num,
						},
					}),
					"discovery": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"properties": map[string]any{
							"full_test_set":     bundleSchema(),
							"unique_prototypes": bundleSchema(),
							"most_stable_10k":   bundleSchema(),
						},
					},
				},
			},
		},
	}
}

// countSchema is a non-negative integer that still fits an int64 field.
func countSchema() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0, "maximum": math.MaxInt64}
}

func personSchema(withEmail, withGitHub bool) map[string]any {
	props := map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"affiliation": map[string]any{"type": "string"},
		"orcid":       map[string]any{"type": "string"},
	}
	if withEmail {
		props["email"] = map[string]any{"type": "string"}
	}
	if withGitHub {
		props["github"] = map[string]any{"type": "string"}
	}
	person := map[string]any{
		"type":       "object",
		"required":   []string{"name"},
		"properties": props,
	}
	if !withEmail {
		person["not"] = map[string]any{"required": []string{"email"}}
	}
	return person
}

func hyperparamsSchema() map[string]any {
	num := map[string]any{"type": "number"}
	integer := countSchema()
	str := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"max_force":             num,
			"max_steps":             integer,
			"ase_optimizer":         str,
			"optimizer":             str,
			"loss":                  str,
			"cell_filter":           str,
			"batch_size":            integer,
			"initial_learning_rate": num,
			"learning_rate":         num,
			"epochs":                integer,
			"n_layers":              integer,
			"radial_cutoff":         num,
		},
	}
}

func notesSchema() map[string]any {
	str := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"Description":   str,
			"Training":      str,
			"Missing Preds": str,
			"html": map[string]any{
				"type":                 "object",
				"additionalProperties": str,
			},
		},
	}
}

func bundleSchema() map[string]any {
	props := make(map[string]any, len(metricKeys)+3)
	for _, key := range metricKeys {
		props[string(key)] = map[string]any{"type": "number"}
	}
	props["missing_percent"] = map[string]any{"type": "string"}
	props["pred_file"] = map[string]any{"type": "string"}
	props["pred_col"] = map[string]any{"type": "string"}
	return map[string]any{
		"type":       "object",
		"properties": props,
	}
}

// sentinelOr accepts either one of the two sentinel strings or the given object schema.
func sentinelOr(object map[string]any) map[string]any {
	return map[string]any{
		"oneOf": []any{
			map[string]any{"type": "string", "enum": []any{sentinelNotApplicable, sentinelNotAvailable}},
			object,
		},
	}
}
