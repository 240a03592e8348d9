package modelschema

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"model_name":    "CHGNet",
		"model_version": "0.3.0",
		"authors": []any{
			map[string]any{"name": "Bowen Deng", "affiliation": "UC Berkeley", "twitter": "@bowen"},
		},
		"trained_by": []any{
			map[string]any{"name": "Janosh Riebesell", "github": "https://github.com/janosh"},
		},
		"repo":                  "https://github.com/CederGroupHub/chgnet",
		"doi":                   "https://doi.org/10.48550/arXiv.2302.14231",
		"paper":                 "https://arxiv.org/abs/2302.14231",
		"requirements":          map[string]any{"chgnet": "0.3.0", "torch-geometric": "2.3.0"},
		"trained_for_benchmark": true,
		"training_set":          []any{"MPtrj"},
		"hyperparams": map[string]any{
			"max_force":  0.05,
			"max_steps":  500,
			"optimizer":  "FIRE",
			"extra_knob": "on",
		},
		"notes":        map[string]any{"Description": "Crystal Hamiltonian GNN", "Links": "none"},
		"model_params": 412525,
		"n_estimators": 1,
		"train_task":   "S2EFSM",
		"test_task":    "IS2RE-SR",
		"model_type":   "UIP",
		"targets":      "EFS_GM",
		"openness":     "OSOD",
		"metrics": map[string]any{
			"phonons": map[string]any{"κ_SRME": 1.717},
			"geo_opt": "not available",
			"discovery": map[string]any{
				"full_test_set": map[string]any{
					"F1": 0.612, "DAF": 3.361, "TP": 26523, "missing_preds": 2, "missing_percent": "0.00%",
				},
				"unique_prototypes": map[string]any{"F1": 0.613, "DAF": 3.361, "MAE": 0.063},
			},
		},
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	rec, err := Validate(validRaw())
	require.NoError(t, err)

	assert.Equal(t, "CHGNet", rec.ModelName)
	assert.True(t, rec.TrainedForBenchmark)
	assert.Equal(t, []TrainingSet{TrainingSetMPtrj}, rec.TrainingSet)
	assert.Equal(t, int64(412525), rec.ModelParams)
	assert.Equal(t, TrainTaskS2EFSM, rec.TrainTask)
	assert.Equal(t, "@bowen", rec.Authors[0].Extra["twitter"])
	assert.Equal(t, "https://github.com/janosh", rec.TrainedBy[0].GitHub)

	require.NotNil(t, rec.Hyperparams)
	assert.Equal(t, 0.05, *rec.Hyperparams.MaxForce)
	assert.Equal(t, int64(500), *rec.Hyperparams.MaxSteps)
	assert.Equal(t, "on", rec.Hyperparams.Extra["extra_knob"])
	assert.Equal(t, "none", rec.Notes.Extra["Links"])

	require.NotNil(t, rec.Metrics)
	phonons, ok := rec.Metrics.Phonons.Metrics()
	require.True(t, ok)
	assert.InDelta(t, 1.717, *phonons.KappaSRME, 1e-9)
	assert.Equal(t, NotAvailable, rec.Metrics.GeoOpt.Kind)
	_, ok = rec.Metrics.GeoOpt.Metrics()
	assert.False(t, ok)

	full := rec.Metrics.Discovery.FullTestSet
	require.NotNil(t, full)
	assert.Equal(t, 0.612, *full.F1)
	assert.Equal(t, "0.00%", full.MissingPercent)
	assert.Nil(t, rec.Metrics.Discovery.MostStable10k)
}

func TestValidateReportsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
		rule   string
	}{
		{
			name:   "missing required field",
			mutate: func(r map[string]any) { delete(r, "repo") },
			field:  "repo",
			rule:   "required",
		},
		{
			name:   "wrong primitive type",
			mutate: func(r map[string]any) { r["trained_for_benchmark"] = "yes" },
			field:  "trained_for_benchmark",
			rule:   "invalid_type",
		},
		{
			name:   "unknown training set",
			mutate: func(r map[string]any) { r["training_set"] = []any{"MPtrj", "ImageNet"} },
			field:  "training_set.1",
			rule:   "enum",
		},
		{
			name:   "unknown model type",
			mutate: func(r map[string]any) { r["model_type"] = "CNN" },
			field:  "model_type",
			rule:   "enum",
		},
		{
			name:   "negative parameter count",
			mutate: func(r map[string]any) { r["model_params"] = -1 },
			field:  "model_params",
			rule:   "number_gte",
		},
		{
			name:   "parameter count beyond int64",
			mutate: func(r map[string]any) { r["model_params"] = 1e19 },
			field:  "model_params",
			rule:   "number_lte",
		},
		{
			name: "hyperparameter count beyond int64",
			mutate: func(r map[string]any) {
				r["hyperparams"].(map[string]any)["max_steps"] = 2e19
			},
			field: "hyperparams.max_steps",
			rule:  "number_lte",
		},
		{
			name: "trainer with email",
			mutate: func(r map[string]any) {
				r["trained_by"] = []any{map[string]any{"name": "Janosh Riebesell", "email": "j@example.org"}}
			},
			field: "trained_by.0",
			rule:  "number_not",
		},
		{
			name: "unknown discovery set",
			mutate: func(r map[string]any) {
				disc := r["metrics"].(map[string]any)["discovery"].(map[string]any)
				disc["most_stable_100k"] = map[string]any{"F1": 0.9}
			},
			field: "metrics.discovery.most_stable_100k",
			rule:  "additional_property_not_allowed",
		},
		{
			name: "metric of wrong type",
			mutate: func(r map[string]any) {
				disc := r["metrics"].(map[string]any)["discovery"].(map[string]any)
				disc["full_test_set"].(map[string]any)["F1"] = "high"
			},
			field: "metrics.discovery.full_test_set.F1",
			rule:  "invalid_type",
		},
		{
			name: "requirements key pattern",
			mutate: func(r map[string]any) {
				r["requirements"] = map[string]any{"9lives": "1.0"}
			},
			field: "requirements.9lives",
			rule:  "invalid_property_name",
		},
		{
			name:   "unknown sentinel",
			mutate: func(r map[string]any) { r["metrics"].(map[string]any)["geo_opt"] = "pending" },
			field:  "metrics.geo_opt",
			rule:   "number_one_of",
		},
		{
			name: "non-finite metric",
			mutate: func(r map[string]any) {
				disc := r["metrics"].(map[string]any)["discovery"].(map[string]any)
				disc["unique_prototypes"].(map[string]any)["DAF"] = math.Inf(1)
			},
			field: "metrics.discovery.unique_prototypes.DAF",
			rule:  "non_finite",
		},
		{
			name:   "author without name",
			mutate: func(r map[string]any) { r["authors"] = []any{map[string]any{"email": "x@y.z"}} },
			field:  "authors.0.name",
			rule:   "required",
		},
		{
			name:   "unknown top-level key",
			mutate: func(r map[string]any) { r["gpu_hours"] = 12 },
			field:  "gpu_hours",
			rule:   "additional_property_not_allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(raw)

			_, err := Validate(raw)
			require.Error(t, err)

			var verr *ViolationError
			require.True(t, errors.As(err, &verr), "expected *ViolationError, got %T", err)

			found := false
			for _, v := range verr.Violations {
				if v.Field == tt.field && v.Rule == tt.rule {
					found = true
					break
				}
			}
			assert.True(t, found, "violation %s/%s not in %v", tt.field, tt.rule, verr.Violations)
		})
	}
}

func TestValidateYAMLSentinelsAndNaN(t *testing.T) {
	doc := `
model_name: Voronoi RF
authors:
  - name: Logan Ward
repo: https://github.com/janosh/matbench-discovery
doi: https://doi.org/10.1103/PhysRevB.96.024104
paper: https://arxiv.org/abs/1705.05324
requirements:
  matminer: 0.8.0
  scikit-learn: 1.1.2
trained_for_benchmark: true
training_set: [MP 2022]
model_params: 26243464
n_estimators: 1
train_task: RS2RE
test_task: IS2E
model_type: Fingerprint
targets: E
metrics:
  phonons: not applicable
  geo_opt: not applicable
  discovery:
    full_test_set:
      F1: .nan
`
	_, err := ValidateYAML([]byte(doc))
	var verr *ViolationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "metrics.discovery.full_test_set.F1", verr.First().Field)
	assert.Equal(t, "finite number", verr.First().Expected)
}

func TestValidateYAMLDecodesSentinels(t *testing.T) {
	doc := `
model_name: Voronoi RF
authors:
  - name: Logan Ward
repo: https://github.com/janosh/matbench-discovery
doi: https://doi.org/10.1103/PhysRevB.96.024104
paper: https://arxiv.org/abs/1705.05324
requirements:
  matminer: "0.8.0"
trained_for_benchmark: true
training_set: [MP 2022]
model_params: 26243464
n_estimators: 1
train_task: RS2RE
test_task: IS2E
model_type: Fingerprint
targets: E
metrics:
  phonons: not applicable
  geo_opt: not applicable
  discovery:
    unique_prototypes:
      F1: 0.344
`
	rec, err := ValidateYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, rec.Metrics.Phonons.Kind)
	assert.Equal(t, NotApplicable, rec.Metrics.GeoOpt.Kind)
	assert.Equal(t, 0.344, *rec.Metrics.Discovery.UniquePrototypes.F1)
}

func TestValidateJSONRejectsMalformed(t *testing.T) {
	_, err := ValidateJSON([]byte(`{"model_name":`))
	require.Error(t, err)
	var verr *ViolationError
	assert.False(t, errors.As(err, &verr))
}

func TestRecordRoundTripKeepsExtensions(t *testing.T) {
	rec, err := Validate(validRaw())
	require.NoError(t, err)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	again, err := ValidateJSON(data)
	require.NoError(t, err)
	assert.Equal(t, rec.Authors[0].Extra, again.Authors[0].Extra)
	assert.Equal(t, rec.Hyperparams.Extra, again.Hyperparams.Extra)
	assert.Equal(t, NotAvailable, again.Metrics.GeoOpt.Kind)
}

func TestSchemaIsPublishable(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"most_stable_10k"`)
	assert.Contains(t, string(data), RequirementKeyPattern)
}
