// internal/modelschema/record.go
// Package modelschema defines the canonical shape of a benchmarked model record and
// validates arbitrary JSON-like values against it.
package modelschema

import "encoding/json"

// ModelRecord is one validated model submission.
type ModelRecord struct {
	ModelName     string `json:"model_name"`
	ModelKey      string `json:"model_key,omitempty"`
	ModelVersion  string `json:"model_version,omitempty"`
	DateAdded     string `json:"date_added,omitempty"`
	DatePublished string `json:"date_published,omitempty"`

	Authors   []Author  `json:"authors"`
	TrainedBy []Trainer `json:"trained_by,omitempty"`
	Repo      string    `json:"repo"`
	DOI       string    `json:"doi"`
	Paper     string    `json:"paper"`
	URL       string    `json:"url,omitempty"`
	PyPI      string    `json:"pypi,omitempty"`

	Requirements        map[string]string `json:"requirements"`
	TrainedForBenchmark bool              `json:"trained_for_benchmark"`
	TrainingSet         []TrainingSet     `json:"training_set"`
	Hyperparams         *Hyperparams      `json:"hyperparams,omitempty"`
	Notes               *Notes            `json:"notes,omitempty"`

	ModelParams int64     `json:"model_params"`
	NEstimators int64     `json:"n_estimators"`
	TrainTask   TrainTask `json:"train_task"`
	TestTask    TestTask  `json:"test_task"`
	ModelType   ModelType `json:"model_type"`
	Targets     Targets   `json:"targets"`
	Openness    Openness  `json:"openness,omitempty"`
	Status      Status    `json:"status,omitempty"`

	Metrics *Metrics `json:"metrics,omitempty"`
}

// Author is a person credited with the model. Keys beyond the known ones are kept in Extra.
type Author struct {
	Name        string         `json:"name"`
	Affiliation string         `json:"affiliation,omitempty"`
	Email       string         `json:"email,omitempty"`
	ORCID       string         `json:"orcid,omitempty"`
	Extra       map[string]any `json:"-"`
}

// Trainer is a person who ran the benchmark training. Same as Author without email, plus github.
type Trainer struct {
	Name        string         `json:"name"`
	Affiliation string         `json:"affiliation,omitempty"`
	ORCID       string         `json:"orcid,omitempty"`
	GitHub      string         `json:"github,omitempty"`
	Extra       map[string]any `json:"-"`
}

// Hyperparams holds the commonly reported hyperparameters; anything else lands in Extra.
type Hyperparams struct {
	MaxForce            *float64       `json:"max_force,omitempty"`
	MaxSteps            *int64         `json:"max_steps,omitempty"`
	ASEOptimizer        string         `json:"ase_optimizer,omitempty"`
	Optimizer           string         `json:"optimizer,omitempty"`
	Loss                string         `json:"loss,omitempty"`
	CellFilter          string         `json:"cell_filter,omitempty"`
	BatchSize           *int64         `json:"batch_size,omitempty"`
	InitialLearningRate *float64       `json:"initial_learning_rate,omitempty"`
	LearningRate        *float64       `json:"learning_rate,omitempty"`
	Epochs              *int64         `json:"epochs,omitempty"`
	NLayers             *int64         `json:"n_layers,omitempty"`
	RadialCutoff        *float64       `json:"radial_cutoff,omitempty"`
	Extra               map[string]any `json:"-"`
}

// Notes holds free-text sections. HTML maps a section name to pre-rendered markup.
type Notes struct {
	Description  string            `json:"Description,omitempty"`
	Training     string            `json:"Training,omitempty"`
	MissingPreds string            `json:"Missing Preds,omitempty"`
	HTML         map[string]string `json:"html,omitempty"`
	Extra        map[string]any    `json:"-"`
}

// Metrics bundles every pre-computed evaluation result of a model.
type Metrics struct {
	Phonons   *Phonons   `json:"phonons,omitempty"`
	GeoOpt    *GeoOpt    `json:"geo_opt,omitempty"`
	Discovery *Discovery `json:"discovery,omitempty"`
}

// Discovery has one optional bundle per discovery set. The key set is closed.
type Discovery struct {
	FullTestSet      *MetricBundle `json:"full_test_set,omitempty"`
	UniquePrototypes *MetricBundle `json:"unique_prototypes,omitempty"`
	MostStable10k    *MetricBundle `json:"most_stable_10k,omitempty"`
}

// MetricBundle is the set of classification and regression metrics reported for one discovery set.
type MetricBundle struct {
	F1        *float64 `json:"F1,omitempty"`
	DAF       *float64 `json:"DAF,omitempty"`
	Precision *float64 `json:"Precision,omitempty"`
	Recall    *float64 `json:"Recall,omitempty"`
	Accuracy  *float64 `json:"Accuracy,omitempty"`
	TPR       *float64 `json:"TPR,omitempty"`
	FPR       *float64 `json:"FPR,omitempty"`
	TNR       *float64 `json:"TNR,omitempty"`
	FNR       *float64 `json:"FNR,omitempty"`
	TP        *float64 `json:"TP,omitempty"`
	FP        *float64 `json:"FP,omitempty"`
	TN        *float64 `json:"TN,omitempty"`
	FN        *float64 `json:"FN,omitempty"`
	MAE       *float64 `json:"MAE,omitempty"`
	RMSE      *float64 `json:"RMSE,omitempty"`
	R2        *float64 `json:"R2,omitempty"`

	MissingPreds   *float64 `json:"missing_preds,omitempty"`
	MissingPercent string   `json:"missing_percent,omitempty"`
	PredFile       string   `json:"pred_file,omitempty"`
	PredCol        string   `json:"pred_col,omitempty"`
}

// PhononMetrics is the measured form of the phonons metric.
type PhononMetrics struct {
	KappaSRME *float64 `json:"κ_SRME,omitempty"`
}

// GeoOptMetrics is the measured form of the geometry-optimization metric.
type GeoOptMetrics struct {
	PredFile         *string  `json:"pred_file"`
	PredCol          *string  `json:"pred_col"`
	RMSD             *float64 `json:"rmsd,omitempty"`
	NSymOpsMAE       *float64 `json:"n_sym_ops_mae,omitempty"`
	SymmetryDecrease *float64 `json:"symmetry_decrease,omitempty"`
	SymmetryMatch    *float64 `json:"symmetry_match,omitempty"`
	SymmetryIncrease *float64 `json:"symmetry_increase,omitempty"`
	NStructures      *float64 `json:"n_structures,omitempty"`
}

var (
	authorKeys     = []string{"name", "affiliation", "email", "orcid"}
	trainerKeys    = []string{"name", "affiliation", "orcid", "github"}
	hyperparamKeys = []string{"max_force", "max_steps", "ase_optimizer", "optimizer", "loss", "cell_filter", "batch_size", "initial_learning_rate", "learning_rate", "epochs", "n_layers", "radial_cutoff"}
	notesKeys      = []string{"Description", "Training", "Missing Preds", "html"}
)

func (a *Author) UnmarshalJSON(data []byte) error {
	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := residual(data, authorKeys)
	if err != nil {
		return err
	}
	p.Extra = extra
	*a = Author(p)
	return nil
}

func (a Author) MarshalJSON() ([]byte, error) {
	type plain Author
	return withExtra(plain(a), a.Extra)
}

func (t *Trainer) UnmarshalJSON(data []byte) error {
	type plain Trainer
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := residual(data, trainerKeys)
	if err != nil {
		return err
	}
	p.Extra = extra
	*t = Trainer(p)
	return nil
}

func (t Trainer) MarshalJSON() ([]byte, error) {
	type plain Trainer
	return withExtra(plain(t), t.Extra)
}

func (h *Hyperparams) UnmarshalJSON(data []byte) error {
	type plain Hyperparams
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := residual(data, hyperparamKeys)
	if err != nil {
		return err
	}
	p.Extra = extra
	*h = Hyperparams(p)
	return nil
}

func (h Hyperparams) MarshalJSON() ([]byte, error) {
	type plain Hyperparams
	return withExtra(plain(h), h.Extra)
}

func (n *Notes) UnmarshalJSON(data []byte) error {
	type plain Notes
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := residual(data, notesKeys)
	if err != nil {
		return err
	}
	p.Extra = extra
	*n = Notes(p)
	return nil
}

func (n Notes) MarshalJSON() ([]byte, error) {
	type plain Notes
	return withExtra(plain(n), n.Extra)
}

// residual returns every key of the JSON object in data that is not one of known.
func residual(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// withExtra marshals v and merges extra keys into the resulting object. Known keys win.
func withExtra(v any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var merged map[string]any
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, val := range extra {
		if _, taken := merged[k]; !taken {
			merged[k] = val
		}
	}
	return json.Marshal(merged)
}
