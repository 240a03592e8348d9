// internal/modelschema/enums.go
package modelschema

// TrainingSet names one of the fixed training corpora a model may have been fit on.
type TrainingSet string

const (
	TrainingSetMP2022    TrainingSet = "MP 2022"
	TrainingSetMPtrj     TrainingSet = "MPtrj"
	TrainingSetMPF       TrainingSet = "MPF"
	TrainingSetMPGraphs  TrainingSet = "MP Graphs"
	TrainingSetGNoME     TrainingSet = "GNoME"
	TrainingSetMatterSim TrainingSet = "MatterSim"
	TrainingSetAlex      TrainingSet = "Alex"
	TrainingSetOMat24    TrainingSet = "OMat24"
	TrainingSetSAlex     TrainingSet = "sAlex"
)

// TrainTask is the task a model was trained on (RS2RE = relaxed structure to relaxed energy, ...).
type TrainTask string

const (
	TrainTaskRP2RE  TrainTask = "RP2RE"
	TrainTaskRS2RE  TrainTask = "RS2RE"
	TrainTaskS2E    TrainTask = "S2E"
	TrainTaskS2RE   TrainTask = "S2RE"
	TrainTaskS2EF   TrainTask = "S2EF"
	TrainTaskS2EFS  TrainTask = "S2EFS"
	TrainTaskS2EFSM TrainTask = "S2EFSM"
)

// TestTask is the task a model was evaluated on.
type TestTask string

const (
	TestTaskIP2E    TestTask = "IP2E"
	TestTaskIS2E    TestTask = "IS2E"
	TestTaskIS2RE   TestTask = "IS2RE"
	TestTaskIS2RESR TestTask = "IS2RE-SR"
	TestTaskIS2REBO TestTask = "IS2RE-BO"
)

// ModelType is the broad architecture family of a model.
type ModelType string

const (
	ModelTypeGNN         ModelType = "GNN"
	ModelTypeUIP         ModelType = "UIP"
	ModelTypeBOGNN       ModelType = "BO-GNN"
	ModelTypeFingerprint ModelType = "Fingerprint"
	ModelTypeTransformer ModelType = "Transformer"
	ModelTypeRF          ModelType = "RF"
)

// Targets describes which quantities a model predicts (E = energy, F = forces, S = stress,
// M = magmoms; _G/_D = gradient-based or direct forces).
type Targets string

const (
	TargetsE     Targets = "E"
	TargetsEFG   Targets = "EF_G"
	TargetsEFD   Targets = "EF_D"
	TargetsEFSG  Targets = "EFS_G"
	TargetsEFSD  Targets = "EFS_D"
	TargetsEFSGM Targets = "EFS_GM"
	TargetsEFSDM Targets = "EFS_DM"
)

// Openness classifies code and data availability (O = open, C = closed; S = source, D = data).
type Openness string

const (
	OpennessOSOD Openness = "OSOD"
	OpennessOSCD Openness = "OSCD"
	OpennessCSOD Openness = "CSOD"
	OpennessCSCD Openness = "CSCD"
)

// Status is the submission status of a model record.
type Status string

const (
	StatusAborted  Status = "aborted"
	StatusComplete Status = "complete"
)

var (
	trainingSets = []TrainingSet{
		TrainingSetMP2022, TrainingSetMPtrj, TrainingSetMPF, TrainingSetMPGraphs, TrainingSetGNoME,
		TrainingSetMatterSim, TrainingSetAlex, TrainingSetOMat24, TrainingSetSAlex,
	}
	trainTasks = []TrainTask{
		TrainTaskRP2RE, TrainTaskRS2RE, TrainTaskS2E, TrainTaskS2RE, TrainTaskS2EF, TrainTaskS2EFS, TrainTaskS2EFSM,
	}
	testTasks  = []TestTask{TestTaskIP2E, TestTaskIS2E, TestTaskIS2RE, TestTaskIS2RESR, TestTaskIS2REBO}
	modelTypes = []ModelType{
		ModelTypeGNN, ModelTypeUIP, ModelTypeBOGNN, ModelTypeFingerprint, ModelTypeTransformer, ModelTypeRF,
	}
	targets = []Targets{
		TargetsE, TargetsEFG, TargetsEFD, TargetsEFSG, TargetsEFSD, TargetsEFSGM, TargetsEFSDM,
	}
	opennessValues = []Openness{OpennessOSOD, OpennessOSCD, OpennessCSOD, OpennessCSCD}
	statuses       = []Status{StatusAborted, StatusComplete}
)

// TrainingSets returns the closed training-set vocabulary in canonical order.
func TrainingSets() []TrainingSet { return append([]TrainingSet(nil), trainingSets...) }

// TrainTasks returns every accepted train_task code.
func TrainTasks() []TrainTask { return append([]TrainTask(nil), trainTasks...) }

// TestTasks returns every accepted test_task code.
func TestTasks() []TestTask { return append([]TestTask(nil), testTasks...) }

// ModelTypes returns every accepted model_type code.
func ModelTypes() []ModelType { return append([]ModelType(nil), modelTypes...) }

// TargetValues returns every accepted targets code.
func TargetValues() []Targets { return append([]Targets(nil), targets...) }

// OpennessValues returns every accepted openness code.
func OpennessValues() []Openness { return append([]Openness(nil), opennessValues...) }

// Statuses returns every accepted status value.
func Statuses() []Status { return append([]Status(nil), statuses...) }

// enumValues converts a typed vocabulary into the []any form used by the JSON schema.
func enumValues[T ~string](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
