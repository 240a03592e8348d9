package leaderboard

import (
	"testing"

	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(name string, unique, full *float64) modelschema.ModelRecord {
	disc := &modelschema.Discovery{}
	if unique != nil {
		disc.UniquePrototypes = &modelschema.MetricBundle{F1: unique, DAF: modelschema.Float(*unique * 6)}
	}
	if full != nil {
		disc.FullTestSet = &modelschema.MetricBundle{F1: full}
	}
	return modelschema.ModelRecord{
		ModelName:           name,
		TrainedForBenchmark: true,
		ModelParams:         1_200_000,
		TrainingSet:         []modelschema.TrainingSet{modelschema.TrainingSetMPtrj},
		Metrics:             &modelschema.Metrics{Discovery: disc},
	}
}

func rowNames(v View) []string {
	out := make([]string, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Record.ModelName
	}
	return out
}

func TestSessionBestFollowsDiscoverySet(t *testing.T) {
	records := []modelschema.ModelRecord{
		record("one", modelschema.Float(0.6), nil),
		record("two", modelschema.Float(0.82), nil),
		record("three", modelschema.Float(0.75), modelschema.Float(0.5)),
	}
	s, err := New(records, Options{})
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, discovery.UniquePrototypes, v.ActiveSet)
	require.True(t, v.HasBest)
	assert.Equal(t, "two", v.Best.Model)
	assert.Equal(t, 0.82, v.Best.F1)

	require.NoError(t, s.SelectSet(discovery.FullTestSet))
	v = s.View()
	require.True(t, v.HasBest)
	assert.Equal(t, "three", v.Best.Model)
	assert.Equal(t, 0.5, v.Best.F1)

	require.NoError(t, s.SelectSet(discovery.MostStable10k))
	v = s.View()
	assert.False(t, v.HasBest)
	assert.Contains(t, v.BestSummary(), "No best model")
	assert.Len(t, v.Rows, 3, "rows without the set are still listed")
}

func TestSessionComplianceToggleOnlyAdds(t *testing.T) {
	aborted := record("aborted", modelschema.Float(0.99), nil)
	aborted.Status = modelschema.StatusAborted
	records := []modelschema.ModelRecord{
		record("a", modelschema.Float(0.4), nil),
		aborted,
		record("b", modelschema.Float(0.7), nil),
	}
	s, err := New(records, Options{SortKey: "model_name", Ascending: true})
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, []string{"a", "b"}, rowNames(v))
	assert.Equal(t, "b", v.Best.Model)
	assert.Equal(t, 3, v.TotalRecords)
	assert.Equal(t, 2, v.CompliantRecords)

	assert.True(t, s.ToggleNonCompliant())
	v = s.View()
	assert.Equal(t, []string{"a", "aborted", "b"}, rowNames(v))
	assert.Equal(t, "aborted", v.Best.Model)
	assert.Contains(t, v.Cells()[1][0], NonCompliantMark)
}

func TestSessionColumnsAndSort(t *testing.T) {
	records := []modelschema.ModelRecord{
		record("low", modelschema.Float(0.2), nil),
		record("high", modelschema.Float(0.9), nil),
	}
	s, err := New(records, Options{HiddenColumns: []string{"Precision"}, ShownColumns: []string{"TPR"}})
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, []string{"high", "low"}, rowNames(v), "default sort is F1 descending")
	assert.NotContains(t, v.Headers(), "Precision")
	assert.Contains(t, v.Headers(), "TPR")
	assert.Equal(t, "Model", v.Headers()[0])

	assert.False(t, s.ToggleColumn("no-such-column"))
	assert.True(t, s.ToggleColumn("model"))
	assert.NotContains(t, s.View().Headers(), "Model")

	s.ReverseSort()
	assert.Equal(t, []string{"low", "high"}, rowNames(s.View()))

	assert.Equal(t, string(modelschema.MetricDAF), s.CycleSort())
}

func TestSessionRejectsBadOptions(t *testing.T) {
	_, err := New(nil, Options{Set: "nope"})
	assert.ErrorIs(t, err, discovery.ErrUnknownSet)

	_, err = New(nil, Options{SortKey: "shoe_size"})
	assert.Error(t, err)

	_, err = New(nil, Options{HiddenColumns: []string{"shoe_size"}})
	assert.Error(t, err)
}

func TestViewCells(t *testing.T) {
	s, err := New([]modelschema.ModelRecord{record("m", modelschema.Float(0.5), nil)}, Options{})
	require.NoError(t, err)
	v := s.View()

	cells := v.Cells()
	require.Len(t, cells, 1)
	byHeader := map[string]string{}
	for i, h := range v.Headers() {
		byHeader[h] = cells[0][i]
	}
	assert.Equal(t, "m", byHeader["Model"])
	assert.Equal(t, "0.500", byHeader["F1"])
	assert.Equal(t, "3.00", byHeader["DAF"])
	assert.Equal(t, "n/a", byHeader["MAE"])
	assert.Equal(t, "1.2M", byHeader["Params"])
	assert.Equal(t, "MPtrj", byHeader["Training Set"])
	assert.Equal(t, "Best on Unique prototypes: m (F1 0.500, DAF 3.00)", v.BestSummary())
}

func TestDescribe(t *testing.T) {
	r := record("m", modelschema.Float(0.5), modelschema.Float(0.25))
	r.Authors = []modelschema.Author{{Name: "Ada", Affiliation: "Lab"}}
	r.Requirements = map[string]string{"torch": "2.1", "ase": "3.22"}
	phonons := modelschema.PhononsSentinel(modelschema.NotApplicable)
	r.Metrics.Phonons = &phonons

	byLabel := map[string]string{}
	for _, d := range Describe(r) {
		byLabel[d.Label] = d.Value
	}
	assert.Equal(t, "m", byLabel["Model"])
	assert.Equal(t, "Ada (Lab)", byLabel["Authors"])
	assert.Equal(t, "ase==3.22, torch==2.1", byLabel["Requirements"])
	assert.Equal(t, "true", byLabel["Compliant"])
	assert.Equal(t, "F1=0.5 DAF=3", byLabel["Unique prototypes"])
	assert.Equal(t, "F1=0.25", byLabel["Full test set"])
	assert.NotContains(t, byLabel, "10k most stable")
	assert.NotContains(t, byLabel, "Version")
	assert.Equal(t, modelschema.NotApplicable.String(), byLabel["Phonons"])
}
