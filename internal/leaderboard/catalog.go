// internal/leaderboard/catalog.go
package leaderboard

import (
	"fmt"
	"strings"

	"github.com/mwiater/matboard/internal/columns"
	"github.com/mwiater/matboard/internal/compliance"
	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/mwiater/matboard/internal/ranking"
)

// NonCompliantMark is appended to the model cell of records that are not benchmark-compliant.
const NonCompliantMark = " *"

const missingCell = "n/a"

// ColumnSpec is a table column: its visibility identity plus how to fill a cell.
type ColumnSpec struct {
	columns.Column
	SortKey string
	Cell    func(ranking.Row) string
}

var catalog = []ColumnSpec{
	{Column: columns.Column{ID: "model", Label: "Model"}, SortKey: ranking.SortByName, Cell: modelCell},
	metricColumn(modelschema.MetricF1, "%.3f", false),
	metricColumn(modelschema.MetricDAF, "%.2f", false),
	metricColumn(modelschema.MetricPrecision, "%.3f", false),
	metricColumn(modelschema.MetricRecall, "%.3f", false),
	metricColumn(modelschema.MetricAccuracy, "%.3f", false),
	metricColumn(modelschema.MetricTPR, "%.3f", true),
	metricColumn(modelschema.MetricFPR, "%.3f", true),
	metricColumn(modelschema.MetricTNR, "%.3f", true),
	metricColumn(modelschema.MetricFNR, "%.3f", true),
	metricColumn(modelschema.MetricMAE, "%.3f", false),
	metricColumn(modelschema.MetricRMSE, "%.3f", false),
	metricColumn(modelschema.MetricR2, "%.3f", false),
	metricColumn(modelschema.MetricMissingPreds, "%.0f", true),
	{Column: columns.Column{ID: "kappa_srme", Label: "κSRME"}, Cell: kappaCell},
	{Column: columns.Column{ID: "rmsd", Label: "RMSD", DefaultHidden: true}, Cell: rmsdCell},
	{Column: columns.Column{ID: "training_set", Label: "Training Set"}, Cell: trainingSetCell},
	{Column: columns.Column{ID: "model_params", Label: "Params"}, SortKey: ranking.SortByParams, Cell: paramsCell},
	{Column: columns.Column{ID: "model_type", Label: "Type", DefaultHidden: true}, Cell: func(r ranking.Row) string { return orMissing(string(r.Record.ModelType)) }},
	{Column: columns.Column{ID: "targets", Label: "Targets", DefaultHidden: true}, Cell: func(r ranking.Row) string { return orMissing(string(r.Record.Targets)) }},
	{Column: columns.Column{ID: "openness", Label: "Openness", DefaultHidden: true}, Cell: func(r ranking.Row) string { return orMissing(string(r.Record.Openness)) }},
}

// Catalog returns every column the leaderboard can render, in display order.
func Catalog() []ColumnSpec {
	return append([]ColumnSpec(nil), catalog...)
}

// KnownColumns returns the visibility identities of the catalog.
func KnownColumns() []columns.Column {
	out := make([]columns.Column, len(catalog))
	for i, c := range catalog {
		out[i] = c.Column
	}
	return out
}

// SortKeys returns every sortable key in catalog order.
func SortKeys() []string {
	var keys []string
	for _, c := range catalog {
		if c.SortKey != "" {
			keys = append(keys, c.SortKey)
		}
	}
	return keys
}

func specByID(id string) (ColumnSpec, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

func metricColumn(key modelschema.MetricKey, format string, hidden bool) ColumnSpec {
	return ColumnSpec{
		Column:  columns.Column{ID: string(key), Label: string(key), DefaultHidden: hidden},
		SortKey: string(key),
		Cell: func(r ranking.Row) string {
			if !r.HasBundle {
				return missingCell
			}
			v, ok := r.Bundle.Value(key)
			if !ok {
				return missingCell
			}
			return fmt.Sprintf(format, v)
		},
	}
}

func modelCell(r ranking.Row) string {
	if compliance.IsCompliant(r.Record) {
		return r.Record.ModelName
	}
	return r.Record.ModelName + NonCompliantMark
}

func kappaCell(r ranking.Row) string {
	if r.Record.Metrics == nil || r.Record.Metrics.Phonons == nil {
		return missingCell
	}
	m, ok := r.Record.Metrics.Phonons.Metrics()
	if !ok {
		return r.Record.Metrics.Phonons.Kind.String()
	}
	if m.KappaSRME == nil {
		return missingCell
	}
	return fmt.Sprintf("%.3f", *m.KappaSRME)
}

func rmsdCell(r ranking.Row) string {
	if r.Record.Metrics == nil || r.Record.Metrics.GeoOpt == nil {
		return missingCell
	}
	m, ok := r.Record.Metrics.GeoOpt.Metrics()
	if !ok {
		return r.Record.Metrics.GeoOpt.Kind.String()
	}
	if m.RMSD == nil {
		return missingCell
	}
	return fmt.Sprintf("%.4f", *m.RMSD)
}

func trainingSetCell(r ranking.Row) string {
	if len(r.Record.TrainingSet) == 0 {
		return missingCell
	}
	parts := make([]string, len(r.Record.TrainingSet))
	for i, s := range r.Record.TrainingSet {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func paramsCell(r ranking.Row) string {
	n := float64(r.Record.ModelParams)
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.1fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.1fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.0fK", n/1e3)
	default:
		return fmt.Sprintf("%.0f", n)
	}
}

func orMissing(s string) string {
	if s == "" {
		return missingCell
	}
	return s
}
