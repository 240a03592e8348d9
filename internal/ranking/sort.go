// internal/ranking/sort.go
package ranking

import (
	"sort"
	"strings"

	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/modelschema"
)

// Row is a record projected onto one discovery set. HasBundle is false when the record
// reports nothing for that set; such rows are still listed but never ranked.
type Row struct {
	Record    modelschema.ModelRecord
	Bundle    modelschema.MetricBundle
	HasBundle bool
}

// Sort keys that read from the record rather than the metric bundle.
const (
	SortByName   = "model_name"
	SortByParams = "model_params"
)

// Project maps records onto set, keeping input order.
func Project(records []modelschema.ModelRecord, set discovery.Set) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		b, ok := discovery.Project(r, set)
		rows = append(rows, Row{Record: r, Bundle: b, HasBundle: ok})
	}
	return rows
}

// ValidSortKey reports whether key names a sortable column.
func ValidSortKey(key string) bool {
	if key == SortByName || key == SortByParams {
		return true
	}
	for _, k := range modelschema.MetricKeys() {
		if string(k) == key {
			return true
		}
	}
	return false
}

// Sort orders rows in place by key. Rows missing the value always go last regardless of
// direction, and equal values keep their input order. An unknown key leaves rows untouched.
func Sort(rows []Row, key string, descending bool) {
	if !ValidSortKey(key) {
		return
	}
	if key == SortByName {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := strings.ToLower(rows[i].Record.ModelName), strings.ToLower(rows[j].Record.ModelName)
			if descending {
				return a > b
			}
			return a < b
		})
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := sortValue(rows[i], key)
		b, bok := sortValue(rows[j], key)
		switch {
		case !aok:
			return false
		case !bok:
			return true
		case descending:
			return a > b
		default:
			return a < b
		}
	})
}

func sortValue(row Row, key string) (float64, bool) {
	if key == SortByParams {
		return float64(row.Record.ModelParams), true
	}
	if !row.HasBundle {
		return 0, false
	}
	return row.Bundle.Value(modelschema.MetricKey(key))
}
