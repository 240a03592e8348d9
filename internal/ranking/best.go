// internal/ranking/best.go
// Package ranking derives the best model of a view and orders projected rows.
package ranking

import (
	"math"

	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/modelschema"
)

// Best is the record with the highest F1 on a discovery set. DAF is nil when the record
// does not report one.
type Best struct {
	Record modelschema.ModelRecord `json:"-"`
	Model  string                  `json:"model_name"`
	Set    discovery.Set           `json:"discovery_set"`
	F1     float64                 `json:"F1"`
	DAF    *float64                `json:"DAF,omitempty"`
}

// ResolveBest projects every record onto set and returns the one with maximal F1.
// Records without the set or without a finite F1 are skipped. Ties go to the record that
// appears first in the input. ok is false when no record qualifies.
//
// Values are compared as given; out-of-range F1 or negative DAF are not clamped (see CheckBest).
func ResolveBest(records []modelschema.ModelRecord, set discovery.Set) (best Best, ok bool) {
	for _, r := range records {
		bundle, has := discovery.Project(r, set)
		if !has || bundle.F1 == nil {
			continue
		}
		f1 := *bundle.F1
		if math.IsNaN(f1) || math.IsInf(f1, 0) {
			continue
		}
		if ok && f1 <= best.F1 {
			continue
		}
		best = Best{Record: r, Model: r.ModelName, Set: set, F1: f1, DAF: bundle.DAF}
		ok = true
	}
	return best, ok
}
