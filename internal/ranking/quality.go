// internal/ranking/quality.go
package ranking

import (
	"fmt"

	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/modelschema"
)

// Issue is a data-quality finding about a producer-supplied value. It never blocks rendering.
type Issue struct {
	Model   string `json:"model_name"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Model, i.Field, i.Message)
}

// CheckBest flags a best-model result whose F1 lies outside [0, 1] or whose DAF is negative.
func CheckBest(b Best) []Issue {
	return checkBundle(b.Model, b.Set, modelschema.MetricBundle{F1: &b.F1, DAF: b.DAF})
}

// CheckRows applies the same bounds to every projected row.
func CheckRows(rows []Row, set discovery.Set) []Issue {
	var issues []Issue
	for _, row := range rows {
		if !row.HasBundle {
			continue
		}
		issues = append(issues, checkBundle(row.Record.ModelName, set, row.Bundle)...)
	}
	return issues
}

func checkBundle(model string, set discovery.Set, b modelschema.MetricBundle) []Issue {
	var issues []Issue
	prefix := "metrics.discovery." + string(set) + "."
	if b.F1 != nil && (*b.F1 < 0 || *b.F1 > 1) {
		issues = append(issues, Issue{
			Model:   model,
			Field:   prefix + string(modelschema.MetricF1),
			Message: fmt.Sprintf("F1 %.4g outside [0, 1]", *b.F1),
		})
	}
	if b.DAF != nil && *b.DAF < 0 {
		issues = append(issues, Issue{
			Model:   model,
			Field:   prefix + string(modelschema.MetricDAF),
			Message: fmt.Sprintf("DAF %.4g is negative", *b.DAF),
		})
	}
	return issues
}
