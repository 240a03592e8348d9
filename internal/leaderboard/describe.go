// internal/leaderboard/describe.go
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwiater/matboard/internal/compliance"
	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/mwiater/matboard/internal/ranking"
)

// Detail is one labelled line of a record inspection.
type Detail struct {
	Label string
	Value string
}

// Describe flattens a record into the lines shown when a model is inspected.
// Empty optional fields are skipped.
func Describe(r modelschema.ModelRecord) []Detail {
	var out []Detail
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			out = append(out, Detail{Label: label, Value: value})
		}
	}

	add("Model", r.ModelName)
	add("Version", r.ModelVersion)
	add("Compliant", fmt.Sprintf("%t", compliance.IsCompliant(r)))
	add("Status", string(r.Status))
	add("Trained for benchmark", fmt.Sprintf("%t", r.TrainedForBenchmark))

	authors := make([]string, len(r.Authors))
	for i, a := range r.Authors {
		authors[i] = person(a.Name, a.Affiliation)
	}
	add("Authors", strings.Join(authors, "; "))
	trainers := make([]string, len(r.TrainedBy))
	for i, t := range r.TrainedBy {
		trainers[i] = person(t.Name, t.Affiliation)
	}
	add("Trained by", strings.Join(trainers, "; "))

	add("Repo", r.Repo)
	add("Paper", r.Paper)
	add("DOI", r.DOI)
	add("Date added", r.DateAdded)
	add("Date published", r.DatePublished)

	sets := make([]string, len(r.TrainingSet))
	for i, s := range r.TrainingSet {
		sets[i] = string(s)
	}
	add("Training set", strings.Join(sets, ", "))
	add("Parameters", fmt.Sprintf("%d", r.ModelParams))
	add("Estimators", fmt.Sprintf("%d", r.NEstimators))
	add("Train task", string(r.TrainTask))
	add("Test task", string(r.TestTask))
	add("Model type", string(r.ModelType))
	add("Targets", string(r.Targets))
	add("Openness", string(r.Openness))
	add("Requirements", requirements(r.Requirements))

	if r.Metrics != nil {
		if r.Metrics.Phonons != nil {
			add("Phonons", kappaCell(rowOf(r)))
		}
		if r.Metrics.GeoOpt != nil {
			add("Geometry optimization", rmsdCell(rowOf(r)))
		}
	}
	for _, set := range discovery.All() {
		bundle, ok := discovery.Project(r, set)
		if !ok {
			continue
		}
		add(set.Label(), bundleSummary(bundle))
	}
	if r.Notes != nil {
		add("Notes", r.Notes.Description)
	}
	return out
}

func rowOf(r modelschema.ModelRecord) ranking.Row { return ranking.Row{Record: r} }

func person(name, affiliation string) string {
	if affiliation == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, affiliation)
}

func requirements(reqs map[string]string) string {
	keys := make([]string, 0, len(reqs))
	for k := range reqs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "==" + reqs[k]
	}
	return strings.Join(parts, ", ")
}

func bundleSummary(b modelschema.MetricBundle) string {
	var parts []string
	for _, key := range modelschema.MetricKeys() {
		if v, ok := b.Value(key); ok {
			parts = append(parts, fmt.Sprintf("%s=%.4g", key, v))
		}
	}
	if b.MissingPercent != "" {
		parts = append(parts, "missing_percent="+b.MissingPercent)
	}
	if len(parts) == 0 {
		return missingCell
	}
	return strings.Join(parts, " ")
}
