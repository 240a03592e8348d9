// internal/leaderboard/session.go
// Package leaderboard composes validated records, the compliance toggle, the discovery-set
// selector and column visibility into one per-session state whose View is what renderers draw.
package leaderboard

import (
	"fmt"

	"github.com/mwiater/matboard/internal/columns"
	"github.com/mwiater/matboard/internal/compliance"
	"github.com/mwiater/matboard/internal/discovery"
	"github.com/mwiater/matboard/internal/modelschema"
	"github.com/mwiater/matboard/internal/ranking"
)

// DefaultSortKey orders the table when no sort is configured.
const DefaultSortKey = string(modelschema.MetricF1)

// Options seeds a new session.
type Options struct {
	Set                 discovery.Set
	IncludeNonCompliant bool
	HiddenColumns       []string
	ShownColumns        []string
	SortKey             string
	Ascending           bool
}

// Session is the mutable UI state over an immutable record set. Every mutator is a single
// synchronous state change; Session is not safe for concurrent use.
type Session struct {
	records             []modelschema.ModelRecord
	selector            *discovery.Selector
	includeNonCompliant bool
	visibility          *columns.Visibility
	sortKey             string
	descending          bool
}

// View is the output boundary consumed by renderers.
type View struct {
	Rows                []ranking.Row
	Best                ranking.Best
	HasBest             bool
	ActiveSet           discovery.Set
	IncludeNonCompliant bool
	Columns             []ColumnSpec
	Visibility          map[string]bool
	SortKey             string
	Descending          bool
	Issues              []ranking.Issue
	TotalRecords        int
	CompliantRecords    int
}

// New creates a session over records, which must already be validated.
func New(records []modelschema.ModelRecord, opts Options) (*Session, error) {
	s := &Session{
		records:             records,
		selector:            discovery.NewSelector(),
		includeNonCompliant: opts.IncludeNonCompliant,
		visibility:          columns.New(KnownColumns()),
		sortKey:             DefaultSortKey,
		descending:          !opts.Ascending,
	}
	if opts.Set != "" {
		if err := s.selector.Select(opts.Set); err != nil {
			return nil, err
		}
	}
	if opts.SortKey != "" {
		if err := s.SetSort(opts.SortKey, !opts.Ascending); err != nil {
			return nil, err
		}
	}
	for _, id := range opts.HiddenColumns {
		if !s.visibility.Set(id, false) {
			return nil, fmt.Errorf("unknown column %q", id)
		}
	}
	for _, id := range opts.ShownColumns {
		if !s.visibility.Set(id, true) {
			return nil, fmt.Errorf("unknown column %q", id)
		}
	}
	return s, nil
}

// Records returns every loaded record regardless of filters.
func (s *Session) Records() []modelschema.ModelRecord { return s.records }

// Record looks up a record by model name.
func (s *Session) Record(name string) (modelschema.ModelRecord, bool) {
	for _, r := range s.records {
		if r.ModelName == name {
			return r, true
		}
	}
	return modelschema.ModelRecord{}, false
}

// ActiveSet returns the selected discovery set.
func (s *Session) ActiveSet() discovery.Set { return s.selector.Active() }

// SelectSet switches the active discovery set.
func (s *Session) SelectSet(set discovery.Set) error { return s.selector.Select(set) }

// NextSet cycles to the next discovery set.
func (s *Session) NextSet() discovery.Set { return s.selector.Next() }

// IncludeNonCompliant reports the state of the "show non-compliant models" toggle.
func (s *Session) IncludeNonCompliant() bool { return s.includeNonCompliant }

// SetIncludeNonCompliant sets the compliance toggle.
func (s *Session) SetIncludeNonCompliant(include bool) { s.includeNonCompliant = include }

// ToggleNonCompliant flips the compliance toggle and returns the new value.
func (s *Session) ToggleNonCompliant() bool {
	s.includeNonCompliant = !s.includeNonCompliant
	return s.includeNonCompliant
}

// ToggleColumn flips one column; unknown ids have no effect and return false.
func (s *Session) ToggleColumn(id string) bool { return s.visibility.Toggle(id) }

// ColumnVisible reports whether the column is currently shown.
func (s *Session) ColumnVisible(id string) bool { return s.visibility.IsVisible(id) }

// SetSort orders rows by key.
func (s *Session) SetSort(key string, descending bool) error {
	if !ranking.ValidSortKey(key) {
		return fmt.Errorf("unknown sort column %q", key)
	}
	s.sortKey = key
	s.descending = descending
	return nil
}

// CycleSort moves to the next sortable column in catalog order.
func (s *Session) CycleSort() string {
	keys := SortKeys()
	next := keys[0]
	for i, k := range keys {
		if k == s.sortKey {
			next = keys[(i+1)%len(keys)]
			break
		}
	}
	s.sortKey = next
	return next
}

// ReverseSort flips the sort direction.
func (s *Session) ReverseSort() bool {
	s.descending = !s.descending
	return s.descending
}

// View derives the current filtered, projected and sorted rows plus the best model.
func (s *Session) View() View {
	set := s.selector.Active()
	filtered := compliance.Filter(s.records, s.includeNonCompliant)
	compliant, _ := compliance.Partition(s.records)

	rows := ranking.Project(filtered, set)
	ranking.Sort(rows, s.sortKey, s.descending)

	best, ok := ranking.ResolveBest(filtered, set)
	issues := ranking.CheckRows(rows, set)

	var visible []ColumnSpec
	for _, c := range s.visibility.Visible() {
		if spec, found := specByID(c.ID); found {
			visible = append(visible, spec)
		}
	}

	return View{
		Rows:                rows,
		Best:                best,
		HasBest:             ok,
		ActiveSet:           set,
		IncludeNonCompliant: s.includeNonCompliant,
		Columns:             visible,
		Visibility:          s.visibility.Snapshot(),
		SortKey:             s.sortKey,
		Descending:          s.descending,
		Issues:              issues,
		TotalRecords:        len(s.records),
		CompliantRecords:    len(compliant),
	}
}

// Headers returns the labels of the visible columns.
func (v View) Headers() []string {
	out := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		out[i] = c.Label
	}
	return out
}

// Cells renders every row as strings for the visible columns.
func (v View) Cells() [][]string {
	out := make([][]string, len(v.Rows))
	for i, row := range v.Rows {
		cells := make([]string, len(v.Columns))
		for j, c := range v.Columns {
			cells[j] = c.Cell(row)
		}
		out[i] = cells
	}
	return out
}

// BestSummary renders the best-model line, or a placeholder when there is none.
func (v View) BestSummary() string {
	if !v.HasBest {
		return fmt.Sprintf("No best model for %s", v.ActiveSet.Label())
	}
	daf := "unknown"
	if v.Best.DAF != nil {
		daf = fmt.Sprintf("%.2f", *v.Best.DAF)
	}
	return fmt.Sprintf("Best on %s: %s (F1 %.3f, DAF %s)", v.ActiveSet.Label(), v.Best.Model, v.Best.F1, daf)
}
