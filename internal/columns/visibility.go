// internal/columns/visibility.go
// Package columns keeps per-session column visibility for the leaderboard table.
package columns

// Column describes one table column a renderer knows how to draw.
type Column struct {
	ID            string
	Label         string
	DefaultHidden bool
}

// Visibility maps column ids to their current visibility. It is plain session state:
// not safe for concurrent use and never persisted.
type Visibility struct {
	known   []Column
	index   map[string]int
	visible map[string]bool
}

// New creates visibility state for the known columns. Columns flagged DefaultHidden start
// hidden, everything else visible. With no known columns every id is accepted.
func New(known []Column) *Visibility {
	v := &Visibility{
		known: append([]Column(nil), known...),
		index: make(map[string]int, len(known)),
	}
	for i, c := range v.known {
		v.index[c.ID] = i
	}
	v.Reset()
	return v
}

// Reset restores every column to its default.
func (v *Visibility) Reset() {
	v.visible = make(map[string]bool, len(v.known))
	for _, c := range v.known {
		v.visible[c.ID] = !c.DefaultHidden
	}
}

// Known reports whether id is part of the table's column set.
func (v *Visibility) Known(id string) bool {
	if len(v.known) == 0 {
		return true
	}
	_, ok := v.index[id]
	return ok
}

// IsVisible returns the current visibility of id; ids never set are visible.
func (v *Visibility) IsVisible(id string) bool {
	shown, ok := v.visible[id]
	if !ok {
		return true
	}
	return shown
}

// Toggle flips id and returns true. Unknown ids are a no-op and return false.
func (v *Visibility) Toggle(id string) bool {
	if !v.Known(id) {
		return false
	}
	v.visible[id] = !v.IsVisible(id)
	return true
}

// Set forces id to the given visibility. Unknown ids are ignored.
func (v *Visibility) Set(id string, shown bool) bool {
	if !v.Known(id) {
		return false
	}
	v.visible[id] = shown
	return true
}

// Columns returns the known columns in declaration order.
func (v *Visibility) Columns() []Column {
	return append([]Column(nil), v.known...)
}

// Visible returns the known columns that are currently shown, in declaration order.
func (v *Visibility) Visible() []Column {
	out := make([]Column, 0, len(v.known))
	for _, c := range v.known {
		if v.IsVisible(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Snapshot copies the id -> visible mapping for every known or explicitly set column.
func (v *Visibility) Snapshot() map[string]bool {
	out := make(map[string]bool, len(v.visible))
	for id, shown := range v.visible {
		out[id] = shown
	}
	return out
}
