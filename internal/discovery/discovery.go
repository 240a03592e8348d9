// internal/discovery/discovery.go
// Package discovery selects which of the three discovery sets a view ranks models on.
package discovery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mwiater/matboard/internal/modelschema"
)

// Set names one of the fixed evaluation subsets.
type Set string

const (
	FullTestSet      Set = "full_test_set"
	UniquePrototypes Set = "unique_prototypes"
	MostStable10k    Set = "most_stable_10k"

	// Default is the set active when a session starts.
	Default = UniquePrototypes
)

// ErrUnknownSet is returned for names outside the three fixed discovery sets.
var ErrUnknownSet = errors.New("unknown discovery set")

var all = []Set{FullTestSet, UniquePrototypes, MostStable10k}

// All returns the three discovery sets in display order.
func All() []Set { return append([]Set(nil), all...) }

// Label returns a short human-readable name for the set.
func (s Set) Label() string {
	switch s {
	case FullTestSet:
		return "Full test set"
	case UniquePrototypes:
		return "Unique prototypes"
	case MostStable10k:
		return "10k most stable"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the three fixed sets.
func (s Set) Valid() bool {
	for _, known := range all {
		if s == known {
			return true
		}
	}
	return false
}

// Parse converts a set name; an empty name yields Default.
func Parse(name string) (Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default, nil
	}
	s := Set(name)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s, %s, %s)", ErrUnknownSet, name, FullTestSet, UniquePrototypes, MostStable10k)
	}
	return s, nil
}

// Project returns the record's metric bundle for the given set, or false when the record
// has no metrics for it.
func Project(r modelschema.ModelRecord, s Set) (modelschema.MetricBundle, bool) {
	if r.Metrics == nil || r.Metrics.Discovery == nil {
		return modelschema.MetricBundle{}, false
	}
	var b *modelschema.MetricBundle
	switch s {
	case FullTestSet:
		b = r.Metrics.Discovery.FullTestSet
	case UniquePrototypes:
		b = r.Metrics.Discovery.UniquePrototypes
	case MostStable10k:
		b = r.Metrics.Discovery.MostStable10k
	}
	if b == nil {
		return modelschema.MetricBundle{}, false
	}
	return *b, true
}

// Selector holds the single active discovery set. Transitions happen only through Select
// or Next; there is no terminal state.
type Selector struct {
	active Set
}

// NewSelector returns a selector positioned on Default.
func NewSelector() *Selector {
	return &Selector{active: Default}
}

// Active returns the current set.
func (s *Selector) Active() Set {
	if s.active == "" {
		return Default
	}
	return s.active
}

// Select makes set active. Unknown sets are rejected and leave the state unchanged.
func (s *Selector) Select(set Set) error {
	if !set.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSet, set)
	}
	s.active = set
	return nil
}

// Next advances to the following set in display order, wrapping around.
func (s *Selector) Next() Set {
	current := s.Active()
	for i, set := range all {
		if set == current {
			s.active = all[(i+1)%len(all)]
			break
		}
	}
	return s.active
}
