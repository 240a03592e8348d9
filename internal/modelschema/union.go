// internal/modelschema/union.go
package modelschema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Availability tags which variant of an object-or-sentinel metric a record carries.
type Availability int

const (
	// Measured means the metric carries a structured bundle.
	Measured Availability = iota
	// NotApplicable means the metric does not apply to the model (e.g. energy-only models).
	NotApplicable
	// NotAvailable means the metric applies but was not submitted.
	NotAvailable
)

const (
	sentinelNotApplicable = "not applicable"
	sentinelNotAvailable  = "not available"
)

func (a Availability) String() string {
	switch a {
	case Measured:
		return "measured"
	case NotApplicable:
		return sentinelNotApplicable
	case NotAvailable:
		return sentinelNotAvailable
	default:
		return fmt.Sprintf("availability(%d)", int(a))
	}
}

func parseSentinel(s string) (Availability, error) {
	switch s {
	case sentinelNotApplicable:
		return NotApplicable, nil
	case sentinelNotAvailable:
		return NotAvailable, nil
	default:
		return 0, fmt.Errorf("unknown metric sentinel %q", s)
	}
}

// Phonons is either a measured PhononMetrics bundle or one of the two sentinels, never both.
type Phonons struct {
	Kind     Availability
	measured *PhononMetrics
}

// MeasuredPhonons wraps a bundle as the Measured variant.
func MeasuredPhonons(m PhononMetrics) Phonons {
	return Phonons{Kind: Measured, measured: &m}
}

// PhononsSentinel returns the NotApplicable or NotAvailable variant.
func PhononsSentinel(kind Availability) Phonons {
	return Phonons{Kind: kind}
}

// Metrics returns the measured bundle; ok is false for sentinel variants.
func (p Phonons) Metrics() (PhononMetrics, bool) {
	if p.Kind != Measured || p.measured == nil {
		return PhononMetrics{}, false
	}
	return *p.measured, true
}

func (p *Phonons) UnmarshalJSON(data []byte) error {
	kind, isSentinel, err := decodeSentinel(data)
	if err != nil {
		return fmt.Errorf("phonons: %w", err)
	}
	if isSentinel {
		*p = PhononsSentinel(kind)
		return nil
	}
	var m PhononMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("phonons: %w", err)
	}
	*p = MeasuredPhonons(m)
	return nil
}

func (p Phonons) MarshalJSON() ([]byte, error) {
	if m, ok := p.Metrics(); ok {
		return json.Marshal(m)
	}
	return json.Marshal(p.Kind.String())
}

// GeoOpt is either a measured GeoOptMetrics bundle or one of the two sentinels, never both.
type GeoOpt struct {
	Kind     Availability
	measured *GeoOptMetrics
}

// MeasuredGeoOpt wraps a bundle as the Measured variant.
func MeasuredGeoOpt(m GeoOptMetrics) GeoOpt {
	return GeoOpt{Kind: Measured, measured: &m}
}

// GeoOptSentinel returns the NotApplicable or NotAvailable variant.
func GeoOptSentinel(kind Availability) GeoOpt {
	return GeoOpt{Kind: kind}
}

// Metrics returns the measured bundle; ok is false for sentinel variants.
func (g GeoOpt) Metrics() (GeoOptMetrics, bool) {
	if g.Kind != Measured || g.measured == nil {
		return GeoOptMetrics{}, false
	}
	return *g.measured, true
}

func (g *GeoOpt) UnmarshalJSON(data []byte) error {
	kind, isSentinel, err := decodeSentinel(data)
	if err != nil {
		return fmt.Errorf("geo_opt: %w", err)
	}
	if isSentinel {
		*g = GeoOptSentinel(kind)
		return nil
	}
	var m GeoOptMetrics
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("geo_opt: %w", err)
	}
	*g = MeasuredGeoOpt(m)
	return nil
}

func (g GeoOpt) MarshalJSON() ([]byte, error) {
	if m, ok := g.Metrics(); ok {
		return json.Marshal(m)
	}
	return json.Marshal(g.Kind.String())
}

// decodeSentinel reports whether data is a JSON string and, if so, which sentinel it names.
func decodeSentinel(data []byte) (Availability, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return Measured, false, nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return 0, false, err
	}
	kind, err := parseSentinel(s)
	if err != nil {
		return 0, false, err
	}
	return kind, true, nil
}
