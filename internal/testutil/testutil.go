// Package testutil provides deterministic stubs shared across test
// packages: a scripted draw source, a constant noise field, and a frozen
// clock.
package testutil

import "time"

// SequenceSource implements the layers.Rand draw interface from a scripted
// slice of [0,1) values. Panics when exhausted - fail fast on test
// misconfiguration, the same approach as the fixed token generator.
type SequenceSource struct {
	values []float64
	idx    int
}

// NewSequenceSource creates a source that returns values in order.
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 returns the next scripted value.
func (s *SequenceSource) Float64() float64 {
	if s.idx >= len(s.values) {
		panic("SequenceSource: all values exhausted")
	}
	v := s.values[s.idx]
	s.idx++
	return v
}

// Uniform maps the next scripted value into [min, max).
func (s *SequenceSource) Uniform(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// IntN maps the next scripted value into [min, max).
func (s *SequenceSource) IntN(min, max int) int {
	return min + int(s.Float64()*float64(max-min))
}

// Chance reports whether the next scripted value is below p.
func (s *SequenceSource) Chance(p float64) bool {
	return s.Float64() < p
}

// Remaining returns how many scripted values are left.
func (s *SequenceSource) Remaining() int {
	return len(s.values) - s.idx
}

// ConstantNoise implements layers.NoiseField with a fixed value,
// removing steering variation from particle tests.
type ConstantNoise struct {
	Value float64
}

// Eval returns the fixed value regardless of coordinates.
func (n ConstantNoise) Eval(x, y, z float64) float64 {
	return n.Value
}

// ConstantAmbient implements layers.Ambient with a fixed fraction:
// Uniform(min, max) always returns min + Frac*(max-min).
type ConstantAmbient struct {
	Frac float64
}

// Uniform returns the fixed fraction of the range.
func (a ConstantAmbient) Uniform(min, max float64) float64 {
	return min + a.Frac*(max-min)
}

// FrozenClock returns a now-func pinned to a fixed instant.
func FrozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
