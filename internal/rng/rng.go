package rng

// Hash computes a deterministic 32-bit seed from an identity string.
//
// Multiply-shift rolling hash over the raw bytes (h = h*31 + b with uint32
// wraparound). The function is total: any string, including the empty
// string, hashes to a valid seed. Identical input always produces an
// identical seed - this is the root of the reproducibility guarantee.
func Hash(identity string) uint32 {
	var h uint32
	for i := 0; i < len(identity); i++ {
		h = h*31 + uint32(identity[i])
	}
	return h
}

// Source is a Mulberry32 seeded pseudo-random number generator.
//
// Mulberry32 is small, fast, and passes the statistical tests that matter
// for visual generation. The state advances on every draw; a Source must
// never be shared across concerns that need independent sequences.
//
// Not safe for concurrent use. The frame loop runs on a single goroutine,
// so no locking is required.
type Source struct {
	state       uint32
	initialSeed uint32
}

// NewSource creates a Source seeded with the given value.
func NewSource(seed uint32) *Source {
	return &Source{state: seed, initialSeed: seed}
}

// SetSeed replaces the seed and resets generator state.
func (s *Source) SetSeed(seed uint32) {
	s.state = seed
	s.initialSeed = seed
}

// Reset rewinds the generator to its initial seed.
func (s *Source) Reset() {
	s.state = s.initialSeed
}

// Float64 advances the generator and returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Uniform returns a value in [min, max).
func (s *Source) Uniform(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}

// IntN returns an integer in [min, max).
func (s *Source) IntN(min, max int) int {
	return min + int(s.Float64()*float64(max-min))
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.Float64() < p
}
