package layers

// Rand is the draw interface generators consume at construction time.
// Satisfied by *rng.Source in production and by stub sequence sources in
// tests.
type Rand interface {
	// Float64 returns the next value in [0, 1).
	Float64() float64
	// Uniform returns a value in [min, max).
	Uniform(min, max float64) float64
	// IntN returns an integer in [min, max).
	IntN(min, max int) int
	// Chance returns true with probability p.
	Chance(p float64) bool
}

// NoiseField is the coherent noise contract the particle layer steers by.
// Satisfied by *rng.Noise and by rng.RandomSource adapters.
type NoiseField interface {
	// Eval samples the field at a 3D coordinate. Result is in [0, 1).
	Eval(x, y, z float64) float64
}
