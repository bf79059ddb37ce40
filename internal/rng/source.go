package rng

// RandomSource is the ambient randomness contract shared with the host
// rendering library.
//
// The session seeds one instance at startup so any randomness the renderer
// performs independently is also reproducible. Hosts that expose their own
// seedable source implement this interface; when none is available the
// session falls back to LocalSource.
//
// The fallback degrades the determinism guarantee only if the host renderer
// ALSO keeps its own unseeded source - the core itself never does.
type RandomSource interface {
	// SetSeed resets the source to a deterministic state.
	SetSeed(seed uint32)

	// Uniform returns a value in [min, max).
	Uniform(min, max float64) float64

	// Noise samples a smooth pseudo-random field at a 3D coordinate.
	// Result is in [0, 1).
	Noise(x, y, z float64) float64
}

// LocalSource is the in-process fallback RandomSource.
//
// Combines a Mulberry32 draw stream with a seeded OpenSimplex field.
// SetSeed re-derives both, so a frozen relic can re-seed the ambient
// stream before export without touching generator state.
type LocalSource struct {
	src   *Source
	noise *Noise
}

var _ RandomSource = (*LocalSource)(nil)

// NewLocalSource creates a LocalSource seeded with the given value.
func NewLocalSource(seed uint32) *LocalSource {
	return &LocalSource{src: NewSource(seed), noise: NewNoise(seed)}
}

// SetSeed re-seeds both the draw stream and the noise field.
func (l *LocalSource) SetSeed(seed uint32) {
	l.src.SetSeed(seed)
	l.noise = NewNoise(seed)
}

// Uniform returns a value in [min, max).
func (l *LocalSource) Uniform(min, max float64) float64 {
	return l.src.Uniform(min, max)
}

// Noise samples the coherent field at a 3D coordinate.
func (l *LocalSource) Noise(x, y, z float64) float64 {
	return l.noise.Eval(x, y, z)
}
