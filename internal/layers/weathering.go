package layers

// Stain is one organic aging blob.
type Stain struct {
	X       float64
	Y       float64
	Radius  float64
	Opacity float64
	Palette int
}

// Fleck is one small glitch speck.
type Fleck struct {
	X       float64
	Y       float64
	Size    float64
	Opacity float64
}

// Ambient supplies fresh per-frame randomness for texture effects.
// Satisfied by rng.RandomSource.
type Ambient interface {
	Uniform(min, max float64) float64
}

// Weathering is the weathering layer: seed-derived stains and flecks plus
// per-frame texture effects.
//
// The grain and dither effects draw from the ambient source every frame and
// are therefore NOT reproducible byte-for-byte across frames or runs. This
// non-determinism is intentional and confined to texture - the stain and
// fleck layout is fully seed-derived.
type Weathering struct {
	Stains  []Stain
	Flecks  []Fleck
	ambient Ambient
}

// NewWeathering generates the weathering layer from the seeded source.
//
// Draw order is part of the edition's identity - do not reorder. The
// ambient source contributes no draws at construction.
func NewWeathering(r Rand, paletteCount int, ambient Ambient) *Weathering {
	w := &Weathering{
		Stains:  make([]Stain, StainCount),
		Flecks:  make([]Fleck, FleckCount),
		ambient: ambient,
	}
	for i := range w.Stains {
		w.Stains[i] = Stain{
			X:       r.Uniform(-StainMaxCenter, StainMaxCenter),
			Y:       r.Uniform(-StainMaxCenter, StainMaxCenter),
			Radius:  r.Uniform(StainMinRadius, StainMaxRadius),
			Opacity: r.Uniform(StainMinOpacity, StainMaxOpacity),
			Palette: r.IntN(0, paletteCount),
		}
	}
	for i := range w.Flecks {
		w.Flecks[i] = Fleck{
			X:       r.Uniform(-FleckMaxCenter, FleckMaxCenter),
			Y:       r.Uniform(-FleckMaxCenter, FleckMaxCenter),
			Size:    r.Uniform(FleckMinSize, FleckMaxSize),
			Opacity: r.Uniform(FleckMinOpacity, FleckMaxOpacity),
		}
	}
	return w
}

// Grain returns a fresh grain intensity for this frame, scaled by the
// weathering amount. Never reproducible across frames; see type docs.
func (w *Weathering) Grain(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return w.ambient.Uniform(0, amount)
}

// ditherStates gates the pixelation overlay to the late ritual stages.
var ditherStates = map[string]bool{
	"DESTABILIZE": true,
	"RESOLUTION":  true,
	"RELIC":       true,
}

// DitherEnabled reports whether the dithering/pixelation overlay runs in
// the given state.
func DitherEnabled(state string) bool {
	return ditherStates[state]
}
