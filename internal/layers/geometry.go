package layers

import "math"

// CircleSet is a concentric ring of circles around a jittered center.
type CircleSet struct {
	CenterX   float64
	CenterY   float64
	MaxRadius float64
	Circles   int
	Filled    bool
	FillAlpha float64
	Palette   int
}

// RadiusOf returns the radius of circle i (0-based, innermost first).
// Radii are evenly spaced up to MaxRadius.
func (s CircleSet) RadiusOf(i int) float64 {
	if s.Circles <= 0 {
		return 0
	}
	return s.MaxRadius * float64(i+1) / float64(s.Circles)
}

// Spiral is a logarithmic spiral parameterized by the golden ratio.
//
// radius(t) = t * MaxRadius * phi^(2t-1) and angle(t) = t * Turns * 2*pi
// for t in [0, 1], sampled at Points evenly spaced parameter values.
type Spiral struct {
	MaxRadius float64
	Turns     float64
	Points    int
}

// Sample returns point i of the spiral in canvas coordinates.
func (s Spiral) Sample(i int) (x, y float64) {
	if s.Points <= 1 {
		return 0, 0
	}
	t := float64(i) / float64(s.Points-1)
	r := t * s.MaxRadius * math.Pow(Phi, 2*t-1)
	a := t * s.Turns * 2 * math.Pi
	return r * math.Cos(a), r * math.Sin(a)
}

// Guide is one radial construction line from the canvas center.
type Guide struct {
	// Angle is the guide's direction, radians. Near-even spacing with a
	// small per-guide jitter.
	Angle float64
	// Length is the guide's extent from center.
	Length float64
}

// Geometry is the immutable descriptor set of the geometry layer.
type Geometry struct {
	CircleSets []CircleSet
	Spirals    []Spiral
	Guides     []Guide
}

// NewGeometry generates the geometry layer from the seeded source.
//
// Draw order is part of the edition's identity - do not reorder.
func NewGeometry(r Rand, paletteCount int) *Geometry {
	g := &Geometry{}

	nSets := r.IntN(GeometryMinCircleSets, GeometryMaxCircleSets+1)
	g.CircleSets = make([]CircleSet, nSets)
	for i := range g.CircleSets {
		g.CircleSets[i] = CircleSet{
			CenterX:   r.Uniform(-CircleSetMaxCenterOffset, CircleSetMaxCenterOffset),
			CenterY:   r.Uniform(-CircleSetMaxCenterOffset, CircleSetMaxCenterOffset),
			MaxRadius: r.Uniform(CircleSetMinRadius, CircleSetMaxRadius),
			Circles:   r.IntN(CircleSetMinCircles, CircleSetMaxCircles),
			Filled:    r.Chance(CircleSetFillChance),
			FillAlpha: r.Uniform(CircleSetMinFillAlpha, CircleSetMaxFillAlpha),
			Palette:   r.IntN(0, paletteCount),
		}
	}

	nSpirals := r.IntN(GeometryMinSpirals, GeometryMaxSpirals+1)
	g.Spirals = make([]Spiral, nSpirals)
	for i := range g.Spirals {
		g.Spirals[i] = Spiral{
			MaxRadius: r.Uniform(SpiralMinRadius, SpiralMaxRadius),
			Turns:     r.Uniform(SpiralMinTurns, SpiralMaxTurns),
			Points:    SpiralSamples,
		}
	}

	nGuides := r.IntN(GeometryMinGuides, GeometryMaxGuides+1)
	g.Guides = make([]Guide, nGuides)
	for i := range g.Guides {
		jitter := r.Uniform(-GuideAngleJitter, GuideAngleJitter)
		length := r.Uniform(GuideMinLength, GuideMaxLength)
		g.Guides[i] = Guide{
			Angle:  2*math.Pi*float64(i)/float64(nGuides) + jitter,
			Length: length,
		}
	}

	return g
}

// GuidesVisible reports whether guides have been revealed at the given
// geometry-completion level.
func GuidesVisible(completion float64) bool { return completion >= RevealGuides }

// SpiralsVisible reports whether spirals have been revealed.
func SpiralsVisible(completion float64) bool { return completion >= RevealSpirals }

// VisibleCircles returns how many circles of a set are revealed.
//
// Completion is remapped from [RevealCircles, 1.0] to [0, 1], clamped, and
// the visible count is ceil(mapped * count).
func VisibleCircles(completion float64, count int) int {
	if completion < RevealCircles || count <= 0 {
		return 0
	}
	mapped := (completion - RevealCircles) / (1 - RevealCircles)
	if mapped > 1 {
		mapped = 1
	}
	n := int(math.Ceil(mapped * float64(count)))
	if n > count {
		n = count
	}
	return n
}
