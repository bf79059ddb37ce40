package layers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vespertine/reliquary/internal/rng"
	"github.com/vespertine/reliquary/internal/testutil"
)

func TestNewGeometry_ScriptedDraws(t *testing.T) {
	// Scripted fractions pin every draw. Dyadic values keep the expected
	// arithmetic exact enough for tight deltas.
	vals := []float64{
		0.0, // nSets = 2
		// set 1
		0.5, 0.5, 0.5, 0.5, 0.75, 0.5, 0.25,
		// set 2
		0.25, 0.75, 0.0, 0.875, 0.5, 0.0, 0.75,
		0.5, // nSpirals = 2
		0.5, 0.5, // spiral 1
		0.0, 0.25, // spiral 2
		0.0, // nGuides = 8
	}
	for i := 0; i < 8; i++ {
		vals = append(vals, 0.5, 0.5) // jitter = 0, length = 0.425
	}
	src := testutil.NewSequenceSource(vals...)

	g := NewGeometry(src, 4)
	assert.Equal(t, 0, src.Remaining(), "every scripted draw consumed")

	require.Len(t, g.CircleSets, 2)
	s1 := g.CircleSets[0]
	assert.InDelta(t, 0.0, s1.CenterX, 1e-12)
	assert.InDelta(t, 0.0, s1.CenterY, 1e-12)
	assert.InDelta(t, 0.30, s1.MaxRadius, 1e-12)
	assert.Equal(t, 6, s1.Circles)
	assert.False(t, s1.Filled, "0.75 is above the 0.7 fill chance")
	assert.InDelta(t, 0.08, s1.FillAlpha, 1e-12)
	assert.Equal(t, 1, s1.Palette)

	s2 := g.CircleSets[1]
	assert.InDelta(t, -0.04, s2.CenterX, 1e-12)
	assert.InDelta(t, 0.04, s2.CenterY, 1e-12)
	assert.InDelta(t, 0.18, s2.MaxRadius, 1e-12)
	assert.Equal(t, 8, s2.Circles)
	assert.True(t, s2.Filled)
	assert.InDelta(t, 0.04, s2.FillAlpha, 1e-12)
	assert.Equal(t, 3, s2.Palette)

	require.Len(t, g.Spirals, 2)
	assert.InDelta(t, 0.39, g.Spirals[0].MaxRadius, 1e-12)
	assert.InDelta(t, 3.0, g.Spirals[0].Turns, 1e-12)
	assert.InDelta(t, 0.30, g.Spirals[1].MaxRadius, 1e-12)
	assert.InDelta(t, 2.5, g.Spirals[1].Turns, 1e-12)
	assert.Equal(t, SpiralSamples, g.Spirals[0].Points)

	require.Len(t, g.Guides, 8)
	for i, guide := range g.Guides {
		assert.InDelta(t, 2*math.Pi*float64(i)/8, guide.Angle, 1e-12, "guide %d sits on even spacing with zero jitter", i)
		assert.InDelta(t, 0.425, guide.Length, 1e-12)
	}
}

func TestNewGeometry_BoundsHoldAcrossSeeds(t *testing.T) {
	for seed := uint32(0); seed < 200; seed++ {
		g := NewGeometry(rng.NewSource(seed), 4)

		require.GreaterOrEqual(t, len(g.CircleSets), GeometryMinCircleSets)
		require.LessOrEqual(t, len(g.CircleSets), GeometryMaxCircleSets)
		for _, s := range g.CircleSets {
			require.GreaterOrEqual(t, s.MaxRadius, CircleSetMinRadius)
			require.LessOrEqual(t, s.MaxRadius, CircleSetMaxRadius)
			require.GreaterOrEqual(t, s.Circles, CircleSetMinCircles)
			require.Less(t, s.Circles, CircleSetMaxCircles)
			require.GreaterOrEqual(t, s.Palette, 0)
			require.Less(t, s.Palette, 4)
		}

		require.GreaterOrEqual(t, len(g.Spirals), GeometryMinSpirals)
		require.LessOrEqual(t, len(g.Spirals), GeometryMaxSpirals)

		require.GreaterOrEqual(t, len(g.Guides), GeometryMinGuides)
		require.LessOrEqual(t, len(g.Guides), GeometryMaxGuides)
		for _, gd := range g.Guides {
			require.GreaterOrEqual(t, gd.Length, GuideMinLength)
			require.LessOrEqual(t, gd.Length, GuideMaxLength)
		}
	}
}

func TestNewGeometry_Deterministic(t *testing.T) {
	a := NewGeometry(rng.NewSource(777), 4)
	b := NewGeometry(rng.NewSource(777), 4)
	assert.Equal(t, a, b, "same seed, same geometry")
}

func TestCircleSet_RadiusOf(t *testing.T) {
	s := CircleSet{MaxRadius: 0.4, Circles: 4}
	assert.InDelta(t, 0.1, s.RadiusOf(0), 1e-12)
	assert.InDelta(t, 0.2, s.RadiusOf(1), 1e-12)
	assert.InDelta(t, 0.4, s.RadiusOf(3), 1e-12, "outermost circle sits at MaxRadius")
	assert.Equal(t, 0.0, CircleSet{}.RadiusOf(0))
}

func TestSpiral_Sample(t *testing.T) {
	s := Spiral{MaxRadius: 0.4, Turns: 3, Points: SpiralSamples}
	x0, y0 := s.Sample(0)
	assert.Equal(t, 0.0, x0, "spiral starts at the center")
	assert.Equal(t, 0.0, y0)

	// The endpoint's radius is MaxRadius * phi (t=1 in the growth formula).
	xN, yN := s.Sample(s.Points - 1)
	assert.InDelta(t, s.MaxRadius*Phi, math.Hypot(xN, yN), 1e-9)

	x, y := Spiral{}.Sample(0)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestReveal_Thresholds(t *testing.T) {
	assert.False(t, GuidesVisible(0.0))
	assert.True(t, GuidesVisible(RevealGuides))
	assert.False(t, SpiralsVisible(0.09))
	assert.True(t, SpiralsVisible(RevealSpirals))
}

func TestVisibleCircles(t *testing.T) {
	assert.Equal(t, 0, VisibleCircles(0.0, 6))
	assert.Equal(t, 0, VisibleCircles(0.19, 6))
	assert.Equal(t, 0, VisibleCircles(RevealCircles, 6), "reveal boundary maps to zero circles")
	assert.Equal(t, 3, VisibleCircles(0.6, 6))
	assert.Equal(t, 6, VisibleCircles(1.0, 6))
	assert.Equal(t, 6, VisibleCircles(2.0, 6), "over-completion clamps")
	assert.Equal(t, 0, VisibleCircles(1.0, 0))
}
