package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vespertine/reliquary/internal/rng"
	"github.com/vespertine/reliquary/internal/testutil"
)

// scriptedGrid builds a grid from fully pinned draws: side 10, ten cells at
// (5,5), three fragments with zero lateral drift and z-drift 0.115.
func scriptedGrid(t *testing.T) *Grid {
	t.Helper()
	vals := []float64{
		0.25, // side = 10
		0.0,  // nFilled = 10
	}
	for i := 0; i < 10; i++ {
		vals = append(vals, 0.5, 0.5, 0.25, 0.5) // row 5, col 5, palette 1, alpha 0.35
	}
	vals = append(vals, 0.0) // nFrags = 3
	for i := 0; i < 3; i++ {
		vals = append(vals, 0.5, 0.5, 0.5, 0.5, 0.5)
	}
	src := testutil.NewSequenceSource(vals...)
	g := NewGrid(src, 4)
	require.Equal(t, 0, src.Remaining())
	return g
}

func TestNewGrid_ScriptedDraws(t *testing.T) {
	g := scriptedGrid(t)

	assert.Equal(t, 10, g.Side)
	require.Len(t, g.Cells, 10)
	for _, c := range g.Cells {
		assert.Equal(t, 5, c.Row)
		assert.Equal(t, 5, c.Col)
		assert.Equal(t, 1, c.Palette)
		assert.InDelta(t, 0.35, c.Alpha, 1e-12)
	}
	require.Len(t, g.Fragments, 3)
	for _, f := range g.Fragments {
		assert.Equal(t, 5, f.Row)
		assert.InDelta(t, 0.0, f.Drift[0], 1e-12)
		assert.InDelta(t, 0.0, f.Drift[1], 1e-12)
		assert.InDelta(t, 0.115, f.Drift[2], 1e-12)
	}
}

func TestNewGrid_BoundsHoldAcrossSeeds(t *testing.T) {
	for seed := uint32(0); seed < 200; seed++ {
		g := NewGrid(rng.NewSource(seed), 4)
		require.GreaterOrEqual(t, g.Side, GridMinSide)
		require.Less(t, g.Side, GridMaxSide)
		require.GreaterOrEqual(t, len(g.Cells), GridMinFilled)
		require.Less(t, len(g.Cells), GridMaxFilled)
		require.GreaterOrEqual(t, len(g.Fragments), GridMinFragments)
		require.Less(t, len(g.Fragments), GridMaxFragments)
		for _, c := range g.Cells {
			require.GreaterOrEqual(t, c.Row, 0)
			require.Less(t, c.Row, g.Side)
			require.GreaterOrEqual(t, c.Col, 0)
			require.Less(t, c.Col, g.Side)
		}
	}
}

func TestGrid_UpdateDetachAndSettle(t *testing.T) {
	g := scriptedGrid(t)

	_, st := g.FragmentAt(0)
	assert.False(t, st.Detached)
	assert.Equal(t, [3]float64{}, st.Offset)

	// Below the threshold nothing moves.
	g.Update(0.1, ZLiftDetachThreshold)
	_, st = g.FragmentAt(0)
	assert.False(t, st.Detached, "threshold itself does not detach")

	// Above the threshold fragments latch detached and drift.
	g.Update(0.1, 0.8)
	_, st = g.FragmentAt(0)
	assert.True(t, st.Detached)
	assert.Greater(t, st.Offset[2], 0.0, "z offset grows while lifting")
	lifted := st.Offset[2]

	// Drift scales with how far past the threshold the lift is.
	g.Update(0.1, 0.8)
	_, st = g.FragmentAt(0)
	assert.InDelta(t, 2*lifted, st.Offset[2], 1e-12)

	// Dropping below the threshold settles offsets back toward the plane.
	for i := 0; i < 100; i++ {
		g.Update(0.1, 0.0)
	}
	_, st = g.FragmentAt(0)
	assert.True(t, st.Detached, "settling does not clear the latch")
	assert.InDelta(t, 0.0, st.Offset[2], 1e-6, "offsets decay to the plane")
}

func TestGrid_UpdateZeroDTIsNoOp(t *testing.T) {
	g := scriptedGrid(t)
	g.Update(0, 1.0)
	_, st := g.FragmentAt(0)
	assert.False(t, st.Detached)
}

func TestGrid_SettleClampsLargeDT(t *testing.T) {
	g := scriptedGrid(t)
	g.Update(0.1, 1.0)
	g.Update(10, 0.0) // settle factor clamps at 1: offset collapses, never overshoots
	_, st := g.FragmentAt(0)
	assert.Equal(t, 0.0, st.Offset[2])
}

func TestGrid_InnerLines(t *testing.T) {
	g := &Grid{Side: 10}
	assert.Equal(t, 3, g.InnerLineCount(), "11 lines, inner 30%")

	center := 5 // line index 5 of 0..10
	assert.True(t, g.IsInnerLine(center))
	assert.False(t, g.IsInnerLine(0))
	assert.False(t, g.IsInnerLine(10))
}
