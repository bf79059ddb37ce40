package layers

// GridCell is one filled cell of the grid.
type GridCell struct {
	Row     int
	Col     int
	Palette int
	Alpha   float64
}

// Fragment is the immutable template of a detachable grid fragment: the
// cell it detaches from and its per-second 3D drift vector.
type Fragment struct {
	Row   int
	Col   int
	Drift [3]float64
}

// FragmentState is the mutable runtime record paired with a Fragment by
// index. Only Grid.Update writes it.
type FragmentState struct {
	Offset   [3]float64
	Detached bool
}

// Grid is the grid layer: an immutable descriptor set plus the runtime
// state of its fragments.
type Grid struct {
	// Side is the square grid's side length in cells.
	Side int
	// Cells are the filled cells.
	Cells []GridCell
	// Fragments are the detachable fragment templates.
	Fragments []Fragment

	states []FragmentState
}

// NewGrid generates the grid layer from the seeded source.
//
// Draw order is part of the edition's identity - do not reorder.
func NewGrid(r Rand, paletteCount int) *Grid {
	g := &Grid{}
	g.Side = r.IntN(GridMinSide, GridMaxSide)

	nFilled := r.IntN(GridMinFilled, GridMaxFilled)
	g.Cells = make([]GridCell, nFilled)
	for i := range g.Cells {
		g.Cells[i] = GridCell{
			Row:     r.IntN(0, g.Side),
			Col:     r.IntN(0, g.Side),
			Palette: r.IntN(0, paletteCount),
			Alpha:   r.Uniform(GridCellMinAlpha, GridCellMaxAlpha),
		}
	}

	nFrags := r.IntN(GridMinFragments, GridMaxFragments)
	g.Fragments = make([]Fragment, nFrags)
	for i := range g.Fragments {
		g.Fragments[i] = Fragment{
			Row: r.IntN(0, g.Side),
			Col: r.IntN(0, g.Side),
			Drift: [3]float64{
				r.Uniform(-FragmentMaxLateralDrift, FragmentMaxLateralDrift),
				r.Uniform(-FragmentMaxLateralDrift, FragmentMaxLateralDrift),
				r.Uniform(FragmentMinZDrift, FragmentMaxZDrift),
			},
		}
	}
	g.states = make([]FragmentState, nFrags)

	return g
}

// Update advances fragment drift for one frame.
//
// While z-lift exceeds the detach threshold, fragments drift along their
// template vectors, scaled by how far past the threshold the lift is. When
// lift drops back below the threshold, offsets settle toward the plane.
func (g *Grid) Update(dt, zLift float64) {
	if dt <= 0 {
		return
	}
	lifting := zLift > ZLiftDetachThreshold
	for i := range g.states {
		st := &g.states[i]
		if lifting {
			st.Detached = true
			gain := zLift - ZLiftDetachThreshold
			for a := 0; a < 3; a++ {
				st.Offset[a] += g.Fragments[i].Drift[a] * gain * dt
			}
			continue
		}
		if !st.Detached {
			continue
		}
		settle := FragmentSettleRate * dt
		if settle > 1 {
			settle = 1
		}
		for a := 0; a < 3; a++ {
			st.Offset[a] -= st.Offset[a] * settle
		}
	}
}

// FragmentAt returns the template and runtime state of fragment i.
func (g *Grid) FragmentAt(i int) (Fragment, FragmentState) {
	return g.Fragments[i], g.states[i]
}

// InnerLineCount returns how many lines, counted outward from the grid
// center, carry the inner palette color (the innermost GridInnerBand
// fraction of lines).
func (g *Grid) InnerLineCount() int {
	// Side+1 lines per axis; band measured from the center line outward.
	lines := g.Side + 1
	return int(float64(lines) * GridInnerBand)
}

// IsInnerLine reports whether line index i (0-based, per axis) falls in the
// inner band around the grid center.
func (g *Grid) IsInnerLine(i int) bool {
	lines := g.Side + 1
	center := float64(lines-1) / 2
	dist := float64(i) - center
	if dist < 0 {
		dist = -dist
	}
	return dist <= center*GridInnerBand
}
