package relic

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/vespertine/reliquary/internal/edition"
	"github.com/vespertine/reliquary/internal/layers"
	"github.com/vespertine/reliquary/internal/ritual"
)

// Milli encodes a real value as an exact millesimal integer
// (floor(x*1000 + 0.5)). Every design constant in the piece has at most
// three decimals, so the encoding is lossless for layout attributes.
func Milli(x float64) int64 {
	return int64(math.Floor(x*1000 + 0.5))
}

// Freeze returns the frozen parameter vector of a completed ritual: all
// motion, noise, and glitch channels zeroed; completion channels at 1.0;
// presentation channels kept from the terminal target.
func Freeze(v ritual.Vector) ritual.Vector {
	v[ritual.TiltX] = 0
	v[ritual.TiltY] = 0
	v[ritual.Zoom] = 1
	v[ritual.ZLift] = 0
	v[ritual.NoiseAmp] = 0
	v[ritual.GlitchRate] = 0
	v[ritual.GeometryCompletion] = 1
	v[ritual.ParticleEnergy] = 0
	v[ritual.Weathering] = 1
	return v
}

// FormatLong renders the completion timestamp in the long form shown on
// the relic plaque. English month names on every host locale, so the
// plaque reads identically everywhere.
func FormatLong(t time.Time) string {
	return t.Format("January 2, 2006 at 15:04")
}

// FormatCompact renders the completion timestamp in the filename-safe
// compact form used by the exporter.
func FormatCompact(t time.Time) string {
	return t.Format("20060102-150405")
}

// BuildLayout assembles the canonical layout map from the immutable layer
// descriptor sets. Only template attributes appear; per-frame runtime
// state (particle positions, trails, fragment offsets) is excluded so the
// fingerprint is independent of when the snapshot is taken.
func BuildLayout(seed uint32, ed edition.Edition, geo *layers.Geometry, grid *layers.Grid, particles *layers.Particles, weathering *layers.Weathering) map[string]any {
	circleSets := make([]any, len(geo.CircleSets))
	for i, s := range geo.CircleSets {
		circleSets[i] = map[string]any{
			"center_x":   Milli(s.CenterX),
			"center_y":   Milli(s.CenterY),
			"max_radius": Milli(s.MaxRadius),
			"circles":    s.Circles,
			"filled":     s.Filled,
			"fill_alpha": Milli(s.FillAlpha),
			"palette":    s.Palette,
		}
	}
	spirals := make([]any, len(geo.Spirals))
	for i, s := range geo.Spirals {
		spirals[i] = map[string]any{
			"max_radius": Milli(s.MaxRadius),
			"turns":      Milli(s.Turns),
			"points":     s.Points,
		}
	}
	guides := make([]any, len(geo.Guides))
	for i, g := range geo.Guides {
		guides[i] = map[string]any{
			"angle":  Milli(g.Angle),
			"length": Milli(g.Length),
		}
	}

	cells := make([]any, len(grid.Cells))
	for i, c := range grid.Cells {
		cells[i] = map[string]any{
			"row":     c.Row,
			"col":     c.Col,
			"palette": c.Palette,
			"alpha":   Milli(c.Alpha),
		}
	}
	fragments := make([]any, len(grid.Fragments))
	for i, f := range grid.Fragments {
		fragments[i] = map[string]any{
			"row":     f.Row,
			"col":     f.Col,
			"drift_x": Milli(f.Drift[0]),
			"drift_y": Milli(f.Drift[1]),
			"drift_z": Milli(f.Drift[2]),
		}
	}

	templates := particles.Templates()
	seeds := make([]any, len(templates))
	for i, t := range templates {
		seeds[i] = map[string]any{
			"theta":    Milli(t.Theta),
			"radius":   Milli(t.Radius),
			"vx":       Milli(t.VX),
			"vy":       Milli(t.VY),
			"size":     Milli(t.Size),
			"lifespan": Milli(t.Lifespan),
		}
	}

	stains := make([]any, len(weathering.Stains))
	for i, s := range weathering.Stains {
		stains[i] = map[string]any{
			"x":       Milli(s.X),
			"y":       Milli(s.Y),
			"radius":  Milli(s.Radius),
			"opacity": Milli(s.Opacity),
			"palette": s.Palette,
		}
	}
	flecks := make([]any, len(weathering.Flecks))
	for i, f := range weathering.Flecks {
		flecks[i] = map[string]any{
			"x":       Milli(f.X),
			"y":       Milli(f.Y),
			"size":    Milli(f.Size),
			"opacity": Milli(f.Opacity),
		}
	}

	return map[string]any{
		"seed":    int64(seed),
		"edition": ed.Number,
		"geometry": map[string]any{
			"circle_sets": circleSets,
			"spirals":     spirals,
			"guides":      guides,
		},
		"grid": map[string]any{
			"side":      grid.Side,
			"cells":     cells,
			"fragments": fragments,
		},
		"particles": map[string]any{
			"capacity": particles.Capacity(),
			"seeds":    seeds,
		},
		"weathering": map[string]any{
			"stains": stains,
			"flecks": flecks,
		},
	}
}

// Snapshot is the frozen output of a completed ritual.
type Snapshot struct {
	Edition     edition.Edition
	Seed        uint32
	Vector      ritual.Vector
	CompletedAt time.Time
	Layout      map[string]any
}

// NewSnapshot freezes a completed session's state.
func NewSnapshot(ed edition.Edition, seed uint32, v ritual.Vector, completedAt time.Time, layout map[string]any) *Snapshot {
	return &Snapshot{
		Edition:     ed,
		Seed:        seed,
		Vector:      Freeze(v),
		CompletedAt: completedAt,
		Layout:      layout,
	}
}

// Filename returns the suggested export filename for the relic.
func (s *Snapshot) Filename() string {
	return fmt.Sprintf("relic-%03d-%s", s.Edition.Number, FormatCompact(s.CompletedAt))
}

// Manifest is the exported relic description.
type Manifest struct {
	Fingerprint string             `json:"fingerprint"`
	Edition     edition.Edition    `json:"edition"`
	Seed        uint32             `json:"seed"`
	CompletedAt string             `json:"completed_at"`
	Compact     string             `json:"completed_at_compact"`
	Parameters  map[string]float64 `json:"parameters"`
	Layout      map[string]any     `json:"layout"`
}

// BuildManifest assembles the export manifest, including the relic
// fingerprint. Pure: failure leaves the snapshot untouched and the
// snapshot remains exportable again.
func (s *Snapshot) BuildManifest() (*Manifest, error) {
	layoutFP, err := LayoutFingerprint(s.Layout)
	if err != nil {
		return nil, err
	}

	frozen := make(map[string]any, ritual.NumChannels)
	params := make(map[string]float64, ritual.NumChannels)
	for _, ch := range ritual.Channels() {
		frozen[ch.String()] = Milli(s.Vector.Get(ch))
		params[ch.String()] = s.Vector.Get(ch)
	}

	fp, err := Fingerprint(map[string]any{
		"layout":       layoutFP,
		"edition":      s.Edition.Number,
		"seed":         int64(s.Seed),
		"completed_at": FormatCompact(s.CompletedAt),
		"parameters":   frozen,
	})
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Fingerprint: fp,
		Edition:     s.Edition,
		Seed:        s.Seed,
		CompletedAt: FormatLong(s.CompletedAt),
		Compact:     FormatCompact(s.CompletedAt),
		Parameters:  params,
		Layout:      s.Layout,
	}, nil
}

// Export writes the manifest as indented JSON. Write failures propagate to
// the caller; no snapshot state is mutated, so export can be retried.
func (s *Snapshot) Export(w io.Writer) error {
	m, err := s.BuildManifest()
	if err != nil {
		return fmt.Errorf("relic: build manifest: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("relic: export: %w", err)
	}
	return nil
}
