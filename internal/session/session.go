package session

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vespertine/reliquary/internal/edition"
	"github.com/vespertine/reliquary/internal/layers"
	"github.com/vespertine/reliquary/internal/relic"
	"github.com/vespertine/reliquary/internal/ritual"
	"github.com/vespertine/reliquary/internal/rng"
	"github.com/vespertine/reliquary/internal/score"
)

// MasterSeed is the run's global seed string. Combined with the visitor
// token it derives everything; changing it re-mints the entire run.
const MasterSeed = "RELIQUARY::MMXXVI"

// Options configures session construction. The zero value plus defaults
// gives a fully ephemeral, freshly-tokened session.
type Options struct {
	// Persist is the visitor store. Nil falls back to MemoryPersistence.
	Persist Persistence

	// OverrideSeed, when non-empty, is used as both the session and
	// edition token, bypassing persistence. Testing/reproducibility hook;
	// any non-empty string is a valid seed.
	OverrideSeed string

	// Tokens mints visitor tokens when none are persisted.
	// Nil defaults to UUIDv7Generator.
	Tokens TokenGenerator

	// Ambient is the randomness source shared with the host renderer.
	// Nil falls back to a local seeded source (see rng.RandomSource docs
	// for the determinism caveat this avoids).
	Ambient rng.RandomSource

	// Score overrides the ritual sequence. Nil uses the embedded score.
	Score []ritual.State

	// Now overrides the wall clock for the completion timestamp.
	Now func() time.Time

	// Logger receives structured session events. Nil uses slog.Default.
	Logger *slog.Logger
}

// Session is one visitor's edition: the seeded generators, the ritual
// controller, and the frozen relic once the ritual completes.
type Session struct {
	seed         uint32
	sessionToken string
	ed           edition.Edition

	controller *ritual.Controller
	geometry   *layers.Geometry
	grid       *layers.Grid
	particles  *layers.Particles
	weathering *layers.Weathering

	ambient rng.RandomSource
	persist Persistence
	logger  *slog.Logger

	frozen *relic.Snapshot
}

// New constructs a session for one visitor.
func New(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	persist := opts.Persist
	if persist == nil {
		persist = NewMemoryPersistence()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}

	s := &Session{
		persist: persist,
		logger:  logger,
	}

	// Token resolution: override > persisted > freshly minted.
	var editionToken string
	if opts.OverrideSeed != "" {
		s.sessionToken = opts.OverrideSeed
		editionToken = opts.OverrideSeed
	} else {
		s.sessionToken = s.resolveToken(KeySessionToken, tokens)
		editionToken = s.resolveToken(KeyEditionToken, tokens)
	}

	// Seed derivation: masterSeed + sessionToken, always in that order.
	s.seed = rng.Hash(MasterSeed + s.sessionToken)
	s.ed = edition.Allocate(editionToken, MasterSeed)

	// Ambient randomness is seeded so renderer-side draws reproduce too.
	s.ambient = opts.Ambient
	if s.ambient == nil {
		s.ambient = rng.NewLocalSource(s.seed)
	}
	s.ambient.SetSeed(s.seed)

	states := opts.Score
	if states == nil {
		var err error
		states, err = score.Default()
		if err != nil {
			return nil, fmt.Errorf("session: load score: %w", err)
		}
	}

	var copts []ritual.ControllerOption
	if opts.Now != nil {
		copts = append(copts, ritual.WithClock(opts.Now))
	}
	controller, err := ritual.NewController(states, copts...)
	if err != nil {
		return nil, fmt.Errorf("session: build controller: %w", err)
	}
	s.controller = controller

	// Content generation: one shared source, fixed layer order.
	paletteCount := layers.PaletteCount()
	src := rng.NewSource(s.seed)
	noise := rng.NewNoise(s.seed)
	s.geometry = layers.NewGeometry(src, paletteCount)
	s.grid = layers.NewGrid(src, paletteCount)
	s.particles = layers.NewParticles(src, noise)
	s.weathering = layers.NewWeathering(src, paletteCount, s.ambient)

	s.controller.OnTransition(s.onTransition)

	logger.Debug("session ready",
		"seed", s.seed,
		"edition", s.ed.Number,
		"states", len(states),
	)
	return s, nil
}

// resolveToken reads a token from persistence, minting and storing one on
// first visit. Store failures degrade silently to an ephemeral token.
func (s *Session) resolveToken(key string, tokens TokenGenerator) string {
	value, ok, err := s.persist.Get(key)
	if err != nil {
		token := tokens.Generate()
		s.logger.Warn("persistence unavailable, using ephemeral token", "key", key, "error", err)
		return token
	}
	if ok {
		return value
	}
	token := tokens.Generate()
	if err := s.persist.Set(key, token); err != nil {
		s.logger.Warn("persistence write failed, token is ephemeral", "key", key, "error", err)
	}
	return token
}

// onTransition logs state changes and freezes the relic on terminal entry.
func (s *Session) onTransition(from, to ritual.State) {
	s.logger.Debug("ritual transition", "from", from.Name, "to", to.Name)
	if !to.Terminal || s.frozen != nil {
		return
	}
	completedAt, _ := s.controller.CompletedAt()
	layout := relic.BuildLayout(s.seed, s.ed, s.geometry, s.grid, s.particles, s.weathering)
	s.frozen = relic.NewSnapshot(s.ed, s.seed, s.controller.Vector(), completedAt, layout)
}

// Update advances the session by dt seconds: ritual first, then the
// per-frame layer updates that read the fresh vector.
func (s *Session) Update(dt float64) {
	s.controller.Update(dt)
	v := s.controller.Vector()
	s.grid.Update(dt, v.Get(ritual.ZLift))
	s.particles.Update(dt, v.Get(ritual.ParticleEnergy))
}

// Frame is the read-only per-frame view handed to the renderer.
type Frame struct {
	State          string
	Progress       float64
	EasedProgress  float64
	GlobalProgress float64
	Vector         ritual.Vector
	Order          []string
	Edition        edition.Edition
	Geometry       *layers.Geometry
	Grid           *layers.Grid
	Particles      *layers.Particles
	Weathering     *layers.Weathering
}

// Frame snapshots the current state for rendering.
func (s *Session) Frame() Frame {
	state := s.controller.State()
	return Frame{
		State:          state,
		Progress:       s.controller.Progress(),
		EasedProgress:  s.controller.EasedProgress(),
		GlobalProgress: s.controller.GlobalProgress(),
		Vector:         s.controller.Vector(),
		Order:          layers.OrderFor(state),
		Edition:        s.ed,
		Geometry:       s.geometry,
		Grid:           s.grid,
		Particles:      s.particles,
		Weathering:     s.weathering,
	}
}

// Seed returns the derived session seed.
func (s *Session) Seed() uint32 { return s.seed }

// Edition returns the visitor's edition allocation.
func (s *Session) Edition() edition.Edition { return s.ed }

// Controller exposes the ritual controller for queries and observers.
func (s *Session) Controller() *ritual.Controller { return s.controller }

// Layout builds the canonical layout map of the immutable descriptor sets.
// Available at any point in the ritual; identical before and after
// completion for a fixed seed.
func (s *Session) Layout() map[string]any {
	return relic.BuildLayout(s.seed, s.ed, s.geometry, s.grid, s.particles, s.weathering)
}

// Relic returns the frozen snapshot. The second return is false until the
// terminal state has been entered.
func (s *Session) Relic() (*relic.Snapshot, bool) {
	return s.frozen, s.frozen != nil
}

// Export writes the relic manifest. Fails if the ritual has not completed;
// export failures leave the session untouched and retryable.
func (s *Session) Export(w io.Writer) error {
	snap, ok := s.Relic()
	if !ok {
		return fmt.Errorf("session: ritual not complete, nothing to export")
	}
	return snap.Export(w)
}

// MobileWarningAcknowledged reports whether the visitor has dismissed the
// small-screen warning.
func (s *Session) MobileWarningAcknowledged() bool {
	v, ok, err := s.persist.Get(KeyMobileAck)
	return err == nil && ok && v == "1"
}

// AcknowledgeMobileWarning records the dismissal. Store failures are
// silent; the warning simply reappears next visit.
func (s *Session) AcknowledgeMobileWarning() {
	if err := s.persist.Set(KeyMobileAck, "1"); err != nil {
		s.logger.Warn("persistence write failed for mobile ack", "error", err)
	}
}
