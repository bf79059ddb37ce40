package session

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vespertine/reliquary/internal/relic"
	"github.com/vespertine/reliquary/internal/ritual"
	"github.com/vespertine/reliquary/internal/rng"
	"github.com/vespertine/reliquary/internal/testutil"
)

var frozenNow = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	if opts.Now == nil {
		opts.Now = testutil.FrozenClock(frozenNow)
	}
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

// failingPersistence errors on every call, exercising the degradation path.
type failingPersistence struct{}

func (failingPersistence) Get(key string) (string, bool, error) {
	return "", false, errors.New("store offline")
}

func (failingPersistence) Set(key, value string) error {
	return errors.New("store offline")
}

func TestNew_SeedDerivation(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	assert.Equal(t, rng.Hash(MasterSeed+"TEST-001"), s.Seed())
	assert.Equal(t, 18, s.Edition().Number)
	assert.Equal(t, "EDITION 018 / 100", s.Edition().Label)
}

func TestNew_DeterministicLayout(t *testing.T) {
	a := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	b := newTestSession(t, Options{OverrideSeed: "TEST-001"})

	fpA, err := relic.LayoutFingerprint(a.Layout())
	require.NoError(t, err)
	fpB, err := relic.LayoutFingerprint(b.Layout())
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB, "same seed mints the same edition")
}

func TestNew_DifferentSeedsDifferentLayouts(t *testing.T) {
	a := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	b := newTestSession(t, Options{OverrideSeed: "TEST-002"})

	fpA, err := relic.LayoutFingerprint(a.Layout())
	require.NoError(t, err)
	fpB, err := relic.LayoutFingerprint(b.Layout())
	require.NoError(t, err)
	assert.NotEqual(t, fpA, fpB)
}

func TestNew_TokensPersistAcrossSessions(t *testing.T) {
	persist := NewMemoryPersistence()
	gen := NewFixedGenerator("session-tok", "edition-tok")

	first := newTestSession(t, Options{Persist: persist, Tokens: gen})
	assert.Equal(t, rng.Hash(MasterSeed+"session-tok"), first.Seed())

	// Second visit reads the stored tokens; the generator mints nothing.
	second := newTestSession(t, Options{Persist: persist, Tokens: NewFixedGenerator()})
	assert.Equal(t, first.Seed(), second.Seed(), "returning visitor keeps their seed")
	assert.Equal(t, first.Edition(), second.Edition(), "returning visitor keeps their edition")
}

func TestNew_SessionAndEditionTokensAreSeparate(t *testing.T) {
	persist := NewMemoryPersistence()
	newTestSession(t, Options{Persist: persist, Tokens: NewFixedGenerator("tok-a", "tok-b")})

	sessionTok, ok, err := persist.Get(KeySessionToken)
	require.NoError(t, err)
	require.True(t, ok)
	editionTok, ok, err := persist.Get(KeyEditionToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-a", sessionTok)
	assert.Equal(t, "tok-b", editionTok)
}

func TestNew_OverrideSeedBypassesPersistence(t *testing.T) {
	persist := NewMemoryPersistence()
	s := newTestSession(t, Options{Persist: persist, OverrideSeed: "FORCED"})

	assert.Equal(t, rng.Hash(MasterSeed+"FORCED"), s.Seed())
	_, ok, _ := persist.Get(KeySessionToken)
	assert.False(t, ok, "override writes nothing to the store")
}

func TestNew_StoreFailureDegradesToEphemeral(t *testing.T) {
	s := newTestSession(t, Options{
		Persist: failingPersistence{},
		Tokens:  NewFixedGenerator("ephemeral-session", "ephemeral-edition"),
	})
	assert.Equal(t, rng.Hash(MasterSeed+"ephemeral-session"), s.Seed(),
		"a broken store never blocks the session")
}

func TestNew_DefaultTokensAreUUIDs(t *testing.T) {
	a := newTestSession(t, Options{})
	b := newTestSession(t, Options{})
	assert.NotEqual(t, a.Seed(), b.Seed(), "fresh visitors get distinct identities")
}

func TestSession_RitualRunsToRelic(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})

	_, ok := s.Relic()
	assert.False(t, ok, "no relic before completion")

	var visited []string
	s.Controller().OnTransition(func(from, to ritual.State) {
		visited = append(visited, to.Name)
	})

	for !s.Controller().Completed() {
		s.Update(0.1)
	}

	assert.Equal(t, []string{
		"TITLE", "EDITION", "AWAKENING", "DRAFTING", "LATTICE",
		"SWARM", "DESTABILIZE", "RESOLUTION", "RELIC",
	}, visited)

	snap, ok := s.Relic()
	require.True(t, ok)
	assert.Equal(t, frozenNow, snap.CompletedAt)
	assert.Equal(t, 18, snap.Edition.Number)
	assert.Equal(t, 0.0, snap.Vector.Get(ritual.ParticleEnergy), "the relic is still")
	assert.Equal(t, 1.0, snap.Vector.Get(ritual.Weathering))
}

func TestSession_RelicFreezesOnce(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	for !s.Controller().Completed() {
		s.Update(0.5)
	}
	first, ok := s.Relic()
	require.True(t, ok)

	for i := 0; i < 100; i++ {
		s.Update(0.5)
	}
	again, _ := s.Relic()
	assert.Same(t, first, again, "terminal entry freezes the snapshot exactly once")
}

func TestSession_LayoutStableAcrossUpdates(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	before, err := relic.LayoutFingerprint(s.Layout())
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		s.Update(0.1)
	}
	after, err := relic.LayoutFingerprint(s.Layout())
	require.NoError(t, err)
	assert.Equal(t, before, after, "runtime state never leaks into the layout")
}

func TestSession_ExportBeforeCompletionFails(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	var buf bytes.Buffer
	err := s.Export(&buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestSession_ExportAfterCompletion(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	for !s.Controller().Completed() {
		s.Update(0.5)
	}
	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))
	assert.Contains(t, buf.String(), "EDITION 018 / 100")
}

func TestSession_Frame(t *testing.T) {
	s := newTestSession(t, Options{OverrideSeed: "TEST-001"})
	f := s.Frame()

	assert.Equal(t, "BOOT", f.State)
	assert.Equal(t, 0.0, f.Progress)
	assert.Equal(t, 18, f.Edition.Number)
	assert.Equal(t, []string{"weathering", "grid", "geometry", "particles"}, f.Order)
	require.NotNil(t, f.Geometry)
	require.NotNil(t, f.Grid)
	require.NotNil(t, f.Particles)
	require.NotNil(t, f.Weathering)

	for !s.Controller().Completed() {
		s.Update(0.5)
	}
	f = s.Frame()
	assert.Equal(t, "RELIC", f.State)
	assert.Equal(t, 1.0, f.Progress)
	assert.Equal(t, []string{"weathering", "geometry", "grid", "particles"}, f.Order,
		"geometry sinks behind the grid in the terminal state")
}

func TestSession_CustomScore(t *testing.T) {
	states := []ritual.State{
		{Name: "OPEN", Duration: 0.2, Target: ritual.Vector{}.With(ritual.Zoom, 1)},
		{Name: "HOLD", Terminal: true, Target: ritual.Vector{}.With(ritual.Zoom, 1)},
	}
	s := newTestSession(t, Options{OverrideSeed: "TEST-001", Score: states})

	s.Update(0.3)
	assert.True(t, s.Controller().Completed())
	snap, ok := s.Relic()
	require.True(t, ok)
	assert.NotNil(t, snap)
}

func TestSession_MobileWarning(t *testing.T) {
	persist := NewMemoryPersistence()
	s := newTestSession(t, Options{Persist: persist, OverrideSeed: "TEST-001"})

	assert.False(t, s.MobileWarningAcknowledged())
	s.AcknowledgeMobileWarning()
	assert.True(t, s.MobileWarningAcknowledged())

	// The ack is per-store, so a new session over the same store sees it.
	s2 := newTestSession(t, Options{Persist: persist, OverrideSeed: "TEST-001"})
	assert.True(t, s2.MobileWarningAcknowledged())
}

func TestSession_MobileWarningStoreFailureIsSilent(t *testing.T) {
	s := newTestSession(t, Options{
		Persist: failingPersistence{},
		Tokens:  NewFixedGenerator("a", "b"),
	})
	assert.False(t, s.MobileWarningAcknowledged())
	s.AcknowledgeMobileWarning() // must not panic
	assert.False(t, s.MobileWarningAcknowledged(), "the warning reappears next visit")
}

func TestSession_InvalidScoreRejected(t *testing.T) {
	_, err := New(Options{
		OverrideSeed: "TEST-001",
		Score:        []ritual.State{{Name: "A", Duration: 1}},
		Logger:       quietLogger(),
	})
	require.Error(t, err)
}
