package harness

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vespertine/reliquary/internal/relic"
	"github.com/vespertine/reliquary/internal/ritual"
	"github.com/vespertine/reliquary/internal/session"
)

// Result is the outcome of one scenario run.
type Result struct {
	Scenario *Scenario
	Passed   bool
	// Failures lists every expectation that did not hold.
	Failures []string
	// Fingerprint is the layout fingerprint of the run.
	Fingerprint string
	// Visited is the observed state trajectory, initial state included.
	Visited []string
}

// frozenStart pins the completion wall-clock so scenario output never
// depends on when the run happens.
var frozenStart = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// Run executes a scenario and evaluates its expectations.
//
// The scenario runs twice from scratch; a layout fingerprint mismatch
// between the two runs is a determinism failure regardless of the
// scenario's own expectations.
func Run(sc *Scenario) (*Result, error) {
	first, err := runOnce(sc)
	if err != nil {
		return nil, err
	}
	second, err := runOnce(sc)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Scenario:    sc,
		Fingerprint: first.fingerprint,
		Visited:     first.visited,
	}

	if first.fingerprint != second.fingerprint {
		res.Failures = append(res.Failures,
			fmt.Sprintf("determinism: fingerprints differ across runs (%s vs %s)", first.fingerprint, second.fingerprint))
	}

	evaluate(sc, first, res)
	res.Passed = len(res.Failures) == 0
	return res, nil
}

// runState is the observed state of one headless run.
type runState struct {
	sess        *session.Session
	visited     []string
	fingerprint string
}

func runOnce(sc *Scenario) (*runState, error) {
	sess, err := session.New(session.Options{
		Persist:      session.NewMemoryPersistence(),
		OverrideSeed: sc.Seed,
		Now:          func() time.Time { return frozenStart },
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		return nil, fmt.Errorf("harness: build session: %w", err)
	}

	rs := &runState{sess: sess, visited: []string{sess.Controller().State()}}
	sess.Controller().OnTransition(func(from, to ritual.State) {
		rs.visited = append(rs.visited, to.Name)
	})

	for i := 0; i < sc.Ticks; i++ {
		sess.Update(sc.DT)
	}

	fp, err := relic.LayoutFingerprint(sess.Layout())
	if err != nil {
		return nil, fmt.Errorf("harness: fingerprint: %w", err)
	}
	rs.fingerprint = fp
	return rs, nil
}

func evaluate(sc *Scenario, run *runState, res *Result) {
	fail := func(format string, args ...any) {
		res.Failures = append(res.Failures, fmt.Sprintf(format, args...))
	}
	exp := sc.Expect
	frame := run.sess.Frame()

	if exp.Edition != 0 && frame.Edition.Number != exp.Edition {
		fail("edition: got %d, want %d", frame.Edition.Number, exp.Edition)
	}
	if exp.FinalState != "" && frame.State != exp.FinalState {
		fail("final_state: got %s, want %s", frame.State, exp.FinalState)
	}
	if len(exp.Visited) > 0 && !equalStrings(run.visited, exp.Visited) {
		fail("visited: got %v, want %v", run.visited, exp.Visited)
	}
	if exp.MinGlobalProgress > 0 && frame.GlobalProgress < exp.MinGlobalProgress {
		fail("global_progress: got %.4f, want >= %.4f", frame.GlobalProgress, exp.MinGlobalProgress)
	}

	if exp.CircleSets != 0 && len(frame.Geometry.CircleSets) != exp.CircleSets {
		fail("circle_sets: got %d, want %d", len(frame.Geometry.CircleSets), exp.CircleSets)
	}
	if exp.Spirals != 0 && len(frame.Geometry.Spirals) != exp.Spirals {
		fail("spirals: got %d, want %d", len(frame.Geometry.Spirals), exp.Spirals)
	}
	if exp.Guides != 0 && len(frame.Geometry.Guides) != exp.Guides {
		fail("guides: got %d, want %d", len(frame.Geometry.Guides), exp.Guides)
	}
	if exp.GridSide != 0 && frame.Grid.Side != exp.GridSide {
		fail("grid_side: got %d, want %d", frame.Grid.Side, exp.GridSide)
	}
	if exp.GridCells != 0 && len(frame.Grid.Cells) != exp.GridCells {
		fail("grid_cells: got %d, want %d", len(frame.Grid.Cells), exp.GridCells)
	}
	if exp.Fragments != 0 && len(frame.Grid.Fragments) != exp.Fragments {
		fail("fragments: got %d, want %d", len(frame.Grid.Fragments), exp.Fragments)
	}

	if exp.ActiveParticles != nil {
		active := 0
		for i := 0; i < frame.Particles.Capacity(); i++ {
			if frame.Particles.StateAt(i).Active {
				active++
			}
		}
		if active != *exp.ActiveParticles {
			fail("active_particles: got %d, want %d", active, *exp.ActiveParticles)
		}
	}

	if exp.Fingerprint != "" && run.fingerprint != exp.Fingerprint {
		fail("fingerprint: got %s, want %s", run.fingerprint, exp.Fingerprint)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
