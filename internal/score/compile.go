package score

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"github.com/vespertine/reliquary/internal/ritual"
)

//go:embed reliquary.cue
var defaultScoreCUE string

// CompileError describes a score compilation failure with CUE position
// information when available.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	defaultOnce   sync.Once
	defaultStates []ritual.State
	defaultErr    error
)

// Default returns the embedded canonical score.
//
// The result is compiled once and cached; callers receive a fresh copy so
// the cached sequence cannot be mutated.
func Default() ([]ritual.State, error) {
	defaultOnce.Do(func() {
		defaultStates, defaultErr = CompileSource("reliquary.cue", defaultScoreCUE)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]ritual.State(nil), defaultStates...), nil
}

// MustDefault is Default for callers that treat the embedded score as
// trusted. Panics if the embedded score fails to compile.
func MustDefault() []ritual.State {
	states, err := Default()
	if err != nil {
		panic(fmt.Sprintf("score: embedded score invalid: %v", err))
	}
	return states
}

// Load compiles a score from an external CUE file.
func Load(path string) ([]ritual.State, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("score: read %s: %w", path, err)
	}
	return CompileSource(path, string(src))
}

// CompileSource compiles CUE source text into a validated state sequence.
func CompileSource(filename, src string) ([]ritual.State, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, &CompileError{Field: "score", Message: err.Error()}
	}
	return CompileValue(v.LookupPath(cue.ParsePath("score")))
}

// CompileValue walks an evaluated CUE list into []ritual.State.
//
// The CUE schema has already constrained channel names, ranges, and easing
// values; this pass extracts the data and applies the structural rules the
// schema cannot express (state count, unique names, terminal placement).
func CompileValue(v cue.Value) ([]ritual.State, error) {
	if !v.Exists() {
		return nil, &CompileError{Field: "score", Message: "score list is missing"}
	}
	if err := v.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return nil, &CompileError{Field: "score", Message: err.Error(), Pos: v.Pos()}
	}

	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{Field: "score", Message: fmt.Sprintf("score is not a list: %v", err), Pos: v.Pos()}
	}

	var states []ritual.State
	for iter.Next() {
		s, err := compileState(iter.Value())
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}

	if err := validateSequence(states, v.Pos()); err != nil {
		return nil, err
	}
	return states, nil
}

func compileState(v cue.Value) (ritual.State, error) {
	var s ritual.State

	nameVal := v.LookupPath(cue.ParsePath("name"))
	if !nameVal.Exists() {
		return s, &CompileError{Field: "name", Message: "name is required", Pos: v.Pos()}
	}
	name, err := nameVal.String()
	if err != nil {
		return s, &CompileError{Field: "name", Message: err.Error(), Pos: nameVal.Pos()}
	}
	s.Name = name

	termVal := v.LookupPath(cue.ParsePath("terminal"))
	if termVal.Exists() {
		terminal, err := termVal.Bool()
		if err != nil {
			return s, &CompileError{Field: "terminal", Message: err.Error(), Pos: termVal.Pos()}
		}
		s.Terminal = terminal
	}

	durVal := v.LookupPath(cue.ParsePath("duration"))
	switch {
	case durVal.Exists():
		d, err := durVal.Float64()
		if err != nil {
			return s, &CompileError{Field: "duration", Message: err.Error(), Pos: durVal.Pos()}
		}
		s.Duration = d
	case !s.Terminal:
		return s, &CompileError{Field: "duration", Message: fmt.Sprintf("state %q: non-terminal states require a duration", s.Name), Pos: v.Pos()}
	}

	easingVal := v.LookupPath(cue.ParsePath("easing"))
	if easingVal.Exists() {
		name, err := easingVal.String()
		if err != nil {
			return s, &CompileError{Field: "easing", Message: err.Error(), Pos: easingVal.Pos()}
		}
		e, ok := ritual.EasingByName(name)
		if !ok {
			return s, &CompileError{Field: "easing", Message: fmt.Sprintf("unknown easing %q", name), Pos: easingVal.Pos()}
		}
		s.Easing = e
	}

	targetVal := v.LookupPath(cue.ParsePath("target"))
	if !targetVal.Exists() {
		return s, &CompileError{Field: "target", Message: fmt.Sprintf("state %q: target is required", s.Name), Pos: v.Pos()}
	}
	target, err := compileTarget(targetVal)
	if err != nil {
		return s, err
	}
	s.Target = target

	return s, nil
}

func compileTarget(v cue.Value) (ritual.Vector, error) {
	var vec ritual.Vector
	fields, err := v.Fields()
	if err != nil {
		return vec, &CompileError{Field: "target", Message: err.Error(), Pos: v.Pos()}
	}
	for fields.Next() {
		label := fields.Selector().String()
		ch, ok := ritual.ChannelByName(label)
		if !ok {
			return vec, &CompileError{Field: "target", Message: fmt.Sprintf("unknown channel %q", label), Pos: fields.Value().Pos()}
		}
		val, err := fields.Value().Float64()
		if err != nil {
			return vec, &CompileError{Field: "target." + label, Message: err.Error(), Pos: fields.Value().Pos()}
		}
		vec[ch] = val
	}
	return vec, nil
}

func validateSequence(states []ritual.State, pos token.Pos) error {
	if len(states) < 2 {
		return &CompileError{Field: "score", Message: "score requires at least two states", Pos: pos}
	}

	seen := make(map[string]bool, len(states))
	for _, s := range states {
		if seen[s.Name] {
			return &CompileError{Field: "score", Message: fmt.Sprintf("duplicate state name %q", s.Name), Pos: pos}
		}
		seen[s.Name] = true
	}

	for i, s := range states {
		last := i == len(states)-1
		if s.Terminal != last {
			if s.Terminal {
				return &CompileError{Field: "score", Message: fmt.Sprintf("terminal state %q must be last", s.Name), Pos: pos}
			}
			return &CompileError{Field: "score", Message: fmt.Sprintf("final state %q must be terminal", s.Name), Pos: pos}
		}
	}
	return nil
}
