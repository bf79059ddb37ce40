package ritual

import (
	"fmt"
	"time"
)

// SmoothingFactor is the per-tick exponential smoothing constant for
// parameter blending: v += (target - v) * SmoothingFactor.
//
// Deliberately NOT scaled by dt. Blend speed is therefore tied to the
// update-call frequency rather than wall-clock time; this matches the
// reference behavior of the piece and must be preserved for visual
// fidelity. A frame-rate independent variant would substitute
// 1 - exp(-k*dt) and document the deviation.
const SmoothingFactor = 0.05

// minDuration guards against degenerate near-zero state durations.
const minDuration = 0.001

// State is one stage of the ritual sequence.
type State struct {
	// Name identifies the state (e.g. "BOOT", "RELIC").
	Name string

	// Duration is the state's length in seconds. Ignored for the
	// terminal state, which holds forever.
	Duration float64

	// Terminal marks the final frozen state of the sequence.
	Terminal bool

	// Easing shapes the EasedProgress signal while this state is active.
	Easing Easing

	// Target is the parameter vector the live vector blends toward.
	Target Vector
}

// TransitionListener receives synchronous state-change notifications.
// Listeners run in registration order, before Update returns.
type TransitionListener func(from, to State)

// Controller advances the ritual sequence and owns the live parameter
// vector. Exactly one writer (the frame loop) may call Update; queries are
// safe from that same goroutine at any point.
type Controller struct {
	states    []State
	idx       int
	elapsed   float64 // elapsed-in-state, seconds
	ran       float64 // time spent in non-terminal states, seconds
	total     float64 // sum of non-terminal durations, seconds
	vector    Vector
	listeners []TransitionListener

	completed   bool
	completedAt time.Time

	now func() time.Time
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithClock overrides the wall-clock used for the completion timestamp.
// Tests use this to freeze time.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates a controller over an ordered state sequence.
//
// The sequence must be non-empty and end with exactly one terminal state.
// The slice is copied; its order never changes after construction.
// The live vector starts at the first state's target so the opening frame
// is already coherent.
func NewController(states []State, opts ...ControllerOption) (*Controller, error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("ritual: state sequence is empty")
	}
	last := states[len(states)-1]
	if !last.Terminal {
		return nil, fmt.Errorf("ritual: final state %q is not terminal", last.Name)
	}
	for i, s := range states[:len(states)-1] {
		if s.Terminal {
			return nil, fmt.Errorf("ritual: state %q (index %d) is terminal but not last", s.Name, i)
		}
	}

	c := &Controller{
		states: append([]State(nil), states...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, s := range c.states[:len(c.states)-1] {
		c.total += effectiveDuration(s)
	}
	c.vector = c.states[0].Target
	if c.states[0].Terminal {
		// Single-state sequence: born complete.
		c.markComplete()
	}
	return c, nil
}

// OnTransition registers a listener for state changes.
func (c *Controller) OnTransition(l TransitionListener) {
	c.listeners = append(c.listeners, l)
}

// Update advances the sequence by dt seconds and blends the vector.
//
// A dt spanning several state boundaries advances through each state in
// order, firing one notification per transition. Blending happens once per
// call, toward the target of the state active after advancement.
func (c *Controller) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	remaining := dt
	for remaining > 0 && !c.states[c.idx].Terminal {
		d := effectiveDuration(c.states[c.idx])
		c.elapsed += remaining
		if c.elapsed < d {
			c.ran += remaining
			remaining = 0
			break
		}
		over := c.elapsed - d
		c.ran += remaining - over
		remaining = over
		c.advance()
		if remaining == 0 {
			break
		}
	}

	target := c.states[c.idx].Target
	for i := range c.vector {
		c.vector[i] += (target[i] - c.vector[i]) * SmoothingFactor
	}
}

// advance moves to the next state, resets elapsed-in-state time, and
// notifies listeners synchronously.
func (c *Controller) advance() {
	from := c.states[c.idx]
	c.idx++
	c.elapsed = 0
	to := c.states[c.idx]
	if to.Terminal {
		c.markComplete()
	}
	for _, l := range c.listeners {
		l(from, to)
	}
}

// markComplete freezes the completion timestamp, idempotently.
func (c *Controller) markComplete() {
	if c.completed {
		return
	}
	c.completed = true
	c.completedAt = c.now()
}

// State returns the name of the active state.
func (c *Controller) State() string {
	return c.states[c.idx].Name
}

// StateIndex returns the position of the active state in the sequence.
func (c *Controller) StateIndex() int {
	return c.idx
}

// Progress reports progress within the active state, clamped to [0, 1].
// The terminal state always reports 1.
func (c *Controller) Progress() float64 {
	s := c.states[c.idx]
	if s.Terminal {
		return 1
	}
	p := c.elapsed / effectiveDuration(s)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// EasedProgress is Progress mapped through the active state's easing curve.
func (c *Controller) EasedProgress() float64 {
	return c.states[c.idx].Easing.Apply(c.Progress())
}

// GlobalProgress reports time-weighted progress across the whole sequence,
// excluding the infinite terminal state. Non-decreasing, saturates at 1.0
// upon reaching the terminal state, never exceeds 1.0.
func (c *Controller) GlobalProgress() float64 {
	if c.completed || c.total <= 0 {
		return 1
	}
	p := c.ran / c.total
	if p > 1 {
		return 1
	}
	return p
}

// Value returns the current blended value of one channel.
func (c *Controller) Value(ch Channel) float64 {
	return c.vector.Get(ch)
}

// Vector returns a read-only snapshot of the live parameter vector.
func (c *Controller) Vector() Vector {
	return c.vector
}

// Target returns the active state's target vector.
func (c *Controller) Target() Vector {
	return c.states[c.idx].Target
}

// Completed reports whether the terminal state has been entered.
func (c *Controller) Completed() bool {
	return c.completed
}

// CompletedAt returns the frozen completion timestamp. The second return
// is false until the terminal state has been entered.
func (c *Controller) CompletedAt() (time.Time, bool) {
	return c.completedAt, c.completed
}

// States returns a copy of the state sequence.
func (c *Controller) States() []State {
	return append([]State(nil), c.states...)
}

func effectiveDuration(s State) float64 {
	if s.Duration < minDuration {
		return minDuration
	}
	return s.Duration
}
