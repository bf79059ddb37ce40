// Package ritual implements the timed finite-state machine that drives the
// artwork through its scripted sequence.
//
// A Controller owns an ordered list of states, each with a duration and a
// target parameter vector. Every frame the host calls Update(dt); elapsed
// time accumulates, transitions fire strictly forward (never backward,
// never skipping), and the live vector is blended toward the active target
// by exponential smoothing.
//
// INVARIANTS:
//   - State order never changes after construction.
//   - Transitions are notified synchronously, in listener registration
//     order, before Update returns.
//   - The completion timestamp is captured exactly once, on first entry to
//     the terminal state.
//
// The smoothing step is deliberately NOT scaled by dt: blend speed is tied
// to update-call frequency, matching the reference behavior of the piece.
// See the note on SmoothingFactor.
package ritual
