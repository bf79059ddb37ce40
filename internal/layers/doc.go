// Package layers holds the content generators: one per visual layer of the
// piece (geometry, grid, particles, weathering).
//
// Each generator runs exactly once, at construction, consuming draws from
// the shared seeded source in a FIXED order. The resulting descriptor sets
// are immutable for the life of the session: re-running with the same seed
// yields a byte-identical set, and nothing regenerates mid-session.
//
// Descriptors that need per-frame motion (particles, grid fragments) are
// split in two: an immutable template record from generation, and a mutable
// runtime record updated each frame, paired by index. The renderer reads
// both; only the layer's Update method writes the runtime side.
//
// Every numeric bound in constants.go is a closed design constant. The
// values define the visual character of the piece and must not drift.
package layers
