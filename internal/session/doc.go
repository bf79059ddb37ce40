// Package session wires one visitor's edition together: token resolution,
// seed derivation, content generation, and the per-frame update loop.
//
// Construction order is fixed and is part of the edition's identity:
// resolve tokens, derive the seed, seed the ambient source, then build the
// layers in geometry, grid, particles, weathering order - each consuming
// draws from the one shared source.
//
// The session is single-threaded and frame-driven: exactly one caller
// invokes Update once per rendered frame, and every tick runs to
// completion before the next read. No locking anywhere in the core.
package session
