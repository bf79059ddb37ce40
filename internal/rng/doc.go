// Package rng provides the seeded randomness primitives for an edition.
//
// Everything a session generates derives from a single uint32 seed computed
// by Hash over a stable identity string. Two sources are exposed:
//
//   - Source: a Mulberry32 PRNG for discrete draws (counts, positions,
//     palette picks). Repeated calls advance state deterministically, so
//     the same call sequence always yields the same outputs.
//   - Noise: a seeded OpenSimplex field for smooth drift and jitter.
//     Used for continuous per-frame steering, never for discrete generation.
//
// CRITICAL: the draw order of every generator is part of the edition's
// identity. Reordering draws changes every artwork ever minted.
package rng
