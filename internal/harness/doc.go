// Package harness provides the determinism conformance harness.
//
// Scenarios are small YAML files: a fixed seed, a synthetic run length,
// and expectations over the resulting edition, ritual trajectory, and
// descriptor counts. Each scenario runs a full headless session twice and,
// beyond its explicit expectations, always asserts that both runs produce
// identical layout fingerprints - the core reproducibility property of
// the piece.
//
// Scenarios run against in-memory persistence with fixed tokens, so they
// are fully deterministic and safe to run anywhere (tests, CI, the
// `reliquary verify` command).
package harness
