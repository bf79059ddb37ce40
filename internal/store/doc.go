// Package store provides the durable key-value persistence behind visitor
// identity: the per-visitor session token, the edition-allocation token,
// and the mobile-warning acknowledgement flag.
//
// The contract is deliberately tiny - read-if-present, else
// generate-and-write-once - and the session treats the store as optional:
// any failure degrades to an ephemeral in-memory token rather than
// surfacing an error. Losing the store loses determinism ACROSS reloads,
// never within a session.
//
// SQLite with WAL mode, following the single-writer configuration the
// frame loop already imposes on the rest of the system.
package store
