// Package relic produces the frozen, exportable artifact of a completed
// ritual: the parameter snapshot, the layout manifest, and the
// content-addressed fingerprint that identifies the edition's artwork.
//
// The fingerprint is computed over canonical JSON (sorted keys, NFC
// strings, no floats) with domain separation, so it is stable across runs,
// platforms, and replays for a fixed seed. Real-valued layout attributes
// are encoded as exact millesimal integers (Milli) to keep floats out of
// the canonical form.
package relic
