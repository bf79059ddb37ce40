// Package score compiles the ritual sequence definition from CUE into the
// typed state list the controller runs.
//
// The canonical score ships embedded in the binary (reliquary.cue). External
// score files can be loaded for validation and experimentation via Load, but
// the piece itself always runs the embedded score.
//
// Compilation uses the CUE SDK's Go API directly (not a CLI subprocess):
// the schema constrains channel names and ranges, and CompileValue walks the
// evaluated value into []ritual.State with position-annotated errors.
package score
