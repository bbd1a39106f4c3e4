// Package manifest computes the implicit install manifest: every destination
// path farrdist installs to or removes from, derived from prefix
// configuration and the program identifier.
//
// No manifest is ever persisted. Install and uninstall both call Compute with
// the same inputs, so the two workflows always agree on paths; this is what
// makes uninstall safe without an on-disk record.
package manifest
