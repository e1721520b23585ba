// Package version exposes build metadata for the fwver binary itself.
//
// Version, Commit, and BuildTime are injected via Go ldflags by the release
// build and default to development values for local builds. The release
// derivation is the same one fwver performs for firmware: the stamper is
// stamped with its own output.
package version
