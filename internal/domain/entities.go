// Package domain defines the core business entities and interfaces for fwver.
package domain

// VersionDescriptor is the resolved, immutable version value derived from
// repository state. It is created once per build invocation, never mutated,
// and never persisted; every build re-derives it from the current state.
type VersionDescriptor struct {
	// Major is the first numeric component of the version tag.
	Major uint64

	// Minor is the second numeric component of the version tag.
	Minor uint64

	// Patch is the third numeric component of the version tag.
	Patch uint64

	// CommitHash is the short-form hexadecimal identifier of HEAD,
	// truncated to the configured fixed width.
	CommitHash string

	// Dirty reports whether any tracked file differed from HEAD at the
	// time of resolution. Untracked files do not count.
	Dirty bool
}
