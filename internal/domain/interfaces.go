// Package domain defines the core business entities and interfaces for fwver.
// This package contains no external dependencies and represents the innermost
// layer of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for repository queries and version resolution.
var (
	// ErrRepositoryNotFound indicates the specified path is not inside a valid Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrTagNotFound indicates no version tag is reachable from HEAD.
	// No default version is substituted; at least one version tag in
	// history is a precondition.
	ErrTagNotFound = errors.New("no version tag reachable from HEAD")

	// ErrMalformedTag indicates a tag does not carry three dot-separated
	// numeric fields.
	ErrMalformedTag = errors.New("malformed version tag")

	// ErrNoCommits indicates the repository has no commits to version.
	ErrNoCommits = errors.New("repository has no commits")
)

// RepositoryInspector answers source-control queries for the resolver.
// The repository path is the ONLY external input - every value is derived
// from current repository state, which the inspector treats as read-only.
type RepositoryInspector interface {
	// DescribeTags returns the nearest reachable version tag for HEAD,
	// decorated with "-<distance>-g<hash>" when HEAD is not exactly on a
	// tag. Returns ErrTagNotFound when no matching tag is reachable and
	// ErrNoCommits when the repository has no commits.
	DescribeTags(ctx context.Context) (string, error)

	// ShortCommitHash returns the abbreviated fixed-width hexadecimal
	// identifier of HEAD. Returns ErrNoCommits on an empty repository.
	ShortCommitHash(ctx context.Context) (string, error)

	// ChangedTrackedFiles returns the paths of tracked files that differ
	// from HEAD, staged or unstaged, sorted for determinism. Untracked
	// files are not reported. The result is a point-in-time snapshot.
	ChangedTrackedFiles(ctx context.Context) ([]string, error)

	// Close releases any resources held by the inspector.
	Close() error
}

// Resolver derives a VersionDescriptor from current repository state.
type Resolver interface {
	// Resolve runs the describe, parse, and classify steps once.
	// Repeated calls against unchanged repository state yield an
	// identical descriptor.
	Resolve(ctx context.Context) (*VersionDescriptor, error)
}

// OutputWriter delivers a rendered version artifact to its destination.
type OutputWriter interface {
	// WriteRendered writes the rendered content, ensuring it ends with a
	// single trailing newline.
	WriteRendered(content string) error
}
