// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/fwver/internal/domain"
)

// Logger defines the logging interface required by the resolver.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// VersionResolver derives a firmware version descriptor from local Git
// repository state. It implements the core business logic for turning the
// nearest reachable version tag, the HEAD commit, and the working tree
// status into a single immutable descriptor.
type VersionResolver struct {
	inspector domain.RepositoryInspector
	tagPrefix string
	logger    Logger
}

// NewVersionResolver creates a new VersionResolver with the given dependencies.
// All dependencies are injected to support testing and SOLID principles.
// tagPrefix is stripped from the described tag before parsing.
func NewVersionResolver(
	inspector domain.RepositoryInspector,
	tagPrefix string,
	log Logger,
) *VersionResolver {
	return &VersionResolver{
		inspector: inspector,
		tagPrefix: tagPrefix,
		logger:    log,
	}
}

// Resolve derives the version descriptor from the current repository state.
// It describes HEAD against reachable version tags, parses the numeric
// components out of the description, reads the short commit hash, and
// classifies the working tree as clean or dirty.
//
// Every step is mandatory: any failure aborts resolution and no partial
// descriptor is returned. Resolving twice against unchanged repository
// state yields an identical descriptor.
func (r *VersionResolver) Resolve(ctx context.Context) (*domain.VersionDescriptor, error) {
	r.logger.Info(ctx, "starting version resolution", map[string]interface{}{
		"tag_prefix": r.tagPrefix,
	})

	// Describe HEAD against reachable version tags
	described, err := r.inspector.DescribeTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to describe HEAD: %w", err)
	}

	r.logger.Debug(ctx, "described HEAD", map[string]interface{}{
		"description": described,
	})

	// Parse the numeric components from the prefix-stripped description
	stripped := strings.TrimPrefix(described, r.tagPrefix)
	if r.tagPrefix != "" && stripped == described {
		r.logger.Warn(ctx, "described tag does not carry the configured prefix", map[string]interface{}{
			"description": described,
			"tag_prefix":  r.tagPrefix,
		})
	}
	major, minor, patch, err := domain.ParseTag(stripped)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tag %q: %w", described, err)
	}

	// Short commit hash of HEAD
	hash, err := r.inspector.ShortCommitHash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit hash: %w", err)
	}

	// Classify the working tree; untracked files never count as dirty
	changed, err := r.inspector.ChangedTrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read working tree status: %w", err)
	}

	if len(changed) > 0 {
		r.logger.Debug(ctx, "working tree has tracked changes", map[string]interface{}{
			"changed_count": len(changed),
			"first_changed": changed[0],
		})
	}

	descriptor := &domain.VersionDescriptor{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		CommitHash: hash,
		Dirty:      len(changed) > 0,
	}

	r.logger.Info(ctx, "version resolved successfully", map[string]interface{}{
		"major":       descriptor.Major,
		"minor":       descriptor.Minor,
		"patch":       descriptor.Patch,
		"commit_hash": descriptor.CommitHash,
		"dirty":       descriptor.Dirty,
	})

	return descriptor, nil
}
