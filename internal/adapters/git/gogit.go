// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.RepositoryInspector interface using go-git/v5,
// so no git binary is required at runtime.
package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/MyCarrier-DevOps/fwver/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitInspector implements domain.RepositoryInspector using go-git/v5.
// It answers the three repository queries version resolution needs: the
// nearest reachable version tag, the short HEAD hash, and the set of
// tracked files with uncommitted changes.
type GoGitInspector struct {
	repo       *git.Repository
	path       string
	tagPrefix  string
	hashLength int
	logger     Logger
}

// NewGoGitInspector opens the repository containing path. Discovery walks
// upward from path, so build steps invoked from a subdirectory still find
// the repository root. Only tags whose short name starts with tagPrefix are
// considered; hashLength is the width of abbreviated commit hashes.
// Returns domain.ErrRepositoryNotFound if no repository contains the path.
func NewGoGitInspector(path, tagPrefix string, hashLength int, log Logger) (*GoGitInspector, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	return &GoGitInspector{
		repo:       repo,
		path:       path,
		tagPrefix:  tagPrefix,
		hashLength: hashLength,
		logger:     log,
	}, nil
}

// tagCandidate is a version tag resolved to the commit it marks.
type tagCandidate struct {
	name      string
	annotated bool
}

// betterThan orders candidates on the same commit: annotated tags win over
// lightweight ones, then the lexically highest name wins. The ordering is
// total, so describe output is deterministic however many tags share a
// commit.
func (c tagCandidate) betterThan(o tagCandidate) bool {
	if c.annotated != o.annotated {
		return c.annotated
	}
	return c.name > o.name
}

// DescribeTags returns the nearest version tag reachable from HEAD. The
// result is the bare tag name when HEAD is exactly on a tagged commit,
// otherwise "<tag>-<distance>-g<shorthash>" where distance counts the
// commits walked from HEAD before reaching the tagged commit.
//
// Returns domain.ErrNoCommits when the repository has no commits and
// domain.ErrTagNotFound when no matching tag is reachable from HEAD.
func (r *GoGitInspector) DescribeTags(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrNoCommits, r.path)
		}
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	candidates, err := r.collectTagCandidates(ctx)
	if err != nil {
		return "", err
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no tags match prefix %q", domain.ErrTagNotFound, r.tagPrefix)
	}

	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to get commit object for HEAD: %w", err)
	}

	// Walk history from HEAD in commit-time order until the first tagged
	// commit. The walk order makes the nearest tag win.
	var (
		matched  tagCandidate
		found    bool
		distance int
	)

	iter := object.NewCommitIterCTime(headCommit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		// Check context for cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if candidate, ok := candidates[c.Hash]; ok {
			matched = candidate
			found = true
			return storer.ErrStop
		}
		distance++
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return "", fmt.Errorf("failed to walk commit history: %w", err)
	}

	if !found {
		return "", fmt.Errorf("%w: no tag with prefix %q reachable from HEAD", domain.ErrTagNotFound, r.tagPrefix)
	}

	described := matched.name
	if distance > 0 {
		described = fmt.Sprintf("%s-%d-g%s", matched.name, distance, r.shorten(head.Hash()))
	}

	r.logger.Debug(ctx, "described HEAD against version tags", map[string]interface{}{
		"described":  described,
		"tag":        matched.name,
		"annotated":  matched.annotated,
		"distance":   distance,
		"candidates": len(candidates),
	})

	return described, nil
}

// collectTagCandidates maps each tagged commit to its best matching tag.
// Annotated tags are resolved to their target commit; tags whose short name
// lacks the configured prefix, or that do not mark a commit, are skipped.
func (r *GoGitInspector) collectTagCandidates(ctx context.Context) (map[plumbing.Hash]tagCandidate, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	candidates := make(map[plumbing.Hash]tagCandidate)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, r.tagPrefix) {
			return nil
		}

		commitHash, annotated, err := r.resolveTagCommit(ref)
		if err != nil {
			return err
		}
		if commitHash.IsZero() {
			r.logger.Warn(ctx, "skipping tag that does not mark a commit", map[string]interface{}{
				"tag": name,
			})
			return nil
		}

		candidate := tagCandidate{name: name, annotated: annotated}
		if existing, ok := candidates[commitHash]; !ok || candidate.betterThan(existing) {
			candidates[commitHash] = candidate
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return candidates, nil
}

// resolveTagCommit returns the commit a tag ref marks and whether the tag is
// annotated. A zero hash means the tag targets something other than a commit.
func (r *GoGitInspector) resolveTagCommit(ref *plumbing.Reference) (plumbing.Hash, bool, error) {
	tagObj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		// Annotated tag; follow it to the commit it targets.
		commit, cerr := tagObj.Commit()
		if cerr != nil {
			return plumbing.ZeroHash, true, nil
		}
		return commit.Hash, true, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		// Lightweight tag; the ref points at the object directly.
		if _, cerr := r.repo.CommitObject(ref.Hash()); cerr != nil {
			return plumbing.ZeroHash, false, nil
		}
		return ref.Hash(), false, nil
	default:
		return plumbing.ZeroHash, false, fmt.Errorf("failed to resolve tag %s: %w", ref.Name().Short(), err)
	}
}

// ShortCommitHash returns the abbreviated hexadecimal identifier of HEAD,
// truncated to the configured width.
// Returns domain.ErrNoCommits on a repository with no commits.
func (r *GoGitInspector) ShortCommitHash(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrNoCommits, r.path)
		}
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	short := r.shorten(head.Hash())

	r.logger.Debug(ctx, "resolved HEAD commit hash", map[string]interface{}{
		"hash":  short,
		"width": r.hashLength,
	})

	return short, nil
}

// ChangedTrackedFiles returns the sorted paths of tracked files that differ
// from HEAD, whether staged or unstaged. Untracked files are excluded: a
// stray scratch file must not mark a build dirty.
func (r *GoGitInspector) ChangedTrackedFiles(ctx context.Context) ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}

	var changed []string
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Untracked || fileStatus.Worktree == git.Untracked {
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)

	r.logger.Debug(ctx, "inspected working tree", map[string]interface{}{
		"changed_count": len(changed),
	})

	return changed, nil
}

// Close releases any resources held by the inspector.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitInspector) Close() error {
	return nil
}

// shorten truncates a full hash to the configured abbreviation width.
func (r *GoGitInspector) shorten(hash plumbing.Hash) string {
	full := hash.String()
	if r.hashLength > 0 && r.hashLength < len(full) {
		return full[:r.hashLength]
	}
	return full
}
