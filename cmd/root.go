// Package cmd provides the CLI commands for fwver.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/fwver/internal/domain"
	"github.com/MyCarrier-DevOps/fwver/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/fwver/internal/render"
	"github.com/MyCarrier-DevOps/fwver/internal/version"
)

// DefaultHeaderFile is where header output goes when --output is not given.
const DefaultHeaderFile = "version.h"

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration. An empty path selects
	// the optional default file; a non-empty path must exist.
	ConfigLoader func(path string) (*config.Config, error)

	// InspectorFactory creates a RepositoryInspector for the given path.
	InspectorFactory func(path, tagPrefix string, hashLength int, log Logger) (domain.RepositoryInspector, error)

	// ResolverFactory creates a Resolver with the given dependencies.
	ResolverFactory func(inspector domain.RepositoryInspector, tagPrefix string, log Logger) domain.Resolver

	// WriterFactory creates an OutputWriter. An empty path means stdout;
	// a non-empty path means an atomic file write.
	WriterFactory func(path string) domain.OutputWriter

	// Stdout is the writer for standard output.
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// Command-line flags.
var (
	format     string
	outputPath string
	configPath string
	verbose    bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for fwver.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fwver [path]",
		Short: "Derive a firmware version string from Git repository state",
		Long: `fwver derives a firmware version string from local Git repository state.

It describes HEAD against the repository's version tags, parses the
<major>.<minor>.<patch> triple out of the nearest reachable tag, reads the
short commit hash, and marks the build dirty when tracked files carry
uncommitted changes. The result renders as a compact display string, as
NAME=value build definitions, or as a generated C header.

Any failure is fatal with a non-zero exit. A build step that cannot
determine its version must fail rather than silently stamp a wrong one.

Examples:
  # Print the compact version string for the current repository
  fwver

  # Print build-system definitions for make or CMake to eval
  fwver --format defines

  # Regenerate version.h as a pre-build step
  fwver --format header

  # Stamp a repository elsewhere, writing the header to the build tree
  fwver /path/to/firmware --format header --output build/version.h

  # Enable verbose logging
  fwver -v`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&format, "format", "f", string(render.StyleCompact),
		"Output format: compact, defines, or header")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"Write the rendering to a file instead of stdout (header format defaults to "+DefaultHeaderFile+")")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Config file path (default "+config.DefaultConfigFile+" if present)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	version.AttachCobraVersionCommand(rootCmd)

	return rootCmd
}

// runResolve executes the version derivation with injected dependencies.
func runResolve(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Determine repository path
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv(config.EnvLogLevel, "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	style, err := render.ParseStyle(format)
	if err != nil {
		return err
	}

	// Header output defaults to a file; the other formats default to stdout.
	destination := outputPath
	if style == render.StyleHeader && destination == "" {
		destination = DefaultHeaderFile
	}

	// Load configuration before the logger so file-configured log settings
	// reach the logger factory.
	cfg, err := deps.ConfigLoader(configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	cfg.ExportLogEnvironment()

	// Initialize logger
	log := deps.LoggerFactory()

	log.Info(ctx, "starting fwver", map[string]interface{}{
		"path":    repoPath,
		"format":  string(style),
		"output":  destination,
		"verbose": verbose,
	})

	// Initialize repository inspector
	inspector, err := deps.InspectorFactory(repoPath, cfg.TagPrefix, cfg.HashLength, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"path": repoPath,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("not a git repository: %s", repoPath)
		}
		return err
	}
	defer func() {
		if closeErr := inspector.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close repository inspector", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	// Resolve the version descriptor
	resolver := deps.ResolverFactory(inspector, cfg.TagPrefix, log)
	descriptor, err := resolver.Resolve(ctx)
	if err != nil {
		log.Error(ctx, "failed to resolve firmware version", err, nil)
		switch {
		case errors.Is(err, domain.ErrTagNotFound):
			return fmt.Errorf("no version tag reachable from HEAD: tag a release (e.g. %s1.0.0) first", cfg.TagPrefix)
		case errors.Is(err, domain.ErrNoCommits):
			return fmt.Errorf("repository has no commits to version: %s", repoPath)
		default:
			return err
		}
	}

	rendered, err := render.Render(descriptor, style)
	if err != nil {
		return err
	}

	// Deliver the rendering
	writer := deps.WriterFactory(destination)
	if err := writer.WriteRendered(rendered); err != nil {
		log.Error(ctx, "failed to write output", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	log.Info(ctx, "firmware version resolved", map[string]interface{}{
		"version": render.Compact(descriptor),
		"dirty":   descriptor.Dirty,
		"format":  string(style),
		"output":  destination,
	})

	return nil
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
