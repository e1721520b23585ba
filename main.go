// Package main is the entry point for the fwver CLI application.
// fwver derives a firmware version string from local Git repository state
// and renders it for consumption by firmware build systems.
package main

import (
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/MyCarrier-DevOps/fwver/cmd"
	"github.com/MyCarrier-DevOps/fwver/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/fwver/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/fwver/internal/adapters/output"
	"github.com/MyCarrier-DevOps/fwver/internal/domain"
	"github.com/MyCarrier-DevOps/fwver/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/fwver/internal/usecases"
)

func main() {
	// Wire up production dependencies
	deps := &cmd.Dependencies{
		// Constructed lazily so the log level set by flags and config is
		// already in the environment when the zap logger reads it.
		LoggerFactory: func() cmd.Logger {
			return logadapter.NewZapAdapter(logger.NewZapLoggerFromConfig())
		},

		ConfigLoader: func(path string) (*config.Config, error) {
			if path == "" {
				return config.Load()
			}
			return config.LoadFromFile(path)
		},

		InspectorFactory: func(path, tagPrefix string, hashLength int, log cmd.Logger) (domain.RepositoryInspector, error) {
			return git.NewGoGitInspector(path, tagPrefix, hashLength, log)
		},

		ResolverFactory: func(inspector domain.RepositoryInspector, tagPrefix string, log cmd.Logger) domain.Resolver {
			return usecases.NewVersionResolver(inspector, tagPrefix, log)
		},

		WriterFactory: func(path string) domain.OutputWriter {
			if path == "" {
				return output.NewWriter()
			}
			return output.NewFileWriter(path)
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	cmd.Execute()
}
