package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv unsets every variable the loader reads. t.Setenv registers
// the restore, so the original environment comes back after the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvTagPrefix, EnvHashLength, EnvLogLevel, EnvLogAppName} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// writeConfigFile writes content to a temp config file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fwver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	clearConfigEnv(t)

	// Act - the default file does not exist in the test working directory
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultTagPrefix, cfg.TagPrefix)
	assert.Equal(t, DefaultHashLength, cfg.HashLength)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogAppName, cfg.LogAppName)
}

func TestLoadFromFile_ExplicitFileMissing(t *testing.T) {
	clearConfigEnv(t)

	// Act
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadFromFile_ValidYAML(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfigFile(t, `
tag_prefix: rel-
hash_length: 10
log_level: debug
log_app_name: firmware-build
`)

	// Act
	cfg, err := LoadFromFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "rel-", cfg.TagPrefix)
	assert.Equal(t, 10, cfg.HashLength)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "firmware-build", cfg.LogAppName)
}

func TestLoadFromFile_PartialYAMLGetsDefaults(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfigFile(t, "tag_prefix: fw-\n")

	// Act
	cfg, err := LoadFromFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "fw-", cfg.TagPrefix)
	assert.Equal(t, DefaultHashLength, cfg.HashLength)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogAppName, cfg.LogAppName)
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfigFile(t, "tag_prefix: [unclosed\n")

	// Act
	_, err := LoadFromFile(path)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigInvalid)
}

func TestLoadFromFile_ReadError(t *testing.T) {
	clearConfigEnv(t)

	// A directory instead of a file triggers a read error, not "not found"
	dirPath := filepath.Join(t.TempDir(), "not-a-file")
	require.NoError(t, os.Mkdir(dirPath, 0o755))

	// Act
	_, err := LoadFromFile(dirPath)

	// Assert
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)

	path := writeConfigFile(t, `
tag_prefix: rel-
hash_length: 8
`)
	t.Setenv(EnvTagPrefix, "v")
	t.Setenv(EnvHashLength, "12")

	// Act
	cfg, err := LoadFromFile(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, 12, cfg.HashLength)
}

func TestLoad_InvalidHashLengthEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvHashLength, "seven")

	// Act
	_, err := Load()

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Contains(t, err.Error(), EnvHashLength)
}

func TestLoad_HashLengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "below minimum", value: "3", wantErr: true},
		{name: "at minimum", value: "4"},
		{name: "at maximum", value: "40"},
		{name: "above maximum", value: "41", wantErr: true},
		{name: "negative", value: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(EnvHashLength, tt.value)

			_, err := Load()

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidHashLength)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad_LogSettingsFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogAppName, "custom-app")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "custom-app", cfg.LogAppName)
}

func TestExportLogEnvironment_FillsUnsetVariables(t *testing.T) {
	clearConfigEnv(t)

	cfg := &Config{LogLevel: "debug", LogAppName: "firmware-build"}
	cfg.ExportLogEnvironment()

	assert.Equal(t, "debug", os.Getenv(EnvLogLevel))
	assert.Equal(t, "firmware-build", os.Getenv(EnvLogAppName))
}

func TestExportLogEnvironment_ExistingEnvironmentWins(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvLogLevel, "error")

	cfg := &Config{LogLevel: "debug", LogAppName: "firmware-build"}
	cfg.ExportLogEnvironment()

	assert.Equal(t, "error", os.Getenv(EnvLogLevel))
	assert.Equal(t, "firmware-build", os.Getenv(EnvLogAppName))
}

func TestValidate(t *testing.T) {
	cfg := &Config{TagPrefix: "v", HashLength: 7, LogLevel: "info", LogAppName: "fwver"}
	require.NoError(t, cfg.Validate())

	cfg.HashLength = 2
	require.Error(t, cfg.Validate())
}
