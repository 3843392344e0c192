package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "scriptdeck.toml", `
dataDir = "/tmp/deck"
logLevel = "debug"
watchLibrary = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/deck", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.WatchLibrary)
	// Unset fields keep defaults.
	assert.Equal(t, "plugins.json", cfg.LibraryFile)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "scriptdeck.yaml", `
dataDir: /tmp/deck
libraryFile: library.json
logLevel: warn
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/deck", cfg.DataDir)
	assert.Equal(t, "library.json", cfg.LibraryFile)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().LibraryFile, cfg.LibraryFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "scriptdeck.ini", "x=1")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "bad.toml", "dataDir = [broken")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data"

	assert.Equal(t, filepath.Join("/data", "plugins.json"), cfg.LibraryPath())
	assert.Equal(t, filepath.Join("/data", "uistate.json"), cfg.UIStatePath())
	assert.Equal(t, filepath.Join("/data", "hoststate.json"), cfg.HostStatePath())
}
