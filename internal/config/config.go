// Package config loads host configuration from TOML or YAML files.
// A missing config file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the host's settings.
type Config struct {
	// DataDir is where the library and state files live.
	DataDir string `toml:"dataDir" yaml:"dataDir"`

	// LibraryFile is the plugin library file name inside DataDir.
	LibraryFile string `toml:"libraryFile" yaml:"libraryFile"`

	// UIStateFile is the UI-state file name inside DataDir.
	UIStateFile string `toml:"uiStateFile" yaml:"uiStateFile"`

	// HostStateFile is the host-state file name inside DataDir.
	HostStateFile string `toml:"hostStateFile" yaml:"hostStateFile"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"logLevel" yaml:"logLevel"`

	// WatchLibrary enables change notifications for external edits to the
	// library file.
	WatchLibrary bool `toml:"watchLibrary" yaml:"watchLibrary"`
}

// Default returns the default configuration.
func Default() Config {
	dataDir := "."
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".config", "scriptdeck")
	}
	return Config{
		DataDir:       dataDir,
		LibraryFile:   "plugins.json",
		UIStateFile:   "uistate.json",
		HostStateFile: "hoststate.json",
		LogLevel:      "info",
	}
}

// Load reads configuration from path, selecting the format by extension
// (.toml, .yaml, .yml). A missing file returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// LibraryPath returns the full path of the plugin library file.
func (c Config) LibraryPath() string {
	return filepath.Join(c.DataDir, c.LibraryFile)
}

// UIStatePath returns the full path of the UI-state file.
func (c Config) UIStatePath() string {
	return filepath.Join(c.DataDir, c.UIStateFile)
}

// HostStatePath returns the full path of the host-state file.
func (c Config) HostStatePath() string {
	return filepath.Join(c.DataDir, c.HostStateFile)
}
