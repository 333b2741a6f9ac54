// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	mu sync.Mutex

	// globalConfig caches the last successfully loaded configuration.
	globalConfig *Config
	// configPath records where globalConfig was loaded from ("" = defaults).
	configPath string

	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the cached configuration, loading it on first use.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
		ConfigDirPath:  configDirOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	return globalConfig, nil
}

// LoadedConfigPath returns the path of the cached config file, or "" when
// defaults are in effect. Only meaningful after Load.
func LoadedConfigPath() string {
	mu.Lock()
	defer mu.Unlock()
	return configPath
}

// SetConfigFilePathOverride sets a custom config file path and clears the
// cache so the next Load reads from it.
func SetConfigFilePathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = path
	globalConfig = nil
	configPath = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	mu.Lock()
	defer mu.Unlock()
	configDirOverride = dir
	globalConfig = nil
	configPath = ""
}

// Reset clears test overrides and the cache. Call from test cleanup to
// restore defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	configFilePathOverride = ""
	configDirOverride = ""
	globalConfig = nil
	configPath = ""
}
