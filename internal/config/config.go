// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"stevedore-cli/internal/issue"
	"stevedore-cli/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "stevedore"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix is the prefix for environment variable overrides
	// (e.g. STEVEDORE_REGISTRY, STEVEDORE_MAX_DEPTH).
	EnvPrefix = "STEVEDORE"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the stevedore configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level cache state. Callers that want caching can wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("container_engine", defaults.ContainerEngine)
	v.SetDefault("registry", defaults.Registry)
	v.SetDefault("root", defaults.Root)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	// Environment overrides sit between the config file and CLI flags:
	// STEVEDORE_REGISTRY, STEVEDORE_MAX_DEPTH, STEVEDORE_UI_VERBOSE, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'stevedore config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'stevedore config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// Try to load CUE config file
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(cuePath).
					WithSuggestion("Check that the file contains valid CUE syntax").
					WithSuggestion("Verify the configuration values match the expected schema").
					WithSuggestion("See 'stevedore config --help' for configuration options").
					Wrap(err).
					BuildError()
			}
			resolvedPath = cuePath
		} else {
			// Also check current directory
			localCuePath := ConfigFileName + "." + ConfigFileExt
			if fileExists(localCuePath) {
				if err := loadCUEIntoViper(v, localCuePath); err != nil {
					return nil, "", issue.NewErrorContext().
						WithOperation("load configuration").
						WithResource(localCuePath).
						WithSuggestion("Check that the file contains valid CUE syntax").
						WithSuggestion("Verify the configuration values match the expected schema").
						WithSuggestion("See 'stevedore config --help' for configuration options").
						Wrap(err).
						BuildError()
				}
				resolvedPath = localCuePath
			}
			// If no config file found, use defaults (no error)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Check the reported field against 'stevedore config show'").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Config decodes to map[string]any (not a struct) so Viper can layer env
// overrides on top, and validation uses Concrete(false) because every
// config field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	// Compile the schema
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	// Compile the user's config file
	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Decode to Go map
	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist
func CreateDefaultConfig() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	cueContent := GenerateCUE(defaults)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the configuration to the config file, creating the
// config directory if needed.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	cueContent := GenerateCUE(cfg)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Stevedore Configuration File\n\n")

	sb.WriteString(fmt.Sprintf("container_engine: %q\n", cfg.ContainerEngine))
	if cfg.Registry != "" {
		sb.WriteString(fmt.Sprintf("registry: %q\n", cfg.Registry))
	}
	sb.WriteString(fmt.Sprintf("root: %q\n", cfg.Root))
	sb.WriteString(fmt.Sprintf("max_depth: %d\n", cfg.MaxDepth))

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
