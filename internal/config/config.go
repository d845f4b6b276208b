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

	"github.com/gpihelp/gpihelp/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "gpihelp"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the gpihelp configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
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

// ConfigFilePath returns the path of the config file inside dir, or inside
// ConfigDir when dir is empty.
//
//nolint:revive // mirrors ConfigDir
func ConfigFilePath(dir string) (string, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading. It returns the
// configuration and the path of the file it was read from ("" when only
// defaults were used).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("pager", defaults.Pager)
	v.SetDefault("render.max_inline_string", defaults.Render.MaxInlineString)
	v.SetDefault("render.max_other_value", defaults.Render.MaxOtherValue)
	v.SetDefault("render.title", defaults.Render.Title)
	v.SetDefault("index.title", defaults.Index.Title)
	v.SetDefault("index.width", defaults.Index.Width)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.glamour_style", defaults.UI.GlamourStyle)

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestions(
					"Verify the file path is correct",
					"Check that the file exists and is readable",
					"Use 'gpihelp config show' to see the default configuration",
				).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", cueLoadError(opts.ConfigFilePath, err)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cuePath, err := ConfigFilePath(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// Fall back to the current directory; no file at all means defaults.
		for _, candidate := range []string{cuePath, ConfigFileName + "." + ConfigFileExt} {
			if !fileExists(candidate) {
				continue
			}
			if err := loadCUEIntoViper(v, candidate); err != nil {
				return nil, "", cueLoadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Cross-field rules CUE cannot express, such as a single %s in titles.
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.InvalidConfigId).
			WithSuggestions(
				"Page titles must contain exactly one %s",
				"Render limits must be at least 1",
			).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func cueLoadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'gpihelp config --help' for configuration options").
		Wrap(err).
		BuildError()
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
// Config decodes to map[string]any rather than a struct so Viper keeps its
// defaults for omitted fields, and validation uses Concrete(false) because
// every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := checkFileSize(data, maxConfigFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge into Viper (preserves defaults)
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

// CreateDefaultConfig writes a default config file into dir (ConfigDir when
// empty) unless one exists. It returns the path of the file.
func CreateDefaultConfig(dir string) (string, error) {
	cfgPath, err := ConfigFilePath(dir)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil // File exists
	}

	if err := Save(DefaultConfig(), cfgPath); err != nil {
		return "", err
	}
	return cfgPath, nil
}

// Save writes cfg as CUE to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// gpihelp configuration file\n")
	sb.WriteString("// Run 'gpihelp config --help' for documentation.\n\n")

	fmt.Fprintf(&sb, "pager: %q\n", cfg.Pager)

	sb.WriteString("\nrender: {\n")
	fmt.Fprintf(&sb, "\tmax_inline_string: %d\n", cfg.Render.MaxInlineString)
	fmt.Fprintf(&sb, "\tmax_other_value: %d\n", cfg.Render.MaxOtherValue)
	fmt.Fprintf(&sb, "\ttitle: %q\n", cfg.Render.Title)
	sb.WriteString("}\n")

	sb.WriteString("\nindex: {\n")
	fmt.Fprintf(&sb, "\ttitle: %q\n", cfg.Index.Title)
	fmt.Fprintf(&sb, "\twidth: %d\n", cfg.Index.Width)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tglamour_style: %q\n", cfg.UI.GlamourStyle)
	sb.WriteString("}\n")

	return sb.String()
}
