// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/exp/maps"

	"github.com/invowk/modrename/internal/issue"
	"github.com/invowk/modrename/pkg/cueutil"
	"github.com/invowk/modrename/pkg/modrename"
	"github.com/invowk/modrename/pkg/platform"
	"github.com/invowk/modrename/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "modrename"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFileName is looked up in the base directory when the
	// config directory holds no file.
	LocalConfigFileName = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment overrides, e.g. MODRENAME_UI_VERBOSE.
	EnvPrefix = "MODRENAME"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the modrename configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (types.FilesystemPath, error) {
	if configDirOverride != "" {
		return types.FilesystemPath(configDirOverride), nil
	}

	var configDir string
	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return types.FilesystemPath(filepath.Join(configDir, AppName)), nil
}

// LoadWithSource loads the configuration and reports which file it came
// from. A missing default file is not an error; a missing --config file is.
func LoadWithSource(ctx context.Context, opts LoadOptions) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{}, fmt.Errorf("load config canceled: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return LoadResult{}, err
	}

	v := newViper()
	path, err := resolveConfigFile(opts)
	if err != nil {
		return LoadResult{}, err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return LoadResult{}, loadError(path, err,
				"Check that the file contains valid CUE syntax",
				"Verify the configuration values match the expected schema",
			)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.CodeExtensions = normalizeExtensions(cfg.CodeExtensions)

	if valid, errs := cfg.IsValid(); !valid {
		return LoadResult{}, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path.String()).
			WithSuggestion("Exclude patterns use doublestar syntax, e.g. 'tests/**' or '**/*.png'").
			WithSuggestion("Code extensions are bare extensions such as 'php' or 'module'").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}
	return LoadResult{Config: &cfg, Path: path}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("project_root", defaults.ProjectRoot.String())
	v.SetDefault("allowed_tree", defaults.AllowedTree.String())
	v.SetDefault("code_extensions", defaults.CodeExtensionStrings())
	v.SetDefault("exclude", defaults.ExcludeStrings())
	v.SetDefault("follow_symlinks", defaults.FollowSymlinks)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// resolveConfigFile picks the file to load: the explicit path, then the
// config directory, then the base directory. Empty means none.
func resolveConfigFile(opts LoadOptions) (types.FilesystemPath, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", loadError(opts.ConfigFilePath, fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
				"Verify the file path is correct",
				"Use 'modrename config show' to see the default configuration",
			)
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir := opts.ConfigDirPath
	if cfgDir == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		cfgDir = dir
	}
	if p := types.FilesystemPath(filepath.Join(string(cfgDir), ConfigFileName+"."+ConfigFileExt)); fileExists(p) {
		return p, nil
	}

	local := types.FilesystemPath(filepath.Join(string(opts.BaseDir), LocalConfigFileName))
	if fileExists(local) {
		return local, nil
	}
	return "", nil
}

func loadError(path types.FilesystemPath, err error, suggestions ...string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path.String()).
		WithSuggestions(suggestions...).
		WithSuggestion("See 'modrename config --help' for configuration options").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper validates a CUE file against #Config and merges it into
// Viper, keeping defaults for omitted fields and letting the environment
// override both.
func loadCUEIntoViper(v *viper.Viper, path types.FilesystemPath) error {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	res, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path.String()),
	)
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// normalizeExtensions lowercases, strips dots and de-duplicates, returning
// the set in sorted order.
func normalizeExtensions(exts []CodeExtension) []CodeExtension {
	set := make(map[CodeExtension]struct{}, len(exts))
	for _, e := range exts {
		set[CodeExtension(modrename.NormalizeExtension(string(e)))] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

func fileExists(path types.FilesystemPath) bool {
	info, err := os.Stat(string(path))
	return err == nil && !info.IsDir()
}

// GenerateCUE renders cfg as a config file that the schema accepts.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// modrename configuration\n\n")
	fmt.Fprintf(&sb, "project_root: %q\n", cfg.ProjectRoot)
	fmt.Fprintf(&sb, "allowed_tree: %q\n", cfg.AllowedTree)
	fmt.Fprintf(&sb, "code_extensions: [%s]\n", quoteList(cfg.CodeExtensions))
	fmt.Fprintf(&sb, "exclude: [%s]\n", quoteList(cfg.Exclude))
	fmt.Fprintf(&sb, "follow_symlinks: %v\n", cfg.FollowSymlinks)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}

func quoteList[S ~string](items []S) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", string(s))
	}
	return strings.Join(quoted, ", ")
}
