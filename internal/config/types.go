// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/invowk/modrename/pkg/modrename"
	"github.com/invowk/modrename/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultAllowedTree is the subtree modules may be renamed in.
	DefaultAllowedTree types.FilesystemPath = "modules/custom"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCodeExtension is returned for an empty or dotted extension.
	ErrInvalidCodeExtension = errors.New("invalid code extension")
	// ErrInvalidExcludePattern is returned for a malformed doublestar pattern.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the effective modrename configuration.
	Config struct {
		// ProjectRoot is the directory scanned for modules.
		ProjectRoot types.FilesystemPath `json:"project_root" mapstructure:"project_root"`
		// AllowedTree is the path segment sequence a module must live under.
		AllowedTree types.FilesystemPath `json:"allowed_tree" mapstructure:"allowed_tree"`
		// CodeExtensions are tokenized before replacement.
		CodeExtensions []CodeExtension `json:"code_extensions" mapstructure:"code_extensions"`
		// Exclude lists doublestar globs skipped during content rewriting.
		Exclude []ExcludePattern `json:"exclude" mapstructure:"exclude"`
		// FollowSymlinks rewrites through symlinks.
		FollowSymlinks bool     `json:"follow_symlinks" mapstructure:"follow_symlinks"`
		UI             UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme picks the style for rendered issue help.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging and the error chain.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// CodeExtension is a file extension without its leading dot.
	CodeExtension string

	// ExcludePattern is a doublestar glob.
	ExcludePattern string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidCodeExtensionError is returned when a CodeExtension is unusable.
	InvalidCodeExtensionError struct {
		Value CodeExtension
	}

	// InvalidExcludePatternError is returned when an ExcludePattern is malformed.
	InvalidExcludePatternError struct {
		Value ExcludePattern
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	exts := modrename.DefaultCodeExtensions()
	codeExts := make([]CodeExtension, len(exts))
	for i, e := range exts {
		codeExts[i] = CodeExtension(e)
	}
	return &Config{
		ProjectRoot:    ".",
		AllowedTree:    DefaultAllowedTree,
		CodeExtensions: codeExts,
		Exclude:        []ExcludePattern{},
		FollowSymlinks: false,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// IsValid returns whether the Config has valid fields, and every field
// error found.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if err := c.ProjectRoot.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("project_root: %w", err))
	}
	if err := c.AllowedTree.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("allowed_tree: %w", err))
	}
	for _, ext := range c.CodeExtensions {
		if valid, fieldErrs := ext.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, p := range c.Exclude {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// CodeExtensionStrings returns the normalized code extensions.
func (c Config) CodeExtensionStrings() []string {
	out := make([]string, 0, len(c.CodeExtensions))
	for _, e := range c.CodeExtensions {
		out = append(out, modrename.NormalizeExtension(string(e)))
	}
	return out
}

// ExcludeStrings returns the exclude patterns as plain strings.
func (c Config) ExcludeStrings() []string {
	out := make([]string, len(c.Exclude))
	for i, p := range c.Exclude {
		out[i] = string(p)
	}
	return out
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid reports whether the extension is non-empty once a leading dot
// is stripped, and contains no further dot or separator.
func (e CodeExtension) IsValid() (bool, []error) {
	n := modrename.NormalizeExtension(string(e))
	if n == "" || strings.ContainsAny(n, `./\`) {
		return false, []error{&InvalidCodeExtensionError{Value: e}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCodeExtensionError.
func (e *InvalidCodeExtensionError) Error() string {
	return fmt.Sprintf("invalid code extension %q", e.Value)
}

// Unwrap returns ErrInvalidCodeExtension.
func (e *InvalidCodeExtensionError) Unwrap() error { return ErrInvalidCodeExtension }

// IsValid reports whether the pattern is a well-formed doublestar glob.
func (p ExcludePattern) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" || !doublestar.ValidatePattern(string(p)) {
		return false, []error{&InvalidExcludePatternError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidExcludePatternError.
func (e *InvalidExcludePatternError) Error() string {
	return fmt.Sprintf("invalid exclude pattern %q", e.Value)
}

// Unwrap returns ErrInvalidExcludePattern.
func (e *InvalidExcludePatternError) Unwrap() error { return ErrInvalidExcludePattern }
