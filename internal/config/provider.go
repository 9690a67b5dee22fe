// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/invowk/modrename/pkg/types"
)

// ErrInvalidLoadOptions is the sentinel wrapped by InvalidLoadOptionsError.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// LoadOptions defines explicit configuration loading inputs. Zero
	// fields fall back to the default lookup.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath types.FilesystemPath
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath types.FilesystemPath
		// BaseDir is where the local modrename.cue is looked up. Empty
		// means the working directory.
		BaseDir types.FilesystemPath
	}

	// InvalidLoadOptionsError collects LoadOptions field errors.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// LoadResult is a loaded configuration together with the file it came
	// from. Path is empty when only defaults and environment applied.
	LoadResult struct {
		Config *Config
		Path   types.FilesystemPath
	}

	fileProvider struct{}
)

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	res, err := LoadWithSource(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// Validate checks that every set field is a usable path.
func (o LoadOptions) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    types.FilesystemPath
	}{
		{"config file path", o.ConfigFilePath},
		{"config dir path", o.ConfigDirPath},
		{"base dir", o.BaseDir},
	} {
		if f.v == "" {
			continue
		}
		if err := f.v.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	if len(errs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidLoadOptionsError) Error() string {
	return fmt.Sprintf("invalid load options: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }
