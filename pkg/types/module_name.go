// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModuleName is the sentinel error wrapped by InvalidModuleNameError.
var ErrInvalidModuleName = errors.New("invalid module name")

type (
	// ModuleName is a module's short identifier, the string that names its
	// directory, prefixes its files and appears throughout its code.
	// Matching against it is plain substring matching, so no character set
	// is imposed beyond what a single path element can hold.
	ModuleName string

	// InvalidModuleNameError is returned when a ModuleName cannot be used as
	// a path element.
	InvalidModuleNameError struct {
		Value  ModuleName
		Reason string
	}
)

// String returns the string representation of the ModuleName.
func (n ModuleName) String() string { return string(n) }

// Validate returns an error if the name is empty, whitespace-only, a dot
// segment, or contains a path separator.
func (n ModuleName) Validate() error {
	s := string(n)
	switch {
	case strings.TrimSpace(s) == "":
		return &InvalidModuleNameError{Value: n, Reason: "must be non-empty"}
	case s == "." || s == "..":
		return &InvalidModuleNameError{Value: n, Reason: "must not be a dot segment"}
	case strings.ContainsAny(s, `/\`):
		return &InvalidModuleNameError{Value: n, Reason: "must not contain a path separator"}
	case strings.ContainsRune(s, 0):
		return &InvalidModuleNameError{Value: n, Reason: "must not contain NUL"}
	}
	return nil
}

// Error implements the error interface for InvalidModuleNameError.
func (e *InvalidModuleNameError) Error() string {
	return fmt.Sprintf("invalid module name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidModuleName for errors.Is() compatibility.
func (e *InvalidModuleNameError) Unwrap() error { return ErrInvalidModuleName }
