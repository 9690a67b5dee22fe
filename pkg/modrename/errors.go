// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/invowk/modrename/pkg/types"
)

var (
	// ErrInvalidRequest is returned when a Request fails validation.
	ErrInvalidRequest = errors.New("invalid rename request")
	// ErrModuleNotFound is returned when the locator has no usable path for a module.
	ErrModuleNotFound = errors.New("module not found")
	// ErrOutsideAllowedTree is returned when a module exists but lies outside
	// the tree modules may be renamed in. It also matches ErrModuleNotFound.
	ErrOutsideAllowedTree = errors.New("module outside allowed tree")
	// ErrTargetExists is returned when the new module directory already exists.
	ErrTargetExists = errors.New("target directory already exists")
	// ErrDirectoryRenameFailed is returned when moving the module directory fails.
	ErrDirectoryRenameFailed = errors.New("directory rename failed")
	// ErrFileRenameFailed is returned when moving a file at the module root fails.
	ErrFileRenameFailed = errors.New("file rename failed")
	// ErrFileIO is returned when a file cannot be listed, read or written
	// while rewriting content.
	ErrFileIO = errors.New("file I/O error")
)

type (
	// InvalidRequestError collects every field error of a Request.
	InvalidRequestError struct {
		FieldErrors []error
	}

	// ModuleNotFoundError is returned by locators when no module has the name.
	ModuleNotFoundError struct {
		Name types.ModuleName
	}

	// OutsideAllowedTreeError is returned by locators when the module exists
	// but not under the allowed tree.
	OutsideAllowedTreeError struct {
		Name        types.ModuleName
		Path        types.FilesystemPath
		AllowedTree types.FilesystemPath
	}

	// TargetExistsError is returned when the computed module path is taken.
	TargetExistsError struct {
		Path types.FilesystemPath
	}

	// DirectoryRenameError is returned when the module directory move fails.
	DirectoryRenameError struct {
		From types.FilesystemPath
		To   types.FilesystemPath
		Err  error
	}

	// FileRenameError is returned when a root-level entry move fails.
	FileRenameError struct {
		From types.FilesystemPath
		To   types.FilesystemPath
		Err  error
	}

	// FileIOError is returned when content rewriting cannot list, read or
	// write a path. Op is one of "list", "read", "write" or "stat".
	FileIOError struct {
		Op   string
		Path types.FilesystemPath
		Err  error
	}

	// PhaseError wraps the error of the transition that failed. Phase is the
	// state the Renamer was trying to reach.
	PhaseError struct {
		Phase State
		Err   error
	}
)

// Error implements the error interface.
func (e *InvalidRequestError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid rename request: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid rename request: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidRequest and the field errors.
func (e *InvalidRequestError) Unwrap() []error {
	return append([]error{ErrInvalidRequest}, e.FieldErrors...)
}

// Error implements the error interface.
func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q not found", e.Name)
}

// Unwrap returns ErrModuleNotFound.
func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

// Error implements the error interface.
func (e *OutsideAllowedTreeError) Error() string {
	return fmt.Sprintf("module %q at %s is not located under %s", e.Name, e.Path, e.AllowedTree)
}

// Unwrap returns ErrOutsideAllowedTree and ErrModuleNotFound: the module is
// treated as not found for renaming purposes.
func (e *OutsideAllowedTreeError) Unwrap() []error {
	return []error{ErrOutsideAllowedTree, ErrModuleNotFound}
}

// Error implements the error interface.
func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("the target directory already exists: %s", e.Path)
}

// Unwrap returns ErrTargetExists and fs.ErrExist.
func (e *TargetExistsError) Unwrap() []error { return []error{ErrTargetExists, fs.ErrExist} }

// Error implements the error interface.
func (e *DirectoryRenameError) Error() string {
	return fmt.Sprintf("failed to rename the directory from %s to %s: %v", e.From, e.To, cause(e.Err))
}

// Unwrap returns ErrDirectoryRenameFailed and the underlying error.
func (e *DirectoryRenameError) Unwrap() []error { return []error{ErrDirectoryRenameFailed, e.Err} }

// Error implements the error interface.
func (e *FileRenameError) Error() string {
	return fmt.Sprintf("failed to rename file %s to %s: %v", e.From, e.To, cause(e.Err))
}

// Unwrap returns ErrFileRenameFailed and the underlying error.
func (e *FileRenameError) Unwrap() []error { return []error{ErrFileRenameFailed, e.Err} }

// Error implements the error interface.
func (e *FileIOError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, cause(e.Err))
}

// Unwrap returns ErrFileIO and the underlying error.
func (e *FileIOError) Unwrap() []error { return []error{ErrFileIO, e.Err} }

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase.transition(), e.Err)
}

// Unwrap returns the phase's error.
func (e *PhaseError) Unwrap() error { return e.Err }

// cause strips *fs.PathError and *os.LinkError wrappers whose path the
// enclosing error already prints.
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return linkErr.Err
	}
	return err
}
