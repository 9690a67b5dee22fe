// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/invowk/modrename/pkg/fspath"
	"github.com/invowk/modrename/pkg/platform"
	"github.com/invowk/modrename/pkg/types"
)

// State is a step of the rename state machine. States are reached in
// declaration order; StateFailed is terminal.
type State int

const (
	// StatePending is the state before the module has been located.
	StatePending State = iota
	// StateLocated means the locator resolved the module directory.
	StateLocated
	// StateContentRewritten means every file under the module was rewritten.
	StateContentRewritten
	// StateFilesRenamed means root-level entries carry the new name.
	StateFilesRenamed
	// StateDirectoryRenamed means the module directory was moved. Terminal.
	StateDirectoryRenamed
	// StateFailed means a transition failed. Terminal.
	StateFailed
)

type (
	// Request asks for module Old to be renamed to New.
	Request struct {
		Old types.ModuleName
		New types.ModuleName
	}

	// ModuleDescriptor identifies a module directory. Path is relative to
	// Root when Root is set, and used as-is otherwise.
	ModuleDescriptor struct {
		Name types.ModuleName
		Root types.FilesystemPath
		Path types.FilesystemPath
	}

	// RenameOp records one performed move.
	RenameOp struct {
		From types.FilesystemPath
		To   types.FilesystemPath
	}

	// Report is the outcome of one Rename call. State is the last state that
	// completed; it is meaningful on failure too, since no phase rolls back.
	Report struct {
		State      State
		Failed     bool
		Descriptor ModuleDescriptor
		Rewritten  []types.FilesystemPath
		Renamed    []RenameOp
		NewModule  ModuleDescriptor
	}
)

// Validate checks both names and that they differ. All problems are
// reported together in an *InvalidRequestError.
func (r Request) Validate() error {
	var errs []error
	if err := r.Old.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("old name: %w", err))
	}
	if err := r.New.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("new name: %w", err))
	} else if err := checkPortable(r.New, runtime.GOOS); err != nil {
		errs = append(errs, fmt.Errorf("new name: %w", err))
	}
	if len(errs) == 0 && r.Old == r.New {
		errs = append(errs, errors.New("old and new names are identical"))
	}
	if len(errs) > 0 {
		return &InvalidRequestError{FieldErrors: errs}
	}
	return nil
}

// checkPortable rejects names goos cannot create as a directory.
func checkPortable(name types.ModuleName, goos string) error {
	if goos == platform.Windows && platform.IsWindowsReservedName(name.String()) {
		return &types.InvalidModuleNameError{Value: name, Reason: "is a reserved device name on Windows"}
	}
	return nil
}

// Dir returns the module directory on disk.
func (d ModuleDescriptor) Dir() types.FilesystemPath {
	if d.Root == "" || fspath.IsAbs(d.Path) {
		return d.Path
	}
	return fspath.Join(d.Root, d.Path)
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLocated:
		return "located"
	case StateContentRewritten:
		return "content-rewritten"
	case StateFilesRenamed:
		return "files-renamed"
	case StateDirectoryRenamed:
		return "directory-renamed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// transition describes the work that leads into s.
func (s State) transition() string {
	switch s {
	case StateLocated:
		return "locate module"
	case StateContentRewritten:
		return "rewrite content"
	case StateFilesRenamed:
		return "rename files"
	case StateDirectoryRenamed:
		return "rename directory"
	default:
		return s.String()
	}
}
