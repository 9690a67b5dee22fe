// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/invowk/modrename/pkg/types"
)

// NewModulePath returns desc with every occurrence of oldName in its
// root-relative Path replaced by newName. Root is kept, so a project root
// that happens to contain the name is never altered.
func NewModulePath(desc ModuleDescriptor, oldName, newName string) ModuleDescriptor {
	out := desc
	out.Path = types.FilesystemPath(strings.ReplaceAll(string(desc.Path), oldName, newName))
	out.Name = types.ModuleName(newName)
	return out
}

// RenameDirectory moves the module directory to NewModulePath in a single
// rename. When anything already exists at the target it returns a
// *TargetExistsError and leaves the filesystem untouched.
func RenameDirectory(desc ModuleDescriptor, oldName, newName string) (ModuleDescriptor, error) {
	target := NewModulePath(desc, oldName, newName)
	from, to := desc.Dir(), target.Dir()

	if _, err := os.Lstat(string(to)); err == nil {
		return target, &TargetExistsError{Path: to}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return target, &DirectoryRenameError{From: from, To: to, Err: err}
	}
	if err := os.Rename(string(from), string(to)); err != nil {
		return target, &DirectoryRenameError{From: from, To: to, Err: err}
	}
	return target, nil
}
