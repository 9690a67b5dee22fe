// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/invowk/modrename/pkg/fspath"
	"github.com/invowk/modrename/pkg/types"
)

// RenameFiles moves every direct child of dir whose name starts with
// oldName to the name with each occurrence of oldName replaced. Directories
// are moved like files. Children are handled in name order; the first failed
// move stops the phase and earlier moves stay in place.
//
// An existing entry at the target name is never overwritten.
func RenameFiles(dir types.FilesystemPath, oldName, newName string) ([]RenameOp, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, &FileRenameError{From: dir, To: dir, Err: err}
	}

	var ops []RenameOp
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, oldName) {
			continue
		}
		op := RenameOp{
			From: fspath.JoinStr(dir, name),
			To:   fspath.JoinStr(dir, strings.ReplaceAll(name, oldName, newName)),
		}
		if err := move(op.From, op.To); err != nil {
			return ops, &FileRenameError{From: op.From, To: op.To, Err: err}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// move renames from to to unless to already exists.
func move(from, to types.FilesystemPath) error {
	if _, err := os.Lstat(string(to)); err == nil {
		return &fs.PathError{Op: "rename", Path: string(to), Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(string(from), string(to))
}
