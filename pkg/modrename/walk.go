// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/invowk/modrename/pkg/fspath"
	"github.com/invowk/modrename/pkg/types"
)

// walker lists the regular files below root. It keeps an explicit stack so
// depth is bounded by memory rather than the goroutine stack.
type walker struct {
	root           types.FilesystemPath
	exclude        []string
	followSymlinks bool
	logger         *log.Logger
}

// validateExcludes reports the first malformed exclude pattern.
func validateExcludes(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// files returns every regular file under root in depth-first name order.
// Directory listing failures abort with a *FileIOError.
func (w *walker) files() ([]types.FilesystemPath, error) {
	visited := make(map[string]struct{})
	if err := w.markVisited(w.root, visited); err != nil {
		return nil, err
	}

	var out []types.FilesystemPath
	stack := []types.FilesystemPath{w.root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(string(dir))
		if err != nil {
			return nil, &FileIOError{Op: "list", Path: dir, Err: err}
		}

		var subdirs []types.FilesystemPath
		for _, entry := range entries {
			path := fspath.JoinStr(dir, entry.Name())
			isDir, isFile, err := w.kind(path, entry)
			if err != nil {
				return nil, err
			}
			if !isDir && !isFile {
				continue
			}
			if w.excluded(path) {
				w.logger.Debug("excluded", "path", path)
				continue
			}
			if isFile {
				out = append(out, path)
				continue
			}
			if err := w.markVisited(path, visited); err != nil {
				if errors.Is(err, errAlreadyVisited) {
					w.logger.Debug("directory already visited", "path", path)
					continue
				}
				return nil, err
			}
			subdirs = append(subdirs, path)
		}
		// Push in reverse so the lexically first subdirectory is popped first.
		slices.Reverse(subdirs)
		stack = append(stack, subdirs...)
	}
	return out, nil
}

var errAlreadyVisited = errors.New("already visited")

func (w *walker) markVisited(dir types.FilesystemPath, visited map[string]struct{}) error {
	resolved, err := filepath.EvalSymlinks(string(dir))
	if err != nil {
		return &FileIOError{Op: "resolve", Path: dir, Err: err}
	}
	if _, ok := visited[resolved]; ok {
		return errAlreadyVisited
	}
	visited[resolved] = struct{}{}
	return nil
}

// kind classifies a directory entry, resolving symlinks when they are
// followed. Dangling links and special files are neither.
func (w *walker) kind(path types.FilesystemPath, entry fs.DirEntry) (isDir, isFile bool, err error) {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return mode.IsDir(), mode.IsRegular(), nil
	}
	if !w.followSymlinks {
		w.logger.Debug("skipping symlink", "path", path)
		return false, false, nil
	}
	info, err := os.Stat(string(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("skipping dangling symlink", "path", path)
			return false, false, nil
		}
		return false, false, &FileIOError{Op: "stat", Path: path, Err: err}
	}
	return info.IsDir(), info.Mode().IsRegular(), nil
}

// excluded matches the slash-separated path relative to root against the
// exclude globs.
func (w *walker) excluded(path types.FilesystemPath) bool {
	if len(w.exclude) == 0 {
		return false
	}
	rel, err := fspath.Rel(w.root, path)
	if err != nil {
		return false
	}
	slashed := fspath.ToSlash(rel)
	for _, pattern := range w.exclude {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}
