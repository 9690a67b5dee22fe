// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, so module paths stay typed from the
// locator through every rename phase.
package fspath

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/invowk/modrename/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments such as names returned by os.ReadDir.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// Rel wraps filepath.Rel for FilesystemPath.
func Rel(base, target types.FilesystemPath) (types.FilesystemPath, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", fmt.Errorf("resolving relative path: %w", err)
	}
	return types.FilesystemPath(rel), nil
}

// ToSlash wraps filepath.ToSlash and returns a plain string, the form glob
// patterns are matched against.
func ToSlash(p types.FilesystemPath) string {
	return filepath.ToSlash(string(p))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// Within reports whether p equals dir or lies beneath it. Both paths are
// cleaned first and compared by whole segments, so "modules/customized" is
// not within "modules/custom".
func Within(p, dir types.FilesystemPath) bool {
	cp := filepath.Clean(string(p))
	cd := filepath.Clean(string(dir))
	if cd == "." {
		return !filepath.IsAbs(cp) && cp != ".." && !strings.HasPrefix(cp, ".."+string(filepath.Separator))
	}
	if cp == cd {
		return true
	}
	return strings.HasPrefix(cp, cd+string(filepath.Separator))
}

// ContainsSegments reports whether the segments of seq occur contiguously
// somewhere in p, so "web/modules/custom/foo" contains "modules/custom" while
// "modules/customized/foo" does not. An empty or "." seq is contained in
// every path.
func ContainsSegments(p, seq types.FilesystemPath) bool {
	want := splitSegments(seq)
	if len(want) == 0 {
		return true
	}
	have := splitSegments(p)
	for i := 0; i+len(want) <= len(have); i++ {
		if slices.Equal(have[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

func splitSegments(p types.FilesystemPath) []string {
	clean := filepath.ToSlash(filepath.Clean(string(p)))
	if clean == "." {
		return nil
	}
	return slices.DeleteFunc(strings.Split(clean, "/"), func(s string) bool { return s == "" })
}
