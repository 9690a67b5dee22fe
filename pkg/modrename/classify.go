// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"slices"
	"strings"

	"github.com/invowk/modrename/pkg/fspath"
	"github.com/invowk/modrename/pkg/types"
)

// Category selects how a file's content is rewritten.
type Category int

const (
	// CategoryPlainText files get a whole-content replacement.
	CategoryPlainText Category = iota
	// CategoryCode files are tokenized and replaced token by token.
	CategoryCode
)

// FileEntry is a file under the module together with its classification.
// Extension is lowercased and carries no leading dot.
type FileEntry struct {
	Path      types.FilesystemPath
	Extension string
	Category  Category
}

// DefaultCodeExtensions lists the extensions tokenized as PHP-family code.
func DefaultCodeExtensions() []string {
	return []string{"php", "module", "inc", "install", "profile", "engine", "theme"}
}

// String returns the category name.
func (c Category) String() string {
	if c == CategoryCode {
		return "code"
	}
	return "plain-text"
}

// NormalizeExtension lowercases ext and strips a leading dot.
func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// classify builds the FileEntry for path against a set of normalized code
// extensions.
func classify(path types.FilesystemPath, codeExts []string) FileEntry {
	entry := FileEntry{Path: path}
	base := fspath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		entry.Extension = strings.ToLower(base[i+1:])
	}
	if entry.Extension != "" && slices.Contains(codeExts, entry.Extension) {
		entry.Category = CategoryCode
	}
	return entry
}
