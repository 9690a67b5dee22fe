// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/invowk/modrename/pkg/lexer"
	"github.com/invowk/modrename/pkg/types"
)

// ContentRewriter replaces the old module name inside every file under a
// module directory. The zero value is usable: it treats the default code
// extensions as code, follows no symlinks, excludes nothing and lexes with
// the chroma PHP lexer.
type ContentRewriter struct {
	// CodeExtensions are tokenized before replacement. Nil means
	// DefaultCodeExtensions; an empty non-nil slice means no code files.
	CodeExtensions []string
	// Exclude holds doublestar patterns matched against paths relative to
	// the module directory, with forward slashes.
	Exclude []string
	// FollowSymlinks rewrites linked files and traverses linked directories.
	FollowSymlinks bool
	Lexer          lexer.Lexer
	Logger         *log.Logger
}

// Classify returns the FileEntry for path.
func (r *ContentRewriter) Classify(path types.FilesystemPath) FileEntry {
	return classify(path, r.codeExtensions())
}

// RewriteText returns content with every occurrence of oldName replaced by newName,
// following the rules of the given category.
func (r *ContentRewriter) RewriteText(category Category, content, oldName, newName string) string {
	if category == CategoryCode {
		return ReplaceInTokens(r.tokenizer().Tokenize(content), oldName, newName)
	}
	return strings.ReplaceAll(content, oldName, newName)
}

// ReplaceInTokens replaces oldName with newName inside each token's text and joins
// the results. An occurrence split across two tokens is left alone.
func ReplaceInTokens(tokens []lexer.Token, oldName, newName string) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(strings.ReplaceAll(tok.Text, oldName, newName))
	}
	return b.String()
}

// Rewrite rewrites every regular file below dir and returns the files it
// changed, in visit order. Files without an occurrence of oldName are not
// written. The first I/O failure stops the walk; files already written stay
// written.
func (r *ContentRewriter) Rewrite(dir types.FilesystemPath, oldName, newName string) ([]types.FilesystemPath, error) {
	if err := validateExcludes(r.Exclude); err != nil {
		return nil, err
	}
	logger := r.logger()
	w := &walker{root: dir, exclude: r.Exclude, followSymlinks: r.FollowSymlinks, logger: logger}
	files, err := w.files()
	if err != nil {
		return nil, err
	}

	codeExts := r.codeExtensions()
	var changed []types.FilesystemPath
	for _, path := range files {
		entry := classify(path, codeExts)
		ok, err := r.rewriteFile(entry, oldName, newName)
		if err != nil {
			return changed, err
		}
		if ok {
			logger.Debug("rewrote file", "path", path, "category", entry.Category)
			changed = append(changed, path)
		}
	}
	return changed, nil
}

func (r *ContentRewriter) rewriteFile(entry FileEntry, oldName, newName string) (bool, error) {
	info, err := os.Stat(string(entry.Path))
	if err != nil {
		return false, &FileIOError{Op: "stat", Path: entry.Path, Err: err}
	}
	data, err := os.ReadFile(string(entry.Path))
	if err != nil {
		return false, &FileIOError{Op: "read", Path: entry.Path, Err: err}
	}
	content := string(data)
	if !strings.Contains(content, oldName) {
		return false, nil
	}
	rewritten := r.RewriteText(entry.Category, content, oldName, newName)
	if rewritten == content {
		return false, nil
	}
	if err := os.WriteFile(string(entry.Path), []byte(rewritten), info.Mode().Perm()); err != nil {
		return false, &FileIOError{Op: "write", Path: entry.Path, Err: err}
	}
	return true, nil
}

func (r *ContentRewriter) codeExtensions() []string {
	if r.CodeExtensions == nil {
		return DefaultCodeExtensions()
	}
	exts := make([]string, 0, len(r.CodeExtensions))
	for _, e := range r.CodeExtensions {
		if n := NormalizeExtension(e); n != "" {
			exts = append(exts, n)
		}
	}
	return exts
}

func (r *ContentRewriter) tokenizer() lexer.Lexer {
	if r.Lexer != nil {
		return r.Lexer
	}
	return lexer.NewChromaLexer()
}

func (r *ContentRewriter) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}
