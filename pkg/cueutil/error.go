// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ErrFileTooLarge is wrapped by errors from CheckFileSize.
var ErrFileTooLarge = errors.New("file too large")

type (
	// Problem is one CUE error, located by its field path.
	Problem struct {
		// Path is in JSON-path notation, e.g. "ui.verbose" or "exclude[0]".
		Path    string
		Message string
	}

	// Error lists the problems CUE reported for one file.
	Error struct {
		File     string
		Problems []Problem
		cause    error
	}
)

// Error implements the error interface.
func (e *Error) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	if len(lines) == 1 {
		return fmt.Sprintf("%s: %s", e.File, lines[0])
	}
	return fmt.Sprintf("%s: validation failed:\n  %s", e.File, strings.Join(lines, "\n  "))
}

// Unwrap returns the original CUE error.
func (e *Error) Unwrap() error { return e.cause }

// String renders the problem as "path: message".
func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// FormatError converts a CUE error into an *Error for file. Errors that are
// not CUE errors are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}
	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	out := &Error{File: file, cause: err}
	for _, e := range list {
		path := formatPath(cueerrors.Path(e))
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)
		// Some messages repeat the path.
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		out.Problems = append(out.Problems, Problem{Path: path, Message: msg})
	}
	return out
}

// formatPath turns ["exclude", "1"] into "exclude[1]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		if i > 0 && isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data longer than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: %d bytes exceeds the %d byte limit: %w", filename, len(data), maxSize, ErrFileTooLarge)
	}
	return nil
}
