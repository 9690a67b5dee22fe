// SPDX-License-Identifier: MPL-2.0

package discovery

import "github.com/invowk/modrename/pkg/types"

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeInfoParseSkipped marks an info file that could not be parsed.
	CodeInfoParseSkipped = "info_parse_skipped"
	// CodeScanFailed marks a directory that could not be listed.
	CodeScanFailed = "module_scan_failed"
	// CodeDuplicateModule marks a name found more than once in the allowed tree.
	CodeDuplicateModule = "duplicate_module"
	// CodeOutsideAllowedTree marks a module found only outside the allowed tree.
	CodeOutsideAllowedTree = "outside_allowed_tree"
	// CodeNotAModule marks an info file declaring a theme or profile.
	CodeNotAModule = "not_a_module"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "info_parse_skipped").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path types.FilesystemPath
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)
