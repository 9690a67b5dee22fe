// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries an operation, a resource, remediation suggestions
// and an optional link into the issue catalog, whose entries are Markdown
// documents rendered with glamour when a failure needs more than one line of
// guidance.
package issue
