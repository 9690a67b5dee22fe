// SPDX-License-Identifier: MPL-2.0

// Package discovery locates modules inside a project tree.
//
// A module is a directory holding a "<name>.info.yml" file whose type is
// "module" (or unset). The Locator scans the project root, collects every
// candidate for a name and prefers the ones inside the allowed tree, which
// by default is "modules/custom". Problems that do not stop the scan, such as
// an unreadable directory or a malformed info file, are returned as
// Diagnostics rather than written to stderr, so the CLI decides how to
// render them.
package discovery
