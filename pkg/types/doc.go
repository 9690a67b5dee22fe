// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated value types shared across packages:
// filesystem paths, module names and process exit codes. Each type has a
// Validate method returning a typed error that wraps a package sentinel.
package types
