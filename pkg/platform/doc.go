// SPDX-License-Identifier: MPL-2.0

// Package platform holds the few operating-system specifics modrename cares
// about: GOOS names and the file names Windows refuses to create.
package platform
