// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles user CUE files against an embedded schema.
//
// [ParseAndDecode] runs the usual three steps: compile the schema, compile
// the user file and unify it with a schema definition, then validate and
// decode into a Go value. Errors come back as [*Error] values whose
// messages carry field paths in JSON-path notation:
//
//	modrename.cue: exclude[1]: conflicting values 3 and string
package cueutil
