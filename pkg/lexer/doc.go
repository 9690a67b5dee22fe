// SPDX-License-Identifier: MPL-2.0

// Package lexer splits PHP-family source into a lossless token sequence.
//
// The only guarantee callers rely on is reconstruction: concatenating the
// text of every token returned by Tokenize yields the input exactly, for any
// input, well-formed or not. Token kinds are coarse (names, strings and
// comments, everything else) because rewriting treats all kinds alike; the
// kinds exist for diagnostics and tests.
package lexer
