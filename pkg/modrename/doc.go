// SPDX-License-Identifier: MPL-2.0

// Package modrename renames a module in place: it rewrites the old
// identifier inside the module's files, renames the files at the module root
// that carry the identifier, and finally moves the module directory itself.
//
// # Phases
//
// A [Renamer] runs three phases strictly in order against the directory a
// [Locator] resolves:
//
//   - [ContentRewriter.Rewrite]: every regular file under the module is
//     rewritten. Code files (by extension) are tokenized with package lexer
//     and the identifier is replaced inside each token's text; every other
//     file gets a whole-content replacement.
//   - [RenameFiles]: direct children whose base name starts with the old
//     identifier are moved to the substituted name.
//   - [RenameDirectory]: the module path is substituted and the directory is
//     moved in one rename, unless something already exists there.
//
// Replacement is plain substring replacement. "foo" inside "foobar_extra"
// is replaced like any other occurrence.
//
// # Failure
//
// There is no rollback. A failure in a later phase leaves the work of the
// earlier phases on disk, so the module can end up half old and half new.
// [Report] records the last state that completed, and every error carries a
// sentinel ([ErrFileIO], [ErrFileRenameFailed], [ErrTargetExists], ...) for
// errors.Is.
package modrename
