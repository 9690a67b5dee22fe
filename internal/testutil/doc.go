// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, MustUnsetenv),
// directory operations (MustChdir, MustMkdirAll), and module fixtures
// (WriteTree, ReadTree, WriteModule) that lay out and snapshot a directory
// tree from a map of slash-separated paths to contents.
package testutil
