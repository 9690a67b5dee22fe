// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// WriteTree creates every file in files below root. Keys are slash-separated
// relative paths; a key ending in "/" creates an empty directory.
func WriteTree(t testing.TB, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if rel != "" && rel[len(rel)-1] == '/' {
			MustMkdirAll(t, path, 0o755)
			continue
		}
		MustMkdirAll(t, filepath.Dir(path), 0o755)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// ReadTree snapshots the regular files below root as slash-separated
// relative paths mapped to their contents. Symlinks are not followed.
func ReadTree(t testing.TB, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", root, err)
	}
	return out
}

// WriteModule lays out a minimal module named name at root/dir: an info
// file, a .module file referencing the name, and any extra files. It returns
// the module directory.
func WriteModule(t testing.TB, root, dir, name string, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		name + ".info.yml": "name: " + name + "\ntype: module\ncore_version_requirement: ^10\n",
		name + ".module":   "<?php\n\nfunction " + name + "_help() {\n  return '" + name + "';\n}\n",
	}
	for k, v := range extra {
		files[k] = v
	}
	moduleDir := filepath.Join(root, filepath.FromSlash(dir))
	WriteTree(t, moduleDir, files)
	return moduleDir
}
