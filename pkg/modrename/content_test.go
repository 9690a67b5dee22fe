// SPDX-License-Identifier: MPL-2.0

package modrename

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/invowk/modrename/internal/testutil"
	"github.com/invowk/modrename/pkg/lexer"
	"github.com/invowk/modrename/pkg/types"
)

// splitLexer cuts its input into two tokens at a fixed offset.
type splitLexer struct{ at int }

func (s splitLexer) Tokenize(src string) []lexer.Token {
	if s.at <= 0 || s.at >= len(src) {
		return []lexer.Token{{Kind: lexer.KindOther, Text: src}}
	}
	return []lexer.Token{
		{Kind: lexer.KindOther, Text: src[:s.at]},
		{Kind: lexer.KindOther, Text: src[s.at:]},
	}
}

func TestRewriteText(t *testing.T) {
	t.Parallel()

	r := &ContentRewriter{}
	tests := []struct {
		name     string
		category Category
		in       string
		want     string
	}{
		{
			name:     "code identifiers strings and comments",
			category: CategoryCode,
			in:       "<?php\n// foo hooks\nfunction foo_help() { return 'foo'; }\n",
			want:     "<?php\n// bar hooks\nfunction bar_help() { return 'bar'; }\n",
		},
		{
			name:     "plain substring inside a longer word",
			category: CategoryPlainText,
			in:       "name: foo\ndependencies:\n  - foobar_extra\n",
			want:     "name: bar\ndependencies:\n  - barbar_extra\n",
		},
		{
			name:     "no occurrence",
			category: CategoryCode,
			in:       "<?php echo 1;\n",
			want:     "<?php echo 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := r.RewriteText(tt.category, tt.in, "foo", "bar"); got != tt.want {
				t.Errorf("RewriteText() mismatch (-want +got):\n%s", cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestRewriteTextOccurrenceAcrossTokens(t *testing.T) {
	t.Parallel()

	r := &ContentRewriter{Lexer: splitLexer{at: 2}}
	if got := r.RewriteText(CategoryCode, "foo", "foo", "bar"); got != "foo" {
		t.Errorf("occurrence split across tokens was replaced: %q", got)
	}
	if got := r.RewriteText(CategoryPlainText, "foo", "foo", "bar"); got != "bar" {
		t.Errorf("plain text replacement = %q, want %q", got, "bar")
	}
}

func TestContentRewriterRewrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"foo.module":                      "<?php\nfunction foo_help() {}\n",
		"foo.info.yml":                    "name: Foo\nconfigure: foo.settings\n",
		"src/Form/FooForm.php":            "<?php\n$config = 'foo.settings';\n",
		"templates/foo-block.html.twig":   "<div class=\"foo\"></div>\n",
		"config/install/foo.settings.yml": "enabled: true\n",
		"deep/a/b/c/d/e/f/notes.txt":      "see foo\n",
	})

	r := &ContentRewriter{}
	changed, err := r.Rewrite(types.FilesystemPath(dir), "foo", "bar")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	var gotChanged []string
	for _, p := range changed {
		rel, _ := filepath.Rel(dir, string(p))
		gotChanged = append(gotChanged, filepath.ToSlash(rel))
	}
	// Files of a directory come before its subdirectories.
	wantChanged := []string{
		"foo.info.yml",
		"foo.module",
		"deep/a/b/c/d/e/f/notes.txt",
		"src/Form/FooForm.php",
		"templates/foo-block.html.twig",
	}
	if diff := cmp.Diff(wantChanged, gotChanged); diff != "" {
		t.Errorf("changed files mismatch (-want +got):\n%s", diff)
	}

	want := map[string]string{
		"foo.module":                      "<?php\nfunction bar_help() {}\n",
		"foo.info.yml":                    "name: Foo\nconfigure: bar.settings\n",
		"src/Form/FooForm.php":            "<?php\n$config = 'bar.settings';\n",
		"templates/foo-block.html.twig":   "<div class=\"bar\"></div>\n",
		"config/install/foo.settings.yml": "enabled: true\n",
		"deep/a/b/c/d/e/f/notes.txt":      "see bar\n",
	}
	if diff := cmp.Diff(want, testutil.ReadTree(t, dir)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestContentRewriterLeavesUntouchedFilesAlone(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"README.md": "nothing to see\n"})
	path := filepath.Join(dir, "README.md")
	past := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	changed, err := (&ContentRewriter{}).Rewrite(types.FilesystemPath(dir), "foo", "bar")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if len(changed) != 0 {
		t.Errorf("changed = %v, want none", changed)
	}
	if mt := testutil.MustStat(t, path).ModTime(); !mt.Equal(past) {
		t.Errorf("mtime = %v, want %v", mt, past)
	}
}

func TestContentRewriterKeepsPermissions(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "foo.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho foo\n"), 0o750); err != nil {
		t.Fatal(err)
	}

	if _, err := (&ContentRewriter{}).Rewrite(types.FilesystemPath(dir), "foo", "bar"); err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if got := testutil.MustStat(t, path).Mode().Perm(); got != 0o750 {
		t.Errorf("mode = %v, want %v", got, os.FileMode(0o750))
	}
	if got := testutil.MustReadFile(t, path); got != "#!/bin/sh\necho bar\n" {
		t.Errorf("content = %q", got)
	}
}

func TestContentRewriterExclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"foo.module":           "foo",
		"tests/FooTest.php":    "foo",
		"tests/fixtures/a.txt": "foo",
		"images/foo.png":       "foo",
		"docs/guide/foo.md":    "foo",
	})

	r := &ContentRewriter{Exclude: []string{"tests", "**/*.png"}}
	if _, err := r.Rewrite(types.FilesystemPath(dir), "foo", "bar"); err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	want := map[string]string{
		"foo.module":           "bar",
		"tests/FooTest.php":    "foo",
		"tests/fixtures/a.txt": "foo",
		"images/foo.png":       "foo",
		"docs/guide/foo.md":    "bar",
	}
	if diff := cmp.Diff(want, testutil.ReadTree(t, dir)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestContentRewriterInvalidExclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"foo.module": "foo"})

	_, err := (&ContentRewriter{Exclude: []string{"[unclosed"}}).Rewrite(types.FilesystemPath(dir), "foo", "bar")
	if err == nil || !strings.Contains(err.Error(), "[unclosed") {
		t.Fatalf("Rewrite() error = %v, want invalid pattern error", err)
	}
	if got := testutil.MustReadFile(t, filepath.Join(dir, "foo.module")); got != "foo" {
		t.Errorf("file was modified despite the error: %q", got)
	}
}

func TestContentRewriterSymlinks(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (module, outside string) {
		t.Helper()
		base := t.TempDir()
		module = filepath.Join(base, "module")
		outside = filepath.Join(base, "outside")
		testutil.WriteTree(t, module, map[string]string{"foo.module": "foo"})
		testutil.WriteTree(t, outside, map[string]string{"shared.txt": "foo", "sub/deep.txt": "foo"})
		testutil.MustSymlink(t, filepath.Join(outside, "shared.txt"), filepath.Join(module, "link.txt"))
		testutil.MustSymlink(t, outside, filepath.Join(module, "linkdir"))
		testutil.MustSymlink(t, module, filepath.Join(module, "loop"))
		testutil.MustSymlink(t, filepath.Join(base, "missing"), filepath.Join(module, "dangling"))
		return module, outside
	}

	t.Run("skipped by default", func(t *testing.T) {
		t.Parallel()
		module, outside := setup(t)
		changed, err := (&ContentRewriter{}).Rewrite(types.FilesystemPath(module), "foo", "bar")
		if err != nil {
			t.Fatalf("Rewrite() error = %v", err)
		}
		if len(changed) != 1 {
			t.Errorf("changed = %v, want only foo.module", changed)
		}
		if got := testutil.MustReadFile(t, filepath.Join(outside, "shared.txt")); got != "foo" {
			t.Errorf("linked file rewritten: %q", got)
		}
	})

	t.Run("followed with cycle detection", func(t *testing.T) {
		t.Parallel()
		module, outside := setup(t)
		changed, err := (&ContentRewriter{FollowSymlinks: true}).Rewrite(types.FilesystemPath(module), "foo", "bar")
		if err != nil {
			t.Fatalf("Rewrite() error = %v", err)
		}
		// linkdir/shared.txt is the file link.txt already rewrote.
		if len(changed) != 3 {
			t.Errorf("changed = %v, want 3 files", changed)
		}
		want := map[string]string{"shared.txt": "bar", "sub/deep.txt": "bar"}
		if diff := cmp.Diff(want, testutil.ReadTree(t, outside)); diff != "" {
			t.Errorf("outside tree mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestContentRewriterIOError(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed for root and on windows")
	}

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"a.txt": "foo", "b.txt": "foo"})
	locked := filepath.Join(dir, "b.txt")
	if err := os.Chmod(locked, 0o200); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	changed, err := (&ContentRewriter{}).Rewrite(types.FilesystemPath(dir), "foo", "bar")
	if !errors.Is(err, ErrFileIO) {
		t.Fatalf("Rewrite() error = %v, want ErrFileIO", err)
	}
	var ioErr *FileIOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" || string(ioErr.Path) != locked {
		t.Errorf("error = %#v, want read failure on %s", err, locked)
	}
	if len(changed) != 1 || testutil.MustReadFile(t, filepath.Join(dir, "a.txt")) != "bar" {
		t.Errorf("a.txt should stay rewritten, changed = %v", changed)
	}
}

func TestContentRewriterIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{"foo.module": "<?php foo_x();", "x.txt": "foo"})
	r := &ContentRewriter{}
	if _, err := r.Rewrite(types.FilesystemPath(dir), "foo", "bar"); err != nil {
		t.Fatal(err)
	}
	first := testutil.ReadTree(t, dir)
	changed, err := r.Rewrite(types.FilesystemPath(dir), "foo", "bar")
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 0 {
		t.Errorf("second pass changed %v", changed)
	}
	if diff := cmp.Diff(first, testutil.ReadTree(t, dir)); diff != "" {
		t.Errorf("second pass altered tree (-first +second):\n%s", diff)
	}
}
