// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/invowk/modrename/internal/testutil"
	"github.com/invowk/modrename/pkg/types"
)

func TestParseInfoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"foo.info.yml": `name: Foo
type: module
description: 'Does foo things.'
package: Custom
core_version_requirement: ^10 || ^11
dependencies:
  - drupal:node
  - foo_base:foo_base
configure: foo.settings
`,
	})

	got, err := ParseInfoFile(types.FilesystemPath(filepath.Join(dir, "foo.info.yml")))
	if err != nil {
		t.Fatalf("ParseInfoFile() error = %v", err)
	}
	want := InfoFile{
		Name:                   "Foo",
		Type:                   "module",
		Description:            "Does foo things.",
		Package:                "Custom",
		CoreVersionRequirement: "^10 || ^11",
		Dependencies:           []string{"drupal:node", "foo_base:foo_base"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseInfoFile() mismatch (-want +got):\n%s", diff)
	}
}

func TestInfoFileIsModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  string
		want bool
	}{
		{"", true},
		{"module", true},
		{"theme", false},
		{"profile", false},
	}
	for _, tt := range tests {
		if got := (InfoFile{Type: tt.typ}).IsModule(); got != tt.want {
			t.Errorf("IsModule(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestInfoFileName(t *testing.T) {
	t.Parallel()

	if got := InfoFileName("old_mod"); got != "old_mod.info.yml" {
		t.Errorf("InfoFileName() = %q", got)
	}
}
