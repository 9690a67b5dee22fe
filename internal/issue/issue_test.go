// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		ModuleNotFoundId,
		OutsideAllowedTreeId,
		TargetExistsId,
		FileRenameFailedId,
		FileIOErrorId,
		DirectoryRenameFailedId,
		ConfigLoadFailedId,
		InvalidModuleNameId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
		if Get(id) == nil {
			t.Errorf("Get(%d) returned nil", id)
		}
	}

	if ModuleNotFoundId != 1 {
		t.Errorf("ModuleNotFoundId = %d, want 1", ModuleNotFoundId)
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	tests := []struct {
		id   Id
		want string
	}{
		{ModuleNotFoundId, "Module not found"},
		{OutsideAllowedTreeId, "outside the allowed tree"},
		{TargetExistsId, "already exists"},
		{ConfigLoadFailedId, "modrename config show"},
	}
	for _, tt := range tests {
		if msg := Get(tt.id).MarkdownMsg(); !strings.Contains(string(msg), tt.want) {
			t.Errorf("issue %d markdown does not contain %q", tt.id, tt.want)
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	i := &Issue{id: 99, docLinks: []HttpLink{"https://a.example"}, extLinks: []HttpLink{"https://b.example"}}

	docs := i.DocLinks()
	docs[0] = "changed"
	if i.docLinks[0] != "https://a.example" {
		t.Error("DocLinks() returned the backing slice")
	}
	ext := i.ExtLinks()
	ext[0] = "changed"
	if i.extLinks[0] != "https://b.example" {
		t.Error("ExtLinks() returned the backing slice")
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	var gotStyle string
	render = func(in string, stylePath string) (string, error) {
		gotStyle = stylePath
		return "RENDERED:" + in, nil
	}

	rendered, err := Get(TargetExistsId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(rendered, "RENDERED:") || !strings.Contains(rendered, "already exists") {
		t.Errorf("Render() = %q", rendered)
	}
	if gotStyle != "dark" {
		t.Errorf("style = %q, want dark", gotStyle)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("issue without links rendered a See also section")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()
	render = func(in string, _ string) (string, error) { return in, nil }

	i := &Issue{id: 99, mdMsg: "# Test", docLinks: []HttpLink{"https://docs.example/x"}, extLinks: []HttpLink{"https://ext.example/y"}}
	rendered, err := i.Render("")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, s := range []string{"See also", "https://docs.example/x", "https://ext.example/y"} {
		if !strings.Contains(rendered, s) {
			t.Errorf("Render() = %q, missing %q", rendered, s)
		}
	}
}

func TestIssue_Render_Glamour(t *testing.T) {
	rendered, err := Get(ModuleNotFoundId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(rendered, "Module not found!") {
		t.Errorf("Render() = %q", rendered)
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("len(Values()) = %d, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered at %d: %d >= %d", i, values[i-1].Id(), values[i].Id())
		}
	}
}
