// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name?:  string & !=""
	tags?:  [...string]
	debug?: bool
}
`

type settings struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Debug bool     `json:"debug"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[settings](testSchema, []byte(`name: "x"
tags: ["a", "b"]
`), "#Settings", WithFilename("s.cue"))
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if res.Value.Name != "x" || len(res.Value.Tags) != 2 || res.Value.Debug {
		t.Errorf("Value = %+v", res.Value)
	}
	if !res.Unified.Exists() {
		t.Error("Unified value missing")
	}
}

func TestParseAndDecodeIntoMap(t *testing.T) {
	t.Parallel()

	res, err := ParseAndDecode[map[string]any](testSchema, []byte(`debug: true`), "#Settings")
	if err != nil {
		t.Fatalf("ParseAndDecode() error = %v", err)
	}
	if res.Value["debug"] != true {
		t.Errorf("Value = %v", res.Value)
	}
}

func TestParseAndDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		wantSub string
	}{
		{"syntax", "name: ", []Option{WithFilename("bad.cue")}, "bad.cue"},
		{"type mismatch", `debug: "yes"`, []Option{WithFilename("t.cue")}, "debug"},
		{"closed definition", `unknown: 1`, []Option{WithFilename("c.cue")}, "unknown"},
		{"list element", `tags: ["a", 3]`, []Option{WithFilename("l.cue")}, "tags[1]"},
		{"too large", `name: "x"`, []Option{WithMaxFileSize(2)}, "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAndDecode[settings](testSchema, []byte(tt.data), "#Settings", tt.opts...)
			if err == nil {
				t.Fatal("ParseAndDecode() succeeded")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseAndDecodeMissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[settings](testSchema, []byte(`name: "x"`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("error = %v, want missing definition", err)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x.cue") != nil {
		t.Error("FormatError(nil) != nil")
	}
	err := FormatError(errors.New("boom"), "x.cue")
	if err.Error() != "x.cue: boom" {
		t.Errorf("FormatError() = %q", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"ui"}, "ui"},
		{[]string{"ui", "verbose"}, "ui.verbose"},
		{[]string{"exclude", "0"}, "exclude[0]"},
		{[]string{"a", "1", "b", "22"}, "a[1].b[22]"},
		{[]string{"0"}, "0"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("at limit: %v", err)
	}
	err := CheckFileSize(make([]byte, 11), 10, "f.cue")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("over limit: %v", err)
	}
	for _, s := range []string{"f.cue", "11", "10"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q missing %q", err, s)
		}
	}
}

func TestProblemString(t *testing.T) {
	t.Parallel()

	e := &Error{File: "c.cue", Problems: []Problem{{Path: "ui.verbose", Message: "expected bool"}}}
	if got := e.Error(); got != "c.cue: ui.verbose: expected bool" {
		t.Errorf("Error() = %q", got)
	}
	e.Problems = append(e.Problems, Problem{Message: "second"})
	if !strings.Contains(e.Error(), "validation failed:\n  ui.verbose: expected bool\n  second") {
		t.Errorf("Error() = %q", e.Error())
	}
}
