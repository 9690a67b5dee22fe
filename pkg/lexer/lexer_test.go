// SPDX-License-Identifier: MPL-2.0

package lexer

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/google/go-cmp/cmp"
)

const moduleSource = `<?php

/**
 * @file
 * Hooks for old_mod.
 */

use Drupal\old_mod\Controller\OldModController;

/**
 * Implements hook_help().
 */
function old_mod_help($route_name) {
  $old_mod_label = 'old_mod settings';
  // Mentions old_mod in a line comment.
  return t("Help for @name", ['@name' => "old_mod"]);
}
`

func TestTokenize_Lossless(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"module file", moduleSource},
		{"no trailing newline", "<?php\nfunction old_mod_init() {}"},
		{"crlf line endings", "<?php\r\nfunction old_mod_init() {}\r\n"},
		{"unterminated string", "<?php\n$x = 'old_mod;\n"},
		{"unterminated comment", "<?php\n/* old_mod\n"},
		{"unbalanced braces", "<?php\nfunction old_mod( {{{ ]\n"},
		{"closing tag then html", "<?php echo 'old_mod'; ?>\n<div>old_mod</div>\n"},
		{"heredoc", "<?php\n$s = <<<EOT\nold_mod body\nEOT;\n"},
		{"plain text only", "just some old_mod words\n"},
		{"non-ascii", "<?php\n// café old_mod ☕\n$ñ = 'ü';\n"},
		{"single rune", "x"},
		{"whitespace only", " \t\n\n"},
		{"invalid utf8", "<?php\n$x = \"\xff\xfe old_mod\";\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := Tokenize(tt.src)
			if got := Join(tokens); got != tt.src {
				t.Errorf("Join(Tokenize(src)) differs from src:\n%s", cmp.Diff(tt.src, got))
			}
			for i, tok := range tokens {
				if tok.Text == "" {
					t.Errorf("token %d has empty text", i)
				}
			}
		})
	}
}

func TestTokenize_Empty(t *testing.T) {
	t.Parallel()

	if tokens := Tokenize(""); len(tokens) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want no tokens", tokens)
	}
}

func TestTokenize_Restartable(t *testing.T) {
	t.Parallel()

	first := Tokenize(moduleSource)
	second := Tokenize(moduleSource)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("tokenizing twice gave different results (-first +second):\n%s", diff)
	}
}

func TestTokenize_Positions(t *testing.T) {
	t.Parallel()

	tokens := Tokenize(moduleSource)
	if len(tokens) == 0 {
		t.Fatal("Tokenize returned no tokens")
	}

	want := Position{Line: 1, Column: 1}
	for i, tok := range tokens {
		if tok.Pos != want {
			t.Fatalf("token %d (%q) at %s, want %s", i, tok.Text, tok.Pos, want)
		}
		want = want.advance(tok.Text)
	}

	lines := strings.Count(moduleSource, "\n")
	if want.Line != lines+1 || want.Column != 1 {
		t.Errorf("end position = %s, want %d:1", want, lines+1)
	}
}

func TestTokenize_Kinds(t *testing.T) {
	t.Parallel()

	tokens := Tokenize(moduleSource)

	tests := []struct {
		name     string
		contains string
		want     Kind
	}{
		{"function name", "old_mod_help", KindName},
		{"variable", "$old_mod_label", KindName},
		{"single quoted string", "old_mod settings", KindStringOrComment},
		{"line comment", "Mentions old_mod", KindStringOrComment},
		{"doc block", "Hooks for old_mod", KindStringOrComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, tok := range tokens {
				if strings.Contains(tok.Text, tt.contains) {
					if tok.Kind != tt.want {
						t.Errorf("token %q has kind %s, want %s", tok.Text, tok.Kind, tt.want)
					}
					return
				}
			}
			t.Errorf("no token contains %q", tt.contains)
		})
	}
}

// stubTokeniser returns canned chroma output so the fallback paths can be
// exercised without depending on chroma's rules.
type stubTokeniser struct {
	tokens []chroma.Token
	err    error
	panics bool
}

func (s stubTokeniser) Tokenise(_ *chroma.TokeniseOptions, _ string) (chroma.Iterator, error) {
	if s.panics {
		panic("lexer exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	return chroma.Literator(s.tokens...), nil
}

func TestChromaLexer_Fallback(t *testing.T) {
	t.Parallel()

	const src = "<?php old_mod();\n"

	tests := []struct {
		name string
		stub stubTokeniser
	}{
		{"lexer error", stubTokeniser{err: errors.New("boom")}},
		{"lexer panic", stubTokeniser{panics: true}},
		{"dropped text", stubTokeniser{tokens: []chroma.Token{
			{Type: chroma.CommentPreproc, Value: "<?php"},
			{Type: chroma.NameFunction, Value: "old_mod"},
		}}},
		{"extra text", stubTokeniser{tokens: []chroma.Token{
			{Type: chroma.Text, Value: src},
			{Type: chroma.Text, Value: "\n"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := &ChromaLexer{lexer: tt.stub}
			got := l.Tokenize(src)
			want := []Token{{Kind: KindOther, Text: src, Pos: Position{Line: 1, Column: 1}}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChromaLexer_MapsKinds(t *testing.T) {
	t.Parallel()

	stub := stubTokeniser{tokens: []chroma.Token{
		{Type: chroma.Keyword, Value: "function"},
		{Type: chroma.Text, Value: " "},
		{Type: chroma.NameFunction, Value: "old_mod_init"},
		{Type: chroma.Punctuation, Value: "()"},
		{Type: chroma.Text, Value: "\n"},
		{Type: chroma.CommentSingle, Value: "// old_mod"},
		{Type: chroma.LiteralStringDouble, Value: `"old_mod"`},
		{Type: chroma.LiteralNumberInteger, Value: "42"},
	}}
	src := "function old_mod_init()\n// old_mod\"old_mod\"42"

	got := (&ChromaLexer{lexer: stub}).Tokenize(src)
	want := []Token{
		{Kind: KindOther, Text: "function", Pos: Position{1, 1}},
		{Kind: KindOther, Text: " ", Pos: Position{1, 9}},
		{Kind: KindName, Text: "old_mod_init", Pos: Position{1, 10}},
		{Kind: KindOther, Text: "()", Pos: Position{1, 22}},
		{Kind: KindOther, Text: "\n", Pos: Position{1, 24}},
		{Kind: KindStringOrComment, Text: "// old_mod", Pos: Position{2, 1}},
		{Kind: KindStringOrComment, Text: `"old_mod"`, Pos: Position{2, 11}},
		{Kind: KindOther, Text: "42", Pos: Position{2, 20}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for kind, want := range map[Kind]string{
		KindOther:           "other",
		KindName:            "name",
		KindStringOrComment: "string-or-comment",
		Kind(9):             "Kind(9)",
	} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}
