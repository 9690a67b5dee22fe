// SPDX-License-Identifier: MPL-2.0

package lexer

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// lexerName is the chroma lexer used for every code file. Module, include,
// install and theme files are all PHP under their own extensions.
const lexerName = "php"

type (
	// Lexer turns source text into a lossless token sequence.
	Lexer interface {
		Tokenize(src string) []Token
	}

	// ChromaLexer tokenizes with chroma's PHP lexer.
	ChromaLexer struct {
		lexer tokeniser
	}

	// tokeniser is the slice of chroma.Lexer this package depends on.
	tokeniser interface {
		Tokenise(options *chroma.TokeniseOptions, text string) (chroma.Iterator, error)
	}
)

// NewChromaLexer returns the default Lexer. If chroma has no PHP lexer
// registered it falls back to chroma's plaintext lexer, which yields a
// single token.
func NewChromaLexer() *ChromaLexer {
	var l chroma.Lexer = lexers.Get(lexerName)
	if l == nil {
		l = lexers.Fallback
	}
	return &ChromaLexer{lexer: l}
}

// Tokenize is shorthand for NewChromaLexer().Tokenize(src).
func Tokenize(src string) []Token {
	return NewChromaLexer().Tokenize(src)
}

// Tokenize splits src into tokens whose concatenated text equals src.
// If chroma fails, or its output does not reconstruct src, the whole input
// comes back as one KindOther token.
func (l *ChromaLexer) Tokenize(src string) []Token {
	if src == "" {
		return nil
	}

	tokens, ok := l.tokenize(src)
	if !ok {
		return []Token{{Kind: KindOther, Text: src, Pos: Position{Line: 1, Column: 1}}}
	}
	return tokens
}

func (l *ChromaLexer) tokenize(src string) (tokens []Token, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			tokens, ok = nil, false
		}
	}()

	// Nested suppresses the trailing newline chroma appends for the PHP
	// lexer; EnsureLF stays off so CRLF survives.
	it, err := l.lexer.Tokenise(&chroma.TokeniseOptions{State: "root", Nested: true}, src)
	if err != nil {
		return nil, false
	}

	pos := Position{Line: 1, Column: 1}
	n := 0
	for t := it(); t != chroma.EOF; t = it() {
		if t.Value == "" {
			continue
		}
		tokens = append(tokens, Token{Kind: kindOf(t.Type), Text: t.Value, Pos: pos})
		pos = pos.advance(t.Value)
		n += len(t.Value)
	}

	if n != len(src) || Join(tokens) != src {
		return nil, false
	}
	return tokens, true
}

func kindOf(tt chroma.TokenType) Kind {
	switch {
	case tt.InCategory(chroma.Name):
		return KindName
	case tt.InCategory(chroma.Comment), tt.InSubCategory(chroma.LiteralString):
		return KindStringOrComment
	default:
		return KindOther
	}
}
