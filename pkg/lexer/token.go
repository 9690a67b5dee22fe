// SPDX-License-Identifier: MPL-2.0

package lexer

import (
	"fmt"
	"strings"
)

const (
	// KindOther covers whitespace, keywords, operators, punctuation and any
	// text the lexer could not classify.
	KindOther Kind = iota
	// KindName covers identifier-like tokens: functions, classes, variables,
	// constants and namespaces.
	KindName
	// KindStringOrComment covers string literals and comments, including
	// doc blocks and heredoc bodies.
	KindStringOrComment
)

type (
	// Kind is the coarse lexical category of a Token.
	Kind int

	// Position is the 1-based location of a token's first byte.
	// Column counts bytes from the start of the line.
	Position struct {
		Line   int
		Column int
	}

	// Token is one lexical unit of a source file.
	Token struct {
		Kind Kind
		Text string
		Pos  Position
	}
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindName:
		return "name"
	case KindStringOrComment:
		return "string-or-comment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// String renders the position as line:column.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Join concatenates the text of tokens in order.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// advance returns the position immediately after text, starting from p.
func (p Position) advance(text string) Position {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			p.Column += len(text)
			return p
		}
		p.Line++
		p.Column = 1
		text = text[i+1:]
	}
}
