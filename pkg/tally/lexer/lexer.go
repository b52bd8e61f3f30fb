package lexer

import (
	"fmt"
	"unicode"

	"github.com/sambeau/tally/pkg/tally/errors"
)

// TokenType represents different types of tokens
type TokenType int

const (
	// NONE is the uninitialized sentinel: the state of a context's current
	// token before the first scan
	NONE TokenType = iota
	INT            // a single decimal digit: 0-9
	OP             // + - / *
	SPACE          // any Unicode whitespace
	EOF
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case NONE:
		return "NONE"
	case INT:
		return "INT"
	case OP:
		return "OP"
	case SPACE:
		return "SPACE"
	case EOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}

// Token represents a single classified character of input. Literal is the
// matched character for INT/OP/SPACE tokens and a sentinel string for
// EOF/NONE. Pos is the cursor position the token was scanned at.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %s, Pos: %d}", t.Type.String(), t.Literal, t.Pos)
}

// None returns the uninitialized token sentinel
func None() Token {
	return Token{Type: NONE, Literal: "NOP"}
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isOperator(ch rune) bool {
	return ch == '+' || ch == '-' || ch == '/' || ch == '*'
}

// TokenAt classifies the character at pos without consuming anything. It is
// a pure function of its arguments, so lookahead is just TokenAt at a
// position past the cursor; there is no scan state to save or restore.
//
// A position past the last valid index (which covers empty text and
// exhausted input) yields an EOF token. A character that is not a digit,
// whitespace, or one of the four operators yields a parse error.
func TokenAt(text []rune, pos int) (Token, *errors.TallyError) {
	if pos > len(text)-1 {
		return Token{Type: EOF, Literal: "EOF", Pos: pos}, nil
	}

	ch := text[pos]
	switch {
	case isDigit(ch):
		return Token{Type: INT, Literal: string(ch), Pos: pos}, nil
	case unicode.IsSpace(ch):
		return Token{Type: SPACE, Literal: string(ch), Pos: pos}, nil
	case isOperator(ch):
		return Token{Type: OP, Literal: string(ch), Pos: pos}, nil
	default:
		return Token{}, errors.NewAt("PARSE-0002", pos, map[string]any{
			"Char": string(ch),
		})
	}
}
