// Package evaluator implements the tally Expression Context: a combined
// lexer/recursive-descent evaluator over a mutable scan cursor.
//
// The grammar is
//
//	expr := term (op term)*
//	term := whitespace? digit+
//
// evaluated strictly left to right with no operator precedence, so
// "2+3*4" is (2+3)*4 = 20. All arithmetic is signed 32-bit; division
// truncates toward zero, and overflow and division by zero are reported as
// operator errors rather than wrapped.
package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/sambeau/tally/pkg/tally/errors"
	"github.com/sambeau/tally/pkg/tally/lexer"
)

// Logger receives token-trace output from a Context. Hosts that want to
// watch tokens being consumed install one with SetLogger; the default
// discards everything.
type Logger interface {
	Log(values ...any)
	LogLine(values ...any)
}

// nullLogger discards all output
type nullLogger struct{}

func (l *nullLogger) Log(values ...any)     {}
func (l *nullLogger) LogLine(values ...any) {}

// DefaultLogger is the logger used by contexts when none is specified
var DefaultLogger Logger = &nullLogger{}

// Context is a single-expression scanning and evaluation session. It owns
// the input text as a random-accessible rune sequence, a zero-based cursor,
// and the current lookahead token.
//
// The current token is explicit cached state: it always reflects the token
// at the cursor as of the last scan. advance is the only way the cursor
// moves, and it rescans the current token in the same step, so the two
// cannot drift apart.
//
// A Context is not safe for concurrent use; evaluate each expression with
// an exclusively-owned Context.
type Context struct {
	text    []rune
	cursor  int
	current lexer.Token
	logger  Logger
}

// New creates a context over the given source text. It does not tokenize;
// the first scan happens inside Evaluate.
func New(text string) *Context {
	return &Context{
		text:    []rune(text),
		current: lexer.None(),
		logger:  DefaultLogger,
	}
}

// SetText replaces the context's source text and resets the cursor and
// current token, matching New. A context whose expression has already been
// evaluated is therefore reusable after SetText, but a fresh Context per
// expression remains the recommended pattern.
func (c *Context) SetText(text string) {
	c.text = []rune(text)
	c.cursor = 0
	c.current = lexer.None()
}

// SetLogger installs a token-trace logger. Passing nil restores the
// default (silent) logger.
func (c *Context) SetLogger(l Logger) {
	if l == nil {
		l = DefaultLogger
	}
	c.logger = l
}

// LookAhead returns the token by positions past the cursor without
// consuming anything. The cursor and current token are untouched even when
// classification fails.
func (c *Context) LookAhead(by int) (lexer.Token, *errors.TallyError) {
	return lexer.TokenAt(c.text, c.cursor+by)
}

// advance moves the cursor forward one position and rescans the current
// token. All cursor mutation goes through here.
func (c *Context) advance() *errors.TallyError {
	c.cursor++
	tok, err := lexer.TokenAt(c.text, c.cursor)
	if err != nil {
		return err
	}
	c.current = tok
	return nil
}

// eat consumes the current token if it has the expected type, advancing to
// the next one. A mismatch reports the expected and found kinds, the
// cursor position, and the offending literal.
func (c *Context) eat(expected lexer.TokenType) *errors.TallyError {
	if c.current.Type != expected {
		return errors.NewAt("PARSE-0001", c.cursor, map[string]any{
			"Expected": expected.String(),
			"Found":    c.current.Type.String(),
			"Literal":  c.current.Literal,
		})
	}
	eaten := c.current
	if err := c.advance(); err != nil {
		return err
	}
	c.logger.LogLine("eat:", eaten.String())
	return nil
}

// eatWhitespace consumes a run of contiguous whitespace tokens, one at a
// time, leaving the current token as the first non-whitespace token. No-op
// if the current token is not whitespace.
func (c *Context) eatWhitespace() *errors.TallyError {
	for c.current.Type == lexer.SPACE {
		if err := c.eat(lexer.SPACE); err != nil {
			return err
		}
	}
	return nil
}

// eatInt accumulates contiguous single-digit tokens into a number and
// parses it as a signed 32-bit integer. Called with no digit under the
// cursor, it reports a parse error; a digit run outside the int32 range is
// an invalid literal.
func (c *Context) eatInt() (int32, *errors.TallyError) {
	var buffer strings.Builder
	for c.current.Type == lexer.INT {
		buffer.WriteString(c.current.Literal)
		if err := c.eat(lexer.INT); err != nil {
			return 0, err
		}
	}

	if buffer.Len() == 0 {
		return 0, errors.NewAt("PARSE-0003", c.cursor, map[string]any{
			"Found":   c.current.Type.String(),
			"Literal": c.current.Literal,
		})
	}

	n, err := strconv.ParseInt(buffer.String(), 10, 32)
	if err != nil {
		start := c.cursor - buffer.Len()
		return 0, errors.NewAt("FORMAT-0001", start, map[string]any{
			"Literal": buffer.String(),
		})
	}
	return int32(n), nil
}

// term evaluates the atomic operand production: optional leading
// whitespace, then one or more contiguous digits. It stops at the first
// non-digit token without consuming it.
func (c *Context) term() (int32, *errors.TallyError) {
	if err := c.eatWhitespace(); err != nil {
		return 0, err
	}
	return c.eatInt()
}

// expr scans the first token, evaluates an initial term, then folds
// further (operator, term) pairs into the accumulator left to right.
// Whitespace between a term and the next operator is consumed before each
// loop check, so runs of whitespace around terms and operators never
// change the result.
func (c *Context) expr() (int32, *errors.TallyError) {
	tok, err := lexer.TokenAt(c.text, c.cursor)
	if err != nil {
		return 0, err
	}
	c.current = tok

	r, err := c.term()
	if err != nil {
		return 0, err
	}
	if err := c.eatWhitespace(); err != nil {
		return 0, err
	}

	for c.current.Type == lexer.OP {
		op := c.current.Literal
		opPos := c.current.Pos
		if err := c.eat(lexer.OP); err != nil {
			return 0, err
		}

		operand, err := c.term()
		if err != nil {
			return 0, err
		}

		r, err = applyOperator(op, opPos, r, operand)
		if err != nil {
			return 0, err
		}

		if err := c.eatWhitespace(); err != nil {
			return 0, err
		}
	}
	return r, nil
}

// Evaluate parses and evaluates the full expression from the current
// cursor (normally 0), returning the int32 result or a structured error.
func (c *Context) Evaluate() (int32, error) {
	r, err := c.expr()
	if err != nil {
		return 0, err
	}
	return r, nil
}

// applyOperator folds one operand into the accumulator with checked 32-bit
// arithmetic.
func applyOperator(op string, pos int, left, right int32) (int32, *errors.TallyError) {
	switch op {
	case "+":
		return checked(int64(left)+int64(right), op, pos, left, right)
	case "-":
		return checked(int64(left)-int64(right), op, pos, left, right)
	case "*":
		return checked(int64(left)*int64(right), op, pos, left, right)
	case "/":
		if right == 0 {
			return 0, errors.NewAt("OP-0001", pos, map[string]any{})
		}
		// Go's integer division truncates toward zero. Terms are
		// non-negative, so MinInt32 / -1 cannot arise.
		return left / right, nil
	default:
		return 0, errors.NewAt("OP-0003", pos, map[string]any{"Operator": op})
	}
}

// checked narrows an int64 intermediate back to int32. Operands are at
// most 32 bits each, so no intermediate of + - * can exceed int64.
func checked(v int64, op string, pos int, left, right int32) (int32, *errors.TallyError) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errors.NewAt("OP-0002", pos, map[string]any{
			"Left":     left,
			"Operator": op,
			"Right":    right,
		})
	}
	return int32(v), nil
}
