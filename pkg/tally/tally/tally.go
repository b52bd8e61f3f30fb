// Package tally provides a public API for embedding the tally expression
// evaluator.
//
// Tally evaluates a single left-to-right arithmetic expression over
// non-negative integers and the operators + - / *. There is no operator
// precedence: "2+3*4" is (2+3)*4 = 20.
package tally

import (
	"github.com/sambeau/tally/pkg/tally/evaluator"
)

// Context is an alias for evaluator.Context for convenience
type Context = evaluator.Context

// New constructs a context over the given source text. It does not
// tokenize; scanning starts when Evaluate is called.
func New(text string) *Context {
	return evaluator.New(text)
}

// Evaluate evaluates a single expression in a fresh context and returns
// the int32 result. The cursor of a context only moves forward, so a fresh
// context per expression is the recommended usage; this helper is that
// pattern in one call.
func Evaluate(text string) (int32, error) {
	return evaluator.New(text).Evaluate()
}
