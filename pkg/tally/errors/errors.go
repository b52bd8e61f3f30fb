// Package errors provides structured error types for the tally expression
// evaluator.
//
// This package defines TallyError, a unified error type that carries the
// error class, a stable code, the cursor position, and (for token
// mismatches) the expected and found token kinds, so that embedding hosts
// can handle failures programmatically instead of crashing.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and templating.
type ErrorClass string

const (
	ClassParse    ErrorClass = "parse"    // Tokenizer/grammar errors
	ClassFormat   ErrorClass = "format"   // Invalid number literals
	ClassOperator ErrorClass = "operator" // Invalid arithmetic operations
)

// TallyError represents any error from scanning or evaluation.
type TallyError struct {
	Class    ErrorClass     `json:"class"`              // Error category
	Code     string         `json:"code"`               // Error code (e.g., "PARSE-0001")
	Message  string         `json:"message"`            // Human-readable message
	Position int            `json:"position"`           // 0-based cursor position (-1 if unknown)
	Expected string         `json:"expected,omitempty"` // Expected token kind (mismatches only)
	Found    string         `json:"found,omitempty"`    // Found token kind (mismatches only)
	Data     map[string]any `json:"data,omitempty"`     // Template variables
}

// Error implements the error interface.
func (e *TallyError) Error() string {
	return e.String()
}

// String returns a formatted string representation of the error.
func (e *TallyError) String() string {
	var sb strings.Builder
	if e.Position >= 0 {
		sb.WriteString(fmt.Sprintf("pos %d: ", e.Position))
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// ToJSON returns the error as JSON bytes.
func (e *TallyError) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// WithPosition returns a copy of the error with the cursor position set.
func (e *TallyError) WithPosition(pos int) *TallyError {
	copy := *e
	copy.Position = pos
	return &copy
}

// IsParseError returns true if this is a tokenizer or grammar error.
func (e *TallyError) IsParseError() bool {
	return e.Class == ClassParse
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// ========================================
	// Parse errors (PARSE-0xxx)
	// ========================================
	"PARSE-0001": {
		Class:    ClassParse,
		Template: "expected {{.Expected}}, got {{.Found}} `{{.Literal}}`",
	},
	"PARSE-0002": {
		Class:    ClassParse,
		Template: "unrecognized character `{{.Char}}`",
	},
	"PARSE-0003": {
		Class:    ClassParse,
		Template: "expected a number, got {{.Found}} `{{.Literal}}`",
	},

	// ========================================
	// Format errors (FORMAT-0xxx)
	// ========================================
	"FORMAT-0001": {
		Class:    ClassFormat,
		Template: "invalid number literal: {{.Literal}}",
	},

	// ========================================
	// Operator errors (OP-0xxx)
	// ========================================
	"OP-0001": {
		Class:    ClassOperator,
		Template: "division by zero",
	},
	"OP-0002": {
		Class:    ClassOperator,
		Template: "integer overflow: {{.Left}} {{.Operator}} {{.Right}}",
	},
	"OP-0003": {
		Class:    ClassOperator,
		Template: "unknown operator `{{.Operator}}`",
	},
}

// New creates a TallyError from the catalog.
// If the code is not found, creates a generic error with the message.
func New(code string, data map[string]any) *TallyError {
	def, ok := ErrorCatalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &TallyError{
			Class:    ClassParse, // Default class
			Code:     code,
			Message:  msg,
			Position: -1,
			Data:     data,
		}
	}

	err := &TallyError{
		Class:    def.Class,
		Code:     code,
		Message:  renderTemplate(def.Template, data),
		Position: -1,
		Data:     data,
	}

	// Token-kind mismatches carry expected/found as first-class fields so
	// hosts do not have to dig through Data.
	if v, ok := data["Expected"].(string); ok {
		err.Expected = v
	}
	if v, ok := data["Found"].(string); ok {
		err.Found = v
	}

	return err
}

// NewAt creates a TallyError from the catalog with the cursor position set.
func NewAt(code string, pos int, data map[string]any) *TallyError {
	err := New(code, data)
	err.Position = pos
	return err
}

// renderTemplate renders an error message template with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	tmpl, err := template.New("error").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}
	return buf.String()
}
