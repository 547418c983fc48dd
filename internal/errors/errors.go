package errors

import (
	"fmt"

	"gorpl/internal/scan"
)

// LexError is a fatal lexical error: an unexpected character, a malformed
// operator or an unknown identifier. Compilation stops at the first one.
type LexError struct {
	Message string
	Pos     scan.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// SyntaxError is a fatal grammar violation. Lexeme carries the textual form
// of the offending token, which may be empty at end of input.
type SyntaxError struct {
	Message string
	Lexeme  string
	Pos     scan.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// InternalError signals a defect in the compiler itself, such as an IR
// variant the code generator does not know. It never indicates bad input.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}
