package lsp

import (
	stderrors "errors"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gorpl/internal/errors"
	"gorpl/internal/lexer"
	"gorpl/internal/parser"
	"gorpl/internal/scan"
)

// Diagnose runs the compiler front end over source and converts the first
// error, if any, into LSP diagnostics. The pipeline stops at the first
// error, so the slice holds at most one entry.
func Diagnose(source string) []protocol.Diagnostic {
	tokens, err := lexer.New(source).Lex()
	if err != nil {
		return toDiagnostics(err, "gorpl-lexer")
	}
	if _, err := parser.New(tokens).ParseProgram(); err != nil {
		return toDiagnostics(err, "gorpl-parser")
	}
	return []protocol.Diagnostic{}
}

func toDiagnostics(err error, src string) []protocol.Diagnostic {
	var lexErr *errors.LexError
	var synErr *errors.SyntaxError

	switch {
	case stderrors.As(err, &lexErr):
		return []protocol.Diagnostic{makeDiagnostic(lexErr.Message, lexErr.Pos, 1, src)}
	case stderrors.As(err, &synErr):
		length := len(synErr.Lexeme)
		if length == 0 {
			length = 1
		}
		return []protocol.Diagnostic{makeDiagnostic(synErr.Message, synErr.Pos, length, src)}
	default:
		return []protocol.Diagnostic{makeDiagnostic(err.Error(), scan.Position{Line: 1, Column: 1}, 1, src)}
	}
}

// makeDiagnostic converts a 1-based compiler position into the 0-based LSP
// range covering length characters.
func makeDiagnostic(message string, pos scan.Position, length int, src string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(pos.Line - 1),
				Character: uint32(pos.Column - 1),
			},
			End: protocol.Position{
				Line:      uint32(pos.Line - 1),
				Character: uint32(pos.Column - 1 + length),
			},
		},
		Severity: &severity,
		Source:   ptrString(src),
		Message:  message,
	}
}

func ptrString(s string) *string {
	return &s
}
