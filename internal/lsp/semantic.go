package lsp

import (
	"gorpl/internal/lexer"
)

// Semantic token type indexes into SemanticTokenTypes.
const (
	tokenKeyword = iota
	tokenNumber
	tokenOperator
)

// EncodeSemanticTokens converts a token stream into the LSP wire format:
// five uint32 per token using delta-line/delta-start compression.
func EncodeSemanticTokens(tokens []lexer.Token) []uint32 {
	var data []uint32
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		tokenType, ok := classify(tok.Kind)
		if !ok {
			continue
		}

		line := uint32(tok.Span.Start.Line - 1)
		start := uint32(tok.Span.Start.Column - 1)

		deltaLine := line - prevLine
		deltaStart := start
		if deltaLine == 0 {
			deltaStart = start - prevStart
		}

		data = append(data, deltaLine, deltaStart, uint32(len(tok.Lexeme)), uint32(tokenType), 0)

		prevLine = line
		prevStart = start
	}
	return data
}

func classify(kind lexer.TokenKind) (int, bool) {
	switch kind {
	case lexer.IF, lexer.THEN, lexer.ELSE, lexer.END, lexer.DUP, lexer.DROP, lexer.SWAP:
		return tokenKeyword, true
	case lexer.NUMBER:
		return tokenNumber, true
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.CARET,
		lexer.GT, lexer.LT, lexer.GE, lexer.LE, lexer.EQ, lexer.NE,
		lexer.LOPEN, lexer.RCLOSE:
		return tokenOperator, true
	default:
		return 0, false
	}
}
