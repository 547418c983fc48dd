package lexer

import "gorpl/internal/scan"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// Delimiters
	LOPEN  TokenKind = iota // <<
	RCLOSE                  // >>

	// Keywords
	IF
	THEN
	ELSE
	END
	DUP
	DROP
	SWAP

	// Arithmetic operators
	PLUS
	MINUS
	STAR
	SLASH
	CARET

	// Comparison operators
	GT
	LT
	GE
	LE
	EQ
	NE

	// Literals
	NUMBER

	EOF
)

var kindNames = [...]string{
	LOPEN:  "LOPEN",
	RCLOSE: "RCLOSE",
	IF:     "IF",
	THEN:   "THEN",
	ELSE:   "ELSE",
	END:    "END",
	DUP:    "DUP",
	DROP:   "DROP",
	SWAP:   "SWAP",
	PLUS:   "PLUS",
	MINUS:  "MINUS",
	STAR:   "STAR",
	SLASH:  "SLASH",
	CARET:  "CARET",
	GT:     "GT",
	LT:     "LT",
	GE:     "GE",
	LE:     "LE",
	EQ:     "EQ",
	NE:     "NE",
	NUMBER: "NUMBER",
	EOF:    "EOF",
}

func (k TokenKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Token is an immutable lexeme produced by the lexer. Value is meaningful
// only for NUMBER tokens.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Value  float64
	Span   scan.Span
}
