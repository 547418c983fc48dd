package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compilererrors "gorpl/internal/errors"
)

func lexKinds(t *testing.T, input string) []TokenKind {
	t.Helper()
	tokens, err := New(input).Lex()
	require.NoError(t, err)
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestDelimitersAndOperators(t *testing.T) {
	input := "<< >> + - * / ^ > < >= <= == !="
	expected := []TokenKind{
		LOPEN, RCLOSE, PLUS, MINUS, STAR, SLASH, CARET,
		GT, LT, GE, LE, EQ, NE, EOF,
	}
	assert.Equal(t, expected, lexKinds(t, input))
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	input := "IF then Else END dup DROP swap"
	expected := []TokenKind{IF, THEN, ELSE, END, DUP, DROP, SWAP, EOF}
	assert.Equal(t, expected, lexKinds(t, input))
}

func TestNumberValues(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.14", 3.14},
		{"0.5", 0.5},
		{"1000000", 1000000},
	}

	for _, tt := range tests {
		tokens, err := New(tt.input).Lex()
		require.NoError(t, err, "input %q", tt.input)
		require.Len(t, tokens, 2)
		assert.Equal(t, NUMBER, tokens[0].Kind)
		assert.Equal(t, tt.input, tokens[0].Lexeme)
		assert.Equal(t, tt.value, tokens[0].Value)
	}
}

func TestSecondDotTerminatesNumber(t *testing.T) {
	tokens, err := New("1.2.3").Lex()
	require.Error(t, err) // ".3" begins with '.', an unexpected character
	assert.Nil(t, tokens)

	tokens, err = New("1.2 3").Lex()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.2, tokens[0].Value)
	assert.Equal(t, 3.0, tokens[1].Value)
}

func TestCommentsAndWhitespaceAreSkipped(t *testing.T) {
	input := "1 ; push one\n2 ;trailing comment"
	tokens, err := New(input).Lex()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1.0, tokens[0].Value)
	assert.Equal(t, 2.0, tokens[1].Value)
	assert.Equal(t, EOF, tokens[2].Kind)
}

func TestEOFTokenHasEmptySpan(t *testing.T) {
	tokens, err := New("1 2").Lex()
	require.NoError(t, err)
	eof := tokens[len(tokens)-1]
	assert.Equal(t, EOF, eof.Kind)
	assert.Equal(t, "", eof.Lexeme)
	assert.Equal(t, eof.Span.Start, eof.Span.End)
	assert.Equal(t, 3, eof.Span.Start.Offset)
}

func TestTokenSpans(t *testing.T) {
	tokens, err := New("<< 12\n>>").Lex()
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].Span.Start.Line)
	assert.Equal(t, 1, tokens[0].Span.Start.Column)
	assert.Equal(t, 3, tokens[0].Span.End.Column)

	assert.Equal(t, 4, tokens[1].Span.Start.Column)
	assert.Equal(t, 6, tokens[1].Span.End.Column)

	assert.Equal(t, 2, tokens[2].Span.Start.Line)
	assert.Equal(t, 1, tokens[2].Span.Start.Column)
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{"lone equal", "1 = 2", "unexpected '='; did you mean '=='?", 1, 3},
		{"lone bang", "!", "unexpected '!'; did you mean '!='?", 1, 1},
		{"unknown identifier", "1 2 FOO", "unknown identifier: FOO", 1, 5},
		{"unexpected character", "1 @ 2", `unexpected character: '@'`, 1, 3},
		{"unexpected character on later line", "1\n 2\n  #", `unexpected character: '#'`, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).Lex()
			require.Error(t, err)

			var lexErr *compilererrors.LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.message, lexErr.Message)
			assert.Equal(t, tt.line, lexErr.Pos.Line)
			assert.Equal(t, tt.column, lexErr.Pos.Column)
		})
	}
}

func TestIdentifierRunIncludesDigitsAndUnderscore(t *testing.T) {
	_, err := New("DUP_2").Lex()
	require.Error(t, err)

	var lexErr *compilererrors.LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, "unknown identifier: DUP_2", lexErr.Message)
}
