package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gorpl/internal/errors"
	"gorpl/internal/scan"
)

// Keywords maps the upper-cased identifier spelling to its token kind.
// Any identifier outside this set is a lexical error.
var Keywords = map[string]TokenKind{
	"IF":   IF,
	"THEN": THEN,
	"ELSE": ELSE,
	"END":  END,
	"DUP":  DUP,
	"DROP": DROP,
	"SWAP": SWAP,
}

// Lexer turns source text into the complete token sequence.
//
// It recognizes the delimiters << and >>, the keyword set, the arithmetic
// operators + - * / ^, the comparisons > < >= <= == !=, numbers with an
// optional fractional part, and line comments from ';' to end of line.
// The first lexical error aborts the whole compilation unit.
type Lexer struct {
	src *scan.Source
}

// New creates a lexer over the given source text.
func New(source string) *Lexer {
	return &Lexer{src: scan.NewSource(source)}
}

// Lex tokenizes the entire input. The returned slice always ends with a
// single EOF token whose span is empty at the final position.
func (l *Lexer) Lex() ([]Token, error) {
	var out []Token
	for !l.src.EOF() {
		l.skipWhitespaceAndComments()
		if l.src.EOF() {
			break
		}

		start := l.src.Pos()
		c := l.src.Cursor()

		switch {
		case c == '<':
			l.src.Next()
			if l.src.Match('<') {
				out = append(out, l.token(LOPEN, start))
			} else if l.src.Match('=') {
				out = append(out, l.token(LE, start))
			} else {
				out = append(out, l.token(LT, start))
			}

		case c == '>':
			l.src.Next()
			if l.src.Match('>') {
				out = append(out, l.token(RCLOSE, start))
			} else if l.src.Match('=') {
				out = append(out, l.token(GE, start))
			} else {
				out = append(out, l.token(GT, start))
			}

		case c == '=':
			l.src.Next()
			if !l.src.Match('=') {
				return nil, l.error("unexpected '='; did you mean '=='?", start)
			}
			out = append(out, l.token(EQ, start))

		case c == '!':
			l.src.Next()
			if !l.src.Match('=') {
				return nil, l.error("unexpected '!'; did you mean '!='?", start)
			}
			out = append(out, l.token(NE, start))

		case c == '+':
			l.src.Next()
			out = append(out, l.token(PLUS, start))
		case c == '-':
			l.src.Next()
			out = append(out, l.token(MINUS, start))
		case c == '*':
			l.src.Next()
			out = append(out, l.token(STAR, start))
		case c == '/':
			l.src.Next()
			out = append(out, l.token(SLASH, start))
		case c == '^':
			l.src.Next()
			out = append(out, l.token(CARET, start))

		case isDigit(c):
			tok, err := l.number(start)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)

		case isLetter(c):
			tok, err := l.keyword(start)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)

		default:
			return nil, l.error(fmt.Sprintf("unexpected character: %q", c), start)
		}
	}

	// Always append EOF with an empty span at the final position.
	out = append(out, l.token(EOF, l.src.Pos()))
	return out, nil
}

// skipWhitespaceAndComments consumes whitespace runs and ';' line comments.
// The newline terminating a comment is consumed like ordinary whitespace.
func (l *Lexer) skipWhitespaceAndComments() {
	for !l.src.EOF() {
		c := l.src.Cursor()
		if isWhitespace(c) {
			l.src.Next()
			continue
		}
		if c == ';' {
			for !l.src.EOF() && l.src.Next() != '\n' {
			}
			continue
		}
		break
	}
}

// number reads an integer or decimal literal. A second '.' terminates the
// number without being consumed.
func (l *Lexer) number(start scan.Position) (Token, error) {
	sawDot := false
	for !l.src.EOF() {
		c := l.src.Cursor()
		if isDigit(c) {
			l.src.Next()
		} else if c == '.' && !sawDot {
			sawDot = true
			l.src.Next()
		} else {
			break
		}
	}
	lexeme := l.src.Slice(start)
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return Token{}, l.error(fmt.Sprintf("invalid number literal: %q", lexeme), start)
	}
	return Token{
		Kind:   NUMBER,
		Lexeme: lexeme,
		Value:  value,
		Span:   scan.Span{Start: start, End: l.src.Pos()},
	}, nil
}

// keyword reads a maximal identifier run and classifies it against the
// fixed keyword set, case-insensitively.
func (l *Lexer) keyword(start scan.Position) (Token, error) {
	for !l.src.EOF() {
		c := l.src.Cursor()
		if isLetter(c) || isDigit(c) || c == '_' {
			l.src.Next()
		} else {
			break
		}
	}
	word := l.src.Slice(start)
	kind, ok := Keywords[strings.ToUpper(word)]
	if !ok {
		return Token{}, l.error("unknown identifier: "+word, start)
	}
	return Token{
		Kind:   kind,
		Lexeme: word,
		Span:   scan.Span{Start: start, End: l.src.Pos()},
	}, nil
}

func (l *Lexer) token(kind TokenKind, start scan.Position) Token {
	return Token{
		Kind:   kind,
		Lexeme: l.src.Slice(start),
		Span:   scan.Span{Start: start, End: l.src.Pos()},
	}
}

func (l *Lexer) error(message string, at scan.Position) error {
	return &errors.LexError{Message: message, Pos: at}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return unicode.IsLetter(rune(c))
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
