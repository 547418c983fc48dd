package scan

// Source is a character stream over an immutable string with line and
// column tracking. The lexer reads characters one at a time through it and
// slices lexemes out of the underlying text once a token ends.
type Source struct {
	src    string
	offset int
	line   int
	column int
}

// NewSource creates a cursor positioned at the start of the given text.
func NewSource(src string) *Source {
	return &Source{src: src, line: 1, column: 1}
}

// EOF reports whether every character has been consumed.
func (s *Source) EOF() bool {
	return s.offset >= len(s.src)
}

// Cursor returns the current character without consuming it.
// Calling it past the end of input is a programming error and panics.
func (s *Source) Cursor() byte {
	if s.EOF() {
		panic("scan: cursor past end of input")
	}
	return s.src[s.offset]
}

// Next consumes and returns the current character, updating the line and
// column counters.
func (s *Source) Next() byte {
	c := s.Cursor()
	s.offset++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

// Match consumes the current character only if it equals expected.
// On a mismatch nothing is consumed.
func (s *Source) Match(expected byte) bool {
	if s.EOF() || s.src[s.offset] != expected {
		return false
	}
	s.Next()
	return true
}

// Pos returns the current position of the cursor.
func (s *Source) Pos() Position {
	return Position{Offset: s.offset, Line: s.line, Column: s.column}
}

// Slice returns the text between start (inclusive) and the current
// cursor (exclusive).
func (s *Source) Slice(start Position) string {
	return s.src[start.Offset:s.offset]
}
