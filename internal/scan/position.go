package scan

import "fmt"

// Position is a location in the source text. Offset counts bytes from the
// start of the input, Line and Column are 1-based and meant for humans.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d:%d", p.Line, p.Column)
}

// Span is a half-open source region: Start is inclusive, End exclusive.
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s - %s", s.Start, s.End)
}
