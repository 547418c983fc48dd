package runtime

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnderflow is returned when an operation needs more values than the
// stack holds.
var ErrUnderflow = errors.New("stack underflow")

// ErrDivisionByZero is returned by Div when the divisor is exactly 0.0.
var ErrDivisionByZero = errors.New("division by zero")

// ExecStack is the runtime stack generated modules operate on: a LIFO
// sequence of float64 values. Booleans are encoded as 1.0 (true) and
// 0.0 (false).
//
// The JVM-side ExecStack class the emitted bytecode calls into honors the
// same contract; this Go implementation backs the REPL and the tests.
type ExecStack struct {
	values []float64
}

// NewExecStack creates an empty execution stack.
func NewExecStack() *ExecStack {
	return &ExecStack{}
}

func (s *ExecStack) require(n int, op string) error {
	if len(s.values) < n {
		plural := ""
		if n != 1 {
			plural = "s"
		}
		return fmt.Errorf("%w: %s requires %d value%s, found %d",
			ErrUnderflow, op, n, plural, len(s.values))
	}
	return nil
}

// Push appends a value on top of the stack.
func (s *ExecStack) Push(v float64) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value.
func (s *ExecStack) Pop() (float64, error) {
	if err := s.require(1, "pop"); err != nil {
		return 0, err
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return v, nil
}

// Peek returns the top value without removing it.
func (s *ExecStack) Peek() (float64, error) {
	if err := s.require(1, "peek"); err != nil {
		return 0, err
	}
	return s.values[len(s.values)-1], nil
}

// Dup duplicates the top value.
func (s *ExecStack) Dup() error {
	if err := s.require(1, "DUP"); err != nil {
		return err
	}
	s.values = append(s.values, s.values[len(s.values)-1])
	return nil
}

// Swap exchanges the two topmost values.
func (s *ExecStack) Swap() error {
	if err := s.require(2, "SWAP"); err != nil {
		return err
	}
	n := len(s.values)
	s.values[n-1], s.values[n-2] = s.values[n-2], s.values[n-1]
	return nil
}

// Drop removes the top value.
func (s *ExecStack) Drop() error {
	if err := s.require(1, "DROP"); err != nil {
		return err
	}
	s.values = s.values[:len(s.values)-1]
	return nil
}

// pop2 removes the two topmost values; b was on top, a below it.
func (s *ExecStack) pop2(op string) (a, b float64, err error) {
	if err := s.require(2, op); err != nil {
		return 0, 0, err
	}
	n := len(s.values)
	a, b = s.values[n-2], s.values[n-1]
	s.values = s.values[:n-2]
	return a, b, nil
}

// Add pops two values and pushes a + b.
func (s *ExecStack) Add() error {
	a, b, err := s.pop2("ADD")
	if err != nil {
		return err
	}
	s.Push(a + b)
	return nil
}

// Sub pops two values and pushes a - b.
func (s *ExecStack) Sub() error {
	a, b, err := s.pop2("SUB")
	if err != nil {
		return err
	}
	s.Push(a - b)
	return nil
}

// Mul pops two values and pushes a * b.
func (s *ExecStack) Mul() error {
	a, b, err := s.pop2("MUL")
	if err != nil {
		return err
	}
	s.Push(a * b)
	return nil
}

// Div pops two values and pushes a / b. A divisor of exactly 0.0 fails.
func (s *ExecStack) Div() error {
	a, b, err := s.pop2("DIV")
	if err != nil {
		return err
	}
	if b == 0.0 {
		return ErrDivisionByZero
	}
	s.Push(a / b)
	return nil
}

// Pow pops two values and pushes a raised to b.
func (s *ExecStack) Pow() error {
	a, b, err := s.pop2("POW")
	if err != nil {
		return err
	}
	s.Push(math.Pow(a, b))
	return nil
}

func (s *ExecStack) pushBool(b bool) {
	if b {
		s.Push(1.0)
	} else {
		s.Push(0.0)
	}
}

// CmpGT pops two values and pushes 1.0 if a > b, else 0.0.
func (s *ExecStack) CmpGT() error {
	a, b, err := s.pop2(">")
	if err != nil {
		return err
	}
	s.pushBool(a > b)
	return nil
}

// CmpLT pops two values and pushes 1.0 if a < b, else 0.0.
func (s *ExecStack) CmpLT() error {
	a, b, err := s.pop2("<")
	if err != nil {
		return err
	}
	s.pushBool(a < b)
	return nil
}

// CmpGE pops two values and pushes 1.0 if a >= b, else 0.0.
func (s *ExecStack) CmpGE() error {
	a, b, err := s.pop2(">=")
	if err != nil {
		return err
	}
	s.pushBool(a >= b)
	return nil
}

// CmpLE pops two values and pushes 1.0 if a <= b, else 0.0.
func (s *ExecStack) CmpLE() error {
	a, b, err := s.pop2("<=")
	if err != nil {
		return err
	}
	s.pushBool(a <= b)
	return nil
}

// CmpEQ pops two values and pushes 1.0 if a == b under ordered IEEE
// comparison, so NaN is never equal to anything, including itself.
func (s *ExecStack) CmpEQ() error {
	a, b, err := s.pop2("==")
	if err != nil {
		return err
	}
	s.pushBool(a == b)
	return nil
}

// CmpNE pops two values and pushes 1.0 if a != b under ordered IEEE
// comparison.
func (s *ExecStack) CmpNE() error {
	a, b, err := s.pop2("!=")
	if err != nil {
		return err
	}
	s.pushBool(a != b)
	return nil
}

// Size returns the number of values on the stack.
func (s *ExecStack) Size() int {
	return len(s.values)
}

// Values returns a copy of the stack contents, bottom to top.
func (s *ExecStack) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}
