package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPopPeek(t *testing.T) {
	s := NewExecStack()
	s.Push(1)
	s.Push(2)

	top, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2.0, top)
	assert.Equal(t, 2, s.Size())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, 1, s.Size())
}

func TestStackManipulation(t *testing.T) {
	s := NewExecStack()
	s.Push(1)
	s.Push(2)

	require.NoError(t, s.Dup())
	assert.Equal(t, []float64{1, 2, 2}, s.Values())

	require.NoError(t, s.Drop())
	require.NoError(t, s.Swap())
	assert.Equal(t, []float64{2, 1}, s.Values())
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   func(*ExecStack) error
		want float64
	}{
		{"add", 2, 3, (*ExecStack).Add, 5},
		{"sub", 10, 4, (*ExecStack).Sub, 6},
		{"mul", 6, 7, (*ExecStack).Mul, 42},
		{"div", 9, 2, (*ExecStack).Div, 4.5},
		{"pow", 2, 10, (*ExecStack).Pow, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExecStack()
			s.Push(tt.a)
			s.Push(tt.b)
			require.NoError(t, tt.op(s))
			assert.Equal(t, []float64{tt.want}, s.Values())
		})
	}
}

func TestOperandOrder(t *testing.T) {
	// The top of the stack is the right operand: "4 10 -" leaves -6.
	s := NewExecStack()
	s.Push(4)
	s.Push(10)
	require.NoError(t, s.Sub())

	v, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, -6.0, v)
}

func TestDivisionByZero(t *testing.T) {
	s := NewExecStack()
	s.Push(1)
	s.Push(0)

	err := s.Div()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestUnderflow(t *testing.T) {
	s := NewExecStack()

	_, err := s.Pop()
	assert.ErrorIs(t, err, ErrUnderflow)

	_, err = s.Peek()
	assert.ErrorIs(t, err, ErrUnderflow)

	assert.ErrorIs(t, s.Add(), ErrUnderflow)
	assert.ErrorIs(t, s.Dup(), ErrUnderflow)
	assert.ErrorIs(t, s.Drop(), ErrUnderflow)

	s.Push(1)
	assert.ErrorIs(t, s.Swap(), ErrUnderflow)
	assert.ErrorIs(t, s.CmpGT(), ErrUnderflow)
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   func(*ExecStack) error
		want float64
	}{
		{"gt true", 5, 3, (*ExecStack).CmpGT, 1},
		{"gt false", 3, 5, (*ExecStack).CmpGT, 0},
		{"lt true", 3, 5, (*ExecStack).CmpLT, 1},
		{"ge equal", 5, 5, (*ExecStack).CmpGE, 1},
		{"le greater", 6, 5, (*ExecStack).CmpLE, 0},
		{"eq true", 4, 4, (*ExecStack).CmpEQ, 1},
		{"eq false", 4, 5, (*ExecStack).CmpEQ, 0},
		{"ne true", 4, 5, (*ExecStack).CmpNE, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewExecStack()
			s.Push(tt.a)
			s.Push(tt.b)
			require.NoError(t, tt.op(s))
			assert.Equal(t, []float64{tt.want}, s.Values())
		})
	}
}

func TestNaNComparesUnordered(t *testing.T) {
	nan := math.NaN()

	check := func(op func(*ExecStack) error, want float64) {
		s := NewExecStack()
		s.Push(nan)
		s.Push(1)
		require.NoError(t, op(s))
		assert.Equal(t, []float64{want}, s.Values())
	}

	check((*ExecStack).CmpGT, 0)
	check((*ExecStack).CmpLT, 0)
	check((*ExecStack).CmpGE, 0)
	check((*ExecStack).CmpLE, 0)
	check((*ExecStack).CmpEQ, 0)
	check((*ExecStack).CmpNE, 1)

	// NaN is not equal even to itself.
	s := NewExecStack()
	s.Push(nan)
	s.Push(nan)
	require.NoError(t, s.CmpEQ())
	assert.Equal(t, []float64{0}, s.Values())
}

func TestValuesReturnsCopy(t *testing.T) {
	s := NewExecStack()
	s.Push(1)

	values := s.Values()
	values[0] = 99

	top, err := s.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1.0, top)
}
