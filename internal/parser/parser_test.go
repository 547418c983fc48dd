package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	compilererrors "gorpl/internal/errors"
	"gorpl/internal/ir"
	"gorpl/internal/lexer"
)

func parse(t *testing.T, input string) ([]ir.Instruction, error) {
	t.Helper()
	tokens, err := lexer.New(input).Lex()
	require.NoError(t, err)
	return New(tokens).ParseProgram()
}

func mustParse(t *testing.T, input string) []ir.Instruction {
	t.Helper()
	prog, err := parse(t, input)
	require.NoError(t, err)
	return prog
}

func TestInstructionMapping(t *testing.T) {
	prog := mustParse(t, "1 2.5 DUP DROP SWAP + - * / ^ > < >= <= == !=")

	expected := []ir.Instruction{
		ir.PushConst{Value: 1},
		ir.PushConst{Value: 2.5},
		ir.Dup{},
		ir.Drop{},
		ir.Swap{},
		ir.BinOp{Kind: ir.Add},
		ir.BinOp{Kind: ir.Sub},
		ir.BinOp{Kind: ir.Mul},
		ir.BinOp{Kind: ir.Div},
		ir.BinOp{Kind: ir.Pow},
		ir.CmpOp{Kind: ir.Gt},
		ir.CmpOp{Kind: ir.Lt},
		ir.CmpOp{Kind: ir.Ge},
		ir.CmpOp{Kind: ir.Le},
		ir.CmpOp{Kind: ir.Eq},
		ir.CmpOp{Kind: ir.Ne},
	}
	assert.Equal(t, expected, prog)
}

func TestDelimitedAndBareProgramsMatch(t *testing.T) {
	delimited := mustParse(t, "<< 2 3 + >>")
	bare := mustParse(t, "2 3 +")
	assert.Equal(t, bare, delimited)
}

func TestEmptyPrograms(t *testing.T) {
	assert.Empty(t, mustParse(t, ""))
	assert.Empty(t, mustParse(t, "<< >>"))
}

func TestConditional(t *testing.T) {
	prog := mustParse(t, "1 IF THEN 66 ELSE 0 END")

	require.Len(t, prog, 2)
	cond, ok := prog[1].(ir.IfElse)
	require.True(t, ok)
	assert.Equal(t, []ir.Instruction{ir.PushConst{Value: 66}}, cond.Then)
	assert.Equal(t, []ir.Instruction{ir.PushConst{Value: 0}}, cond.Else)
}

func TestConditionalWithoutElse(t *testing.T) {
	prog := mustParse(t, "1 IF THEN 2 3 + END")

	require.Len(t, prog, 2)
	cond, ok := prog[1].(ir.IfElse)
	require.True(t, ok)
	assert.Len(t, cond.Then, 3)
	assert.Nil(t, cond.Else)
}

func TestNestedConditionals(t *testing.T) {
	prog := mustParse(t, "1 IF THEN 2 IF THEN 3 END ELSE 4 END")

	require.Len(t, prog, 2)
	outer := prog[1].(ir.IfElse)
	require.Len(t, outer.Then, 2)

	inner, ok := outer.Then[1].(ir.IfElse)
	require.True(t, ok)
	assert.Equal(t, []ir.Instruction{ir.PushConst{Value: 3}}, inner.Then)
	assert.Nil(t, inner.Else)

	assert.Equal(t, []ir.Instruction{ir.PushConst{Value: 4}}, outer.Else)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unclosed delimiter", "<< 1 2 +", "expected '>>' but found: end of input"},
		{"stray close delimiter", "1 2 + >>", "unexpected '>>' without matching '<<'"},
		{"close without open inside", ">>", "unexpected '>>' without matching '<<'"},
		{"if without then", "1 IF 2 END", "expected 'THEN' but found: 2"},
		{"if without end", "1 IF THEN 2", "expected 'END' but found: end of input"},
		{"else outside if", "1 ELSE", "unexpected token: ELSE"},
		{"end outside if", "END", "unexpected token: END"},
		{"then outside if", "THEN", "unexpected token: THEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parse(t, tt.input)
			require.Error(t, err)
			assert.Nil(t, prog)

			var synErr *compilererrors.SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.message, synErr.Message)
		})
	}
}

func TestErrorCarriesPosition(t *testing.T) {
	_, err := parse(t, "1 2 +\nEND")

	var synErr *compilererrors.SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, 2, synErr.Pos.Line)
	assert.Equal(t, 1, synErr.Pos.Column)
	assert.Equal(t, "END", synErr.Lexeme)
}

func TestDelimitedConditional(t *testing.T) {
	prog := mustParse(t, "<< 5 3 > IF THEN 1 ELSE 0 END >>")
	require.Len(t, prog, 4)
	assert.IsType(t, ir.IfElse{}, prog[3])
}
