package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintFlatProgram(t *testing.T) {
	prog := []Instruction{
		PushConst{Value: 2},
		PushConst{Value: 3.5},
		BinOp{Kind: Add},
		CmpOp{Kind: Gt},
		Dup{},
		Swap{},
		Drop{},
	}

	expected := "push 2\npush 3.5\nadd\ncmp.gt\ndup\nswap\ndrop\n"
	assert.Equal(t, expected, Print(prog))
}

func TestPrintNestedConditional(t *testing.T) {
	prog := []Instruction{
		PushConst{Value: 1},
		IfElse{
			Then: []Instruction{
				IfElse{Then: []Instruction{PushConst{Value: 66}}},
			},
			Else: []Instruction{PushConst{Value: 0}},
		},
	}

	expected := `push 1
if
  if
    push 66
  end
else
  push 0
end
`
	assert.Equal(t, expected, Print(prog))
}
