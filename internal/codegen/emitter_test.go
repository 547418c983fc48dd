package codegen_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorpl/internal/codegen"
	"gorpl/internal/ir"
)

func emit(t *testing.T, prog []ir.Instruction, withMain bool) []byte {
	t.Helper()
	out, err := codegen.NewClassEmitter("gorpl/gen/Demo", withMain).Emit(prog)
	require.NoError(t, err)
	return out
}

func TestEmitClassFileHeader(t *testing.T) {
	out := emit(t, []ir.Instruction{ir.PushConst{Value: 1}}, false)

	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, out[:4])
	// minor 0, major 61 (Java 17)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x3d}, out[4:8])
}

func TestEmitReferencesRuntimeStack(t *testing.T) {
	out := emit(t, []ir.Instruction{
		ir.PushConst{Value: 2},
		ir.PushConst{Value: 3},
		ir.BinOp{Kind: ir.Add},
	}, false)

	for _, want := range []string{
		"gorpl/gen/Demo",
		"java/lang/Object",
		"gorpl/runtime/ExecStack",
		"<init>",
		"run",
		"(Lgorpl/runtime/ExecStack;)V",
		"push",
		"(D)V",
		"add",
		"Code",
	} {
		assert.True(t, bytes.Contains(out, []byte(want)), "missing constant %q", want)
	}
}

func TestEmitComparisonMethods(t *testing.T) {
	tests := []struct {
		kind ir.CmpKind
		want string
	}{
		{ir.Gt, "cmpGT"},
		{ir.Lt, "cmpLT"},
		{ir.Ge, "cmpGE"},
		{ir.Le, "cmpLE"},
		{ir.Eq, "cmpEQ"},
		{ir.Ne, "cmpNE"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			out := emit(t, []ir.Instruction{ir.CmpOp{Kind: tt.kind}}, false)
			assert.True(t, bytes.Contains(out, []byte(tt.want)))
		})
	}
}

func TestConditionalEmitsStackMapTable(t *testing.T) {
	flat := emit(t, []ir.Instruction{ir.PushConst{Value: 1}}, false)
	assert.False(t, bytes.Contains(flat, []byte("StackMapTable")))

	branched := emit(t, []ir.Instruction{
		ir.PushConst{Value: 1},
		ir.IfElse{
			Then: []ir.Instruction{ir.PushConst{Value: 66}},
			Else: []ir.Instruction{ir.PushConst{Value: 0}},
		},
	}, false)
	assert.True(t, bytes.Contains(branched, []byte("StackMapTable")))
	assert.True(t, bytes.Contains(branched, []byte("pop")))
	assert.True(t, bytes.Contains(branched, []byte("()D")))
}

func TestMainGeneration(t *testing.T) {
	prog := []ir.Instruction{ir.PushConst{Value: 1}}

	without := emit(t, prog, false)
	assert.False(t, bytes.Contains(without, []byte("main")))

	with := emit(t, prog, true)
	for _, want := range []string{
		"main",
		"([Ljava/lang/String;)V",
		"java/lang/Double",
		"parseDouble",
		"java/lang/System",
		"println",
		"Stack empty",
		"StackMapTable",
	} {
		assert.True(t, bytes.Contains(with, []byte(want)), "missing constant %q", want)
	}
}

func TestEmptyProgram(t *testing.T) {
	out := emit(t, nil, false)
	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, out[:4])
}
