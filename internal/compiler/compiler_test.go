package compiler_test

import (
	"os"
	"path/filepath"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorpl/internal/compiler"
	compilererrors "gorpl/internal/errors"
	"gorpl/internal/ir"
	"gorpl/internal/runtime"
)

func TestCompileProducesClassFile(t *testing.T) {
	out, err := compiler.Compile("<< 2 3 + >>", "gorpl/gen/Demo", true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, out[:4])
}

func TestParseRunsFrontEnd(t *testing.T) {
	prog, err := compiler.Parse("5 3 >")
	require.NoError(t, err)
	assert.Equal(t, []ir.Instruction{
		ir.PushConst{Value: 5},
		ir.PushConst{Value: 3},
		ir.CmpOp{Kind: ir.Gt},
	}, prog)
}

func TestCompileSurfacesLexError(t *testing.T) {
	_, err := compiler.Compile("1 $ 2", "gorpl/gen/Demo", false)
	require.Error(t, err)

	var lexErr *compilererrors.LexError
	assert.True(t, stderrors.As(err, &lexErr))
}

func TestCompileSurfacesSyntaxError(t *testing.T) {
	_, err := compiler.Compile("1 IF THEN 2", "gorpl/gen/Demo", false)
	require.Error(t, err)

	var synErr *compilererrors.SyntaxError
	assert.True(t, stderrors.As(err, &synErr))
}

func TestCompileToFileCreatesDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gorpl", "gen", "Demo.class")

	require.NoError(t, compiler.CompileToFile("1 2 +", "gorpl/gen/Demo", true, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe, 0xba, 0xbe}, data[:4])
}

func TestParsedProgramEvaluates(t *testing.T) {
	prog, err := compiler.Parse("<< 1 IF THEN 66 ELSE 0 END >>")
	require.NoError(t, err)

	stack := runtime.NewExecStack()
	require.NoError(t, runtime.Eval(prog, stack))
	assert.Equal(t, []float64{66}, stack.Values())
}
