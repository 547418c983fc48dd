// Package compiler is the facade over the gorpl compilation pipeline:
// lexical analysis, parsing into IR and class file generation.
package compiler

import (
	"os"
	"path/filepath"

	"gorpl/internal/codegen"
	"gorpl/internal/ir"
	"gorpl/internal/lexer"
	"gorpl/internal/parser"
)

// Compile turns RPL source text into the bytes of a loadable class file.
// internalName is the slash-separated class name (e.g. "gorpl/gen/Demo");
// withMain selects whether a main(String[]) entry point is generated.
func Compile(source, internalName string, withMain bool) ([]byte, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return codegen.NewClassEmitter(internalName, withMain).Emit(prog)
}

// Parse runs the front half of the pipeline, returning the IR program.
// The CLI uses it for --dump-ir and the REPL evaluates its result directly.
func Parse(source string) ([]ir.Instruction, error) {
	tokens, err := lexer.New(source).Lex()
	if err != nil {
		return nil, err
	}
	return parser.New(tokens).ParseProgram()
}

// CompileToFile compiles source and writes the class file to out, creating
// parent directories as needed.
func CompileToFile(source, internalName string, withMain bool, out string) error {
	bytes, err := Compile(source, internalName, withMain)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(out, bytes, 0o644)
}
