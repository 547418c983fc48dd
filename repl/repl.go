// SPDX-License-Identifier: Apache-2.0

// Package repl implements an interactive read-compile-eval loop: each line
// is lexed and parsed like a full program, then evaluated against a
// persistent execution stack.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"gorpl/internal/compiler"
	rplerrors "gorpl/internal/errors"
	"gorpl/internal/runtime"
)

const prompt = "rpl> "

// Start runs the interactive loop until EOF or the .quit metacommand.
func Start() {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := historyFile()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	stack := runtime.NewExecStack()

	for {
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}

		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}
		state.AppendHistory(line)

		switch line {
		case ".quit":
			return
		case ".clear":
			stack = runtime.NewExecStack()
			fmt.Println("stack cleared")
			continue
		}

		evalLine(line, stack)
	}
}

func evalLine(line string, stack *runtime.ExecStack) {
	prog, err := compiler.Parse(line)
	if err != nil {
		reporter := rplerrors.NewReporter("repl", line)
		fmt.Print(reporter.Report(err))
		return
	}

	if err := runtime.Eval(prog, stack); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
		return
	}

	fmt.Println(formatStack(stack))
}

// formatStack renders the stack bottom-to-top, e.g. "[ 1 2 3.5 ]".
func formatStack(stack *runtime.ExecStack) string {
	values := stack.Values()
	if len(values) == 0 {
		return "[ ]"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "[ " + strings.Join(parts, " ") + " ]"
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gorpl_history")
}
