package main

import (
	"fmt"
	"strings"
)

// options holds the parsed command line.
//
// Usage: gorpl <file.rpl> [--out-dir <dir>] [--class-name <binary.Name>] [--no-main] [--dump-ir]
type options struct {
	inputFile string
	outDir    string
	className string // empty means auto-generated
	withMain  bool
	dumpIR    bool
}

func parseOptions(args []string) (options, error) {
	opt := options{
		outDir:   ".",
		withMain: true,
	}

	var positional []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--out-dir":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("--out-dir requires a value")
			}
			i++
			opt.outDir = args[i]
		case "--class-name":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("--class-name requires a value")
			}
			i++
			opt.className = args[i]
		case "--no-main":
			opt.withMain = false
		case "--dump-ir":
			opt.dumpIR = true
		default:
			if strings.HasPrefix(args[i], "--") {
				return opt, fmt.Errorf("unknown flag: %s", args[i])
			}
			positional = append(positional, args[i])
		}
	}

	if len(positional) == 0 {
		return opt, fmt.Errorf("missing input file")
	}
	if len(positional) > 1 {
		return opt, fmt.Errorf("unexpected argument: %s", positional[1])
	}
	opt.inputFile = positional[0]
	return opt, nil
}
