// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fatih/color"

	"gorpl/internal/compiler"
	"gorpl/internal/errors"
	"gorpl/internal/ir"
)

const usage = "Usage: gorpl <file.rpl> [--out-dir <dir>] [--class-name <binary.Name>] [--no-main] [--dump-ir]"

func main() {
	opt, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, usage)
		os.Exit(1)
	}

	if !strings.HasSuffix(strings.ToLower(opt.inputFile), ".rpl") {
		fmt.Fprintf(os.Stderr, "Error: input must be a .rpl file: %s\n%s\n", opt.inputFile, usage)
		os.Exit(1)
	}

	source, err := os.ReadFile(opt.inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()

	className := opt.className
	if className == "" {
		className = autoName(opt.inputFile, time.Now())
	}
	internal := strings.ReplaceAll(className, ".", "/")

	if opt.dumpIR {
		prog, err := compiler.Parse(string(source))
		if err != nil {
			fail(opt.inputFile, string(source), err, startTime)
		}
		fmt.Print(ir.Print(prog))
	}

	classFile := filepath.Join(opt.outDir, internal+".class")
	if err := compiler.CompileToFile(string(source), internal, opt.withMain, classFile); err != nil {
		fail(opt.inputFile, string(source), err, startTime)
	}

	abs, err := filepath.Abs(classFile)
	if err != nil {
		abs = classFile
	}
	fmt.Printf("Generated: %s\n", abs)
	fmt.Printf("Class: %s\n", className)
	color.Green("Successfully compiled %s in %s", opt.inputFile, formatDuration(time.Since(startTime)))
}

// fail prints a source-context error report and terminates.
func fail(filename, source string, err error, startTime time.Time) {
	reporter := errors.NewReporter(filename, source)
	fmt.Print(reporter.Report(err))
	color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
	os.Exit(1)
}

// autoName derives a fully qualified class name from the input file name
// and an explicit timestamp, e.g. "gorpl.gen.demo_kf3p9z".
func autoName(input string, now time.Time) string {
	base := filepath.Base(input)
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[:i]
	}
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return "gorpl.gen." + sanitize(base) + "_" + ts
}

// sanitize replaces characters invalid in a class name with '_' and
// prefixes '_' when the first character cannot start an identifier.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	t := b.String()
	if t != "" {
		first := rune(t[0])
		if first == '_' || unicode.IsLetter(first) {
			return t
		}
	}
	return "_" + t
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
