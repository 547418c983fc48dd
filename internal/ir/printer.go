package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Print returns an indented textual dump of a program, one instruction per
// line. Used by the CLI's --dump-ir flag and by tests.
func Print(prog []Instruction) string {
	var b strings.Builder
	printSeq(&b, prog, 0)
	return b.String()
}

func printSeq(b *strings.Builder, prog []Instruction, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, instr := range prog {
		switch n := instr.(type) {
		case PushConst:
			fmt.Fprintf(b, "%spush %s\n", indent, strconv.FormatFloat(n.Value, 'g', -1, 64))
		case Dup:
			fmt.Fprintf(b, "%sdup\n", indent)
		case Drop:
			fmt.Fprintf(b, "%sdrop\n", indent)
		case Swap:
			fmt.Fprintf(b, "%sswap\n", indent)
		case BinOp:
			fmt.Fprintf(b, "%s%s\n", indent, n.Kind)
		case CmpOp:
			fmt.Fprintf(b, "%scmp.%s\n", indent, n.Kind)
		case IfElse:
			fmt.Fprintf(b, "%sif\n", indent)
			printSeq(b, n.Then, depth+1)
			if n.Else != nil {
				fmt.Fprintf(b, "%selse\n", indent)
				printSeq(b, n.Else, depth+1)
			}
			fmt.Fprintf(b, "%send\n", indent)
		default:
			fmt.Fprintf(b, "%s<unknown %T>\n", indent, instr)
		}
	}
}
