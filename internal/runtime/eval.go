package runtime

import (
	"gorpl/internal/errors"
	"gorpl/internal/ir"
)

// Eval runs an IR program against a stack, applying the same translation
// rules the code generator lowers into bytecode. The REPL executes programs
// through it, and tests use it to check compiled semantics without a JVM.
func Eval(prog []ir.Instruction, stack *ExecStack) error {
	for _, instr := range prog {
		var err error
		switch n := instr.(type) {
		case ir.PushConst:
			stack.Push(n.Value)
		case ir.Dup:
			err = stack.Dup()
		case ir.Drop:
			err = stack.Drop()
		case ir.Swap:
			err = stack.Swap()
		case ir.BinOp:
			err = evalBin(n.Kind, stack)
		case ir.CmpOp:
			err = evalCmp(n.Kind, stack)
		case ir.IfElse:
			err = evalIfElse(n, stack)
		default:
			err = &errors.InternalError{Message: "unknown IR instruction"}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func evalBin(kind ir.BinKind, stack *ExecStack) error {
	switch kind {
	case ir.Add:
		return stack.Add()
	case ir.Sub:
		return stack.Sub()
	case ir.Mul:
		return stack.Mul()
	case ir.Div:
		return stack.Div()
	case ir.Pow:
		return stack.Pow()
	default:
		return &errors.InternalError{Message: "unknown arithmetic kind"}
	}
}

func evalCmp(kind ir.CmpKind, stack *ExecStack) error {
	switch kind {
	case ir.Gt:
		return stack.CmpGT()
	case ir.Lt:
		return stack.CmpLT()
	case ir.Ge:
		return stack.CmpGE()
	case ir.Le:
		return stack.CmpLE()
	case ir.Eq:
		return stack.CmpEQ()
	case ir.Ne:
		return stack.CmpNE()
	default:
		return &errors.InternalError{Message: "unknown comparison kind"}
	}
}

// evalIfElse mirrors the generated branch: the condition is popped and the
// then branch runs when it compares nonzero, so a NaN condition is truthy.
func evalIfElse(n ir.IfElse, stack *ExecStack) error {
	cond, err := stack.Pop()
	if err != nil {
		return err
	}
	if cond != 0.0 {
		return Eval(n.Then, stack)
	}
	if n.Else != nil {
		return Eval(n.Else, stack)
	}
	return nil
}
