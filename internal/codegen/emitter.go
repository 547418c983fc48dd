// Package codegen lowers IR programs into JVM class files.
//
// Every generated class contains a no-op constructor and a static
// run(ExecStack) method holding the translated program; a main(String[])
// entry point is added on request so the class can be executed directly.
package codegen

import (
	"fmt"

	"gorpl/internal/classfile"
	"gorpl/internal/errors"
	"gorpl/internal/ir"
)

// ExecStackClass is the internal name of the runtime stack class the
// generated bytecode calls into. It is supplied by the execution
// environment, never emitted per program.
const ExecStackClass = "gorpl/runtime/ExecStack"

// RunDescriptor is the fixed signature of the generated run method.
const RunDescriptor = "(Lgorpl/runtime/ExecStack;)V"

// ClassEmitter generates one class from an IR program.
type ClassEmitter struct {
	internalName string
	withMain     bool
}

// NewClassEmitter creates an emitter for the given internal class name
// (e.g. "gorpl/gen/Demo"). withMain controls whether a main(String[])
// entry point is generated alongside run.
func NewClassEmitter(internalName string, withMain bool) *ClassEmitter {
	return &ClassEmitter{internalName: internalName, withMain: withMain}
}

// Emit compiles the IR program into class file bytes.
func (e *ClassEmitter) Emit(prog []ir.Instruction) ([]byte, error) {
	b := classfile.NewBuilder(e.internalName)
	cp := b.Pool()

	// public <init>() { super(); }
	ctor := b.NewMethod(classfile.AccPublic, "<init>", "()V",
		[]classfile.VerificationType{classfile.Object(cp.Class(e.internalName))})
	ctor.ALoad(0)
	ctor.InvokeSpecial(cp, classfile.ObjectClass, "<init>", "()V")
	ctor.Return()

	// public static void run(ExecStack)
	run := b.NewMethod(classfile.AccPublic|classfile.AccStatic, "run", RunDescriptor,
		[]classfile.VerificationType{classfile.Object(cp.Class(ExecStackClass))})
	if err := emitSeq(prog, run, cp); err != nil {
		return nil, err
	}
	run.Return()

	if e.withMain {
		e.emitMain(b)
	}

	return b.Bytes()
}

// emitSeq translates a sequence of IR instructions into the method body.
// The runtime stack reference lives in local slot 0.
func emitSeq(prog []ir.Instruction, m *classfile.MethodBuilder, cp *classfile.ConstantPool) error {
	for _, instr := range prog {
		switch n := instr.(type) {
		case ir.PushConst:
			m.ALoad(0)
			m.LdcDouble(cp, n.Value)
			m.InvokeVirtual(cp, ExecStackClass, "push", "(D)V")
		case ir.Dup:
			emitCall(m, cp, "dup")
		case ir.Drop:
			emitCall(m, cp, "drop")
		case ir.Swap:
			emitCall(m, cp, "swap")
		case ir.BinOp:
			emitCall(m, cp, n.Kind.String())
		case ir.CmpOp:
			emitCall(m, cp, cmpMethod(n.Kind))
		case ir.IfElse:
			if err := emitIfElse(n, m, cp); err != nil {
				return err
			}
		default:
			return &errors.InternalError{
				Message: fmt.Sprintf("unknown IR instruction %T", instr),
			}
		}
	}
	return nil
}

// emitCall invokes a zero-argument ExecStack primitive.
func emitCall(m *classfile.MethodBuilder, cp *classfile.ConstantPool, name string) {
	m.ALoad(0)
	m.InvokeVirtual(cp, ExecStackClass, name, "()V")
}

func cmpMethod(kind ir.CmpKind) string {
	switch kind {
	case ir.Gt:
		return "cmpGT"
	case ir.Lt:
		return "cmpLT"
	case ir.Ge:
		return "cmpGE"
	case ir.Le:
		return "cmpLE"
	case ir.Eq:
		return "cmpEQ"
	default:
		return "cmpNE"
	}
}

// emitIfElse pops the condition and compares it against 0.0 with dcmpl, an
// ordered comparison under which a NaN condition runs the then branch.
func emitIfElse(n ir.IfElse, m *classfile.MethodBuilder, cp *classfile.ConstantPool) error {
	m.ALoad(0)
	m.InvokeVirtual(cp, ExecStackClass, "pop", "()D")
	m.DConst0()
	m.Dcmpl()

	if n.Else != nil {
		elseL := m.NewLabel()
		endL := m.NewLabel()

		m.Ifeq(elseL)
		if err := emitSeq(n.Then, m, cp); err != nil {
			return err
		}
		m.Goto(endL)

		m.Mark(elseL)
		if err := emitSeq(n.Else, m, cp); err != nil {
			return err
		}
		m.Mark(endL)
		return nil
	}

	endL := m.NewLabel()
	m.Ifeq(endL)
	if err := emitSeq(n.Then, m, cp); err != nil {
		return err
	}
	m.Mark(endL)
	return nil
}

// emitMain generates:
//
//	public static void main(String[] args) {
//	    ExecStack s = new ExecStack();
//	    for (int i = 0; i < args.length; i++) {
//	        s.push(Double.parseDouble(args[i]));
//	    }
//	    run(s);
//	    if (s.size() > 0) System.out.println(s.pop());
//	    else System.out.println("Stack empty");
//	}
func (e *ClassEmitter) emitMain(b *classfile.Builder) {
	cp := b.Pool()
	m := b.NewMethod(classfile.AccPublic|classfile.AccStatic, "main", "([Ljava/lang/String;)V",
		[]classfile.VerificationType{classfile.Object(cp.Class("[Ljava/lang/String;"))})

	// ExecStack s = new ExecStack();   (slot 1)
	m.New(cp, ExecStackClass)
	m.Dup()
	m.InvokeSpecial(cp, ExecStackClass, "<init>", "()V")
	m.AStore(1)
	m.DeclareLocal(classfile.Object(cp.Class(ExecStackClass)))

	// int i = 0;   (slot 2)
	m.IConst0()
	m.IStore(2)
	m.DeclareLocal(classfile.Integer)

	loopStart := m.NewLabel()
	loopEnd := m.NewLabel()
	body := m.NewLabel()

	m.Mark(loopStart)
	m.ILoad(2)
	m.ALoad(0)
	m.ArrayLength()
	m.IfIcmplt(body)
	m.Goto(loopEnd)

	// s.push(Double.parseDouble(args[i]));
	m.Mark(body)
	m.ALoad(1)
	m.ALoad(0)
	m.ILoad(2)
	m.AALoad()
	m.InvokeStatic(cp, "java/lang/Double", "parseDouble", "(Ljava/lang/String;)D")
	m.InvokeVirtual(cp, ExecStackClass, "push", "(D)V")

	m.Iinc(2, 1)
	m.Goto(loopStart)

	m.Mark(loopEnd)

	// run(s);
	m.ALoad(1)
	m.InvokeStatic(cp, e.internalName, "run", RunDescriptor)

	// if (s.size() > 0) println(s.pop()) else println("Stack empty")
	hasItems := m.NewLabel()
	done := m.NewLabel()

	m.ALoad(1)
	m.InvokeVirtual(cp, ExecStackClass, "size", "()I")
	m.Ifgt(hasItems)

	m.GetStatic(cp, "java/lang/System", "out", "Ljava/io/PrintStream;")
	m.LdcString(cp, "Stack empty")
	m.InvokeVirtual(cp, "java/io/PrintStream", "println", "(Ljava/lang/String;)V")
	m.Goto(done)

	m.Mark(hasItems)
	m.GetStatic(cp, "java/lang/System", "out", "Ljava/io/PrintStream;")
	m.ALoad(1)
	m.InvokeVirtual(cp, ExecStackClass, "pop", "()D")
	m.InvokeVirtual(cp, "java/io/PrintStream", "println", "(D)V")

	m.Mark(done)
	m.Return()
}
