package classfile

import (
	"fmt"
	"sort"
)

// Method access flags.
const (
	AccPublic uint16 = 0x0001
	AccStatic uint16 = 0x0008
	AccSuper  uint16 = 0x0020
)

// Opcodes used by the emitted methods (JVMS §6.5).
const (
	opIconst0      = 0x03
	opDconst0      = 0x0e
	opLdc          = 0x12
	opLdcW         = 0x13
	opLdc2W        = 0x14
	opIload        = 0x15
	opAload        = 0x19
	opIload0       = 0x1a
	opAload0       = 0x2a
	opAaload       = 0x32
	opIstore       = 0x36
	opAstore       = 0x3a
	opIstore0      = 0x3b
	opAstore0      = 0x4b
	opDup          = 0x59
	opIinc         = 0x84
	opDcmpl        = 0x97
	opIfeq         = 0x99
	opIfgt         = 0x9d
	opIfIcmplt     = 0xa1
	opGoto         = 0xa7
	opReturn       = 0xb1
	opGetstatic    = 0xb2
	opInvokevirt   = 0xb6
	opInvokespec   = 0xb7
	opInvokestatic = 0xb8
	opNew          = 0xbb
	opArraylength  = 0xbe
)

// VerificationType is a verification_type_info entry for stack map frames.
// Only the categories the emitter produces are modeled.
type VerificationType struct {
	tag      uint8
	classIdx uint16
}

// Integer is the verification type of an int local.
var Integer = VerificationType{tag: 1}

// Object returns the verification type of a reference whose class is
// already in the pool.
func Object(classIdx uint16) VerificationType {
	return VerificationType{tag: 7, classIdx: classIdx}
}

func (v VerificationType) slots() int {
	// Long (4) and Double (3) are category-2 types.
	if v.tag == 3 || v.tag == 4 {
		return 2
	}
	return 1
}

func (v VerificationType) writeTo(w *writer) {
	w.u1(v.tag)
	if v.tag == 7 {
		w.u2(v.classIdx)
	}
}

// Label marks a bytecode position that jumps can target. Forward references
// are patched once the label is marked.
type Label struct {
	offset int
	marked bool
	used   bool
	locals []VerificationType
}

type fixup struct {
	operandAt int // offset of the u2 branch operand
	opcodeAt  int // offset of the branch opcode the jump is relative to
	target    *Label
}

// MethodBuilder assembles the Code attribute of one method. It tracks the
// simulated operand stack depth for max_stack and records a stack map frame
// for every jump target, as required since class file version 50.
//
// The builder relies on an invariant of the emitted code shapes: every jump
// target is reached with an empty operand stack.
type MethodBuilder struct {
	access  uint16
	nameIdx uint16
	descIdx uint16

	code     writer
	fixups   []fixup
	labels   []*Label
	initial  []VerificationType
	locals   []VerificationType
	depth    int
	maxDepth int
}

// push adjusts the simulated operand depth by delta slots.
func (m *MethodBuilder) push(delta int) {
	m.depth += delta
	if m.depth > m.maxDepth {
		m.maxDepth = m.depth
	}
	if m.depth < 0 {
		panic("classfile: operand stack underflow in emitted code")
	}
}

// NewLabel creates an unmarked label owned by this method.
func (m *MethodBuilder) NewLabel() *Label {
	l := &Label{}
	m.labels = append(m.labels, l)
	return l
}

// Mark pins the label to the current bytecode offset and snapshots the
// declared locals for its stack map frame.
func (m *MethodBuilder) Mark(l *Label) {
	if l.marked {
		panic("classfile: label marked twice")
	}
	l.marked = true
	l.offset = len(m.code.buf)
	l.locals = append([]VerificationType(nil), m.locals...)
	m.depth = 0
}

// DeclareLocal appends a local variable slot, extending the frame locals of
// labels marked afterwards.
func (m *MethodBuilder) DeclareLocal(v VerificationType) {
	m.locals = append(m.locals, v)
}

// Jump emits a conditional or unconditional branch to the given label.
func (m *MethodBuilder) jump(opcode uint8, delta int, target *Label) {
	target.used = true
	opcodeAt := len(m.code.buf)
	m.code.u1(opcode)
	if target.marked {
		m.code.u2(uint16(int16(target.offset - opcodeAt)))
	} else {
		m.fixups = append(m.fixups, fixup{
			operandAt: len(m.code.buf),
			opcodeAt:  opcodeAt,
			target:    target,
		})
		m.code.u2(0)
	}
	m.push(delta)
}

// Goto emits an unconditional jump.
func (m *MethodBuilder) Goto(target *Label) { m.jump(opGoto, 0, target) }

// Ifeq pops an int and jumps when it is zero.
func (m *MethodBuilder) Ifeq(target *Label) { m.jump(opIfeq, -1, target) }

// Ifgt pops an int and jumps when it is greater than zero.
func (m *MethodBuilder) Ifgt(target *Label) { m.jump(opIfgt, -1, target) }

// IfIcmplt pops two ints and jumps when the first is less than the second.
func (m *MethodBuilder) IfIcmplt(target *Label) { m.jump(opIfIcmplt, -2, target) }

// ALoad loads a reference from a local variable.
func (m *MethodBuilder) ALoad(slot int) { m.load(opAload0, opAload, slot, 1) }

// ILoad loads an int from a local variable.
func (m *MethodBuilder) ILoad(slot int) { m.load(opIload0, opIload, slot, 1) }

// AStore stores a reference into a local variable.
func (m *MethodBuilder) AStore(slot int) { m.load(opAstore0, opAstore, slot, -1) }

// IStore stores an int into a local variable.
func (m *MethodBuilder) IStore(slot int) { m.load(opIstore0, opIstore, slot, -1) }

func (m *MethodBuilder) load(shortBase, generic uint8, slot, delta int) {
	if slot >= 0 && slot <= 3 {
		m.code.u1(shortBase + uint8(slot))
	} else {
		m.code.u1(generic)
		m.code.u1(uint8(slot))
	}
	m.push(delta)
}

// IConst0 pushes the int constant 0.
func (m *MethodBuilder) IConst0() {
	m.code.u1(opIconst0)
	m.push(1)
}

// DConst0 pushes the double constant 0.0.
func (m *MethodBuilder) DConst0() {
	m.code.u1(opDconst0)
	m.push(2)
}

// Dcmpl compares two doubles, pushing -1 when either operand is NaN.
func (m *MethodBuilder) Dcmpl() {
	m.code.u1(opDcmpl)
	m.push(-3)
}

// Iinc increments a local int by the given amount.
func (m *MethodBuilder) Iinc(slot int, by int8) {
	m.code.u1(opIinc)
	m.code.u1(uint8(slot))
	m.code.u1(uint8(by))
}

// ArrayLength replaces an array reference with its length.
func (m *MethodBuilder) ArrayLength() {
	m.code.u1(opArraylength)
}

// AALoad pops an index and an array reference and pushes the element.
func (m *MethodBuilder) AALoad() {
	m.code.u1(opAaload)
	m.push(-1)
}

// LdcDouble loads a double constant through the pool (always ldc2_w).
func (m *MethodBuilder) LdcDouble(cp *ConstantPool, v float64) {
	m.code.u1(opLdc2W)
	m.code.u2(cp.Double(v))
	m.push(2)
}

// LdcString loads a string constant, widening to ldc_w past index 255.
func (m *MethodBuilder) LdcString(cp *ConstantPool, s string) {
	idx := cp.String(s)
	if idx <= 0xff {
		m.code.u1(opLdc)
		m.code.u1(uint8(idx))
	} else {
		m.code.u1(opLdcW)
		m.code.u2(idx)
	}
	m.push(1)
}

// New allocates an instance of the named class.
func (m *MethodBuilder) New(cp *ConstantPool, class string) {
	m.code.u1(opNew)
	m.code.u2(cp.Class(class))
	m.push(1)
}

// Dup duplicates the top operand.
func (m *MethodBuilder) Dup() {
	m.code.u1(opDup)
	m.push(1)
}

// Return emits a void return.
func (m *MethodBuilder) Return() {
	m.code.u1(opReturn)
}

// GetStatic pushes a static field value.
func (m *MethodBuilder) GetStatic(cp *ConstantPool, class, name, desc string) {
	m.code.u1(opGetstatic)
	m.code.u2(cp.Fieldref(class, name, desc))
	m.push(typeSlots(desc))
}

// InvokeVirtual calls an instance method.
func (m *MethodBuilder) InvokeVirtual(cp *ConstantPool, class, name, desc string) {
	m.invoke(opInvokevirt, cp, class, name, desc, 1)
}

// InvokeSpecial calls a constructor or superclass method.
func (m *MethodBuilder) InvokeSpecial(cp *ConstantPool, class, name, desc string) {
	m.invoke(opInvokespec, cp, class, name, desc, 1)
}

// InvokeStatic calls a static method.
func (m *MethodBuilder) InvokeStatic(cp *ConstantPool, class, name, desc string) {
	m.invoke(opInvokestatic, cp, class, name, desc, 0)
}

func (m *MethodBuilder) invoke(opcode uint8, cp *ConstantPool, class, name, desc string, receiver int) {
	m.code.u1(opcode)
	m.code.u2(cp.Methodref(class, name, desc))
	args, ret := descriptorSlots(desc)
	m.push(ret - args - receiver)
}

// typeSlots returns the operand slot width of a field descriptor.
func typeSlots(desc string) int {
	switch desc[0] {
	case 'V':
		return 0
	case 'D', 'J':
		return 2
	default:
		return 1
	}
}

// descriptorSlots returns the operand slot counts of a method descriptor's
// parameters and return type.
func descriptorSlots(desc string) (args, ret int) {
	i := 1 // skip '('
	for desc[i] != ')' {
		switch desc[i] {
		case 'D', 'J':
			args += 2
			i++
		case 'L':
			args++
			for desc[i] != ';' {
				i++
			}
			i++
		case '[':
			args++
			for desc[i] == '[' {
				i++
			}
			if desc[i] == 'L' {
				for desc[i] != ';' {
					i++
				}
			}
			i++
		default:
			args++
			i++
		}
	}
	return args, typeSlots(desc[i+1:])
}

// finish patches forward jumps and serializes the method_info structure.
func (m *MethodBuilder) finish(cp *ConstantPool, w *writer) error {
	for _, f := range m.fixups {
		if !f.target.marked {
			return fmt.Errorf("classfile: jump to unmarked label at offset %d", f.opcodeAt)
		}
		rel := f.target.offset - f.opcodeAt
		m.code.buf[f.operandAt] = byte(rel >> 8)
		m.code.buf[f.operandAt+1] = byte(rel)
	}

	frames := m.stackMapFrames()

	maxLocals := 0
	for _, l := range m.locals {
		maxLocals += l.slots()
	}

	var attrs writer
	attrCount := uint16(0)
	if len(frames.buf) > 0 {
		attrCount = 1
		attrs.u2(cp.Utf8("StackMapTable"))
		attrs.u4(uint32(len(frames.buf)))
		attrs.bytes(frames.buf)
	}

	var code writer
	code.u2(uint16(m.maxDepth))
	code.u2(uint16(maxLocals))
	code.u4(uint32(len(m.code.buf)))
	code.bytes(m.code.buf)
	code.u2(0) // exception_table_length
	code.u2(attrCount)
	code.bytes(attrs.buf)

	w.u2(m.access)
	w.u2(m.nameIdx)
	w.u2(m.descIdx)
	w.u2(1) // one attribute: Code
	w.u2(cp.Utf8("Code"))
	w.u4(uint32(len(code.buf)))
	w.bytes(code.buf)
	return nil
}

// stackMapFrames encodes one frame per distinct jump-target offset. All
// targets carry an empty operand stack, so frames differ only in locals:
// same_frame when unchanged, append_frame when up to three were added,
// full_frame otherwise.
func (m *MethodBuilder) stackMapFrames() writer {
	var targets []*Label
	for _, l := range m.labels {
		if l.marked && l.used {
			targets = append(targets, l)
		}
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].offset < targets[j].offset })

	var out writer
	var entries writer
	count := uint16(0)
	prevOffset := -1
	prevLocals := m.initial

	for _, t := range targets {
		if t.offset == prevOffset {
			continue // labels marked at the same position share one frame
		}
		var delta uint16
		if count == 0 {
			delta = uint16(t.offset)
		} else {
			delta = uint16(t.offset - prevOffset - 1)
		}

		added := len(t.locals) - len(prevLocals)
		switch {
		case added == 0 && delta < 64:
			entries.u1(uint8(delta)) // same_frame
		case added == 0:
			entries.u1(251) // same_frame_extended
			entries.u2(delta)
		case added >= 1 && added <= 3 && samePrefix(t.locals, prevLocals):
			entries.u1(uint8(251 + added)) // append_frame
			entries.u2(delta)
			for _, v := range t.locals[len(prevLocals):] {
				v.writeTo(&entries)
			}
		default:
			entries.u1(255) // full_frame
			entries.u2(delta)
			entries.u2(uint16(len(t.locals)))
			for _, v := range t.locals {
				v.writeTo(&entries)
			}
			entries.u2(0) // empty operand stack
		}

		count++
		prevOffset = t.offset
		prevLocals = t.locals
	}

	if count > 0 {
		out.u2(count)
		out.bytes(entries.buf)
	}
	return out
}

func samePrefix(longer, shorter []VerificationType) bool {
	for i, v := range shorter {
		if longer[i] != v {
			return false
		}
	}
	return true
}
