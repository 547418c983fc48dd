// Package classfile assembles JVM class files byte by byte.
//
// It is a deliberately small builder covering exactly what the gorpl code
// generator emits: a constant pool, public methods with Code attributes,
// forward-patched branches and the StackMapTable frames mandatory since
// class file version 50. The layout follows the class file structure of
// JVMS §4; the produced bytes load unmodified in any Java 17+ VM.
package classfile

const (
	magic        = 0xCAFEBABE
	minorVersion = 0
	majorVersion = 61 // Java 17
)

// ObjectClass is the internal name of the implicit superclass.
const ObjectClass = "java/lang/Object"

// Builder assembles one class file.
type Builder struct {
	cp         *ConstantPool
	thisClass  uint16
	superClass uint16
	methods    []*MethodBuilder
}

// NewBuilder starts a public class with the given internal name (slashes,
// not dots) extending java/lang/Object.
func NewBuilder(internalName string) *Builder {
	cp := NewConstantPool()
	return &Builder{
		cp:         cp,
		thisClass:  cp.Class(internalName),
		superClass: cp.Class(ObjectClass),
	}
}

// Pool exposes the constant pool for instruction operands.
func (b *Builder) Pool() *ConstantPool {
	return b.cp
}

// NewMethod opens a method. initialLocals is the verification frame implied
// by the signature: the receiver (for instance methods) followed by the
// parameter types.
func (b *Builder) NewMethod(access uint16, name, descriptor string, initialLocals []VerificationType) *MethodBuilder {
	m := &MethodBuilder{
		access:  access,
		nameIdx: b.cp.Utf8(name),
		descIdx: b.cp.Utf8(descriptor),
		initial: append([]VerificationType(nil), initialLocals...),
		locals:  append([]VerificationType(nil), initialLocals...),
	}
	b.methods = append(b.methods, m)
	return m
}

// Bytes serializes the complete class file.
func (b *Builder) Bytes() ([]byte, error) {
	var body writer
	body.u2(AccPublic | AccSuper)
	body.u2(b.thisClass)
	body.u2(b.superClass)
	body.u2(0) // interfaces_count
	body.u2(0) // fields_count
	body.u2(uint16(len(b.methods)))
	for _, m := range b.methods {
		if err := m.finish(b.cp, &body); err != nil {
			return nil, err
		}
	}
	body.u2(0) // class attributes_count

	// The pool is serialized last so that method emission can keep adding
	// entries, but it precedes the rest of the file on the wire.
	var w writer
	w.u4(magic)
	w.u2(minorVersion)
	w.u2(majorVersion)
	b.cp.writeTo(&w)
	w.bytes(body.buf)
	return w.buf, nil
}
