package classfile

import (
	"fmt"
	"math"
)

// Constant pool tags (JVMS §4.4).
const (
	tagUtf8        = 1
	tagDouble      = 6
	tagClass       = 7
	tagString      = 8
	tagFieldref    = 9
	tagMethodref   = 10
	tagNameAndType = 12
)

// ConstantPool builds the class file constant pool. Entries are interned:
// adding the same constant twice returns the original index. Doubles occupy
// two slots, as the format demands.
type ConstantPool struct {
	entries writer
	index   map[string]uint16
	next    uint16
}

// NewConstantPool creates an empty pool. Index 0 is reserved by the format,
// so the first entry gets index 1.
func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		index: make(map[string]uint16),
		next:  1,
	}
}

func (cp *ConstantPool) intern(key string, slots uint16, write func()) uint16 {
	if idx, ok := cp.index[key]; ok {
		return idx
	}
	idx := cp.next
	cp.index[key] = idx
	cp.next += slots
	write()
	return idx
}

// Utf8 adds a CONSTANT_Utf8_info entry.
func (cp *ConstantPool) Utf8(s string) uint16 {
	return cp.intern("u:"+s, 1, func() {
		cp.entries.u1(tagUtf8)
		cp.entries.u2(uint16(len(s)))
		cp.entries.bytes([]byte(s))
	})
}

// Class adds a CONSTANT_Class_info entry for an internal name such as
// "java/lang/Object" or an array descriptor such as "[Ljava/lang/String;".
func (cp *ConstantPool) Class(internalName string) uint16 {
	nameIdx := cp.Utf8(internalName)
	return cp.intern("c:"+internalName, 1, func() {
		cp.entries.u1(tagClass)
		cp.entries.u2(nameIdx)
	})
}

// Double adds a CONSTANT_Double_info entry, which takes two pool slots.
// Values are interned by bit pattern, so -0.0 and 0.0 stay distinct.
func (cp *ConstantPool) Double(v float64) uint16 {
	bits := math.Float64bits(v)
	return cp.intern(fmt.Sprintf("d:%016x", bits), 2, func() {
		cp.entries.u1(tagDouble)
		cp.entries.u8(bits)
	})
}

// String adds a CONSTANT_String_info entry.
func (cp *ConstantPool) String(s string) uint16 {
	utf8Idx := cp.Utf8(s)
	return cp.intern("s:"+s, 1, func() {
		cp.entries.u1(tagString)
		cp.entries.u2(utf8Idx)
	})
}

// NameAndType adds a CONSTANT_NameAndType_info entry.
func (cp *ConstantPool) NameAndType(name, descriptor string) uint16 {
	nameIdx := cp.Utf8(name)
	descIdx := cp.Utf8(descriptor)
	return cp.intern("n:"+name+":"+descriptor, 1, func() {
		cp.entries.u1(tagNameAndType)
		cp.entries.u2(nameIdx)
		cp.entries.u2(descIdx)
	})
}

// Methodref adds a CONSTANT_Methodref_info entry.
func (cp *ConstantPool) Methodref(class, name, descriptor string) uint16 {
	classIdx := cp.Class(class)
	natIdx := cp.NameAndType(name, descriptor)
	return cp.intern("m:"+class+"."+name+":"+descriptor, 1, func() {
		cp.entries.u1(tagMethodref)
		cp.entries.u2(classIdx)
		cp.entries.u2(natIdx)
	})
}

// Fieldref adds a CONSTANT_Fieldref_info entry.
func (cp *ConstantPool) Fieldref(class, name, descriptor string) uint16 {
	classIdx := cp.Class(class)
	natIdx := cp.NameAndType(name, descriptor)
	return cp.intern("f:"+class+"."+name+":"+descriptor, 1, func() {
		cp.entries.u1(tagFieldref)
		cp.entries.u2(classIdx)
		cp.entries.u2(natIdx)
	})
}

// Count returns the constant_pool_count value: the number of used slots
// plus one.
func (cp *ConstantPool) Count() uint16 {
	return cp.next
}

// writeTo serializes constant_pool_count followed by every entry.
func (cp *ConstantPool) writeTo(w *writer) {
	w.u2(cp.next)
	w.bytes(cp.entries.buf)
}
