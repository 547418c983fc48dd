package classfile

import "encoding/binary"

// writer accumulates big-endian class file bytes.
type writer struct {
	buf []byte
}

func (w *writer) u1(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u2(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *writer) u4(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

func (w *writer) u8(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *writer) bytes(b []byte) {
	w.buf = append(w.buf, b...)
}
