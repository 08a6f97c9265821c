// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package uasset

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Reader is a cursor over an in-memory byte buffer, the read-side analogue
// of the teacher's offset-indexed ReadUint32/ReadUint64 helpers, but
// sequential so the codec can walk the file the way the format wants it
// walked (header fields, then each table in its declared offset order).
type Reader struct {
	data []byte
	pos  int64
}

// NewReader wraps data for sequential little-endian decoding.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Pos returns the current read cursor.
func (r *Reader) Pos() int64 { return r.pos }

// Len returns the total buffer length.
func (r *Reader) Len() int64 { return int64(len(r.data)) }

// Seek repositions the cursor to an absolute offset.
func (r *Reader) Seek(offset int64) { r.pos = offset }

func (r *Reader) require(n int64) error {
	if r.pos < 0 || r.pos+n > int64(len(r.data)) {
		return newErr(KindIO, r.pos, "", "read of %d bytes exceeds buffer (len %d)", n, len(r.data))
	}
	return nil
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.require(int64(n)); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return b, nil
}

// U8 reads one byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool8 reads a one-byte boolean (non-zero is true).
func (r *Reader) Bool8() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

// U16 reads a little-endian uint16.
func (r *Reader) U16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32.
func (r *Reader) U32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// I64 reads a little-endian int64.
func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// F32 reads a little-endian float32.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	return decodeF32(v), err
}

// F64 reads a little-endian float64.
func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	return decodeF64(v), err
}

// Guid reads a raw 16-byte GUID.
func (r *Reader) Guid() (Guid, error) {
	b, err := r.Bytes(16)
	if err != nil {
		return Guid{}, err
	}
	var g Guid
	copy(g[:], b)
	return g, nil
}

// FString reads a length-prefixed string: i32 length, ASCII (length-1 bytes
// + NUL) if positive, UTF-16LE (-length shorts + NUL16) if negative, empty
// string if zero.
func (r *Reader) FString() (string, error) {
	n, err := r.I32()
	if err != nil {
		return "", err
	}
	switch {
	case n == 0:
		return "", nil
	case n > 0:
		b, err := r.Bytes(int(n))
		if err != nil {
			return "", err
		}
		if len(b) == 0 || b[len(b)-1] != 0 {
			return "", newErr(KindInvalidFile, r.pos, "fstring", "ascii fstring missing NUL terminator")
		}
		return string(b[:len(b)-1]), nil
	default:
		count := int(-n)
		b, err := r.Bytes(count * 2)
		if err != nil {
			return "", err
		}
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		out, err := dec.Bytes(b[:len(b)-2]) // drop trailing NUL16
		if err != nil {
			return "", &CodecError{Kind: KindInvalidFile, Offset: r.pos, Field: "fstring", Message: "utf16 decode failed", Cause: err}
		}
		return string(out), nil
	}
}

// OptionalFString reads a bool flag followed by an FString when the flag is
// true (the on-disk shape used by a handful of optional header fields).
func (r *Reader) OptionalFString() (string, bool, error) {
	has, err := r.Bool32()
	if err != nil || !has {
		return "", false, err
	}
	s, err := r.FString()
	return s, true, err
}

// Bool32 reads a 4-byte boolean, the common UE4 wire shape for bool fields
// outside BoolProperty tags.
func (r *Reader) Bool32() (bool, error) {
	v, err := r.U32()
	return v != 0, err
}

// ---- Writer ----

// Writer accumulates bytes for one of the two sink backends described in
// the design notes: a real ByteSink or a counting-only MeasuringSink. Both
// share this type; with the measure flag set, writes only advance a byte
// count and no buffer is kept.
type Writer struct {
	buf     []byte
	measure bool
	count   int64 // measure mode only: total bytes grown, never rewound
}

// NewByteSink returns a writer that keeps every byte written, for the real
// output stream.
func NewByteSink() *Writer { return &Writer{} }

// NewMeasuringSink returns a writer that only tracks length, used by the
// header-length pass in WritePackage to pre-compute the header's encoded
// size without allocating or copying the bytes themselves. Property bodies
// are not measured this way: writeProperty writes each body into a
// scratch ByteSink and copies it.
func NewMeasuringSink() *Writer { return &Writer{measure: true} }

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int64 {
	if w.measure {
		return w.count
	}
	return int64(len(w.buf))
}

// Bytes returns the accumulated buffer (empty for a measuring sink, which
// never allocates one).
func (w *Writer) Bytes() []byte { return w.buf }

// grow returns a slice to receive the next n bytes, or nil in measure mode
// (every measure-mode call site checks w.measure before dereferencing it).
func (w *Writer) grow(n int) []byte {
	if w.measure {
		w.count += int64(n)
		return nil
	}
	start := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	return w.buf[start:]
}

// Raw appends raw bytes.
func (w *Writer) Raw(b []byte) { w.grow(len(b)); if !w.measure { copy(w.buf[len(w.buf)-len(b):], b) } }

// U8 appends one byte.
func (w *Writer) U8(v uint8) { b := w.grow(1); if !w.measure { b[0] = v } }

// Bool8 appends a one-byte boolean.
func (w *Writer) Bool8(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// U16 appends a little-endian uint16.
func (w *Writer) U16(v uint16) {
	b := w.grow(2)
	if !w.measure {
		binary.LittleEndian.PutUint16(b, v)
	}
}

// U32 appends a little-endian uint32.
func (w *Writer) U32(v uint32) {
	b := w.grow(4)
	if !w.measure {
		binary.LittleEndian.PutUint32(b, v)
	}
}

// I32 appends a little-endian int32.
func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

// U64 appends a little-endian uint64.
func (w *Writer) U64(v uint64) {
	b := w.grow(8)
	if !w.measure {
		binary.LittleEndian.PutUint64(b, v)
	}
}

// I64 appends a little-endian int64.
func (w *Writer) I64(v int64) { w.U64(uint64(v)) }

// F32 appends a little-endian float32.
func (w *Writer) F32(v float32) { w.U32(encodeF32(v)) }

// F64 appends a little-endian float64.
func (w *Writer) F64(v float64) { w.U64(encodeF64(v)) }

// Guid appends a raw 16-byte GUID.
func (w *Writer) Guid(g Guid) { w.Raw(g[:]) }

// Bool32 appends a 4-byte boolean.
func (w *Writer) Bool32(v bool) {
	if v {
		w.U32(1)
	} else {
		w.U32(0)
	}
}

// FString appends a length-prefixed string. Strings representable in plain
// ASCII are written as the cheaper positive-length form; anything with a
// non-ASCII byte is written UTF-16LE, matching the teacher's preference for
// the narrow encoding wherever content permits it.
func (w *Writer) FString(s string) {
	if s == "" {
		w.I32(0)
		return
	}
	if isASCII(s) {
		w.I32(int32(len(s) + 1))
		w.Raw([]byte(s))
		w.U8(0)
		return
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		// Fall back to ASCII-lossy rather than fail a write on content the
		// encoder rejects; callers working with well-formed FNames never
		// hit this path.
		w.I32(int32(len(s) + 1))
		w.Raw([]byte(s))
		w.U8(0)
		return
	}
	count := len(b)/2 + 1
	w.I32(-int32(count))
	w.Raw(b)
	w.U16(0)
}

// OptionalFString writes the bool-flag + FString pair read by
// Reader.OptionalFString.
func (w *Writer) OptionalFString(s string, has bool) {
	w.Bool32(has)
	if has {
		w.FString(s)
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
