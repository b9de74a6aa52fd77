package cfdp

import (
	"cmp"
	"encoding/binary"
	"fmt"
)

// UintField is an unsigned integer with a declared octet width of 1, 2, 4
// or 8. It is used for entity IDs and transaction sequence numbers.
//
// Equality and ordering consider the value only: the same entity ID encoded
// in two different widths is the same identifier.
type UintField struct {
	value uint64
	width int
}

// ValidWidth reports whether w is a supported field width.
func ValidWidth(w int) bool {
	return w == 1 || w == 2 || w == 4 || w == 8
}

func checkWidth(w int) error {
	if !ValidWidth(w) {
		return &InvalidWidthError{Width: w}
	}
	return nil
}

func fits(v uint64, w int) bool {
	return w >= 8 || v>>(8*uint(w)) == 0
}

// NewUintField creates a field, checking the width and that v fits in it.
func NewUintField(v uint64, w int) (UintField, error) {
	if err := checkWidth(w); err != nil {
		return UintField{}, err
	}
	if !fits(v, w) {
		return UintField{}, &ValueTooLargeError{Value: v, Width: w}
	}
	return UintField{value: v, width: w}, nil
}

func U8(v uint8) UintField   { return UintField{value: uint64(v), width: 1} }
func U16(v uint16) UintField { return UintField{value: uint64(v), width: 2} }
func U32(v uint32) UintField { return UintField{value: uint64(v), width: 4} }
func U64(v uint64) UintField { return UintField{value: v, width: 8} }

func (f UintField) Value() uint64 { return f.value }

// Width returns the declared width. The zero UintField has width 0 and is
// rejected by every encoder.
func (f UintField) Width() int { return f.width }

// Bytes returns the big-endian encoding of the field at its width.
func (f UintField) Bytes() []byte {
	b, err := EncodeUint(f.value, f.width)
	if err != nil {
		return nil
	}
	return b
}

// EncodeInto writes the field into buf and returns the number of octets written.
func (f UintField) EncodeInto(buf []byte) (int, error) {
	if err := checkWidth(f.width); err != nil {
		return 0, err
	}
	if len(buf) < f.width {
		return 0, errShort(f.width, len(buf))
	}
	putUint(buf, f.value, f.width)
	return f.width, nil
}

func (f UintField) Equal(o UintField) bool {
	return f.value == o.value
}

func (f UintField) Compare(o UintField) int {
	return cmp.Compare(f.value, o.value)
}

func (f UintField) String() string {
	return fmt.Sprintf("%d", f.value)
}

// WithWidth returns the same value declared with a different width.
func (f UintField) WithWidth(w int) (UintField, error) {
	return NewUintField(f.value, w)
}

// EncodeUint encodes v big-endian in exactly w octets.
func EncodeUint(v uint64, w int) ([]byte, error) {
	if err := checkWidth(w); err != nil {
		return nil, err
	}
	if !fits(v, w) {
		return nil, &ValueTooLargeError{Value: v, Width: w}
	}
	b := make([]byte, w)
	putUint(b, v, w)
	return b, nil
}

// DecodeUintField reads a w-octet big-endian field from the start of buf.
func DecodeUintField(buf []byte, w int) (UintField, error) {
	if err := checkWidth(w); err != nil {
		return UintField{}, err
	}
	if len(buf) < w {
		return UintField{}, errShort(w, len(buf))
	}
	return UintField{value: getUint(buf, w), width: w}, nil
}

func putUint(b []byte, v uint64, w int) {
	switch w {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(b, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(b, uint32(v))
	case 8:
		binary.BigEndian.PutUint64(b, v)
	}
}

func getUint(b []byte, w int) uint64 {
	switch w {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	}
	return 0
}

// appendFss appends a file size sensitive value for the given flag.
func appendFss(b []byte, v uint64, flag LargeFileFlag) ([]byte, error) {
	w := flag.FssWidth()
	if !fits(v, w) {
		return nil, &ValueTooLargeError{Value: v, Width: w}
	}
	var tmp [8]byte
	putUint(tmp[:], v, w)
	return append(b, tmp[:w]...), nil
}

func readFss(buf []byte, flag LargeFileFlag) (uint64, error) {
	w := flag.FssWidth()
	if len(buf) < w {
		return 0, errShort(w, len(buf))
	}
	return getUint(buf, w), nil
}
