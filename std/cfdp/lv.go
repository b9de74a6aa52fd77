package cfdp

import "bytes"

// MaxLvLen is the largest value an LV or TLV length octet can describe.
const MaxLvLen = 255

// Lv is a length-value sub-record, mostly used for file names.
type Lv struct {
	Value []byte
}

func NewLv(v []byte) (Lv, error) {
	if len(v) > MaxLvLen {
		return Lv{}, &ValueTooLongError{Len: len(v), Max: MaxLvLen}
	}
	return Lv{Value: cloneBytes(v)}, nil
}

func LvFromString(s string) (Lv, error) {
	return NewLv([]byte(s))
}

func (l Lv) String() string {
	return string(l.Value)
}

func (l Lv) IsEmpty() bool {
	return len(l.Value) == 0
}

func (l Lv) PackedLen() int {
	return 1 + len(l.Value)
}

func (l Lv) Equal(o Lv) bool {
	return bytes.Equal(l.Value, o.Value)
}

func (l Lv) Pack() ([]byte, error) {
	return l.AppendTo(make([]byte, 0, l.PackedLen()))
}

// AppendTo appends the encoded LV to b.
func (l Lv) AppendTo(b []byte) ([]byte, error) {
	if len(l.Value) > MaxLvLen {
		return nil, &ValueTooLongError{Len: len(l.Value), Max: MaxLvLen}
	}
	b = append(b, byte(len(l.Value)))
	return append(b, l.Value...), nil
}

// UnpackLv decodes an LV from the start of buf and returns the number of
// octets consumed. The value is copied out of buf.
func UnpackLv(buf []byte) (Lv, int, error) {
	n, err := PeekLvLen(buf)
	if err != nil {
		return Lv{}, 0, err
	}
	if len(buf) < 1+n {
		return Lv{}, 0, errShort(1+n, len(buf))
	}
	return Lv{Value: cloneBytes(buf[1 : 1+n])}, 1 + n, nil
}

// PeekLvLen returns the value length announced by the LV at the start of buf.
func PeekLvLen(buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, errShort(1, 0)
	}
	return int(buf[0]), nil
}

// cloneBytes copies b, returning nil for empty input so decoded values
// compare equal to freshly built ones.
func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return bytes.Clone(b)
}
