package cfdp

import (
	"bytes"
	"fmt"
)

type TlvType uint8

const (
	TlvFilestoreRequest     TlvType = 0x00
	TlvFilestoreResponse    TlvType = 0x01
	TlvMessageToUser        TlvType = 0x02
	TlvFaultHandlerOverride TlvType = 0x04
	TlvFlowLabel            TlvType = 0x05
	TlvEntityId             TlvType = 0x06
)

var tlvNames = map[TlvType]string{
	TlvFilestoreRequest:     "filestore-request",
	TlvFilestoreResponse:    "filestore-response",
	TlvMessageToUser:        "message-to-user",
	TlvFaultHandlerOverride: "fault-handler-override",
	TlvFlowLabel:            "flow-label",
	TlvEntityId:             "entity-id",
}

func (t TlvType) String() string {
	if s, ok := tlvNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(t))
}

func (t TlvType) Valid() bool {
	_, ok := tlvNames[t]
	return ok
}

// ParseTlvType parses a name as printed by TlvType.String.
func ParseTlvType(s string) (TlvType, error) {
	for t, name := range tlvNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTlvType, s)
}

// Tlv is a type-length-value sub-record.
type Tlv struct {
	Type  TlvType
	Value []byte
}

func NewTlv(t TlvType, v []byte) (Tlv, error) {
	if !t.Valid() {
		return Tlv{}, &UnknownTlvTypeError{Type: uint8(t)}
	}
	if len(v) > MaxLvLen {
		return Tlv{}, &ValueTooLongError{Len: len(v), Max: MaxLvLen}
	}
	return Tlv{Type: t, Value: cloneBytes(v)}, nil
}

func (t Tlv) PackedLen() int {
	return 2 + len(t.Value)
}

func (t Tlv) Equal(o Tlv) bool {
	return t.Type == o.Type && bytes.Equal(t.Value, o.Value)
}

func (t Tlv) Pack() ([]byte, error) {
	return t.AppendTo(make([]byte, 0, t.PackedLen()))
}

func (t Tlv) AppendTo(b []byte) ([]byte, error) {
	if !t.Type.Valid() {
		return nil, &UnknownTlvTypeError{Type: uint8(t.Type)}
	}
	if len(t.Value) > MaxLvLen {
		return nil, &ValueTooLongError{Len: len(t.Value), Max: MaxLvLen}
	}
	b = append(b, byte(t.Type), byte(len(t.Value)))
	return append(b, t.Value...), nil
}

func (t Tlv) String() string {
	return fmt.Sprintf("%s[%x]", t.Type, t.Value)
}

// UnpackTlv decodes a TLV from the start of buf and returns the number of
// octets consumed. The value is copied out of buf.
func UnpackTlv(buf []byte) (Tlv, int, error) {
	n, err := PeekTlvLen(buf)
	if err != nil {
		return Tlv{}, 0, err
	}
	if len(buf) < 2+n {
		return Tlv{}, 0, errShort(2+n, len(buf))
	}
	typ := TlvType(buf[0])
	if !typ.Valid() {
		return Tlv{}, 0, &UnknownTlvTypeError{Type: buf[0]}
	}
	return Tlv{Type: typ, Value: cloneBytes(buf[2 : 2+n])}, 2 + n, nil
}

// PeekTlvLen returns the value length announced by the TLV at the start of buf.
func PeekTlvLen(buf []byte) (int, error) {
	if len(buf) < 2 {
		return 0, errShort(2, len(buf))
	}
	return int(buf[1]), nil
}

// unpackTlvs decodes TLVs until buf is exhausted.
func unpackTlvs(buf []byte) ([]Tlv, error) {
	var out []Tlv
	for len(buf) > 0 {
		tlv, n, err := UnpackTlv(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, tlv)
		buf = buf[n:]
	}
	return out, nil
}

func tlvsLen(tlvs []Tlv) int {
	n := 0
	for _, t := range tlvs {
		n += t.PackedLen()
	}
	return n
}

func expectTlv(t Tlv, typ TlvType) error {
	if t.Type != typ {
		return &UnexpectedTlvError{Found: t.Type, Expected: typ}
	}
	return nil
}
