// Package checksum implements the checksums used by CFDP.
//
// Two independent layers use checksums:
//
//   - The optional PDU integrity field, always CRC-16/CCITT-FALSE (Crc16).
//   - The file checksum carried in EOF PDUs, selected by the checksum type
//     announced in the Metadata PDU (Compute, New).
package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"strings"

	"github.com/snksoft/crc"
)

// Type is a checksum identifier from the SANA checksum type registry.
type Type uint8

const (
	Modular         Type = 0
	Crc32Proximity1 Type = 1
	Crc32C          Type = 2
	Crc32           Type = 3
	Null            Type = 15
)

// Size is the length of every file checksum in octets.
const Size = 4

var ErrUnsupported = errors.New("checksum: unsupported checksum type")

var (
	crc16Table  = crc.NewTable(crc.CCITT)
	castagnoli  = crc32.MakeTable(crc32.Castagnoli)
	typeStrings = map[Type]string{
		Modular:         "modular",
		Crc32Proximity1: "crc32-proximity1",
		Crc32C:          "crc32c",
		Crc32:           "crc32",
		Null:            "null",
	}
)

func (t Type) String() string {
	if s, ok := typeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// ParseType parses a checksum name as printed by Type.String.
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeStrings {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupported, s)
}

// Supported reports whether New can build a calculator for t.
func (t Type) Supported() bool {
	switch t {
	case Modular, Crc32C, Crc32, Null:
		return true
	}
	return false
}

// New returns a streaming calculator for the given checksum type.
// The Modular calculator assumes the first written octet is at file offset 0.
func New(t Type) (hash.Hash32, error) {
	switch t {
	case Modular:
		return NewModular(0), nil
	case Crc32:
		return crc32.NewIEEE(), nil
	case Crc32C:
		return crc32.New(castagnoli), nil
	case Null:
		return nullHash{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, t)
	}
}

// Compute returns the 4-octet big-endian checksum of data.
func Compute(t Type, data []byte) ([]byte, error) {
	h, err := New(t)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}

// Compute32 is like Compute but returns the checksum as an integer.
func Compute32(t Type, data []byte) (uint32, error) {
	h, err := New(t)
	if err != nil {
		return 0, err
	}
	h.Write(data)
	return h.Sum32(), nil
}

// Crc16 computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF, no reflection,
// no final xor), the PDU-level integrity checksum.
func Crc16(data []byte) uint16 {
	return uint16(crc16Table.CalculateCRC(data))
}

// AppendCrc16 appends the big-endian CRC-16 of b to b.
func AppendCrc16(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, Crc16(b))
}

// VerifyCrc16 checks that the last two octets of b are the CRC-16 of the rest.
// It returns the expected and the received value.
func VerifyCrc16(b []byte) (expected uint16, actual uint16, ok bool) {
	if len(b) < 2 {
		return 0, 0, false
	}
	n := len(b) - 2
	expected = Crc16(b[:n])
	actual = binary.BigEndian.Uint16(b[n:])
	return expected, actual, expected == actual
}

type nullHash struct{}

func (nullHash) Write(p []byte) (int, error) { return len(p), nil }
func (nullHash) Sum(b []byte) []byte         { return append(b, 0, 0, 0, 0) }
func (nullHash) Reset()                      {}
func (nullHash) Size() int                   { return Size }
func (nullHash) BlockSize() int              { return 1 }
func (nullHash) Sum32() uint32               { return 0 }

// Verify recomputes the checksum of data and compares it to expected.
func Verify(t Type, data []byte, expected []byte) (bool, error) {
	sum, err := Compute(t, data)
	if err != nil {
		return false, err
	}
	if len(expected) != Size {
		return false, nil
	}
	return [Size]byte(sum) == [Size]byte(expected), nil
}
