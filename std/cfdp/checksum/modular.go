package checksum

import "encoding/binary"

// ModularHash is the legacy CFDP modular checksum.
//
// File data is viewed as a sequence of 4-octet big-endian words aligned to
// file offset 0; the checksum is the sum of all words modulo 2^32. A partial
// final word is padded with zero octets.
type ModularHash struct {
	start  uint64
	offset uint64
	sum    uint32
}

// NewModular returns a modular checksum whose first written octet sits at
// the given file offset. Segments can be summed independently by their
// offsets and the results added together.
func NewModular(offset uint64) *ModularHash {
	return &ModularHash{start: offset, offset: offset}
}

func (m *ModularHash) Write(p []byte) (int, error) {
	for _, b := range p {
		shift := 8 * (3 - m.offset%4)
		m.sum += uint32(b) << shift
		m.offset++
	}
	return len(p), nil
}

func (m *ModularHash) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint32(b, m.sum)
}

func (m *ModularHash) Sum32() uint32 {
	return m.sum
}

func (m *ModularHash) Reset() {
	m.offset = m.start
	m.sum = 0
}

// Offset returns the file offset of the next octet to be written.
func (m *ModularHash) Offset() uint64 {
	return m.offset
}

func (m *ModularHash) Size() int      { return Size }
func (m *ModularHash) BlockSize() int { return 4 }
