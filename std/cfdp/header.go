package cfdp

import (
	"encoding/binary"
	"fmt"
)

const (
	// FixedHeaderLen is the length of the fixed part of the PDU header.
	FixedHeaderLen = 4
	// MaxPduLen is the largest PDU a header can describe.
	MaxPduLen = FixedHeaderLen + 3*8 + 0xffff
)

// PduHeader is the header shared by all PDUs.
type PduHeader struct {
	Config          PduConfig
	PduType         PduType
	SegmentMetadata SegmentMetadataFlag
	// DataFieldLen counts the PDU data field including the CRC, if any.
	DataFieldLen uint16
}

func (h PduHeader) Len() int {
	return h.Config.HeaderLen()
}

// PduLen is the length of the whole PDU described by the header.
func (h PduHeader) PduLen() int {
	return h.Len() + int(h.DataFieldLen)
}

// BodyLen is the length of the data field without the CRC.
func (h PduHeader) BodyLen() int {
	return int(h.DataFieldLen) - h.Config.CrcLen()
}

func (h PduHeader) Pack() ([]byte, error) {
	return h.AppendTo(make([]byte, 0, h.Len()))
}

// AppendTo appends the encoded header to b.
//
//	byte 0: version(3) pdu_type(1) direction(1) mode(1) crc(1) large_file(1)
//	byte 1-2: data field length
//	byte 3: seg_ctrl(1) entity_len-1(3) seg_metadata(1) seq_len-1(3)
//	source ID, sequence number, destination ID
func (h PduHeader) AppendTo(b []byte) ([]byte, error) {
	c := h.Config
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if h.PduType > 1 || h.SegmentMetadata > 1 {
		return nil, errParam("header flag out of range")
	}
	ew, sw := c.EntityIdWidth(), c.TransactionSeqNum.width
	b = append(b,
		Version<<5|byte(h.PduType)<<4|byte(c.Direction)<<3|byte(c.TransmissionMode)<<2|byte(c.Crc)<<1|byte(c.LargeFile),
		byte(h.DataFieldLen>>8), byte(h.DataFieldLen),
		byte(c.SegmentationControl)<<7|byte(ew-1)<<4|byte(h.SegmentMetadata)<<3|byte(sw-1),
	)
	var tmp [8]byte
	putUint(tmp[:], c.SourceEntityId.value, ew)
	b = append(b, tmp[:ew]...)
	putUint(tmp[:], c.TransactionSeqNum.value, sw)
	b = append(b, tmp[:sw]...)
	putUint(tmp[:], c.DestEntityId.value, ew)
	return append(b, tmp[:ew]...), nil
}

type fixedHeader struct {
	crc          bool
	dataFieldLen int
	entityWidth  int
	seqWidth     int
}

func (f fixedHeader) headerLen() int {
	return FixedHeaderLen + 2*f.entityWidth + f.seqWidth
}

// readFixedHeader decodes what is needed to frame a PDU. The widths have to
// be known before any variable-length field can be located.
func readFixedHeader(buf []byte) (fixedHeader, error) {
	if len(buf) < FixedHeaderLen {
		return fixedHeader{}, errShort(FixedHeaderLen, len(buf))
	}
	f := fixedHeader{
		crc:          buf[0]>>1&1 == 1,
		dataFieldLen: int(binary.BigEndian.Uint16(buf[1:3])),
		entityWidth:  int(buf[3]>>4&0x07) + 1,
		seqWidth:     int(buf[3]&0x07) + 1,
	}
	if err := checkWidth(f.entityWidth); err != nil {
		return fixedHeader{}, err
	}
	if err := checkWidth(f.seqWidth); err != nil {
		return fixedHeader{}, err
	}
	return f, nil
}

// HeaderLenFromRaw returns the header length announced by the fixed header
// at the start of buf.
func HeaderLenFromRaw(buf []byte) (int, error) {
	f, err := readFixedHeader(buf)
	if err != nil {
		return 0, err
	}
	return f.headerLen(), nil
}

// UnpackHeader decodes a PDU header from the start of buf and returns the
// number of octets consumed.
func UnpackHeader(buf []byte) (PduHeader, int, error) {
	f, err := readFixedHeader(buf)
	if err != nil {
		return PduHeader{}, 0, err
	}
	if v := buf[0] >> 5; v != Version {
		return PduHeader{}, 0, &UnsupportedVersionError{Version: v}
	}
	n := f.headerLen()
	if len(buf) < n {
		return PduHeader{}, 0, fmt.Errorf("%w: %w", ErrInvalidLengthField, errShort(n, len(buf)))
	}
	ew, sw := f.entityWidth, f.seqWidth
	crc := CrcAbsent
	if f.crc {
		crc = CrcPresent
	}
	pos := FixedHeaderLen
	src := UintField{value: getUint(buf[pos:], ew), width: ew}
	pos += ew
	seq := UintField{value: getUint(buf[pos:], sw), width: sw}
	pos += sw
	dst := UintField{value: getUint(buf[pos:], ew), width: ew}

	h := PduHeader{
		Config: PduConfig{
			SourceEntityId:      src,
			DestEntityId:        dst,
			TransactionSeqNum:   seq,
			TransmissionMode:    TransmissionMode(buf[0] >> 2 & 1),
			LargeFile:           LargeFileFlag(buf[0] & 1),
			Crc:                 crc,
			Direction:           Direction(buf[0] >> 3 & 1),
			SegmentationControl: SegmentationControl(buf[3] >> 7),
		},
		PduType:         PduType(buf[0] >> 4 & 1),
		SegmentMetadata: SegmentMetadataFlag(buf[3] >> 3 & 1),
		DataFieldLen:    uint16(f.dataFieldLen),
	}
	if h.Config.Crc == CrcPresent && f.dataFieldLen < 2 {
		return PduHeader{}, 0, errLength("data field of %d octets cannot hold a CRC", f.dataFieldLen)
	}
	return h, n, nil
}
