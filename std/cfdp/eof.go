package cfdp

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/spacepackets-go/spacepackets/std/cfdp/checksum"
	"github.com/spacepackets-go/spacepackets/std/types/optional"
)

// FileChecksum is the 4-octet file checksum carried by EOF PDUs.
type FileChecksum [checksum.Size]byte

func FileChecksumFromUint32(v uint32) FileChecksum {
	var c FileChecksum
	binary.BigEndian.PutUint32(c[:], v)
	return c
}

func FileChecksumFromBytes(b []byte) (FileChecksum, error) {
	if len(b) < checksum.Size {
		return FileChecksum{}, errShort(checksum.Size, len(b))
	}
	if len(b) > checksum.Size {
		return FileChecksum{}, &ValueTooLongError{Len: len(b), Max: checksum.Size}
	}
	return FileChecksum(b), nil
}

func (c FileChecksum) Uint32() uint32 {
	return binary.BigEndian.Uint32(c[:])
}

func (c FileChecksum) String() string {
	return hex.EncodeToString(c[:])
}

// Eof ends the file data of a transaction. A fault location may only be
// given with a condition code other than NoError.
type Eof struct {
	ConditionCode ConditionCode
	FileChecksum  FileChecksum
	FileSize      uint64
	FaultLocation optional.Optional[UintField]
}

func (*Eof) isBody()                      {}
func (*Eof) PduType() PduType             { return PduTypeFileDirective }
func (*Eof) Direction() Direction         { return TowardReceiver }
func (*Eof) DirectiveCode() DirectiveCode { return DirectiveEof }

func (e *Eof) PackBody(cfg PduConfig) ([]byte, error) {
	if err := checkCondition(e.ConditionCode); err != nil {
		return nil, err
	}
	b := make([]byte, 0, 2+checksum.Size+cfg.LargeFile.FssWidth()+10)
	b = append(b, byte(DirectiveEof), byte(e.ConditionCode)<<4)
	b = append(b, e.FileChecksum[:]...)
	b, err := appendFss(b, e.FileSize, cfg.LargeFile)
	if err != nil {
		return nil, err
	}
	if loc, ok := e.FaultLocation.Get(); ok {
		if e.ConditionCode == NoError {
			return nil, errParam("fault location with condition code %s", e.ConditionCode)
		}
		return appendFaultLocation(b, loc)
	}
	return b, nil
}

func UnpackEofBody(hdr PduHeader, body []byte) (*Eof, error) {
	buf, err := directiveParams(hdr, body, DirectiveEof)
	if err != nil {
		return nil, err
	}
	if err := needLen(buf, 1+checksum.Size); err != nil {
		return nil, err
	}
	e := &Eof{}
	if e.ConditionCode, err = conditionFromNibble(buf[0] >> 4); err != nil {
		return nil, err
	}
	e.FileChecksum = FileChecksum(buf[1 : 1+checksum.Size])
	buf = buf[1+checksum.Size:]
	if e.FileSize, err = readFss(buf, hdr.Config.LargeFile); err != nil {
		return nil, err
	}
	buf = buf[hdr.Config.LargeFile.FssWidth():]
	if len(buf) == 0 {
		return e, nil
	}
	if e.ConditionCode == NoError {
		return nil, errLength("%d trailing octets in EOF without fault", len(buf))
	}
	loc, n, err := unpackFaultLocation(buf)
	if err != nil {
		return nil, err
	}
	if err := noTrailing(buf[n:], "EOF"); err != nil {
		return nil, err
	}
	e.FaultLocation = optional.Some(loc)
	return e, nil
}

func appendFaultLocation(b []byte, loc UintField) ([]byte, error) {
	tlv, err := NewEntityIdTlv(loc)
	if err != nil {
		return nil, err
	}
	return tlv.AppendTo(b)
}

func unpackFaultLocation(buf []byte) (UintField, int, error) {
	tlv, n, err := UnpackTlv(buf)
	if err != nil {
		return UintField{}, 0, err
	}
	loc, err := EntityIdFromTlv(tlv)
	if err != nil {
		return UintField{}, 0, err
	}
	return loc, n, nil
}
