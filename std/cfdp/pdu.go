package cfdp

import (
	"fmt"

	"github.com/spacepackets-go/spacepackets/std/cfdp/checksum"
)

// Body is one of the PDU bodies: *Metadata, *FileData, *Eof, *Finished,
// *Ack, *Nak, *Prompt or *KeepAlive.
//
// The body octets are the PDU data field without the CRC. For file
// directives they start with the directive code.
type Body interface {
	PduType() PduType
	// Direction is the direction bit the body is sent with.
	Direction() Direction
	PackBody(cfg PduConfig) ([]byte, error)

	isBody()
}

// DirectiveBody is a Body of a file directive PDU.
type DirectiveBody interface {
	Body
	DirectiveCode() DirectiveCode
}

// Pdu is a decoded PDU.
type Pdu struct {
	Header PduHeader
	Body   Body
}

func (p Pdu) TransactionId() TransactionId {
	return p.Header.Config.TransactionId()
}

// Pack encodes the header, the body and, when configured, the CRC-16.
// The direction bit and the segment metadata flag are taken from the body.
func Pack(cfg PduConfig, body Body) ([]byte, error) {
	if body == nil {
		return nil, errParam("nil PDU body")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := body.PackBody(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Direction = body.Direction()
	hdr := PduHeader{
		Config:  cfg,
		PduType: body.PduType(),
	}
	if fd, ok := body.(*FileData); ok && fd.SegmentMetadata.IsSet() {
		hdr.SegmentMetadata = SegmentMetadataPresent
	}
	dataLen := len(b) + cfg.CrcLen()
	if dataLen > 0xffff {
		return nil, &ValueTooLargeError{Value: uint64(dataLen), Width: 2}
	}
	hdr.DataFieldLen = uint16(dataLen)

	out, err := hdr.AppendTo(make([]byte, 0, hdr.PduLen()))
	if err != nil {
		return nil, err
	}
	out = append(out, b...)
	if cfg.Crc == CrcPresent {
		out = checksum.AppendCrc16(out)
	}
	return out, nil
}

// Unpack decodes one PDU from the start of buf, verifying the CRC-16 when
// the header announces one. Octets after the PDU are ignored.
func Unpack(buf []byte) (Pdu, error) {
	return unpack(buf, true)
}

// UnpackUnchecked is like Unpack but does not verify the CRC-16. It is meant
// for diagnostics on corrupted PDUs.
func UnpackUnchecked(buf []byte) (Pdu, error) {
	return unpack(buf, false)
}

func unpack(buf []byte, verify bool) (Pdu, error) {
	raw, err := framePdu(buf)
	if err != nil {
		return Pdu{}, err
	}
	// The CRC covers the whole PDU, so check it before trusting any field
	// other than the ones needed to locate it.
	crcLen := 0
	if raw[0]>>1&1 == 1 {
		crcLen = 2
		if verify {
			if exp, act, ok := checksum.VerifyCrc16(raw); !ok {
				return Pdu{}, &ChecksumMismatchError{Expected: exp, Actual: act}
			}
		}
	}
	hdr, n, err := UnpackHeader(raw)
	if err != nil {
		return Pdu{}, err
	}
	body, err := UnpackBody(hdr, raw[n:len(raw)-crcLen])
	if err != nil {
		return Pdu{}, err
	}
	return Pdu{Header: hdr, Body: body}, nil
}

// framePdu returns the octets of the PDU at the start of buf.
func framePdu(buf []byte) ([]byte, error) {
	f, err := readFixedHeader(buf)
	if err != nil {
		return nil, err
	}
	total := f.headerLen() + f.dataFieldLen
	if len(buf) < total {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLengthField, errShort(total, len(buf)))
	}
	if f.crc && f.dataFieldLen < 2 {
		return nil, errLength("data field of %d octets cannot hold a CRC", f.dataFieldLen)
	}
	return buf[:total], nil
}

// UnpackBody decodes body octets according to the header.
func UnpackBody(hdr PduHeader, body []byte) (Body, error) {
	if hdr.PduType == PduTypeFileData {
		return UnpackFileDataBody(hdr, body)
	}
	if len(body) < 1 {
		return nil, errShort(1, 0)
	}
	switch DirectiveCode(body[0]) {
	case DirectiveMetadata:
		return UnpackMetadataBody(hdr, body)
	case DirectiveEof:
		return UnpackEofBody(hdr, body)
	case DirectiveFinished:
		return UnpackFinishedBody(hdr, body)
	case DirectiveAck:
		return UnpackAckBody(hdr, body)
	case DirectiveNak:
		return UnpackNakBody(hdr, body)
	case DirectivePrompt:
		return UnpackPromptBody(hdr, body)
	case DirectiveKeepAlive:
		return UnpackKeepAliveBody(hdr, body)
	}
	return nil, &InvalidDirectiveError{Code: DirectiveCode(body[0])}
}

// PeekPduLen returns the total length of the PDU at the start of buf. Only
// the fixed header needs to be present.
func PeekPduLen(buf []byte) (int, error) {
	f, err := readFixedHeader(buf)
	if err != nil {
		return 0, err
	}
	return f.headerLen() + f.dataFieldLen, nil
}

func PeekPduType(buf []byte) (PduType, error) {
	if len(buf) < 1 {
		return 0, errShort(1, 0)
	}
	return PduType(buf[0] >> 4 & 1), nil
}

// PeekDirectiveCode returns the directive code of a file directive PDU.
func PeekDirectiveCode(buf []byte) (DirectiveCode, error) {
	f, err := readFixedHeader(buf)
	if err != nil {
		return 0, err
	}
	if PduType(buf[0]>>4&1) != PduTypeFileDirective {
		return 0, errParam("file data PDU has no directive code")
	}
	n := f.headerLen()
	if len(buf) < n+1 {
		return 0, errShort(n+1, len(buf))
	}
	return DirectiveCode(buf[n]), nil
}

// directiveParams checks the directive code and returns the octets after it.
func directiveParams(hdr PduHeader, body []byte, code DirectiveCode) ([]byte, error) {
	if hdr.PduType != PduTypeFileDirective {
		return nil, errParam("%s body in a file data PDU", code)
	}
	if len(body) < 1 {
		return nil, errShort(1, 0)
	}
	if c := DirectiveCode(body[0]); c != code {
		return nil, &InvalidDirectiveError{Code: c, Expected: code}
	}
	return body[1:], nil
}

func needLen(buf []byte, n int) error {
	if len(buf) < n {
		return errShort(n, len(buf))
	}
	return nil
}

func noTrailing(buf []byte, what string) error {
	if len(buf) != 0 {
		return errLength("%d trailing octets in %s", len(buf), what)
	}
	return nil
}
