package cfdp

import (
	"fmt"

	"github.com/spacepackets-go/spacepackets/std/types/optional"
)

// ReservedMarker starts the value of every reserved CFDP message.
const ReservedMarker = "cfdp"

const reservedHeaderLen = len(ReservedMarker) + 1

type ReservedMessageType uint8

const (
	ProxyPutRequest           ReservedMessageType = 0x00
	ProxyMessageToUser        ReservedMessageType = 0x01
	ProxyFilestoreRequest     ReservedMessageType = 0x02
	ProxyFaultHandlerOverride ReservedMessageType = 0x03
	ProxyTransmissionMode     ReservedMessageType = 0x04
	ProxyFlowLabel            ReservedMessageType = 0x05
	ProxySegmentationControl  ReservedMessageType = 0x06
	ProxyPutResponse          ReservedMessageType = 0x07
	ProxyFilestoreResponse    ReservedMessageType = 0x08
	ProxyPutCancel            ReservedMessageType = 0x09
	OriginatingTransactionId  ReservedMessageType = 0x0a
	ProxyClosureRequest       ReservedMessageType = 0x0b

	DirectoryListingRequest  ReservedMessageType = 0x10
	DirectoryListingResponse ReservedMessageType = 0x11
	// Not part of the standard: options for a directory listing request.
	DirectoryListingParameters ReservedMessageType = 0x15
)

var reservedNames = map[ReservedMessageType]string{
	ProxyPutRequest:            "proxy-put-request",
	ProxyMessageToUser:         "proxy-message-to-user",
	ProxyFilestoreRequest:      "proxy-filestore-request",
	ProxyFaultHandlerOverride:  "proxy-fault-handler-override",
	ProxyTransmissionMode:      "proxy-transmission-mode",
	ProxyFlowLabel:             "proxy-flow-label",
	ProxySegmentationControl:   "proxy-segmentation-control",
	ProxyPutResponse:           "proxy-put-response",
	ProxyFilestoreResponse:     "proxy-filestore-response",
	ProxyPutCancel:             "proxy-put-cancel",
	OriginatingTransactionId:   "originating-transaction-id",
	ProxyClosureRequest:        "proxy-closure-request",
	DirectoryListingRequest:    "directory-listing-request",
	DirectoryListingResponse:   "directory-listing-response",
	DirectoryListingParameters: "directory-listing-parameters",
}

func (t ReservedMessageType) String() string {
	if s, ok := reservedNames[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(t))
}

// IsProxyOperation reports whether t belongs to the proxy operations.
func (t ReservedMessageType) IsProxyOperation() bool {
	return t <= ProxyPutCancel || t == ProxyClosureRequest
}

func (t ReservedMessageType) IsDirectoryOperation() bool {
	return t == DirectoryListingRequest || t == DirectoryListingResponse || t == DirectoryListingParameters
}

// ReservedMessage is a read-only view of a message to user TLV carrying a
// reserved CFDP message. It shares the TLV's value.
type ReservedMessage struct {
	value []byte
}

// ParseReservedMessage returns the reserved message carried by t, or None
// when t is not a message to user or lacks the marker and type octet.
func ParseReservedMessage(t Tlv) optional.Optional[ReservedMessage] {
	if t.Type != TlvMessageToUser || len(t.Value) < reservedHeaderLen {
		return optional.None[ReservedMessage]()
	}
	if string(t.Value[:len(ReservedMarker)]) != ReservedMarker {
		return optional.None[ReservedMessage]()
	}
	return optional.Some(ReservedMessage{value: t.Value})
}

func (m ReservedMessage) Type() ReservedMessageType {
	return ReservedMessageType(m.value[len(ReservedMarker)])
}

// Params returns the octets after the message type.
func (m ReservedMessage) Params() []byte {
	return m.value[reservedHeaderLen:]
}

func (m ReservedMessage) IsProxyOperation() bool {
	return m.Type().IsProxyOperation()
}

func (m ReservedMessage) IsDirectoryOperation() bool {
	return m.Type().IsDirectoryOperation()
}

func (m ReservedMessage) IsOriginatingTransactionId() bool {
	return m.Type() == OriginatingTransactionId
}

// firstParam returns the first parameter octet of a message of type t.
func (m ReservedMessage) firstParam(t ReservedMessageType) (byte, bool) {
	if m.Type() != t || len(m.Params()) < 1 {
		return 0, false
	}
	return m.Params()[0], true
}

type ProxyPutRequestParams struct {
	DestEntityId   UintField
	SourceFileName Lv
	DestFileName   Lv
}

func (m ReservedMessage) ProxyPutRequest() optional.Optional[ProxyPutRequestParams] {
	none := optional.None[ProxyPutRequestParams]()
	if m.Type() != ProxyPutRequest {
		return none
	}
	lvs, ok := unpackLvs(m.Params(), 3)
	if !ok {
		return none
	}
	id, err := DecodeUintField(lvs[0].Value, len(lvs[0].Value))
	if err != nil {
		return none
	}
	return optional.Some(ProxyPutRequestParams{
		DestEntityId:   id,
		SourceFileName: lvs[1],
		DestFileName:   lvs[2],
	})
}

func (p ProxyPutRequestParams) Tlv() (Tlv, error) {
	if err := checkWidth(p.DestEntityId.width); err != nil {
		return Tlv{}, err
	}
	id := Lv{Value: p.DestEntityId.Bytes()}
	return newReservedTlvLvs(ProxyPutRequest, nil, id, p.SourceFileName, p.DestFileName)
}

type ProxyPutResponseParams struct {
	ConditionCode ConditionCode
	DeliveryCode  DeliveryCode
	FileStatus    FileStatus
}

func (m ReservedMessage) ProxyPutResponse() optional.Optional[ProxyPutResponseParams] {
	b, ok := m.firstParam(ProxyPutResponse)
	if !ok {
		return optional.None[ProxyPutResponseParams]()
	}
	cc, err := conditionFromNibble(b >> 4)
	if err != nil {
		return optional.None[ProxyPutResponseParams]()
	}
	return optional.Some(ProxyPutResponseParams{
		ConditionCode: cc,
		DeliveryCode:  DeliveryCode(b >> 2 & 1),
		FileStatus:    FileStatus(b & 0b11),
	})
}

func (p ProxyPutResponseParams) Tlv() (Tlv, error) {
	if err := checkCondition(p.ConditionCode); err != nil {
		return Tlv{}, err
	}
	b := byte(p.ConditionCode)<<4 | byte(p.DeliveryCode&1)<<2 | byte(p.FileStatus&0b11)
	return NewReservedMessageTlv(ProxyPutResponse, []byte{b})
}

func (m ReservedMessage) ProxyClosureRequested() optional.Optional[bool] {
	b, ok := m.firstParam(ProxyClosureRequest)
	if !ok {
		return optional.None[bool]()
	}
	return optional.Some(b&1 == 1)
}

func (m ReservedMessage) ProxyTransmissionMode() optional.Optional[TransmissionMode] {
	b, ok := m.firstParam(ProxyTransmissionMode)
	if !ok {
		return optional.None[TransmissionMode]()
	}
	return optional.Some(TransmissionMode(b & 1))
}

func (m ReservedMessage) OriginatingTransactionId() optional.Optional[TransactionId] {
	none := optional.None[TransactionId]()
	b, ok := m.firstParam(OriginatingTransactionId)
	if !ok {
		return none
	}
	sw, qw := int(b>>4&0x07)+1, int(b&0x07)+1
	params := m.Params()[1:]
	src, err := DecodeUintField(params, sw)
	if err != nil {
		return none
	}
	seq, err := DecodeUintField(params[sw:], qw)
	if err != nil {
		return none
	}
	return optional.Some(TransactionId{SourceId: src, SeqNum: seq})
}

// DirectoryParams names the directory to list and the file receiving the
// listing.
type DirectoryParams struct {
	DirPath     Lv
	DirFileName Lv
}

func (m ReservedMessage) DirectoryListingRequest() optional.Optional[DirectoryParams] {
	if m.Type() != DirectoryListingRequest {
		return optional.None[DirectoryParams]()
	}
	lvs, ok := unpackLvs(m.Params(), 2)
	if !ok {
		return optional.None[DirectoryParams]()
	}
	return optional.Some(DirectoryParams{DirPath: lvs[0], DirFileName: lvs[1]})
}

func (p DirectoryParams) ListingRequestTlv() (Tlv, error) {
	return newReservedTlvLvs(DirectoryListingRequest, nil, p.DirPath, p.DirFileName)
}

type DirectoryListingResult struct {
	Success bool
	Params  DirectoryParams
}

func (m ReservedMessage) DirectoryListingResponse() optional.Optional[DirectoryListingResult] {
	b, ok := m.firstParam(DirectoryListingResponse)
	if !ok {
		return optional.None[DirectoryListingResult]()
	}
	lvs, ok := unpackLvs(m.Params()[1:], 2)
	if !ok {
		return optional.None[DirectoryListingResult]()
	}
	return optional.Some(DirectoryListingResult{
		Success: b>>7 == 1,
		Params:  DirectoryParams{DirPath: lvs[0], DirFileName: lvs[1]},
	})
}

func (r DirectoryListingResult) Tlv() (Tlv, error) {
	var b byte
	if r.Success {
		b = 1 << 7
	}
	return newReservedTlvLvs(DirectoryListingResponse, []byte{b}, r.Params.DirPath, r.Params.DirFileName)
}

type DirectoryListingOptions struct {
	Recursive bool
	All       bool
}

func (m ReservedMessage) DirectoryListingOptions() optional.Optional[DirectoryListingOptions] {
	b, ok := m.firstParam(DirectoryListingParameters)
	if !ok {
		return optional.None[DirectoryListingOptions]()
	}
	return optional.Some(DirectoryListingOptions{Recursive: b>>1&1 == 1, All: b&1 == 1})
}

func (o DirectoryListingOptions) Tlv() Tlv {
	var b byte
	if o.Recursive {
		b |= 1 << 1
	}
	if o.All {
		b |= 1
	}
	return reservedTlv(DirectoryListingParameters, []byte{b})
}

// NewReservedMessageTlv builds a message to user TLV carrying a reserved
// message with the given parameter octets.
func NewReservedMessageTlv(t ReservedMessageType, params []byte) (Tlv, error) {
	if reservedHeaderLen+len(params) > MaxLvLen {
		return Tlv{}, &ValueTooLongError{Len: reservedHeaderLen + len(params), Max: MaxLvLen}
	}
	return reservedTlv(t, params), nil
}

func NewProxyPutCancel() Tlv {
	return reservedTlv(ProxyPutCancel, nil)
}

func NewProxyClosureRequest(closure bool) Tlv {
	var b byte
	if closure {
		b = 1
	}
	return reservedTlv(ProxyClosureRequest, []byte{b})
}

func NewProxyTransmissionMode(mode TransmissionMode) Tlv {
	return reservedTlv(ProxyTransmissionMode, []byte{byte(mode & 1)})
}

func NewOriginatingTransactionId(id TransactionId) (Tlv, error) {
	if err := checkWidth(id.SourceId.width); err != nil {
		return Tlv{}, err
	}
	if err := checkWidth(id.SeqNum.width); err != nil {
		return Tlv{}, err
	}
	params := []byte{byte(id.SourceId.width-1)<<4 | byte(id.SeqNum.width-1)}
	params = append(params, id.SourceId.Bytes()...)
	params = append(params, id.SeqNum.Bytes()...)
	return reservedTlv(OriginatingTransactionId, params), nil
}

func reservedTlv(t ReservedMessageType, params []byte) Tlv {
	v := make([]byte, 0, reservedHeaderLen+len(params))
	v = append(v, ReservedMarker...)
	v = append(v, byte(t))
	return Tlv{Type: TlvMessageToUser, Value: append(v, params...)}
}

func newReservedTlvLvs(t ReservedMessageType, prefix []byte, lvs ...Lv) (Tlv, error) {
	params := append([]byte(nil), prefix...)
	var err error
	for _, lv := range lvs {
		if params, err = lv.AppendTo(params); err != nil {
			return Tlv{}, err
		}
	}
	return NewReservedMessageTlv(t, params)
}

func unpackLvs(buf []byte, count int) ([]Lv, bool) {
	lvs := make([]Lv, count)
	for i := range lvs {
		lv, n, err := UnpackLv(buf)
		if err != nil {
			return nil, false
		}
		lvs[i] = lv
		buf = buf[n:]
	}
	return lvs, true
}
