package cfdp

import "fmt"

// Version is the value of the 3-bit version field for CFDP version 2.
const Version uint8 = 0b001

type PduType uint8

const (
	PduTypeFileDirective PduType = 0
	PduTypeFileData      PduType = 1
)

func (t PduType) String() string {
	switch t {
	case PduTypeFileDirective:
		return "file-directive"
	case PduTypeFileData:
		return "file-data"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

type Direction uint8

const (
	TowardReceiver Direction = 0
	TowardSender   Direction = 1
)

func (d Direction) String() string {
	if d == TowardSender {
		return "toward-sender"
	}
	return "toward-receiver"
}

type TransmissionMode uint8

const (
	Acknowledged   TransmissionMode = 0
	Unacknowledged TransmissionMode = 1
)

func (m TransmissionMode) String() string {
	if m == Unacknowledged {
		return "unacknowledged"
	}
	return "acknowledged"
}

type CrcFlag uint8

const (
	CrcAbsent  CrcFlag = 0
	CrcPresent CrcFlag = 1
)

// LargeFileFlag selects 32-bit or 64-bit file size sensitive (FSS) fields.
type LargeFileFlag uint8

const (
	NormalFile LargeFileFlag = 0
	LargeFile  LargeFileFlag = 1
)

// FssWidth returns the octet width of file size sensitive fields.
func (f LargeFileFlag) FssWidth() int {
	if f == LargeFile {
		return 8
	}
	return 4
}

type SegmentationControl uint8

const (
	NoRecordBoundaries SegmentationControl = 0
	RecordBoundaries   SegmentationControl = 1
)

type SegmentMetadataFlag uint8

const (
	SegmentMetadataAbsent  SegmentMetadataFlag = 0
	SegmentMetadataPresent SegmentMetadataFlag = 1
)

type DirectiveCode uint8

const (
	DirectiveEof       DirectiveCode = 0x04
	DirectiveFinished  DirectiveCode = 0x05
	DirectiveAck       DirectiveCode = 0x06
	DirectiveMetadata  DirectiveCode = 0x07
	DirectiveNak       DirectiveCode = 0x08
	DirectivePrompt    DirectiveCode = 0x09
	DirectiveKeepAlive DirectiveCode = 0x0c
)

var directiveNames = map[DirectiveCode]string{
	DirectiveEof:       "EOF",
	DirectiveFinished:  "Finished",
	DirectiveAck:       "ACK",
	DirectiveMetadata:  "Metadata",
	DirectiveNak:       "NAK",
	DirectivePrompt:    "Prompt",
	DirectiveKeepAlive: "KeepAlive",
}

func (c DirectiveCode) String() string {
	if s, ok := directiveNames[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown(0x%02x)", uint8(c))
}

// Valid reports whether c is one of the defined directive codes.
func (c DirectiveCode) Valid() bool {
	_, ok := directiveNames[c]
	return ok
}

type ConditionCode uint8

const (
	NoError                 ConditionCode = 0b0000
	PositiveAckLimitReached ConditionCode = 0b0001
	KeepAliveLimitReached   ConditionCode = 0b0010
	InvalidTransmissionMode ConditionCode = 0b0011
	FilestoreRejection      ConditionCode = 0b0100
	FileChecksumFailure     ConditionCode = 0b0101
	FileSizeError           ConditionCode = 0b0110
	NakLimitReached         ConditionCode = 0b0111
	InactivityDetected      ConditionCode = 0b1000
	CheckLimitReached       ConditionCode = 0b1010
	UnsupportedChecksumType ConditionCode = 0b1011
	SuspendRequestReceived  ConditionCode = 0b1110
	CancelRequestReceived   ConditionCode = 0b1111
)

var conditionNames = map[ConditionCode]string{
	NoError:                 "no-error",
	PositiveAckLimitReached: "positive-ack-limit-reached",
	KeepAliveLimitReached:   "keep-alive-limit-reached",
	InvalidTransmissionMode: "invalid-transmission-mode",
	FilestoreRejection:      "filestore-rejection",
	FileChecksumFailure:     "file-checksum-failure",
	FileSizeError:           "file-size-error",
	NakLimitReached:         "nak-limit-reached",
	InactivityDetected:      "inactivity-detected",
	CheckLimitReached:       "check-limit-reached",
	UnsupportedChecksumType: "unsupported-checksum-type",
	SuspendRequestReceived:  "suspend-request-received",
	CancelRequestReceived:   "cancel-request-received",
}

func (c ConditionCode) String() string {
	if s, ok := conditionNames[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", uint8(c))
}

func (c ConditionCode) Valid() bool {
	_, ok := conditionNames[c]
	return ok
}

// ParseConditionCode parses a name as printed by ConditionCode.String.
func ParseConditionCode(s string) (ConditionCode, error) {
	for c, name := range conditionNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConditionCode, s)
}

func conditionFromNibble(b uint8) (ConditionCode, error) {
	c := ConditionCode(b & 0x0f)
	if !c.Valid() {
		return 0, &UnknownConditionCodeError{Code: uint8(c)}
	}
	return c, nil
}

func checkCondition(c ConditionCode) error {
	if !c.Valid() {
		return &UnknownConditionCodeError{Code: uint8(c)}
	}
	return nil
}

type DeliveryCode uint8

const (
	DataComplete   DeliveryCode = 0
	DataIncomplete DeliveryCode = 1
)

func (d DeliveryCode) String() string {
	if d == DataIncomplete {
		return "incomplete"
	}
	return "complete"
}

type FileStatus uint8

const (
	DiscardedDeliberately FileStatus = 0b00
	DiscardedFilestore    FileStatus = 0b01
	FileRetained          FileStatus = 0b10
	FileStatusUnreported  FileStatus = 0b11
)

func (s FileStatus) String() string {
	switch s {
	case DiscardedDeliberately:
		return "discarded-deliberately"
	case DiscardedFilestore:
		return "discarded-filestore-rejection"
	case FileRetained:
		return "retained"
	case FileStatusUnreported:
		return "unreported"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

type TransactionStatus uint8

const (
	TransactionUndefined    TransactionStatus = 0b00
	TransactionActive       TransactionStatus = 0b01
	TransactionTerminated   TransactionStatus = 0b10
	TransactionUnrecognized TransactionStatus = 0b11
)

func (s TransactionStatus) String() string {
	switch s {
	case TransactionUndefined:
		return "undefined"
	case TransactionActive:
		return "active"
	case TransactionTerminated:
		return "terminated"
	case TransactionUnrecognized:
		return "unrecognized"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

type RecordContinuationState uint8

const (
	NoStartNoEnd    RecordContinuationState = 0b00
	StartWithoutEnd RecordContinuationState = 0b01
	EndWithoutStart RecordContinuationState = 0b10
	StartAndEnd     RecordContinuationState = 0b11
)

type FaultHandlerCode uint8

const (
	NoticeOfCancellation FaultHandlerCode = 0b0001
	NoticeOfSuspension   FaultHandlerCode = 0b0010
	IgnoreError          FaultHandlerCode = 0b0011
	AbandonTransaction   FaultHandlerCode = 0b0100
)

func (f FaultHandlerCode) String() string {
	switch f {
	case NoticeOfCancellation:
		return "cancel"
	case NoticeOfSuspension:
		return "suspend"
	case IgnoreError:
		return "ignore"
	case AbandonTransaction:
		return "abandon"
	}
	return fmt.Sprintf("unknown(%d)", uint8(f))
}
