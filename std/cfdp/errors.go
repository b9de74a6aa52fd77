package cfdp

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these through errors.Is; typed errors below add diagnostics.
var (
	ErrBufferTooShort       = errors.New("cfdp: buffer too short")
	ErrValueTooLarge        = errors.New("cfdp: value too large for field")
	ErrValueTooLong         = errors.New("cfdp: value too long")
	ErrInvalidWidth         = errors.New("cfdp: invalid field width")
	ErrUnsupportedVersion   = errors.New("cfdp: unsupported CFDP version")
	ErrInvalidLengthField   = errors.New("cfdp: invalid length field")
	ErrUnknownTlvType       = errors.New("cfdp: unknown TLV type")
	ErrUnknownConditionCode = errors.New("cfdp: unknown condition code")
	ErrMalformedNakSegments = errors.New("cfdp: malformed NAK segment requests")
	ErrChecksumMismatch     = errors.New("cfdp: checksum mismatch")

	ErrInvalidDirective = errors.New("cfdp: invalid directive code")
	ErrUnexpectedTlv    = errors.New("cfdp: unexpected TLV type")
	ErrInvalidParameter = errors.New("cfdp: invalid parameter")
)

type BufferTooShortError struct {
	Need int
	Have int
}

func (e *BufferTooShortError) Error() string {
	return fmt.Sprintf("cfdp: buffer too short: need %d octets, have %d", e.Need, e.Have)
}

func (e *BufferTooShortError) Is(target error) bool {
	return target == ErrBufferTooShort
}

func errShort(need, have int) error {
	return &BufferTooShortError{Need: need, Have: have}
}

type ValueTooLargeError struct {
	Value uint64
	Width int
}

func (e *ValueTooLargeError) Error() string {
	return fmt.Sprintf("cfdp: value %d does not fit in %d octets", e.Value, e.Width)
}

func (e *ValueTooLargeError) Is(target error) bool {
	return target == ErrValueTooLarge
}

type ValueTooLongError struct {
	Len int
	Max int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("cfdp: value of %d octets exceeds maximum of %d", e.Len, e.Max)
}

func (e *ValueTooLongError) Is(target error) bool {
	return target == ErrValueTooLong
}

type InvalidWidthError struct {
	Width int
}

func (e *InvalidWidthError) Error() string {
	return fmt.Sprintf("cfdp: invalid field width %d, must be 1, 2, 4 or 8", e.Width)
}

func (e *InvalidWidthError) Is(target error) bool {
	return target == ErrInvalidWidth
}

type UnsupportedVersionError struct {
	Version uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("cfdp: unsupported CFDP version %d, expected %d", e.Version, Version)
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// UnknownTlvTypeError keeps the raw type octet for diagnostics.
type UnknownTlvTypeError struct {
	Type uint8
}

func (e *UnknownTlvTypeError) Error() string {
	return fmt.Sprintf("cfdp: unknown TLV type 0x%02x", e.Type)
}

func (e *UnknownTlvTypeError) Is(target error) bool {
	return target == ErrUnknownTlvType
}

type UnknownConditionCodeError struct {
	Code uint8
}

func (e *UnknownConditionCodeError) Error() string {
	return fmt.Sprintf("cfdp: unknown condition code %d", e.Code)
}

func (e *UnknownConditionCodeError) Is(target error) bool {
	return target == ErrUnknownConditionCode
}

type ChecksumMismatchError struct {
	Expected uint16
	Actual   uint16
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("cfdp: CRC-16 mismatch: computed 0x%04x, received 0x%04x", e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Is(target error) bool {
	return target == ErrChecksumMismatch
}

type InvalidDirectiveError struct {
	Code     DirectiveCode
	Expected DirectiveCode
}

func (e *InvalidDirectiveError) Error() string {
	if e.Expected == 0 {
		return fmt.Sprintf("cfdp: invalid directive code %s", e.Code)
	}
	return fmt.Sprintf("cfdp: invalid directive code %s, expected %s", e.Code, e.Expected)
}

func (e *InvalidDirectiveError) Is(target error) bool {
	return target == ErrInvalidDirective
}

type UnexpectedTlvError struct {
	Found    TlvType
	Expected TlvType
}

func (e *UnexpectedTlvError) Error() string {
	return fmt.Sprintf("cfdp: unexpected TLV type %s, expected %s", e.Found, e.Expected)
}

func (e *UnexpectedTlvError) Is(target error) bool {
	return target == ErrUnexpectedTlv
}

func errLength(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLengthField, fmt.Sprintf(format, args...))
}

func errParam(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
