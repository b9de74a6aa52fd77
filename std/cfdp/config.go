package cfdp

import "fmt"

// PduConfig is the per-transaction state shared by every PDU of a
// transaction. It is a plain value: build it once and pass it to every
// encode call.
//
// Direction is informational when packing: each body variant fixes the
// direction bit it is sent with.
type PduConfig struct {
	SourceEntityId      UintField
	DestEntityId        UintField
	TransactionSeqNum   UintField
	TransmissionMode    TransmissionMode
	LargeFile           LargeFileFlag
	Crc                 CrcFlag
	Direction           Direction
	SegmentationControl SegmentationControl
}

// NewPduConfig returns an acknowledged, normal file size configuration
// without CRC.
func NewPduConfig(source, dest, seq UintField) PduConfig {
	return PduConfig{
		SourceEntityId:    source,
		DestEntityId:      dest,
		TransactionSeqNum: seq,
	}
}

// Validate checks the field widths and the single-bit flags.
func (c PduConfig) Validate() error {
	for _, f := range []UintField{c.SourceEntityId, c.DestEntityId, c.TransactionSeqNum} {
		if err := checkWidth(f.width); err != nil {
			return err
		}
		if !fits(f.value, f.width) {
			return &ValueTooLargeError{Value: f.value, Width: f.width}
		}
	}
	if c.TransmissionMode > 1 || c.LargeFile > 1 || c.Crc > 1 || c.Direction > 1 || c.SegmentationControl > 1 {
		return errParam("header flag out of range")
	}
	return nil
}

// EntityIdWidth is the width both entity IDs are encoded with. The header
// carries a single length for both, so the wider declaration wins.
func (c PduConfig) EntityIdWidth() int {
	return max(c.SourceEntityId.width, c.DestEntityId.width)
}

// HeaderLen is the length of the PDU header for this configuration.
func (c PduConfig) HeaderLen() int {
	return FixedHeaderLen + 2*c.EntityIdWidth() + c.TransactionSeqNum.width
}

// CrcLen is 2 when PDUs carry a CRC-16, 0 otherwise.
func (c PduConfig) CrcLen() int {
	if c.Crc == CrcPresent {
		return 2
	}
	return 0
}

func (c PduConfig) TransactionId() TransactionId {
	return TransactionId{SourceId: c.SourceEntityId, SeqNum: c.TransactionSeqNum}
}

// Equal compares configurations with value semantics on the ID fields.
func (c PduConfig) Equal(o PduConfig) bool {
	return c.SourceEntityId.Equal(o.SourceEntityId) &&
		c.DestEntityId.Equal(o.DestEntityId) &&
		c.TransactionSeqNum.Equal(o.TransactionSeqNum) &&
		c.TransmissionMode == o.TransmissionMode &&
		c.LargeFile == o.LargeFile &&
		c.Crc == o.Crc &&
		c.Direction == o.Direction &&
		c.SegmentationControl == o.SegmentationControl
}

// TransactionId uniquely identifies a transaction across entities.
type TransactionId struct {
	SourceId UintField
	SeqNum   UintField
}

func (t TransactionId) Equal(o TransactionId) bool {
	return t.SourceId.Equal(o.SourceId) && t.SeqNum.Equal(o.SeqNum)
}

func (t TransactionId) String() string {
	return fmt.Sprintf("%d/%d", t.SourceId.value, t.SeqNum.value)
}

// MaxNakSegmentRequests returns how many segment requests fit into a NAK PDU
// of at most maxPacketLen octets.
func MaxNakSegmentRequests(cfg PduConfig, maxPacketLen int) (int, error) {
	fss := cfg.LargeFile.FssWidth()
	base := cfg.HeaderLen() + 1 + 2*fss + cfg.CrcLen()
	if maxPacketLen < base {
		return 0, errParam("maximum packet length %d cannot hold a NAK PDU of %d octets", maxPacketLen, base)
	}
	return (maxPacketLen - base) / (2 * fss), nil
}

// MaxFileSegmentLen returns the largest file segment that fits into a File
// Data PDU of at most maxPacketLen octets. segMetadataLen is the length of
// the segment metadata octets, or -1 when the PDU carries none.
func MaxFileSegmentLen(cfg PduConfig, maxPacketLen int, segMetadataLen int) (int, error) {
	base := cfg.HeaderLen() + cfg.LargeFile.FssWidth() + cfg.CrcLen()
	if segMetadataLen >= 0 {
		base += 1 + segMetadataLen
	}
	if maxPacketLen < base {
		return 0, errParam("maximum packet length %d cannot hold a File Data PDU of %d octets", maxPacketLen, base)
	}
	return maxPacketLen - base, nil
}
