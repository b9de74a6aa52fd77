package toolutils

import (
	"encoding/hex"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
)

// Describe converts a decoded PDU into its YAML description. Building the
// result again yields the same PDU.
func Describe(pdu cfdp.Pdu) PduDescription {
	return PduDescription{
		Config: DescribeConfig(pdu.Header.Config),
		Pdu:    DescribeBody(pdu.Body),
	}
}

func DescribeConfig(cfg cfdp.PduConfig) ConfigDescription {
	return ConfigDescription{
		SourceEntityId:      cfg.SourceEntityId.Value(),
		DestEntityId:        cfg.DestEntityId.Value(),
		EntityIdWidth:       cfg.EntityIdWidth(),
		SeqNum:              cfg.TransactionSeqNum.Value(),
		SeqNumWidth:         cfg.TransactionSeqNum.Width(),
		Mode:                cfg.TransmissionMode.String(),
		Crc:                 cfg.Crc == cfdp.CrcPresent,
		LargeFile:           cfg.LargeFile == cfdp.LargeFile,
		SegmentationControl: cfg.SegmentationControl == cfdp.RecordBoundaries,
	}
}

func DescribeBody(body cfdp.Body) (d BodyDescription) {
	switch b := body.(type) {
	case *cfdp.Metadata:
		d.Type = "metadata"
		d.ClosureRequested = b.ClosureRequested
		d.ChecksumType = b.ChecksumType.String()
		d.FileSize = b.FileSize
		d.SourceFile = b.SourceFileName.String()
		d.DestFile = b.DestFileName.String()
		for _, opt := range b.Options {
			d.Options = append(d.Options, DescribeTlv(opt))
		}
	case *cfdp.FileData:
		d.Type = "file-data"
		d.Offset = b.Offset
		d.Data = hex.EncodeToString(b.Data)
		if sm, ok := b.SegmentMetadata.Get(); ok {
			d.SegmentMetadata = &SegmentMetadataDescription{
				RecordContinuation: uint8(sm.RecordContinuationState),
				Metadata:           hex.EncodeToString(sm.Metadata),
			}
		}
	case *cfdp.Eof:
		d.Type = "eof"
		d.Condition = b.ConditionCode.String()
		d.FileChecksum = b.FileChecksum.Uint32()
		d.FileSize = b.FileSize
		d.FaultLocation, d.FaultLocationWidth = describeFaultLocation(b.FaultLocation.Ptr())
	case *cfdp.Finished:
		d.Type = "finished"
		d.Condition = b.ConditionCode.String()
		d.Delivery = b.DeliveryCode.String()
		d.FileStatus = b.FileStatus.String()
		for _, r := range b.FilestoreResponses {
			d.FilestoreResponses = append(d.FilestoreResponses, FilestoreResponseDescription{
				Action:     r.Action.String(),
				Status:     r.Status,
				FirstName:  r.FirstName.String(),
				SecondName: r.SecondName.String(),
				Message:    r.Message.String(),
			})
		}
		d.FaultLocation, d.FaultLocationWidth = describeFaultLocation(b.FaultLocation.Ptr())
	case *cfdp.Ack:
		d.Type = "ack"
		d.Acked = b.AckedDirective.String()
		d.Condition = b.ConditionCode.String()
		d.TransactionStatus = b.TransactionStatus.String()
	case *cfdp.Nak:
		d.Type = "nak"
		d.ScopeStart = b.StartOfScope
		d.ScopeEnd = b.EndOfScope
		for _, s := range b.SegmentRequests {
			d.Segments = append(d.Segments, SegmentDescription{Start: s.Start, End: s.End})
		}
	case *cfdp.Prompt:
		d.Type = "prompt"
		d.ResponseRequired = b.ResponseRequired
	case *cfdp.KeepAlive:
		d.Type = "keep-alive"
		d.Progress = b.Progress
	}
	return d
}

func DescribeTlv(t cfdp.Tlv) TlvDescription {
	d := TlvDescription{
		Type:  t.Type.String(),
		Value: hex.EncodeToString(t.Value),
	}
	if msg, ok := cfdp.ParseReservedMessage(t).Get(); ok {
		d.Reserved = msg.Type().String()
	}
	return d
}

func describeFaultLocation(loc *cfdp.UintField) (*uint64, int) {
	if loc == nil {
		return nil, 0
	}
	v := loc.Value()
	return &v, loc.Width()
}
