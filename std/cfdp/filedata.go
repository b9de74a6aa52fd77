package cfdp

import "github.com/spacepackets-go/spacepackets/std/types/optional"

// MaxSegmentMetadataLen is the largest segment metadata the 6-bit length
// field can describe.
const MaxSegmentMetadataLen = 63

type SegmentMetadata struct {
	RecordContinuationState RecordContinuationState
	Metadata                []byte
}

// FileData carries one file segment. Segment metadata is only present when
// the header's segment metadata flag is set; Pack sets the flag from it.
type FileData struct {
	Offset          uint64
	SegmentMetadata optional.Optional[SegmentMetadata]
	Data            []byte
}

func (*FileData) isBody()              {}
func (*FileData) PduType() PduType     { return PduTypeFileData }
func (*FileData) Direction() Direction { return TowardReceiver }

func (f *FileData) PackBody(cfg PduConfig) ([]byte, error) {
	b := make([]byte, 0, 1+MaxSegmentMetadataLen+cfg.LargeFile.FssWidth()+len(f.Data))
	if sm, ok := f.SegmentMetadata.Get(); ok {
		if len(sm.Metadata) > MaxSegmentMetadataLen {
			return nil, &ValueTooLongError{Len: len(sm.Metadata), Max: MaxSegmentMetadataLen}
		}
		if sm.RecordContinuationState > StartAndEnd {
			return nil, errParam("record continuation state %d", sm.RecordContinuationState)
		}
		b = append(b, byte(sm.RecordContinuationState)<<6|byte(len(sm.Metadata)))
		b = append(b, sm.Metadata...)
	}
	b, err := appendFss(b, f.Offset, cfg.LargeFile)
	if err != nil {
		return nil, err
	}
	return append(b, f.Data...), nil
}

func UnpackFileDataBody(hdr PduHeader, body []byte) (*FileData, error) {
	if hdr.PduType != PduTypeFileData {
		return nil, errParam("file data body in a file directive PDU")
	}
	f := &FileData{}
	if hdr.SegmentMetadata == SegmentMetadataPresent {
		if err := needLen(body, 1); err != nil {
			return nil, err
		}
		n := int(body[0] & 0x3f)
		if err := needLen(body, 1+n); err != nil {
			return nil, err
		}
		f.SegmentMetadata = optional.Some(SegmentMetadata{
			RecordContinuationState: RecordContinuationState(body[0] >> 6),
			Metadata:                cloneBytes(body[1 : 1+n]),
		})
		body = body[1+n:]
	}
	var err error
	if f.Offset, err = readFss(body, hdr.Config.LargeFile); err != nil {
		return nil, err
	}
	f.Data = cloneBytes(body[hdr.Config.LargeFile.FssWidth():])
	return f, nil
}
