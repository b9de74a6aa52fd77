package cfdp_test

import (
	"testing"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	"github.com/spacepackets-go/spacepackets/std/cfdp/checksum"
	"github.com/spacepackets-go/spacepackets/std/types/optional"
	tu "github.com/spacepackets-go/spacepackets/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func directiveHeader(cfg cfdp.PduConfig) cfdp.PduHeader {
	return cfdp.PduHeader{Config: cfg, PduType: cfdp.PduTypeFileDirective}
}

func TestMetadataBody(t *testing.T) {
	tu.SetT(t)
	cfg := scenarioConfig()
	hdr := directiveHeader(cfg)

	md := &cfdp.Metadata{ChecksumType: checksum.Null}
	require.False(t, md.HasFileTransfer())
	body := tu.NoErr(md.PackBody(cfg))
	require.Equal(t, tu.Hex("07 0f 00000000 00 00"), body)
	require.Equal(t, md, tu.NoErr(cfdp.UnpackMetadataBody(hdr, body)))

	cfg.LargeFile = cfdp.LargeFile
	md.FileSize = 1 << 33
	body = tu.NoErr(md.PackBody(cfg))
	require.Equal(t, tu.Hex("07 0f 0000000200000000 00 00"), body)

	cfg.LargeFile = cfdp.NormalFile
	tu.ErrIs[[]byte](cfdp.ErrValueTooLarge)(md.PackBody(cfg))

	md = &cfdp.Metadata{ChecksumType: 16}
	tu.ErrIs[[]byte](cfdp.ErrInvalidParameter)(md.PackBody(cfg))

	// Option with an unknown TLV type.
	tu.ErrIs[*cfdp.Metadata](cfdp.ErrUnknownTlvType)(cfdp.UnpackMetadataBody(hdr, tu.Hex("07 00 00000000 00 00 03 00")))
	// Truncated destination name.
	tu.ErrIs[*cfdp.Metadata](cfdp.ErrBufferTooShort)(cfdp.UnpackMetadataBody(hdr, tu.Hex("07 00 00000000 00 02 61")))
	// Wrong directive.
	tu.ErrIs[*cfdp.Metadata](cfdp.ErrInvalidDirective)(cfdp.UnpackMetadataBody(hdr, tu.Hex("04 00")))
}

func TestFileDataBody(t *testing.T) {
	tu.SetT(t)

	cfg := cfdp.NewPduConfig(cfdp.U8(1), cfdp.U8(2), cfdp.U8(3))
	fd := &cfdp.FileData{
		Offset: 0x10,
		SegmentMetadata: optional.Some(cfdp.SegmentMetadata{
			RecordContinuationState: cfdp.StartAndEnd,
			Metadata:                []byte{0xaa, 0xbb},
		}),
		Data: []byte("hi"),
	}
	wire := tu.NoErr(cfdp.Pack(cfg, fd))
	require.Equal(t, tu.Hex("30 0009 08 01 03 02 c2aabb 00000010 6869"), wire)
	require.Equal(t, fd, tu.NoErr(cfdp.Unpack(wire)).Body)

	// The metadata is only read when the header flag says so.
	hdr := cfdp.PduHeader{Config: cfg, PduType: cfdp.PduTypeFileData}
	plain := tu.NoErr(cfdp.UnpackFileDataBody(hdr, tu.Hex("c2aabb 00000010 6869")))
	require.False(t, plain.SegmentMetadata.IsSet())
	require.Equal(t, uint64(0xc2aabb00), plain.Offset)

	hdr.SegmentMetadata = cfdp.SegmentMetadataPresent
	tu.ErrIs[*cfdp.FileData](cfdp.ErrBufferTooShort)(cfdp.UnpackFileDataBody(hdr, tu.Hex("c5 aabb")))
	tu.ErrIs[*cfdp.FileData](cfdp.ErrBufferTooShort)(cfdp.UnpackFileDataBody(hdr, tu.Hex("00 000000")))
	tu.ErrIs[*cfdp.FileData](cfdp.ErrInvalidParameter)(cfdp.UnpackFileDataBody(directiveHeader(cfg), nil))

	fd.SegmentMetadata = optional.Some(cfdp.SegmentMetadata{Metadata: make([]byte, 64)})
	tu.ErrIs[[]byte](cfdp.ErrValueTooLong)(fd.PackBody(cfg))
	fd.SegmentMetadata = optional.Some(cfdp.SegmentMetadata{Metadata: make([]byte, 63)})
	require.Len(t, tu.NoErr(fd.PackBody(cfg)), 1+63+4+2)

	fd = &cfdp.FileData{Offset: 1 << 32}
	tu.ErrIs[[]byte](cfdp.ErrValueTooLarge)(fd.PackBody(cfg))
	cfg.LargeFile = cfdp.LargeFile
	require.Equal(t, tu.Hex("0000000100000000"), tu.NoErr(fd.PackBody(cfg)))
}

func TestEofBody(t *testing.T) {
	tu.SetT(t)
	cfg := scenarioConfig()
	hdr := directiveHeader(cfg)

	eof := &cfdp.Eof{
		ConditionCode: cfdp.FileChecksumFailure,
		FileChecksum:  cfdp.FileChecksumFromUint32(0x01020304),
		FileSize:      9,
		FaultLocation: optional.Some(cfdp.U8(2)),
	}
	body := tu.NoErr(eof.PackBody(cfg))
	require.Equal(t, tu.Hex("04 50 01020304 00000009 06 01 02"), body)
	require.Equal(t, eof, tu.NoErr(cfdp.UnpackEofBody(hdr, body)))
	require.Equal(t, uint32(0x01020304), eof.FileChecksum.Uint32())

	noFault := &cfdp.Eof{FaultLocation: optional.Some(cfdp.U8(2))}
	tu.ErrIs[[]byte](cfdp.ErrInvalidParameter)(noFault.PackBody(cfg))
	tu.ErrIs[[]byte](cfdp.ErrUnknownConditionCode)((&cfdp.Eof{ConditionCode: 12}).PackBody(cfg))

	tu.ErrIs[*cfdp.Eof](cfdp.ErrUnknownConditionCode)(cfdp.UnpackEofBody(hdr, tu.Hex("04 90 00000000 00000000")))
	tu.ErrIs[*cfdp.Eof](cfdp.ErrInvalidLengthField)(cfdp.UnpackEofBody(hdr, tu.Hex("04 00 00000000 00000000 06 01 02")))
	tu.ErrIs[*cfdp.Eof](cfdp.ErrUnexpectedTlv)(cfdp.UnpackEofBody(hdr, tu.Hex("04 50 00000000 00000000 05 01 02")))
	tu.ErrIs[*cfdp.Eof](cfdp.ErrInvalidLengthField)(cfdp.UnpackEofBody(hdr, tu.Hex("04 50 00000000 00000000 06 01 02 ff")))
	tu.ErrIs[*cfdp.Eof](cfdp.ErrBufferTooShort)(cfdp.UnpackEofBody(hdr, tu.Hex("04 00 00000000 000000")))

	tu.ErrIs[cfdp.FileChecksum](cfdp.ErrBufferTooShort)(cfdp.FileChecksumFromBytes([]byte{1, 2, 3}))
	tu.ErrIs[cfdp.FileChecksum](cfdp.ErrValueTooLong)(cfdp.FileChecksumFromBytes([]byte{1, 2, 3, 4, 5}))
}

func TestFinishedBody(t *testing.T) {
	tu.SetT(t)
	cfg := scenarioConfig()
	hdr := directiveHeader(cfg)

	fin := &cfdp.Finished{FileStatus: cfdp.FileRetained}
	require.Equal(t, tu.Hex("05 02"), tu.NoErr(fin.PackBody(cfg)))

	fin = &cfdp.Finished{
		ConditionCode: cfdp.CancelRequestReceived,
		DeliveryCode:  cfdp.DataIncomplete,
		FileStatus:    cfdp.FileStatusUnreported,
		FaultLocation: optional.Some(cfdp.U8(1)),
	}
	body := tu.NoErr(fin.PackBody(cfg))
	require.Equal(t, tu.Hex("05 f7 06 01 01"), body)
	require.Equal(t, fin, tu.NoErr(cfdp.UnpackFinishedBody(hdr, body)))

	unsupported := &cfdp.Finished{
		ConditionCode: cfdp.UnsupportedChecksumType,
		FaultLocation: optional.Some(cfdp.U8(1)),
	}
	require.False(t, unsupported.MayHaveFaultLocation())
	tu.ErrIs[[]byte](cfdp.ErrInvalidParameter)(unsupported.PackBody(cfg))

	// Fault location with a condition that does not allow one.
	tu.ErrIs[*cfdp.Finished](cfdp.ErrUnexpectedTlv)(cfdp.UnpackFinishedBody(hdr, tu.Hex("05 02 06 01 01")))
	// Filestore response after the fault location.
	tu.ErrIs[*cfdp.Finished](cfdp.ErrInvalidLengthField)(cfdp.UnpackFinishedBody(hdr, tu.Hex("05 f2 06 01 01 01 03 10 00 00")))
	// Message to user is not allowed.
	tu.ErrIs[*cfdp.Finished](cfdp.ErrUnexpectedTlv)(cfdp.UnpackFinishedBody(hdr, tu.Hex("05 02 02 00")))
	tu.ErrIs[*cfdp.Finished](cfdp.ErrUnknownConditionCode)(cfdp.UnpackFinishedBody(hdr, tu.Hex("05 d2")))

	tu.ErrIs[[]byte](cfdp.ErrInvalidParameter)((&cfdp.Finished{FileStatus: 4}).PackBody(cfg))
}

func TestAckBody(t *testing.T) {
	tu.SetT(t)
	cfg := scenarioConfig()
	hdr := directiveHeader(cfg)

	ackEof := tu.NoErr(cfdp.NewAck(cfdp.DirectiveEof, cfdp.NoError, cfdp.TransactionActive))
	require.Equal(t, tu.Hex("06 40 01"), tu.NoErr(ackEof.PackBody(cfg)))
	require.Equal(t, cfdp.TowardSender, ackEof.Direction())

	ackFin := tu.NoErr(cfdp.NewAck(cfdp.DirectiveFinished, cfdp.CancelRequestReceived, cfdp.TransactionTerminated))
	body := tu.NoErr(ackFin.PackBody(cfg))
	require.Equal(t, tu.Hex("06 51 f2"), body)
	require.Equal(t, cfdp.TowardReceiver, ackFin.Direction())
	require.Equal(t, ackFin, tu.NoErr(cfdp.UnpackAckBody(hdr, body)))

	tu.ErrIs[*cfdp.Ack](cfdp.ErrInvalidDirective)(cfdp.NewAck(cfdp.DirectiveMetadata, cfdp.NoError, cfdp.TransactionActive))
	tu.ErrIs[*cfdp.Ack](cfdp.ErrInvalidDirective)(cfdp.UnpackAckBody(hdr, tu.Hex("06 90 00")))
	tu.ErrIs[*cfdp.Ack](cfdp.ErrInvalidParameter)(cfdp.UnpackAckBody(hdr, tu.Hex("06 45 01")))
	tu.ErrIs[*cfdp.Ack](cfdp.ErrInvalidParameter)(cfdp.UnpackAckBody(hdr, tu.Hex("06 50 f2")))
	tu.ErrIs[*cfdp.Ack](cfdp.ErrInvalidLengthField)(cfdp.UnpackAckBody(hdr, tu.Hex("06 40 01 00")))
	tu.ErrIs[*cfdp.Ack](cfdp.ErrBufferTooShort)(cfdp.UnpackAckBody(hdr, tu.Hex("06 40")))
	tu.ErrIs[*cfdp.Ack](cfdp.ErrUnknownConditionCode)(cfdp.UnpackAckBody(hdr, tu.Hex("06 40 d1")))
}

func TestNakBody(t *testing.T) {
	tu.SetT(t)
	cfg := scenarioConfig()
	hdr := directiveHeader(cfg)

	nak := &cfdp.Nak{
		StartOfScope:    0,
		EndOfScope:      0x200,
		SegmentRequests: []cfdp.SegmentRequest{{Start: 0, End: 0x80}},
	}
	body := tu.NoErr(nak.PackBody(cfg))
	require.Equal(t, tu.Hex("08 00000000 00000200 00000000 00000080"), body)
	require.Equal(t, nak, tu.NoErr(cfdp.UnpackNakBody(hdr, body)))

	tu.ErrIs[*cfdp.Nak](cfdp.ErrMalformedNakSegments)(cfdp.UnpackNakBody(hdr, append(body, 0, 0, 0)))
	tu.ErrIs[*cfdp.Nak](cfdp.ErrMalformedNakSegments)(cfdp.UnpackNakBody(hdr, append(body, 0, 0, 0, 0)))
	tu.ErrIs[*cfdp.Nak](cfdp.ErrBufferTooShort)(cfdp.UnpackNakBody(hdr, tu.Hex("08 00000000 0000")))

	cfg.LargeFile = cfdp.LargeFile
	hdr = directiveHeader(cfg)
	nak.SegmentRequests = append(nak.SegmentRequests, cfdp.SegmentRequest{Start: 1 << 40, End: 1<<40 + 1})
	body = tu.NoErr(nak.PackBody(cfg))
	require.Len(t, body, 1+16+32)
	require.Equal(t, nak, tu.NoErr(cfdp.UnpackNakBody(hdr, body)))
	// A normal file pair is half a large file pair.
	tu.ErrIs[*cfdp.Nak](cfdp.ErrMalformedNakSegments)(cfdp.UnpackNakBody(hdr, append(body, make([]byte, 8)...)))
}

func TestPromptAndKeepAliveBodies(t *testing.T) {
	tu.SetT(t)
	cfg := scenarioConfig()
	hdr := directiveHeader(cfg)

	require.Equal(t, tu.Hex("09 80"), tu.NoErr((&cfdp.Prompt{ResponseRequired: true}).PackBody(cfg)))
	require.Equal(t, tu.Hex("09 00"), tu.NoErr((&cfdp.Prompt{}).PackBody(cfg)))
	require.Equal(t, &cfdp.Prompt{ResponseRequired: true}, tu.NoErr(cfdp.UnpackPromptBody(hdr, tu.Hex("09 80"))))
	tu.ErrIs[*cfdp.Prompt](cfdp.ErrInvalidLengthField)(cfdp.UnpackPromptBody(hdr, tu.Hex("09 80 00")))
	require.Equal(t, cfdp.TowardReceiver, (&cfdp.Prompt{}).Direction())

	ka := &cfdp.KeepAlive{Progress: 0x0a0b}
	require.Equal(t, tu.Hex("0c 00000a0b"), tu.NoErr(ka.PackBody(cfg)))
	require.Equal(t, ka, tu.NoErr(cfdp.UnpackKeepAliveBody(hdr, tu.Hex("0c 00000a0b"))))
	tu.ErrIs[*cfdp.KeepAlive](cfdp.ErrBufferTooShort)(cfdp.UnpackKeepAliveBody(hdr, tu.Hex("0c 000a")))
	require.Equal(t, cfdp.TowardSender, ka.Direction())

	cfg.LargeFile = cfdp.LargeFile
	ka.Progress = 1 << 40
	require.Equal(t, tu.Hex("0c 0000010000000000"), tu.NoErr(ka.PackBody(cfg)))
}
