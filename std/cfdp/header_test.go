package cfdp_test

import (
	"testing"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	tu "github.com/spacepackets-go/spacepackets/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestHeaderNibbleOrdering(t *testing.T) {
	tu.SetT(t)

	hdr := cfdp.PduHeader{
		Config: cfdp.NewPduConfig(cfdp.U16(0x0102), cfdp.U16(0x0304), cfdp.U32(0x05060708)),
	}
	wire := tu.NoErr(hdr.Pack())
	require.Equal(t, tu.Hex("20 0000 13 0102 05060708 0304"), wire)
	require.Equal(t, 12, hdr.Len())
	require.Equal(t, 12, tu.NoErr(cfdp.HeaderLenFromRaw(wire)))

	out, n, err := cfdp.UnpackHeader(wire)
	require.NoError(t, err)
	require.Equal(t, 12, n)
	require.Equal(t, hdr, out)

	// 7 of the 8 octets following the fixed header.
	_, _, err = cfdp.UnpackHeader(wire[:11])
	require.ErrorIs(t, err, cfdp.ErrBufferTooShort)
	require.ErrorIs(t, err, cfdp.ErrInvalidLengthField)

	_, _, err = cfdp.UnpackHeader(wire[:3])
	require.ErrorIs(t, err, cfdp.ErrBufferTooShort)
}

func TestHeaderFlags(t *testing.T) {
	tu.SetT(t)

	hdr := cfdp.PduHeader{
		Config: cfdp.PduConfig{
			SourceEntityId:      cfdp.U64(0x1122334455667788),
			DestEntityId:        cfdp.U64(2),
			TransactionSeqNum:   cfdp.U8(0xff),
			TransmissionMode:    cfdp.Unacknowledged,
			LargeFile:           cfdp.LargeFile,
			Crc:                 cfdp.CrcPresent,
			Direction:           cfdp.TowardSender,
			SegmentationControl: cfdp.RecordBoundaries,
		},
		PduType:         cfdp.PduTypeFileData,
		SegmentMetadata: cfdp.SegmentMetadataPresent,
		DataFieldLen:    0x1234,
	}
	wire := tu.NoErr(hdr.Pack())
	require.Equal(t, tu.Hex("3f 1234 f8 1122334455667788 ff 0000000000000002"), wire)

	out, n, err := cfdp.UnpackHeader(wire)
	require.NoError(t, err)
	require.Equal(t, len(wire), n)
	require.Equal(t, hdr, out)
	require.Equal(t, hdr.Len()+0x1234, out.PduLen())
	require.Equal(t, 0x1232, out.BodyLen())
}

func TestHeaderEntityWidthIsShared(t *testing.T) {
	tu.SetT(t)

	cfg := cfdp.NewPduConfig(cfdp.U8(1), cfdp.U16(0x0203), cfdp.U8(4))
	require.Equal(t, 2, cfg.EntityIdWidth())
	require.Equal(t, 9, cfg.HeaderLen())

	wire := tu.NoErr(cfdp.PduHeader{Config: cfg}.Pack())
	require.Equal(t, tu.Hex("20 0000 10 0001 04 0203"), wire)

	out, _, err := cfdp.UnpackHeader(wire)
	require.NoError(t, err)
	require.True(t, out.Config.Equal(cfg))
	require.Equal(t, 2, out.Config.SourceEntityId.Width())
}

func TestHeaderErrors(t *testing.T) {
	tu.SetT(t)

	// Version 2 in the version field.
	_, _, err := cfdp.UnpackHeader(tu.Hex("40 0000 00 01 00 02"))
	require.ErrorIs(t, err, cfdp.ErrUnsupportedVersion)

	// Entity ID width of 3 octets.
	_, _, err = cfdp.UnpackHeader(tu.Hex("20 0000 20 010101 00 020202"))
	require.ErrorIs(t, err, cfdp.ErrInvalidWidth)

	// Sequence number width of 6 octets.
	tu.ErrIs[int](cfdp.ErrInvalidWidth)(cfdp.HeaderLenFromRaw(tu.Hex("20 0000 05")))

	// CRC flag with a data field too short to hold it.
	_, _, err = cfdp.UnpackHeader(tu.Hex("22 0001 00 01 00 02"))
	require.ErrorIs(t, err, cfdp.ErrInvalidLengthField)

	bad := cfdp.PduHeader{Config: cfdp.NewPduConfig(cfdp.U8(1), cfdp.UintField{}, cfdp.U8(1))}
	tu.ErrIs[[]byte](cfdp.ErrInvalidWidth)(bad.Pack())

	bad.Config.DestEntityId = cfdp.U8(2)
	bad.Config.TransmissionMode = 2
	tu.ErrIs[[]byte](cfdp.ErrInvalidParameter)(bad.Pack())
}

func TestTransactionId(t *testing.T) {
	cfg := cfdp.NewPduConfig(cfdp.U8(1), cfdp.U8(2), cfdp.U16(77))
	id := cfg.TransactionId()
	require.True(t, id.Equal(cfdp.TransactionId{SourceId: cfdp.U32(1), SeqNum: cfdp.U8(77)}))
	require.False(t, id.Equal(cfdp.TransactionId{SourceId: cfdp.U8(2), SeqNum: cfdp.U16(77)}))
	require.Equal(t, "1/77", id.String())
}
