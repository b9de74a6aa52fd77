package cfdp_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	tu "github.com/spacepackets-go/spacepackets/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestTlvLengthBoundary(t *testing.T) {
	tu.SetT(t)

	tlv := tu.NoErr(cfdp.NewTlv(cfdp.TlvMessageToUser, bytes.Repeat([]byte{'a'}, 255)))
	wire := tu.NoErr(tlv.Pack())
	require.Len(t, wire, 257)
	require.Equal(t, byte(0x02), wire[0])
	require.Equal(t, byte(0xff), wire[1])

	tu.ErrIs[cfdp.Tlv](cfdp.ErrValueTooLong)(cfdp.NewTlv(cfdp.TlvMessageToUser, make([]byte, 256)))
	tooLong := cfdp.Tlv{Type: cfdp.TlvMessageToUser, Value: make([]byte, 256)}
	tu.ErrIs[[]byte](cfdp.ErrValueTooLong)(tooLong.Pack())

	tu.ErrIs[cfdp.Lv](cfdp.ErrValueTooLong)(cfdp.NewLv(make([]byte, 256)))
	lv := tu.NoErr(cfdp.NewLv(make([]byte, 255)))
	require.Len(t, tu.NoErr(lv.Pack()), 256)
}

func TestTlvUnpack(t *testing.T) {
	tu.SetT(t)

	tlv, n, err := cfdp.UnpackTlv(tu.Hex("05 03 aa bb cc ff"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, cfdp.TlvFlowLabel, tlv.Type)
	require.Equal(t, []byte{0xaa, 0xbb, 0xcc}, tlv.Value)
	require.Equal(t, 5, tlv.PackedLen())

	require.Equal(t, 3, tu.NoErr(cfdp.PeekTlvLen(tu.Hex("05 03"))))
	tu.ErrIs[int](cfdp.ErrBufferTooShort)(cfdp.PeekTlvLen([]byte{0x05}))

	_, _, err = cfdp.UnpackTlv(tu.Hex("05 03 aa bb"))
	require.ErrorIs(t, err, cfdp.ErrBufferTooShort)

	_, _, err = cfdp.UnpackTlv(tu.Hex("03 01 aa"))
	require.ErrorIs(t, err, cfdp.ErrUnknownTlvType)
	var unknown *cfdp.UnknownTlvTypeError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, uint8(0x03), unknown.Type)

	// Empty values decode to nil so they compare equal to built ones.
	tlv, _, err = cfdp.UnpackTlv(tu.Hex("02 00"))
	require.NoError(t, err)
	require.True(t, tlv.Equal(tu.NoErr(cfdp.NewTlv(cfdp.TlvMessageToUser, nil))))
	require.Nil(t, tlv.Value)
}

func TestTlvUnpackCopies(t *testing.T) {
	tu.SetT(t)
	buf := tu.Hex("02 02 01 02")
	tlv, _, err := cfdp.UnpackTlv(buf)
	require.NoError(t, err)
	buf[2] = 0xff
	require.Equal(t, []byte{0x01, 0x02}, tlv.Value)
}

func TestLv(t *testing.T) {
	tu.SetT(t)

	lv := tu.NoErr(cfdp.LvFromString("/tmp/a"))
	wire := tu.NoErr(lv.Pack())
	require.Equal(t, append([]byte{6}, "/tmp/a"...), wire)
	require.Equal(t, 7, lv.PackedLen())

	out, n, err := cfdp.UnpackLv(append(wire, 0xee))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.True(t, out.Equal(lv))
	require.Equal(t, "/tmp/a", out.String())

	empty := tu.NoErr(cfdp.LvFromString(""))
	require.True(t, empty.IsEmpty())
	require.Equal(t, []byte{0}, tu.NoErr(empty.Pack()))

	require.Equal(t, 6, tu.NoErr(cfdp.PeekLvLen(wire)))
	tu.ErrIs[int](cfdp.ErrBufferTooShort)(cfdp.PeekLvLen(nil))
	_, _, err = cfdp.UnpackLv([]byte{4, 'a'})
	require.ErrorIs(t, err, cfdp.ErrBufferTooShort)
}

func TestEntityIdTlv(t *testing.T) {
	tu.SetT(t)

	tlv := tu.NoErr(cfdp.NewEntityIdTlv(cfdp.U16(0x0102)))
	require.Equal(t, tu.Hex("06 02 01 02"), tu.NoErr(tlv.Pack()))
	id := tu.NoErr(cfdp.EntityIdFromTlv(tlv))
	require.Equal(t, uint64(0x0102), id.Value())
	require.Equal(t, 2, id.Width())

	tu.ErrIs[cfdp.UintField](cfdp.ErrUnexpectedTlv)(cfdp.EntityIdFromTlv(cfdp.Tlv{Type: cfdp.TlvFlowLabel, Value: []byte{1}}))
	tu.ErrIs[cfdp.UintField](cfdp.ErrInvalidWidth)(cfdp.EntityIdFromTlv(cfdp.Tlv{Type: cfdp.TlvEntityId, Value: []byte{1, 2, 3}}))
	tu.ErrIs[cfdp.Tlv](cfdp.ErrInvalidWidth)(cfdp.NewEntityIdTlv(cfdp.UintField{}))
}

func TestFaultHandlerOverride(t *testing.T) {
	tu.SetT(t)

	fh := cfdp.FaultHandlerOverride{
		ConditionCode: cfdp.FileChecksumFailure,
		HandlerCode:   cfdp.IgnoreError,
	}
	tlv := tu.NoErr(fh.Tlv())
	require.Equal(t, tu.Hex("04 01 53"), tu.NoErr(tlv.Pack()))
	require.Equal(t, fh, tu.NoErr(cfdp.ParseFaultHandlerOverride(tlv)))

	bad := cfdp.Tlv{Type: cfdp.TlvFaultHandlerOverride, Value: []byte{0x93}}
	tu.ErrIs[cfdp.FaultHandlerOverride](cfdp.ErrUnknownConditionCode)(cfdp.ParseFaultHandlerOverride(bad))
	bad.Value = []byte{0x53, 0x00}
	tu.ErrIs[cfdp.FaultHandlerOverride](cfdp.ErrInvalidLengthField)(cfdp.ParseFaultHandlerOverride(bad))
}

func TestFilestoreRequest(t *testing.T) {
	tu.SetT(t)

	rename := cfdp.FilestoreRequest{
		Action:     cfdp.FilestoreRenameFile,
		FirstName:  tu.NoErr(cfdp.LvFromString("abc")),
		SecondName: tu.NoErr(cfdp.LvFromString("xyz")),
	}
	tlv := tu.NoErr(rename.Tlv())
	require.Equal(t, tu.Hex("00 09 20 03 616263 03 78797a"), tu.NoErr(tlv.Pack()))
	require.Equal(t, rename, tu.NoErr(cfdp.ParseFilestoreRequest(tlv)))

	// The second name is dropped for single file actions.
	del := cfdp.FilestoreRequest{
		Action:     cfdp.FilestoreDeleteFile,
		FirstName:  tu.NoErr(cfdp.LvFromString("abc")),
		SecondName: tu.NoErr(cfdp.LvFromString("ignored")),
	}
	tlv = tu.NoErr(del.Tlv())
	require.Equal(t, tu.Hex("00 05 10 03 616263"), tu.NoErr(tlv.Pack()))
	parsed := tu.NoErr(cfdp.ParseFilestoreRequest(tlv))
	require.Equal(t, cfdp.FilestoreDeleteFile, parsed.Action)
	require.True(t, parsed.SecondName.IsEmpty())

	for _, a := range []cfdp.FilestoreActionCode{cfdp.FilestoreRenameFile, cfdp.FilestoreAppendFile, cfdp.FilestoreReplaceFile} {
		require.True(t, a.HasSecondName(), a.String())
	}
	require.False(t, cfdp.FilestoreDenyDirectory.HasSecondName())

	tu.ErrIs[cfdp.Tlv](cfdp.ErrInvalidParameter)(cfdp.FilestoreRequest{Action: 9}.Tlv())
	tu.ErrIs[cfdp.FilestoreRequest](cfdp.ErrUnexpectedTlv)(cfdp.ParseFilestoreRequest(cfdp.Tlv{Type: cfdp.TlvFilestoreResponse}))
}

func TestFilestoreResponse(t *testing.T) {
	tu.SetT(t)

	resp := cfdp.FilestoreResponse{
		Action:     cfdp.FilestoreAppendFile,
		Status:     cfdp.FilestoreNotPerformed,
		FirstName:  tu.NoErr(cfdp.LvFromString("a")),
		SecondName: tu.NoErr(cfdp.LvFromString("b")),
		Message:    tu.NoErr(cfdp.LvFromString("busy")),
	}
	tlv := tu.NoErr(resp.Tlv())
	require.Equal(t, tu.Hex("01 0a 3f 01 61 01 62 04 62757379"), tu.NoErr(tlv.Pack()))
	require.Equal(t, resp, tu.NoErr(cfdp.ParseFilestoreResponse(tlv)))

	ok := cfdp.FilestoreResponse{
		Action:    cfdp.FilestoreCreateDirectory,
		Status:    cfdp.FilestoreSuccess,
		FirstName: tu.NoErr(cfdp.LvFromString("dir")),
	}
	tlv = tu.NoErr(ok.Tlv())
	require.Equal(t, tu.Hex("01 06 50 03 646972 00"), tu.NoErr(tlv.Pack()))
	require.Equal(t, ok, tu.NoErr(cfdp.ParseFilestoreResponse(tlv)))

	// Missing filestore message.
	short := cfdp.Tlv{Type: cfdp.TlvFilestoreResponse, Value: tu.Hex("50 03 646972")}
	tu.ErrIs[cfdp.FilestoreResponse](cfdp.ErrBufferTooShort)(cfdp.ParseFilestoreResponse(short))
	tu.ErrIs[cfdp.Tlv](cfdp.ErrInvalidParameter)(cfdp.FilestoreResponse{Status: 0x10}.Tlv())
}
