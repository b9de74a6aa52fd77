package io

import (
	"errors"
	"fmt"
	"io"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	"github.com/spacepackets-go/spacepackets/std/log"
)

type pduStream struct{}

func (pduStream) String() string { return "pdu-stream" }

// ReadPduStream reads concatenated CFDP PDUs from reader, buffering partial
// data and invoking onFrame for each complete PDU. The frame is only valid
// for the duration of the callback. Returning false from onFrame stops the
// stream.
func ReadPduStream(
	reader io.Reader,
	onFrame func([]byte) bool,
	ignoreError func(error) bool,
) error {
	recvBuf := make([]byte, cfdp.MaxPduLen*4)
	recvOff := 0
	pduOff := 0

	for {
		// If less than one packet space remains in buffer, shift to beginning
		if len(recvBuf)-recvOff < cfdp.MaxPduLen {
			copy(recvBuf, recvBuf[pduOff:recvOff])
			recvOff -= pduOff
			pduOff = 0
		}

		// Read multiple packets at once
		readSize, err := reader.Read(recvBuf[recvOff:])
		recvOff += readSize

		// Deliver every complete packet
		for recvOff-pduOff >= cfdp.FixedHeaderLen {
			pduLen, perr := cfdp.PeekPduLen(recvBuf[pduOff:recvOff])
			if perr != nil {
				log.Warn(pduStream{}, "Invalid PDU header in stream", "offset", pduOff, "err", perr)
				return fmt.Errorf("invalid PDU header in stream: %w", perr)
			}
			if recvOff-pduOff < pduLen {
				break
			}
			if !onFrame(recvBuf[pduOff : pduOff+pduLen]) {
				return nil
			}
			pduOff += pduLen
		}

		if err != nil {
			if ignoreError != nil && ignoreError(err) {
				continue
			}
			if errors.Is(err, io.EOF) {
				if rest := recvOff - pduOff; rest > 0 {
					log.Warn(pduStream{}, "Truncated PDU at end of stream", "octets", rest)
					return fmt.Errorf("%w: %d octets of truncated PDU", io.ErrUnexpectedEOF, rest)
				}
				return nil
			}
			return err
		}
	}
}
