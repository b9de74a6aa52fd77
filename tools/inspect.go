package tools

import (
	"fmt"
	"io"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	"github.com/spacepackets-go/spacepackets/std/cfdp/checksum"
	"github.com/spacepackets-go/spacepackets/std/log"
	"github.com/spacepackets-go/spacepackets/std/utils"
	"github.com/spacepackets-go/spacepackets/std/utils/toolutils"
	"github.com/spf13/cobra"
)

type Inspect struct{}

func CmdInspect() *cobra.Command {
	tool := Inspect{}

	return &cobra.Command{
		GroupID: "tools",
		Use:     "inspect HEX",
		Short:   "Print the header fields of a CFDP PDU",
		Long: `Print the header fields of a CFDP PDU without decoding its body.

Useful for PDUs whose body does not decode. The CRC, when present, is
checked and reported but does not stop the output.`,
		Example: `  cfdpctl inspect 24000a00010002040000000000000000`,
		Args:    cobra.ExactArgs(1),
		Run:     tool.run,
	}
}

func (i *Inspect) String() string {
	return "inspect"
}

func (i *Inspect) run(cmd *cobra.Command, args []string) {
	buf, err := parseHex(args[0])
	if err != nil {
		log.Fatal(i, "Invalid hex input", "err", err)
		return
	}
	if err = i.inspect(cmd.OutOrStdout(), buf); err != nil {
		log.Fatal(i, "Unable to inspect PDU", "err", err)
	}
}

func (i *Inspect) inspect(out io.Writer, buf []byte) error {
	hdr, n, err := cfdp.UnpackHeader(buf)
	if err != nil {
		return err
	}
	cfg := hdr.Config

	p := toolutils.StatusPrinter{File: out, Padding: 16}
	p.PrintSection("header")
	p.Print("version", cfdp.Version)
	p.Print("pdu_type", hdr.PduType)
	p.Print("direction", cfg.Direction)
	p.Print("mode", cfg.TransmissionMode)
	p.Print("crc", cfg.Crc == cfdp.CrcPresent)
	p.Print("large_file", cfg.LargeFile == cfdp.LargeFile)
	p.Print("seg_ctrl", cfg.SegmentationControl == cfdp.RecordBoundaries)
	p.Print("seg_metadata", hdr.SegmentMetadata == cfdp.SegmentMetadataPresent)
	p.Print("entity_id_len", cfg.EntityIdWidth())
	p.Print("seq_num_len", cfg.TransactionSeqNum.Width())
	p.Print("transaction", cfg.TransactionId())
	p.Print("source", cfg.SourceEntityId.Value())
	p.Print("dest", cfg.DestEntityId.Value())
	p.Print("seq_num", cfg.TransactionSeqNum.Value())
	p.Print("header_len", n)
	p.Print("data_field_len", hdr.DataFieldLen)
	p.Print("pdu_len", hdr.PduLen())

	if hdr.PduType == cfdp.PduTypeFileDirective && len(buf) > n {
		code, _ := cfdp.PeekDirectiveCode(buf)
		p.Print("directive", code)
	}

	switch {
	case len(buf) < hdr.PduLen():
		p.Print("status", fmt.Sprintf("truncated (%d of %d octets)", len(buf), hdr.PduLen()))
	case cfg.Crc == cfdp.CrcPresent:
		computed, received, ok := checksum.VerifyCrc16(buf[:hdr.PduLen()])
		p.Print("crc16", utils.If(ok,
			fmt.Sprintf("%04x ok", received),
			fmt.Sprintf("%04x mismatch, computed %04x", received, computed)))
	}
	return nil
}
