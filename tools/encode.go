package tools

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spacepackets-go/spacepackets/std/cfdp"
	"github.com/spacepackets-go/spacepackets/std/log"
	"github.com/spacepackets-go/spacepackets/std/utils/toolutils"
	"github.com/spf13/cobra"
)

type Encode struct {
	flags struct {
		raw bool
	}
}

func CmdEncode() *cobra.Command {
	tool := Encode{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "encode DESCRIPTION-FILE",
		Short:   "Encode a CFDP PDU from a YAML description",
		Long: `Encode a CFDP PDU from a YAML description and print it as hex.

The description has a "config" block with the transaction header fields
and a "pdu" block naming the PDU type and its fields. The format is the
one printed by "decode". Use "-" to read the description from stdin.`,
		Example: `  cfdpctl encode eof.yml
  cfdpctl decode 2400... | cfdpctl encode -`,
		Args: cobra.ExactArgs(1),
		Run:  tool.run,
	}

	cmd.Flags().BoolVar(&tool.flags.raw, "raw", false, "Write the PDU as binary instead of hex")

	return cmd
}

func (e *Encode) String() string {
	return "encode"
}

func (e *Encode) run(cmd *cobra.Command, args []string) {
	var desc toolutils.PduDescription
	var err error
	if args[0] == "-" {
		err = toolutils.DecodeYaml(&desc, cmd.InOrStdin())
	} else {
		err = toolutils.ReadYaml(&desc, args[0])
	}
	if err != nil {
		log.Fatal(e, "Unable to read PDU description", "err", err)
		return
	}

	if err = e.encode(cmd.OutOrStdout(), desc); err != nil {
		log.Fatal(e, "Unable to encode PDU", "err", err)
	}
}

func (e *Encode) encode(out io.Writer, desc toolutils.PduDescription) error {
	cfg, body, err := desc.Build()
	if err != nil {
		return err
	}
	wire, err := cfdp.Pack(cfg, body)
	if err != nil {
		return err
	}
	log.Debug(e, "Encoded PDU", "type", desc.Pdu.Type, "len", len(wire))

	if e.flags.raw {
		_, err = out.Write(wire)
		return err
	}
	_, err = fmt.Fprintln(out, hex.EncodeToString(wire))
	return err
}
