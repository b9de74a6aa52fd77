package tools

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/spacepackets-go/spacepackets/std/cfdp"
	"github.com/spacepackets-go/spacepackets/std/log"
	sio "github.com/spacepackets-go/spacepackets/std/utils/io"
	"github.com/spacepackets-go/spacepackets/std/utils/toolutils"
	"github.com/spf13/cobra"
)

type Decode struct {
	flags struct {
		file      string
		unchecked bool
		dedup     bool
	}

	seen map[uint64]struct{}
}

func CmdDecode() *cobra.Command {
	tool := Decode{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "decode [HEX...]",
		Short:   "Decode CFDP PDUs",
		Long: `Decode CFDP PDUs and print them as YAML documents.

Each argument is one hex encoded PDU. Octets may be separated by spaces,
commas or colons. With --file, the PDUs are read back to back from a
binary capture instead ("-" reads stdin).

The output can be passed to "encode" to rebuild the same PDUs.`,
		Example: `  cfdpctl decode 24000a00010002040000000000000000
  cfdpctl decode --file capture.bin`,
		Run: tool.run,
	}

	cmd.Flags().StringVarP(&tool.flags.file, "file", "f", "", "Read PDUs from a binary capture file")
	cmd.Flags().BoolVar(&tool.flags.unchecked, "unchecked", false, "Skip CRC verification")
	cmd.Flags().BoolVar(&tool.flags.dedup, "dedup", false, "Skip PDUs identical to an earlier one, e.g. retransmissions")

	return cmd
}

func (d *Decode) String() string {
	return "decode"
}

func (d *Decode) run(cmd *cobra.Command, args []string) {
	var err error
	if d.flags.file != "" {
		if len(args) > 0 {
			log.Fatal(d, "Hex arguments cannot be combined with --file")
			return
		}
		err = d.decodeFile(cmd.OutOrStdout(), cmd.InOrStdin(), d.flags.file)
	} else {
		if len(args) == 0 {
			log.Fatal(d, "No PDU given")
			return
		}
		err = d.decodeHex(cmd.OutOrStdout(), args)
	}
	if err != nil {
		log.Fatal(d, "Unable to decode PDUs", "err", err)
	}
}

func (d *Decode) decodeHex(out io.Writer, args []string) error {
	for i, arg := range args {
		buf, err := parseHex(arg)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		if err := d.print(out, buf); err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
	}
	return nil
}

func (d *Decode) decodeFile(out io.Writer, stdin io.Reader, file string) error {
	reader := stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		reader = f
	}

	count, failed := 0, 0
	var printErr error
	err := sio.ReadPduStream(reader, func(frame []byte) bool {
		count++
		if err := d.print(out, frame); err != nil {
			if errors.Is(err, errOutput) {
				printErr = err
				return false
			}
			failed++
			log.Warn(d, "Skipping undecodable PDU", "index", count, "err", err)
		}
		return true
	}, nil)
	if err != nil {
		return err
	}
	if printErr != nil {
		return printErr
	}

	log.Info(d, "Capture decoded", "pdus", count, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d PDUs failed to decode", failed, count)
	}
	return nil
}

var errOutput = errors.New("output error")

// duplicate reports whether an identical PDU was seen before.
func (d *Decode) duplicate(buf []byte) bool {
	if !d.flags.dedup {
		return false
	}
	if d.seen == nil {
		d.seen = make(map[uint64]struct{})
	}
	h := xxhash.Sum64(buf)
	if _, ok := d.seen[h]; ok {
		return true
	}
	d.seen[h] = struct{}{}
	return false
}

func (d *Decode) print(out io.Writer, buf []byte) error {
	if d.duplicate(buf) {
		log.Debug(d, "Skipping duplicate PDU", "len", len(buf))
		return nil
	}

	unpack := cfdp.Unpack
	if d.flags.unchecked {
		unpack = cfdp.UnpackUnchecked
	}
	pdu, err := unpack(buf)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(out, "---\n"); err != nil {
		return fmt.Errorf("%w: %w", errOutput, err)
	}
	if err := toolutils.WriteYaml(out, toolutils.Describe(pdu)); err != nil {
		return fmt.Errorf("%w: %w", errOutput, err)
	}
	return nil
}

// parseHex decodes a hex string, ignoring separators and a 0x prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ",", "", ":", "", "\n", "", "\t", "").Replace(s)
	return hex.DecodeString(s)
}
