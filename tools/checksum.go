package tools

import (
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/spacepackets-go/spacepackets/std/cfdp/checksum"
	"github.com/spacepackets-go/spacepackets/std/log"
	"github.com/spf13/cobra"
)

type Checksum struct {
	flags struct {
		kind   string
		offset uint64
	}
}

func CmdChecksum() *cobra.Command {
	tool := Checksum{}

	cmd := &cobra.Command{
		GroupID: "tools",
		Use:     "checksum FILE",
		Short:   "Compute a CFDP file checksum",
		Long: `Compute the file checksum carried in EOF PDUs.

Supported types are modular, crc32, crc32c and null. With --offset the
file is treated as a segment starting at that file offset, which only
changes the modular checksum.`,
		Example: `  cfdpctl checksum image.bin
  cfdpctl checksum image.bin --type crc32c`,
		Args: cobra.ExactArgs(1),
		Run:  tool.run,
	}

	cmd.Flags().StringVarP(&tool.flags.kind, "type", "t", "modular", "Checksum type")
	cmd.Flags().Uint64Var(&tool.flags.offset, "offset", 0, "File offset of the first octet")

	return cmd
}

func (c *Checksum) String() string {
	return "checksum"
}

func (c *Checksum) run(cmd *cobra.Command, args []string) {
	f, err := os.Open(args[0])
	if err != nil {
		log.Fatal(c, "Unable to open file", "file", args[0], "err", err)
		return
	}
	defer f.Close()

	if err = c.compute(cmd.OutOrStdout(), f); err != nil {
		log.Fatal(c, "Unable to compute checksum", "file", args[0], "err", err)
	}
}

func (c *Checksum) compute(out io.Writer, r io.Reader) error {
	kind, err := checksum.ParseType(c.flags.kind)
	if err != nil {
		return err
	}

	var h hash.Hash32
	if kind == checksum.Modular {
		h = checksum.NewModular(c.flags.offset)
	} else if h, err = checksum.New(kind); err != nil {
		return err
	}

	n, err := io.Copy(h, r)
	if err != nil {
		return err
	}
	log.Debug(c, "Checksum computed", "type", kind, "bytes", n)

	_, err = fmt.Fprintf(out, "%08x\n", h.Sum32())
	return err
}
