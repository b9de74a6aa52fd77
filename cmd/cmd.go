package cmd

import (
	"os"

	"github.com/spacepackets-go/spacepackets/std/log"
	"github.com/spacepackets-go/spacepackets/std/utils"
	"github.com/spacepackets-go/spacepackets/tools"
	"github.com/spf13/cobra"
)

const banner = `
   ____ _____ ____  ____
  / ___|  ___|  _ \|  _ \
 | |   | |_  | | | | |_) |
 | |___|  _| | |_| |  __/
  \____|_|   |____/|_|

CCSDS File Delivery Protocol PDU Tool
`

var rootFlags = struct {
	logLevel  log.Level
	logFormat log.Format
}{
	logLevel:  log.LevelWarn,
	logFormat: log.FormatText,
}

type cfdpctl struct{}

func (cfdpctl) String() string { return "cfdpctl" }

var CmdCfdpctl = &cobra.Command{
	Use:               "cfdpctl",
	Short:             "CCSDS File Delivery Protocol PDU Tool",
	Long:              banner[1:],
	Version:           utils.Version,
	PersistentPreRunE: setupLogging,
}

func init() {
	cobra.EnableCommandSorting = false
	CmdCfdpctl.Root().CompletionOptions.HiddenDefaultCmd = true
	CmdCfdpctl.PersistentFlags().BoolP("help", "h", false, "Print usage")
	CmdCfdpctl.PersistentFlags().Lookup("help").Hidden = true
	CmdCfdpctl.PersistentFlags().Var(&rootFlags.logLevel, "log-level", "Log level: TRACE, DEBUG, INFO, WARN, ERROR")
	CmdCfdpctl.PersistentFlags().Var(&rootFlags.logFormat, "log-format", "Log format: text, json")

	CmdCfdpctl.AddGroup(&cobra.Group{ID: "tools", Title: "PDU Tools"})
	CmdCfdpctl.AddCommand(tools.CmdDecode())
	CmdCfdpctl.AddCommand(tools.CmdEncode())
	CmdCfdpctl.AddCommand(tools.CmdInspect())
	CmdCfdpctl.AddCommand(tools.CmdChecksum())
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	logger, err := log.New(rootFlags.logFormat, os.Stderr)
	if err != nil {
		return err
	}
	logger.SetLevel(rootFlags.logLevel)
	log.SetDefault(logger)
	log.Debug(cfdpctl{}, "Logging configured", "level", rootFlags.logLevel, "command", cmd.Name())
	return nil
}
