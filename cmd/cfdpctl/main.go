package main

import (
	"os"

	"github.com/spacepackets-go/spacepackets/cmd"
)

func main() {
	if err := cmd.CmdCfdpctl.Execute(); err != nil {
		os.Exit(1)
	}
}
