package main

import (
	"os"

	"github.com/comitanigiacomo/presence-analyzer/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
