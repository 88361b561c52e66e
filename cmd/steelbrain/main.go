package main

import (
	"os"

	"github.com/nvaldez/steelbrain/cmd/steelbrain/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
