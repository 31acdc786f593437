package main

import (
	"os"
	_ "time/tzdata"

	"github.com/cleared-dev/fareview/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
