package main

import (
	"os"

	"rollbook/cmd/rollbook/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
