package main

import (
	"os"

	"ctpsim/cmd/ctpsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
