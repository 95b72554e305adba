package main

import (
	"os"

	"github.com/bnema/credit-entry-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
