package main

import (
	"os"

	"github.com/rustyeddy/bithumb/cmd/bithumb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
