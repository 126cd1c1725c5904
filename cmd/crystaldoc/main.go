// Package main is the entry point for the crystaldoc CLI.
package main

import (
	"os"

	"github.com/jmylchreest/shardscout/cmd/crystaldoc/commands"
)

func main() {
	os.Exit(commands.Execute())
}
