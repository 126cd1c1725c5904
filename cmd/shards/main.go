// Package main is the entry point for the shards CLI.
package main

import (
	"os"

	"github.com/jmylchreest/shardscout/cmd/shards/commands"
)

func main() {
	os.Exit(commands.Execute())
}
