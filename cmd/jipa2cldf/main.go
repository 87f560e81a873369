// Package main is the entry point for the jipa2cldf binary.
package main

import (
	"os"

	"github.com/phonodata/jipa2cldf/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
