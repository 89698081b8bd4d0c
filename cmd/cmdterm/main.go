package main

import (
	"os"

	"github.com/baaaaaaaka/cmdterm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
