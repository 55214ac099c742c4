// Command magpie is the guided support-case creation tool.
package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/Magpie/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
