package main

import (
	"os"

	"github.com/foriam/console/internal/console/cli"
)

func main() {
	os.Exit(cli.Execute())
}
