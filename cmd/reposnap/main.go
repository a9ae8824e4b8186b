package main

import (
	"os"

	"github.com/dshills/reposnap/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
