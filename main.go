package main

import (
	"os"

	"github.com/cer4sco/freesscan/cmd/freesscan"
)

func main() {
	os.Exit(freesscan.Execute())
}
