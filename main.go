package main

import (
	"os"

	"lumen/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
