package main

import (
	"os"

	"github.com/conneroisu/starter/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
