package main

import (
	"os"

	"github.com/Makepad-fr/todo/internal/cli"
)

var version = "dev"

func main() {
	// Hand the args to the CLI runner; no args lists open items.
	code := cli.Run(os.Args[1:], cli.Options{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Version: version,
	})
	os.Exit(code)
}
