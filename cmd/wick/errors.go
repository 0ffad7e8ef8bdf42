package main

import (
	"fmt"
	"os"

	"github.com/wickjs/wick/internal/cli"
)

// exitError prints a styled error and exits non-zero. Used where a command
// cannot continue.
func exitError(err error) {
	fmt.Fprint(os.Stderr, cli.FormatError(err))
	os.Exit(1)
}

// printScriptNotFound prints a helpful message when a script path does not
// resolve to a file.
func printScriptNotFound(path string) {
	fmt.Fprintln(os.Stderr, cli.Error("error")+": script file not found")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "  Got: %s\n", path)
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  wick run <script.js>")
	fmt.Fprintln(os.Stderr, "  wick watch <script.js>")
}
