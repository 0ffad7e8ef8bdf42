package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wickjs/wick/internal/cli"
)

const (
	mainTitle   = "⚡ Wick - Embedded JavaScript Host"
	mainSummary = "★  Run scripts with precise, styled errors"
)

// CommandInfo is one command row in the category help.
type CommandInfo struct {
	Name string
	Desc string
}

// CommandCategory groups commands under a section title.
type CommandCategory struct {
	Title    string
	Commands []CommandInfo
}

// FlagInfo is one global flag row in the category help.
type FlagInfo struct {
	Flag string
	Desc string
}

// renderCategoryHelp prints the root help: title, summary, usage line,
// command categories and global flags.
func renderCategoryHelp(title, summary string, categories []CommandCategory, flags []FlagInfo) {
	renderCategoryHelpTo(os.Stdout, title, summary, categories, flags)
}

func renderCategoryHelpTo(w io.Writer, title, summary string, categories []CommandCategory, flags []FlagInfo) {
	fmt.Fprintln(w, cli.Bold(title))
	fmt.Fprintln(w, cli.Dim(summary))
	fmt.Fprintln(w)

	fmt.Fprintln(w, cli.Header("USAGE"))
	fmt.Fprintln(w, "  wick <command> [flags]")
	fmt.Fprintln(w)

	nameWidth := 0
	for _, cat := range categories {
		for _, c := range cat.Commands {
			if len(c.Name) > nameWidth {
				nameWidth = len(c.Name)
			}
		}
	}

	for _, cat := range categories {
		fmt.Fprintln(w, cli.Header(strings.ToUpper(cat.Title)))
		for _, c := range cat.Commands {
			pad := strings.Repeat(" ", nameWidth-len(c.Name)+2)
			fmt.Fprintf(w, "  %s%s%s\n", cli.Cyan(c.Name), pad, c.Desc)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, cli.Header("FLAGS"))
	flagWidth := 0
	for _, f := range flags {
		if len(f.Flag) > flagWidth {
			flagWidth = len(f.Flag)
		}
	}
	for _, f := range flags {
		pad := strings.Repeat(" ", flagWidth-len(f.Flag)+2)
		fmt.Fprintf(w, "  %s%s%s\n", f.Flag, pad, cli.Dim(f.Desc))
	}
}
