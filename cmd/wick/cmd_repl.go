package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/wickjs/wick/internal/cli"
	"github.com/wickjs/wick/internal/wkerr"
	"github.com/wickjs/wick/pkg/wick"
)

const (
	promptMain = ">>> "
	promptMore = "... "
)

// replCmd starts an interactive session against one persistent host.
func replCmd() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session with persistent state.

Features:
  - Command history (up/down arrows, Ctrl+R to search)
  - Multi-line input: incomplete statements continue on the next prompt
  - Ctrl+C clears the current input, Ctrl+D exits

Type 'exit' or 'quit' to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				exitError(err)
			}

			hist := historyFile
			if hist == "" {
				hist = cfg.HistoryFile
			}
			if hist == "" {
				home, _ := os.UserHomeDir()
				hist = filepath.Join(home, ".wick_history")
			}

			host, err := buildHost(cfg)
			if err != nil {
				exitError(err)
			}
			defer host.Close()

			return runRepl(host, hist)
		},
	}

	cmd.Flags().StringVar(&historyFile, "history", "", "History file path (default: ~/.wick_history)")
	return cmd
}

// runRepl reads, runs and prints until EOF. State persists across inputs
// because every line runs in the same host.
func runRepl(host *wick.Host, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            promptMain,
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(os.Stderr, "wick %s (type 'exit' to quit, Ctrl+D to exit)\n", version)

	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buf.Len() > 0 {
				buf.Reset()
				rl.SetPrompt(promptMain)
			}
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if buf.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if trimmed == "exit" || trimmed == "quit" {
				return nil
			}
		}

		buf.WriteString(line)
		src := buf.String()

		v, runErr := host.RunString(src)
		if runErr != nil && incompleteInput(runErr) {
			buf.WriteString("\n")
			rl.SetPrompt(promptMore)
			continue
		}

		buf.Reset()
		rl.SetPrompt(promptMain)

		if runErr != nil {
			fmt.Fprint(os.Stderr, cli.FormatError(runErr))
			continue
		}
		if v != nil {
			fmt.Println(v.String())
		}
	}
}

// incompleteInput reports whether a run failed only because the source ends
// mid-statement, in which case the REPL keeps reading instead of printing
// the error.
func incompleteInput(err error) bool {
	var werr *wkerr.Error
	if !errors.As(err, &werr) {
		return false
	}
	if werr.GetDomain() != wkerr.DomainScript || werr.GetCode() != wkerr.CodeScriptSyntax {
		return false
	}
	return strings.Contains(err.Error(), "Unexpected end of input")
}
