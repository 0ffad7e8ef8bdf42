package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wickjs/wick/internal/cli"
)

// runCmd runs one or more script files.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.js> [script.js...]",
		Short: "Run script files",
		Long: `Run script files in order, each in its own host so state never leaks
between scripts. A failing script prints a styled diagnostic with the
failing source line and stops the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if _, err := os.Stat(path); err != nil {
					printScriptNotFound(path)
					os.Exit(1)
				}
			}

			if len(args) == 1 {
				runSingle(args[0])
				return nil
			}
			runBatch(args)
			return nil
		},
	}
	return cmd
}

// runSingle runs one script and exits non-zero on failure.
func runSingle(path string) {
	host, err := newHost()
	if err != nil {
		exitError(err)
	}
	defer host.Close()

	if _, err := host.RunFile(path); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

// runBatch runs each script in its own host with per-script progress,
// stopping at the first failure.
func runBatch(paths []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitError(err)
	}

	tp := cli.NewTaskProgress(paths)
	for i, path := range paths {
		tp.Start(i)

		host, err := buildHost(cfg)
		if err != nil {
			tp.Failed(err)
			exitError(err)
		}
		_, err = host.RunFile(path)
		host.Close()

		if err != nil {
			tp.Failed(err)
			fmt.Fprint(os.Stderr, cli.FormatError(err))
			os.Exit(1)
		}
		tp.Complete()
	}
	tp.Summary()
}
