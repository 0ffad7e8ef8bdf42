package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wickjs/wick/internal/cli"
)

// evalCmd evaluates a single expression and prints the result.
func evalCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				exitError(err)
			}
			defer host.Close()

			v, err := host.RunString(args[0])
			if err != nil {
				if jsonOutput {
					outputJSON(map[string]any{
						"ok":    false,
						"error": err.Error(),
					})
				} else {
					fmt.Fprint(os.Stderr, cli.FormatError(err))
				}
				os.Exit(1)
			}

			if jsonOutput {
				outputJSON(map[string]any{
					"ok":    true,
					"value": v.Export(),
				})
			} else {
				fmt.Println(v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
