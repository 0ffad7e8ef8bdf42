// Package main provides the CLI for the Wick JavaScript host.
// Wick embeds a JavaScript runtime behind a native error bridge: scripts
// run under a wall-clock budget and an optional heap watchdog, and failures
// print styled diagnostics with the failing source line and script stack.
//
// Usage:
//
//	wick run <script.js>    # Run script files
//	wick eval "<expr>"      # Evaluate an expression and print the result
//	wick repl               # Interactive session with history
//	wick watch <script.js>  # Re-run the script whenever it changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wickjs/wick/internal/cli"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	configFile  string
	timeoutFlag string
	memoryFlag  string
	stackDepth  int
	logLevel    string
	noColor     bool
	hardenFlag  bool
)

// registerGlobalFlags binds the global flag variables onto the root flag
// set. Flags take the highest precedence in config resolution.
func registerGlobalFlags(pf *pflag.FlagSet) {
	pf.StringVarP(&configFile, "config", "c", "wick.yaml", "Path to config file")
	pf.StringVar(&timeoutFlag, "timeout", "", "Wall-clock budget per run (e.g. 5s)")
	pf.StringVar(&memoryFlag, "memory-limit", "", "Heap budget (e.g. 64MB)")
	pf.IntVar(&stackDepth, "stack-depth", 0, "Call stack depth cap")
	pf.StringVar(&logLevel, "log-level", "", "Log verbosity: debug, info, warn, error")
	pf.BoolVar(&noColor, "no-color", false, "Plain output without styles")
	pf.BoolVar(&hardenFlag, "harden", false, "Disable eval and freeze core prototypes")
}

// helpLayout returns the command categories and global flag rows shown by
// the root help.
func helpLayout() ([]CommandCategory, []FlagInfo) {
	categories := []CommandCategory{
		{
			Title: "Execution",
			Commands: []CommandInfo{
				{"run", "Run script files"},
				{"eval", "Evaluate an expression and print the result"},
			},
		},
		{
			Title: "Interactive",
			Commands: []CommandInfo{
				{"repl", "Start an interactive session"},
				{"watch", "Re-run a script whenever it changes"},
			},
		},
	}

	flags := []FlagInfo{
		{"-c, --config", "Path to config file (default: wick.yaml)"},
		{"--timeout", "Wall-clock budget per run (e.g. 5s)"},
		{"--memory-limit", "Heap budget (e.g. 64MB)"},
		{"--stack-depth", "Call stack depth cap"},
		{"--log-level", "Log verbosity: debug, info, warn, error"},
		{"--harden", "Disable eval and freeze core prototypes"},
		{"--no-color", "Plain output without styles"},
		{"-h, --help", "Show help information"},
		{"--version", "Show version information"},
	}

	return categories, flags
}

// customHelp displays a styled help message for the root command.
func customHelp() {
	categories, flags := helpLayout()
	renderCategoryHelp(mainTitle, mainSummary, categories, flags)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "wick",
		Short:         "Embedded JavaScript host with precise error reporting",
		Long:          `Wick runs JavaScript behind a native error bridge: scripts execute under a wall-clock budget and an optional heap watchdog, and failures print styled diagnostics with the failing source line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The root help is category-styled; subcommands keep the standard
	// cobra layout.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.HasParent() {
			if cmd.Long != "" {
				fmt.Println(cmd.Long)
			} else if cmd.Short != "" {
				fmt.Println(cmd.Short)
			}
			fmt.Println()
			fmt.Print(cmd.UsageString())
			return
		}
		customHelp()
	})

	// Color overrides from flag and environment apply before any command
	// output. The config file's color key is folded in by loadConfig.
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("WICK_NO_COLOR") != "" {
			cli.SetDefault(cli.NewConfigWithMode(cli.ModePlain))
		}
	}

	registerGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		runCmd(),
		evalCmd(),
		replCmd(),
		watchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
