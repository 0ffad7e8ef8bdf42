package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/wickjs/wick/internal/cli"
)

// watchDebounce batches the event bursts editors produce on save into one
// re-run.
const watchDebounce = 100 * time.Millisecond

// watchCmd re-runs a script whenever it changes on disk.
func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <script.js>",
		Short: "Re-run a script whenever it changes",
		Long: `Watch a script file and re-run it on every change. Each run gets a
fresh host, so state never leaks between runs. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				printScriptNotFound(path)
				os.Exit(1)
			}

			cfg, err := loadConfig()
			if err != nil {
				exitError(err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("start file watcher: %w", err)
			}
			defer watcher.Close()

			// Watch the directory rather than the file: editors often
			// replace the file on save, which drops a watch held on the
			// file itself.
			dir := filepath.Dir(path)
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}

			fmt.Print(cli.FormatNote("watching " + path + ", Ctrl+C to stop"))
			lastDigest, _ := fileDigest(path)
			runWatched(cfg, path)

			debounce := time.NewTimer(0)
			<-debounce.C

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			defer signal.Stop(sig)

			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(ev.Name) != filepath.Clean(path) {
						continue
					}
					if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
						debounce.Reset(watchDebounce)
					}
				case <-debounce.C:
					// Editors and build tools touch mtimes without
					// changing content; only content changes re-run.
					if digest, ok := fileDigest(path); ok {
						if digest == lastDigest {
							continue
						}
						lastDigest = digest
					}
					runWatched(cfg, path)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintln(os.Stderr, cli.Warning("watch: "+err.Error()))
				case <-sig:
					fmt.Println()
					return nil
				}
			}
		},
	}
	return cmd
}

// fileDigest returns the content checksum of path. Reads can fail
// transiently while an editor replaces the file; callers treat that as
// "changed" and let the run surface any real problem.
func fileDigest(path string) ([sha256.Size]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, false
	}
	return sha256.Sum256(data), true
}

// runWatched runs path in a fresh host and prints a status badge with the
// elapsed time.
func runWatched(cfg *Config, path string) {
	spinner := NewOptionalSpinner("Running "+path+"...", cli.EnableColors())

	start := time.Now()
	host, err := buildHost(cfg)
	if err != nil {
		spinner.Stop()
		exitError(err)
	}
	_, err = host.RunFile(path)
	host.Close()
	spinner.Stop()

	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		fmt.Println(cli.RenderErrorBadge() + " " + path + " " + cli.Dim(elapsed.String()))
		return
	}
	fmt.Println(cli.RenderOKBadge() + " " + path + " " + cli.Dim(elapsed.String()))
}
