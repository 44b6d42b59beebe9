// Command solv validates Visual Studio solution files without opening the
// IDE: it parses each file into a model and reports dangling references,
// nesting cycles, missing configuration mappings and duplicated project
// identities.
//
// Flags can be defaulted through SOLV_* environment variables; a .env file
// in the working directory is honored when present.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errProblems) {
			return 1
		}
		fmt.Fprintln(os.Stderr, "solv:", err)
		return 2
	}
	return 0
}

// errProblems marks a run whose files failed to parse or produced
// error-severity findings. The diagnostics are already rendered by the time
// it propagates; main only maps it to the exit status.
var errProblems = errors.New("validation problems found")

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "solv",
		Short: "Visual Studio solution file validator",
		Long: `solv parses Visual Studio solution files and validates their structure:
project references, solution folder nesting and configuration mappings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			setupLogging(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newDirCmd(), newSolutionCmd())
	return root
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if envOr("SOLV_LOG", "text") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// envOr returns the environment value for key, or fallback when unset or
// empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("ignoring non-numeric environment value", "key", key, "value", v)
	}
	return fallback
}
