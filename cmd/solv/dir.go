package main

import (
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/slntools/solv"
)

func newDirCmd() *cobra.Command {
	var (
		pattern      string
		onlyProblems bool
		info         bool
		asJSON       bool
		workers      int
	)
	cmd := &cobra.Command{
		Use:     "dir PATH",
		Aliases: []string{"d", "directory"},
		Short:   "Validate every solution file under a directory",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			started := time.Now()
			scanner := &solv.Scanner{MaxParallelism: workers, Pattern: pattern}
			report, scanErr := scanner.Scan(ctx, args[0])
			if report == nil {
				return scanErr
			}
			elapsed := time.Since(started)
			slog.Debug("scan finished",
				"root", args[0],
				"files", report.Files,
				"failed", report.Failed,
				"elapsed", elapsed)

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				if err := renderReportJSON(out, report); err != nil {
					return err
				}
			case info:
				renderReportInfo(out, report)
				renderSummary(out, report, elapsed)
			default:
				renderValidation(out, report, onlyProblems)
				renderSummary(out, report, elapsed)
			}
			if scanErr != nil {
				return scanErr
			}
			if report.Failed > 0 || report.ErrorFindings > 0 {
				return errProblems
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&pattern, "pattern", "p",
		envOr("SOLV_PATTERN", solv.DefaultPattern),
		"glob pattern, relative to PATH, that solution files must match")
	flags.BoolVar(&onlyProblems, "problems", false,
		"print only solutions with findings or failures")
	flags.BoolVarP(&info, "info", "i", false,
		"print solution statistics instead of validation results")
	flags.BoolVarP(&asJSON, "json", "j", false,
		"emit the parsed models and findings as JSON")
	flags.IntVarP(&workers, "workers", "w", envIntOr("SOLV_WORKERS", 0),
		"concurrent workers, 0 means all available CPUs")
	return cmd
}
