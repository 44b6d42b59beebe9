package main

import (
	"github.com/spf13/cobra"

	"github.com/slntools/solv"
)

func newSolutionCmd() *cobra.Command {
	var (
		info   bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "solution PATH",
		Aliases: []string{"s", "single"},
		Short:   "Validate a single solution file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sol, err := solv.ParseFile(args[0])
			if err != nil {
				renderFailure(cmd.ErrOrStderr(), args[0], err)
				return errProblems
			}
			findings := solv.Validate(sol)
			switch {
			case asJSON:
				if err := writeJSON(out, sol); err != nil {
					return err
				}
			case info:
				renderSolutionInfo(out, sol)
			default:
				renderSolution(out, args[0], findings)
			}
			if hasErrorFindings(findings) {
				return errProblems
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&info, "info", "i", false,
		"print solution statistics instead of validation results")
	flags.BoolVarP(&asJSON, "json", "j", false,
		"emit the parsed model as JSON")
	return cmd
}

func hasErrorFindings(findings []solv.Finding) bool {
	for _, f := range findings {
		if f.Severity == solv.SeverityError {
			return true
		}
	}
	return false
}
