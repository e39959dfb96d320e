package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [automaton...]",
	Short: "Check definitions for consistency",
	Long: `Builds every definition (or only the given ones) and reports construction
errors, unreachable states and undefined transitions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		reports, err := validator.ValidateAll(cmd.Context(), eng.Loader())
		if err != nil {
			return err
		}
		if len(args) > 0 {
			reports = selectReports(reports, args)
		}

		p := newPrinter(cmd)
		invalid := 0
		for _, r := range reports {
			p.PrintReport(r)
			if !r.OK() {
				invalid++
			}
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d definitions are invalid", invalid, len(reports))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d definitions are valid\n", len(reports))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func selectReports(reports []validator.Report, ids []string) []validator.Report {
	byID := make(map[string]validator.Report, len(reports))
	for _, r := range reports {
		byID[r.ID] = r
	}
	out := make([]validator.Report, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			r = validator.Report{ID: id}
			r.Findings = append(r.Findings, validator.Finding{
				Severity: validator.SeverityError,
				Message:  "definition not found",
			})
		}
		out = append(out, r)
	}
	return out
}
