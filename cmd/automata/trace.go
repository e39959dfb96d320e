package main

import (
	"encoding/json"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <automaton> [word]",
	Short: "Print every step of a run",
	Long: `Prints one line per configuration: the current state, the symbol just
consumed and the remaining input. An undefined transition prints an error and
no partial trace.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}
		state, _ := cmd.Flags().GetString("state")
		asJSON, _ := cmd.Flags().GetBool("json")
		word := parseWord(cmd, wordArg(args, 1))

		steps, out, err := eng.Trace(cmd.Context(), args[0], state, word)
		if err != nil && !dfa.IsUndefined(err) {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			resp := struct {
				Steps []domain.Step `json:"steps"`
				domain.Outcome
				Error string `json:"error,omitempty"`
			}{Steps: steps, Outcome: out}
			if err != nil {
				resp.Error = err.Error()
			}
			if encErr := enc.Encode(resp); encErr != nil {
				return encErr
			}
		} else if err != nil {
			newPrinter(cmd).PrintError(err)
		} else {
			newPrinter(cmd).PrintTrace(steps, out)
		}

		if err != nil || !out.Accepting {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().String("state", "", "Start state (default: the initial state)")
	traceCmd.Flags().Bool("json", false, "Print the trace as JSON")
}
