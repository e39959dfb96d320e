package main

import (
	"errors"

	"github.com/aretw0/automata/pkg/dfa"
	"github.com/spf13/cobra"
)

// errRejected reports a rejected word through the exit status.
var errRejected = errors.New("word rejected")

var runCmd = &cobra.Command{
	Use:   "run <automaton> [word]",
	Short: "Run a word and print the final state",
	Long: `Runs the whole word through the automaton (the extended transition function)
and prints the final state and whether it is accepting. An undefined transition
rejects the word. The exit status is 1 unless the word is accepted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}
		state, _ := cmd.Flags().GetString("state")
		word := parseWord(cmd, wordArg(args, 1))

		p := newPrinter(cmd)
		out, err := eng.Extended(cmd.Context(), args[0], state, word)
		if err != nil {
			if !dfa.IsUndefined(err) {
				return err
			}
			p.PrintError(err)
			return errRejected
		}

		p.PrintOutcome(word, out)
		if !out.Accepting {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("state", "", "Start state (default: the initial state)")
}
