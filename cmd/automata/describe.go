package main

import (
	"fmt"

	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <automaton>",
	Short: "Show an automaton's states, alphabet and transitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}
		a, err := eng.Automaton(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		plain, _ := cmd.Flags().GetBool("plain")
		out := cmd.OutOrStdout()
		if plain {
			fmt.Fprint(out, a.Summary())
			return nil
		}

		md := tui.Describe(a)
		if !isTerminal(out) {
			fmt.Fprint(out, md)
			return nil
		}
		rendered, err := tui.NewRenderer()(md)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("plain", false, "Print a plain-text summary instead of markdown")
}
