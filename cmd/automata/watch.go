package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <automaton> [word]",
	Short: "Re-run a trace whenever the definitions in --dir change",
	Long: `Development mode: prints the trace of word, then reloads the automaton and
prints it again each time a definition file changes, until interrupted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}
		changes, err := eng.Watch(ctx)
		if err != nil {
			return err
		}

		id := args[0]
		word := parseWord(cmd, wordArg(args, 1))
		p := newPrinter(cmd)
		out := cmd.OutOrStdout()

		render := func() {
			steps, outcome, err := eng.Trace(ctx, id, "", word)
			if err != nil {
				// Watching continues after a broken definition.
				p.PrintError(err)
				return
			}
			p.PrintTrace(steps, outcome)
		}

		render()
		for changed := range changes {
			fmt.Fprintf(out, "\n--- %s changed ---\n", changed)
			if changed == id {
				render()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
