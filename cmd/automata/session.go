package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Step through a word one symbol per invocation",
	Long: `Interactive runs persisted as JSON files in <dir>/.automata/sessions.
Start a session with a word, then advance it one symbol at a time.`,
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <session-id> <automaton> [word]",
	Short: "Start (or restart) a session",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager(cmd)
		if err != nil {
			return err
		}
		run, err := mgr.Start(cmd.Context(), args[0], args[1], parseWord(cmd, wordArg(args, 2)))
		if err != nil {
			return err
		}
		printRun(cmd, run)
		return nil
	},
}

var sessionStepCmd = &cobra.Command{
	Use:   "step <session-id>",
	Short: "Consume the next symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := newSessionManager(cmd)
		if err != nil {
			return err
		}
		run, err := mgr.Step(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printRun(cmd, run)
		return nil
	},
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := sessionStore(cmd).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintln(out, "- "+s)
		}
		return nil
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := sessionStore(cmd).Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading session '%s': %w", args[0], err)
		}
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := sessionStore(cmd)
		failed := 0
		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", sessionID, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", sessionID)
		}
		if failed > 0 {
			return fmt.Errorf("%d sessions could not be removed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStartCmd, sessionStepCmd, sessionLsCmd, sessionInspectCmd, sessionRmCmd)
}

func sessionStore(cmd *cobra.Command) *file.Store {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = "."
	}
	return file.NewStore(filepath.Join(dir, file.DefaultSessionDir))
}

func newSessionManager(cmd *cobra.Command) (*session.Manager, error) {
	eng, err := newEngine(cmd)
	if err != nil {
		return nil, err
	}
	return session.NewManager(sessionStore(cmd), eng), nil
}

func printRun(cmd *cobra.Command, run *domain.Run) {
	out := cmd.OutOrStdout()
	last := run.History[len(run.History)-1]
	fmt.Fprintf(out, "%s  state=%s  consumed=%q  remaining=%q  [%s]\n",
		run.SessionID, run.Current, last.Consumed, domain.JoinWord(run.Remaining()), run.Status)
	if run.Error != "" {
		fmt.Fprintln(out, run.Error)
	}
}
