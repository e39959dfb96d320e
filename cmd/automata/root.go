package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/presentation/tui"
	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata runs deterministic finite automata",
	Long: `Automata loads DFA definitions from YAML, JSON or Markdown files and runs
words through them: single transitions, whole words, step-by-step traces,
or interactive sessions over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing automaton definitions")
	rootCmd.PersistentFlags().String("file", "", "Single definition file to load instead of --dir")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("sep", "", "Symbol separator for words (default: one symbol per character)")
}

// newEngine builds an Engine from the persistent flags.
func newEngine(cmd *cobra.Command, opts ...automata.Option) (*automata.Engine, error) {
	dir, _ := cmd.Flags().GetString("dir")
	path, _ := cmd.Flags().GetString("file")
	levelName, _ := cmd.Flags().GetString("log-level")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	opts = append([]automata.Option{automata.WithLogger(logging.New(level))}, opts...)

	if path != "" {
		loader, err := file.New(path)
		if err != nil {
			return nil, err
		}
		return automata.New("", append(opts, automata.WithLoader(loader))...)
	}
	return automata.New(dir, opts...)
}

// parseWord turns a command-line argument into a word.
func parseWord(cmd *cobra.Command, arg string) []string {
	sep, _ := cmd.Flags().GetString("sep")
	if sep == "" {
		return domain.SplitWord(arg)
	}
	if arg == "" {
		return []string{}
	}
	return strings.Split(arg, sep)
}

// wordArg returns args[i], or "" (the empty word) when absent.
func wordArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newPrinter(cmd *cobra.Command) *tui.Printer {
	out := cmd.OutOrStdout()
	return tui.NewPrinter(out, isTerminal(out))
}
