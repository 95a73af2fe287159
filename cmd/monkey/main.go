package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/monkeylang/monkey/runtime/lexer"
	"github.com/monkeylang/monkey/runtime/repl"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	debug   bool
	noColor bool
}

func main() {
	rootCmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
		FormatError(os.Stderr, err, ShouldUseColor(noColor, os.Stderr))
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "monkey",
		Short:         "Tokenize Monkey source code",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(stdin, stdout, stderr, flags, true)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Trace every token to stderr")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newREPLCmd(stdin, stdout, stderr, flags))
	rootCmd.AddCommand(newLexCmd(stdin, stdout, stderr, flags))
	return rootCmd
}

func newREPLCmd(stdin io.Reader, stdout, stderr io.Writer, flags *globalFlags) *cobra.Command {
	var noHints bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read lines and print their tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(stdin, stdout, stderr, flags, !noHints)
		},
	}
	cmd.Flags().BoolVar(&noHints, "no-hints", false, "Do not suggest keywords for misspelled identifiers")
	return cmd
}

func runREPL(stdin io.Reader, stdout, stderr io.Writer, flags *globalFlags, hints bool) error {
	logger := newLogger(stderr, flags)
	return repl.Start(stdin, stdout,
		repl.WithColor(ShouldUseColor(flags.noColor, stdout)),
		repl.WithHints(hints),
		repl.WithLexerOptions(lexer.WithLogger(logger)),
	)
}

// newLogger builds the stderr logger; --debug forces debug level
func newLogger(stderr io.Writer, flags *globalFlags) *slog.Logger {
	if flags.debug {
		return lexer.NewLoggerWithLevel(stderr, slog.LevelDebug)
	}
	return lexer.NewLogger(stderr)
}

// getInputReader handles the 3 modes of input:
// 1. Inline source with --expr
// 2. Explicit stdin with "-" or no argument
// 3. File input
func getInputReader(stdin io.Reader, args []string, expr string) (string, io.Reader, func() error, error) {
	noop := func() error { return nil }

	if expr != "" {
		if len(args) > 0 {
			return "", nil, nil, &CLIError{
				Type:    "input",
				Message: "cannot combine --expr with a file argument",
				Hint:    "Pass either a file or --expr, not both",
			}
		}
		return "<expr>", nil, noop, nil
	}

	if len(args) == 0 || args[0] == "-" {
		return "<stdin>", stdin, noop, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", nil, nil, &CLIError{
			Type:    "input",
			Message: fmt.Sprintf("error opening file %s", args[0]),
			Details: err.Error(),
		}
	}
	return args[0], f, f.Close, nil
}
