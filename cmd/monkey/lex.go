package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/monkeylang/monkey/runtime/lexer"
	"github.com/monkeylang/monkey/runtime/tokenfmt"
)

type lexFlags struct {
	expr   string
	format string
	stats  bool
	strict bool
}

func newLexCmd(stdin io.Reader, stdout, stderr io.Writer, global *globalFlags) *cobra.Command {
	flags := &lexFlags{}

	cmd := &cobra.Command{
		Use:   "lex [file|-]",
		Short: "Tokenize a file, stdin or an expression",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(stdin, stdout, stderr, args, flags, global)
		},
	}

	cmd.Flags().StringVarP(&flags.expr, "expr", "e", "", "Source text to tokenize instead of a file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", string(tokenfmt.FormatText),
		fmt.Sprintf("Output format: %s", strings.Join(formatNames(), ", ")))
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Print per-type token counts and timings to stderr")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail when the input contains illegal characters")
	return cmd
}

func formatNames() []string {
	names := make([]string, len(tokenfmt.Formats))
	for i, f := range tokenfmt.Formats {
		names[i] = string(f)
	}
	return names
}

func runLex(stdin io.Reader, stdout, stderr io.Writer, args []string, flags *lexFlags, global *globalFlags) error {
	format, err := tokenfmt.ParseFormat(flags.format)
	if err != nil {
		return &CLIError{Type: "input", Message: err.Error()}
	}

	name, reader, closeFunc, err := getInputReader(stdin, args, flags.expr)
	if err != nil {
		return err
	}
	defer func() { _ = closeFunc() }()

	source := flags.expr
	if reader != nil {
		data, err := io.ReadAll(reader)
		if err != nil {
			return &CLIError{Type: "input", Message: fmt.Sprintf("error reading %s", name), Details: err.Error()}
		}
		source = string(data)
	}

	logger := newLogger(stderr, global)
	opts := []lexer.LexerOpt{lexer.WithLogger(logger)}
	if flags.stats {
		opts = append(opts, lexer.WithTelemetryTiming())
	}

	l, err := lexer.New(source, opts...)
	if errors.Is(err, lexer.ErrInvalidInput) {
		return &CLIError{
			Type:    "input",
			Message: fmt.Sprintf("%s: nothing to tokenize", name),
			Details: err.Error(),
			Hint:    "Provide non-blank Monkey source",
		}
	}
	if err != nil {
		return err
	}

	tokens := l.Tokens()

	var illegal []string
	for i, tok := range tokens {
		if tok.Type == lexer.ILLEGAL {
			illegal = append(illegal, fmt.Sprintf("%q", tok.Literal))
			if !flags.strict {
				logger.Warn("illegal character", "source", name, "token", i, "literal", tok.Literal)
			}
		}
	}
	if flags.strict && len(illegal) > 0 {
		return &CLIError{
			Type:    "lex",
			Message: fmt.Sprintf("%s: %d illegal character(s)", name, len(illegal)),
			Details: strings.Join(illegal, " "),
			Hint:    "Remove the characters or run without --strict",
		}
	}

	useColor := format == tokenfmt.FormatText && ShouldUseColor(global.noColor, stdout)
	if err := tokenfmt.Write(stdout, tokens, format, tokenfmt.WithColor(useColor)); err != nil {
		return &CLIError{Type: "output", Message: "error writing tokens", Details: err.Error()}
	}

	if flags.stats {
		writeStats(stderr, l.Telemetry())
	}
	return nil
}

// writeStats prints telemetry ordered by token type
func writeStats(w io.Writer, telemetry map[lexer.TokenType]*lexer.TokenTelemetry) {
	types := make([]lexer.TokenType, 0, len(telemetry))
	for t := range telemetry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	_, _ = fmt.Fprintf(w, "%-10s %6s %12s\n", "TYPE", "COUNT", "AVG")
	for _, t := range types {
		tel := telemetry[t]
		_, _ = fmt.Fprintf(w, "%-10s %6d %12s\n", t, tel.Count, tel.AvgTime)
	}
}
