// Package repl implements the interactive read-lex-print loop.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/monkeylang/monkey/core/invariant"
	"github.com/monkeylang/monkey/runtime/lexer"
	"github.com/monkeylang/monkey/runtime/tokenfmt"
)

// PROMPT is printed before every line of input
const PROMPT = ">> "

// MaxLineSize bounds a single input line
const MaxLineSize = 16 * 1024 * 1024

// Option configures the REPL
type Option func(*config)

type config struct {
	prompt    string
	color     bool
	hints     bool
	lexerOpts []lexer.LexerOpt
}

// WithPrompt replaces the default prompt
func WithPrompt(prompt string) Option {
	return func(c *config) {
		c.prompt = prompt
	}
}

// WithColor prints illegal tokens and hints in color
func WithColor(enabled bool) Option {
	return func(c *config) {
		c.color = enabled
	}
}

// WithHints enables "did you mean" suggestions for misspelled keywords
func WithHints(enabled bool) Option {
	return func(c *config) {
		c.hints = enabled
	}
}

// WithLexerOptions passes options to every lexer the REPL creates
func WithLexerOptions(opts ...lexer.LexerOpt) Option {
	return func(c *config) {
		c.lexerOpts = append(c.lexerOpts, opts...)
	}
}

// Start reads lines from in until EOF and prints the tokens of each line to out.
// Blank lines are skipped. It returns the read error, if any.
func Start(in io.Reader, out io.Writer, opts ...Option) error {
	invariant.NotNil(in, "in")
	invariant.NotNil(out, "out")

	cfg := &config{prompt: PROMPT, hints: true}
	for _, opt := range opts {
		opt(cfg)
	}

	fmt.Fprintln(out, "Hello! This is the Monkey programming language!")
	fmt.Fprintln(out, "Feel free to type in commands")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for {
		fmt.Fprint(out, cfg.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		if err := printLine(out, scanner.Text(), cfg); err != nil {
			return err
		}
	}
}

func printLine(out io.Writer, line string, cfg *config) error {
	l, err := lexer.New(line, cfg.lexerOpts...)
	if errors.Is(err, lexer.ErrInvalidInput) {
		return nil
	}
	if err != nil {
		return err
	}

	var hints []string
	seen := make(map[string]bool)
	for tok := l.NextToken(); tok.Type != lexer.EOF; tok = l.NextToken() {
		if tok.Type == lexer.ILLEGAL {
			fmt.Fprintln(out, tokenfmt.Colorize(tok.String(), tokenfmt.ColorRed, cfg.color))
			continue
		}
		fmt.Fprintln(out, tok.String())

		if cfg.hints && tok.Type == lexer.IDENTIFIER && !seen[tok.Literal] {
			seen[tok.Literal] = true
			if keyword, ok := closestKeyword(tok.Literal); ok {
				hints = append(hints, fmt.Sprintf("hint: %q is an identifier, did you mean %q?", tok.Literal, keyword))
			}
		}
	}

	for _, hint := range hints {
		fmt.Fprintln(out, tokenfmt.Colorize(hint, tokenfmt.ColorGray, cfg.color))
	}
	return nil
}
