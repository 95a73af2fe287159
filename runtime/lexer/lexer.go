// Package lexer converts Monkey source text into a stream of tokens.
//
// A Lexer owns its input and a private cursor. Callers pull tokens one at a
// time with NextToken until they see EOF; after that every call returns EOF
// again. A Lexer is single-use and not safe for concurrent use. The keyword
// and operator tables are read-only and shared by all lexers.
package lexer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/monkeylang/monkey/core/invariant"
)

// ErrInvalidInput is returned by New when the input is empty or only whitespace
var ErrInvalidInput = errors.New("invalid input")

// eofChar is the sentinel held by the cursor once input is exhausted
const eofChar byte = 0

// cursor tracks scan progress through the input.
// readPosition is always position+1.
type cursor struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination, eofChar when exhausted
}

func newCursor(input string) cursor {
	c := cursor{input: input}
	c.readChar()
	return c
}

// readChar moves the cursor one character forward
func (c *cursor) readChar() {
	if c.readPosition >= len(c.input) {
		c.ch = eofChar
	} else {
		c.ch = c.input[c.readPosition]
	}
	c.position = c.readPosition
	c.readPosition++
}

// peek returns the character after the current one without consuming it
func (c *cursor) peek() byte {
	if c.readPosition >= len(c.input) {
		return eofChar
	}
	return c.input[c.readPosition]
}

// exhausted reports whether the cursor is past the last character. A NUL
// byte inside the input is not the end.
func (c *cursor) exhausted() bool {
	return c.position >= len(c.input)
}

// advance consumes n characters
func (c *cursor) advance(n int) {
	invariant.Precondition(n >= 0, "advance count must be non-negative, got %d", n)
	prev := c.position
	for i := 0; i < n; i++ {
		c.readChar()
	}
	invariant.Invariant(c.position == prev+n, "position moved from %d to %d, want +%d", prev, c.position, n)
	invariant.Invariant(c.readPosition == c.position+1, "readPosition %d out of step with position %d", c.readPosition, c.position)
}

func (c *cursor) skipWhitespace() {
	for !c.exhausted() && IsWhitespace(c.ch) {
		c.readChar()
	}
}

// runLength counts consecutive characters from the current position that
// satisfy class
func (c *cursor) runLength(class func(byte) bool) int {
	n := 0
	for c.position+n < len(c.input) && class(c.input[c.position+n]) {
		n++
	}
	return n
}

// scan classifies the current character and returns the token together with
// the number of characters it consumes. The cursor is not moved.
func (c *cursor) scan() (Token, int) {
	if c.exhausted() {
		return Token{Type: EOF, Literal: ""}, 0
	}

	ch := c.ch

	for _, op := range twoCharTokens {
		if ch == op.literal[0] && c.peek() == op.literal[1] {
			return Token{Type: op.typ, Literal: op.literal}, 2
		}
	}

	if tokenType, ok := singleCharTokens[ch]; ok {
		return Token{Type: tokenType, Literal: c.input[c.position : c.position+1]}, 1
	}

	if IsLetter(ch) {
		n := c.runLength(IsLetter)
		ident := c.input[c.position : c.position+n]
		return Token{Type: LookupIdent(ident), Literal: ident}, n
	}

	if IsDigit(ch) {
		n := c.runLength(IsDigit)
		return Token{Type: INTEGER, Literal: c.input[c.position : c.position+n]}, n
	}

	// Unrecognized character. Multi-byte UTF-8 sequences are reported whole.
	size := 1
	if ch >= utf8.RuneSelf {
		if _, s := utf8.DecodeRuneInString(c.input[c.position:]); s > 1 {
			size = s
		}
	}
	return Token{Type: ILLEGAL, Literal: c.input[c.position : c.position+size]}, size
}

// Lexer represents the Monkey lexer
type Lexer struct {
	cur cursor

	logger *slog.Logger

	// Telemetry (nil when disabled)
	telemetryMode  TelemetryMode
	tokenTelemetry map[TokenType]*TokenTelemetry
}

// New creates a lexer over input. Input that is empty or consists only of
// whitespace is rejected with ErrInvalidInput.
func New(input string, opts ...LexerOpt) (*Lexer, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: input must not be empty or whitespace", ErrInvalidInput)
	}

	config := &LexerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	l := &Lexer{
		cur:           newCursor(input),
		logger:        config.logger,
		telemetryMode: config.telemetry,
	}

	// Only allocate telemetry structures when needed
	if config.telemetry > TelemetryOff {
		l.tokenTelemetry = make(map[TokenType]*TokenTelemetry)
	}

	return l, nil
}

// Tokenize lexes the whole input. The result ends with exactly one EOF token.
func Tokenize(input string, opts ...LexerOpt) ([]Token, error) {
	l, err := New(input, opts...)
	if err != nil {
		return nil, err
	}
	return l.Tokens(), nil
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var start time.Time
	if l.telemetryMode >= TelemetryTiming {
		start = time.Now()
	}

	l.cur.skipWhitespace()

	offset := l.cur.position
	token, consumed := l.cur.scan()
	invariant.Postcondition((consumed == 0) == (token.Type == EOF), "%s consumed %d chars at offset %d", token.Type, consumed, offset)
	l.cur.advance(consumed)

	if l.logger != nil && l.logger.Enabled(context.Background(), slog.LevelDebug) {
		l.logger.Debug("token", "type", token.Type.String(), "literal", token.Literal, "offset", offset)
	}

	if l.telemetryMode > TelemetryOff {
		var elapsed time.Duration
		if l.telemetryMode >= TelemetryTiming {
			elapsed = time.Since(start)
		}
		l.recordTokenTelemetry(token.Type, elapsed)
	}

	return token
}

// Tokens drains the lexer and returns the remaining tokens, ending with EOF
func (l *Lexer) Tokens() []Token {
	var tokens []Token
	for {
		token := l.NextToken()
		tokens = append(tokens, token)
		if token.Type == EOF {
			return tokens
		}
	}
}

// Telemetry returns per-token type telemetry, or nil when telemetry is off
func (l *Lexer) Telemetry() map[TokenType]*TokenTelemetry {
	if l.telemetryMode == TelemetryOff || l.tokenTelemetry == nil {
		return nil
	}

	// Return a copy to prevent external modification
	result := make(map[TokenType]*TokenTelemetry, len(l.tokenTelemetry))
	for k, v := range l.tokenTelemetry {
		telemetryCopy := *v
		result[k] = &telemetryCopy
	}
	return result
}

func (l *Lexer) recordTokenTelemetry(tokenType TokenType, elapsed time.Duration) {
	telemetry, exists := l.tokenTelemetry[tokenType]
	if !exists {
		telemetry = &TokenTelemetry{
			Type:    tokenType,
			MinTime: elapsed,
			MaxTime: elapsed,
		}
		l.tokenTelemetry[tokenType] = telemetry
	}

	telemetry.Count++

	if l.telemetryMode >= TelemetryTiming {
		telemetry.TotalTime += elapsed
		telemetry.AvgTime = telemetry.TotalTime / time.Duration(telemetry.Count)
		if elapsed < telemetry.MinTime {
			telemetry.MinTime = elapsed
		}
		if elapsed > telemetry.MaxTime {
			telemetry.MaxTime = elapsed
		}
	}
}
