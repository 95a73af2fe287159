// Package tokenfmt renders lexer token streams for humans and for other
// processes. The CBOR form is canonical, so equal streams encode to equal bytes.
package tokenfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fxamacker/cbor/v2"

	"github.com/monkeylang/monkey/core/invariant"
	"github.com/monkeylang/monkey/runtime/lexer"
)

// Format selects an output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
	FormatDump Format = "dump"
)

// Formats lists the supported formats in help-text order
var Formats = []Format{FormatText, FormatJSON, FormatCBOR, FormatDump}

// ParseFormat validates a user-supplied format name
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (want one of %s)", name, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Record is the wire form of a token
type Record struct {
	Type    string `json:"type" cbor:"type"`
	Literal string `json:"literal" cbor:"literal"`
}

// ANSI colors for text output
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

// Colorize wraps text in an ANSI color code if color is enabled
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// WriteOption configures Write
type WriteOption func(*writeConfig)

type writeConfig struct {
	color bool
}

// WithColor highlights keywords and illegal tokens in text output
func WithColor(enabled bool) WriteOption {
	return func(c *writeConfig) {
		c.color = enabled
	}
}

// Write encodes tokens to w in the given format
func Write(w io.Writer, tokens []lexer.Token, format Format, opts ...WriteOption) error {
	invariant.NotNil(w, "writer")

	config := &writeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch format {
	case FormatText, "":
		return writeText(w, tokens, config.color)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(toRecords(tokens)); err != nil {
			return fmt.Errorf("JSON encoding failed: %w", err)
		}
		return nil
	case FormatCBOR:
		data, err := EncodeCBOR(tokens)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatDump:
		// Records keep Token.String out of the dump
		_, err := io.WriteString(w, spew.Sdump(toRecords(tokens)))
		return err
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// FormatToken renders a single token as one text line without a newline
func FormatToken(tok lexer.Token, useColor bool) string {
	typeName := fmt.Sprintf("%-10s", tok.Type)
	switch {
	case tok.Type == lexer.ILLEGAL:
		return Colorize(typeName+" "+fmt.Sprintf("%q", tok.Literal), ColorRed, useColor)
	case tok.Type.IsKeyword():
		return Colorize(typeName, ColorBlue, useColor) + " " + tok.Literal
	case tok.Type == lexer.EOF:
		return Colorize(strings.TrimRight(typeName, " "), ColorGray, useColor)
	default:
		return typeName + " " + tok.Literal
	}
}

func writeText(w io.Writer, tokens []lexer.Token, useColor bool) error {
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, FormatToken(tok, useColor)); err != nil {
			return err
		}
	}
	return nil
}

func toRecords(tokens []lexer.Token) []Record {
	records := make([]Record, len(tokens))
	for i, tok := range tokens {
		records[i] = Record{Type: tok.Type.String(), Literal: tok.Literal}
	}
	return records
}

// EncodeCBOR produces the deterministic CBOR encoding of a token stream
func EncodeCBOR(tokens []lexer.Token) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	data, err := encMode.Marshal(toRecords(tokens))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// DecodeCBOR reads a stream written by EncodeCBOR
func DecodeCBOR(data []byte) ([]lexer.Token, error) {
	var records []Record
	if err := cbor.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("CBOR decoding failed: %w", err)
	}

	tokens := make([]lexer.Token, len(records))
	for i, rec := range records {
		tokenType, ok := lexer.ParseTokenType(rec.Type)
		if !ok {
			return nil, fmt.Errorf("record %d: unknown token type %q", i, rec.Type)
		}
		tokens[i] = lexer.Token{Type: tokenType, Literal: rec.Literal}
	}
	return tokens, nil
}
