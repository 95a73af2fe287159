package lexer

import "testing"

// newTestLexer is a test helper that creates a lexer and fails the test on construction errors
func newTestLexer(t testing.TB, input string, opts ...LexerOpt) *Lexer {
	t.Helper()
	lex, err := New(input, opts...)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", input, err)
	}
	return lex
}
