package invariant_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/monkeylang/monkey/core/invariant"
)

// expectViolation runs fn and checks that it panics with a message containing every want
func expectViolation(t *testing.T, fn func(), want ...string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg := fmt.Sprintf("%v", r)
		for _, w := range want {
			if !strings.Contains(msg, w) {
				t.Errorf("expected %q in panic message, got: %s", w, msg)
			}
		}
	}()
	fn()
}

func TestContractsPass(t *testing.T) {
	pos, readPos := 3, 4
	invariant.Precondition(len("let") > 0, "input not empty")
	invariant.Invariant(readPos == pos+1, "readPosition tracks position")
	invariant.Postcondition(pos >= 0, "position non-negative")

	literal := "five"
	invariant.NotNil(&literal, "literal")
	invariant.NotNil([]byte("x"), "buf")
}

func TestPreconditionFail(t *testing.T) {
	expectViolation(t, func() {
		invariant.Precondition(false, "input must not be empty")
	}, "PRECONDITION VIOLATION", "input must not be empty", "at ")
}

func TestPostconditionFail(t *testing.T) {
	expectViolation(t, func() {
		invariant.Postcondition(false, "scan must consume %d chars", 2)
	}, "POSTCONDITION VIOLATION", "scan must consume 2 chars")
}

func TestInvariantFail(t *testing.T) {
	expectViolation(t, func() {
		invariant.Invariant(false, "stuck at position %d with char %q", 42, '@')
	}, "INVARIANT VIOLATION", "position 42", "'@'")
}

func TestNotNilFail(t *testing.T) {
	var w *strings.Builder
	expectViolation(t, func() {
		invariant.NotNil(w, "writer")
	}, "PRECONDITION VIOLATION", "writer must not be nil")

	expectViolation(t, func() {
		invariant.NotNil(nil, "lexer")
	}, "lexer must not be nil")
}

// TestStackTraceContext verifies the violation points at the caller
func TestStackTraceContext(t *testing.T) {
	expectViolation(t, func() {
		invariant.Precondition(false, "test stack trace")
	}, "invariant_test.go:")
}

func ExampleInvariant() {
	input := "let x"
	pos := 0
	prev := -1
	for pos < len(input) {
		invariant.Invariant(pos > prev, "position must advance")
		prev = pos
		pos++
	}
	fmt.Println("scanned", pos, "bytes")
	// Output: scanned 5 bytes
}
