package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monkeylang/monkey/runtime/lexer"
	"github.com/monkeylang/monkey/runtime/tokenfmt"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv(lexer.DebugEnvVar, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	// A nil slice makes cobra fall back to os.Args
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestLexExpr(t *testing.T) {
	res := runCLI(t, "", "lex", "-e", "let five = 5;")
	require.NoError(t, res.err)

	assert.Equal(t, strings.Join([]string{
		"LET        let",
		"IDENTIFIER five",
		"ASSIGN     =",
		"INTEGER    5",
		"SEMICOLON  ;",
		"EOF",
		"",
	}, "\n"), res.stdout)
	assert.Empty(t, res.stderr)
}

func TestLexFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.monkey")
	require.NoError(t, os.WriteFile(path, []byte("10 == 10;\n10 != 9;\n"), 0o644))

	res := runCLI(t, "", "lex", "--format", "json", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"type": "EQ_EQ"`)
	assert.Contains(t, res.stdout, `"literal": "!="`)
}

func TestLexStdin(t *testing.T) {
	for _, args := range [][]string{{"lex"}, {"lex", "-"}} {
		res := runCLI(t, "fn(x) { x }", args...)
		require.NoError(t, res.err)
		assert.True(t, strings.HasPrefix(res.stdout, "FUNCTION   fn\n"), res.stdout)
	}
}

func TestLexCBOR(t *testing.T) {
	res := runCLI(t, "", "lex", "-f", "cbor", "-e", "if (x) { return true; }")
	require.NoError(t, res.err)

	tokens, err := tokenfmt.DecodeCBOR([]byte(res.stdout))
	require.NoError(t, err)
	expected, err := lexer.Tokenize("if (x) { return true; }")
	require.NoError(t, err)
	assert.Equal(t, expected, tokens)
}

func TestLexIllegalCharacters(t *testing.T) {
	res := runCLI(t, "", "lex", "-e", "a @ b")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `ILLEGAL    "@"`)
	assert.Contains(t, res.stderr, `msg="illegal character"`)

	res = runCLI(t, "", "lex", "--strict", "-e", "a @ b #")
	require.Error(t, res.err)
	var cliErr *CLIError
	require.True(t, errors.As(res.err, &cliErr))
	assert.Equal(t, "lex", cliErr.Type)
	assert.Equal(t, "<expr>: 2 illegal character(s)", cliErr.Message)
	assert.Equal(t, `"@" "#"`, cliErr.Details)
	assert.Empty(t, res.stdout)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		message string
	}{
		{"blank expr", "", []string{"lex", "-e", "   "}, "<expr>: nothing to tokenize"},
		{"blank stdin", " \n\t", []string{"lex"}, "<stdin>: nothing to tokenize"},
		{"unknown format", "", []string{"lex", "-f", "yaml", "-e", "x"}, `unsupported format "yaml"`},
		{"missing file", "", []string{"lex", filepath.Join(t.TempDir(), "nope.monkey")}, "error opening file"},
		{"expr and file", "", []string{"lex", "-e", "x", "prog.monkey"}, "cannot combine --expr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.stdin, tt.args...)
			require.Error(t, res.err)
			assert.Contains(t, res.err.Error(), tt.message)
		})
	}
}

func TestLexStats(t *testing.T) {
	res := runCLI(t, "", "lex", "--stats", "-e", "x y = 1")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSpace(res.stderr), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "TYPE"))
	assert.Regexp(t, `^EOF\s+1\s`, lines[1])
	assert.Regexp(t, `^IDENTIFIER\s+2\s`, lines[2])
	assert.Regexp(t, `^INTEGER\s+1\s`, lines[3])
	assert.Regexp(t, `^ASSIGN\s+1\s`, lines[4])
}

func TestLexDebugTracesTokens(t *testing.T) {
	res := runCLI(t, "", "--debug", "lex", "-e", "let x")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "msg=token type=LET literal=let offset=0")
}

func TestRootRunsREPL(t *testing.T) {
	res := runCLI(t, "let x = 1;\nretrn x\n")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Hello! This is the Monkey programming language!")
	assert.Contains(t, res.stdout, ">> {Type:LET Literal:let}")
	assert.Contains(t, res.stdout, `did you mean "return"?`)

	res = runCLI(t, "retrn x\n", "repl", "--no-hints")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "did you mean")
}

func TestFormatError(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, &CLIError{
		Message: "prog.monkey: 1 illegal character(s)",
		Details: `"@"`,
		Hint:    "Remove the characters or run without --strict",
	}, false)

	assert.Equal(t, "Error: prog.monkey: 1 illegal character(s)\n\n\"@\"\nHint: Remove the characters or run without --strict\n", buf.String())

	buf.Reset()
	FormatError(&buf, errors.New("boom"), true)
	assert.Equal(t, tokenfmt.ColorRed+"Error: "+tokenfmt.ColorReset+"boom\n", buf.String())

	buf.Reset()
	FormatError(&buf, nil, false)
	assert.Empty(t, buf.String())
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, ShouldUseColor(false, &buf), "non-file writers never get color")
	assert.False(t, ShouldUseColor(true, os.Stdout))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldUseColor(false, os.Stdout))
}
