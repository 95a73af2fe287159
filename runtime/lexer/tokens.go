package lexer

// TokenType represents lexical tokens of the Monkey language
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota // unrecognized character
	EOF                      // end of input

	// Literals
	IDENTIFIER // add, foobar, x, y
	INTEGER    // 1343456

	// Operators
	ASSIGN   // =
	PLUS     // +
	MINUS    // -
	BANG     // !
	ASTERISK // *
	SLASH    // /
	LT       // <
	GT       // >
	EQ_EQ    // ==
	NOT_EQ   // !=

	// Delimiters
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }

	// Keywords
	FUNCTION // fn
	LET      // let
	TRUE     // true
	FALSE    // false
	IF       // if
	ELSE     // else
	RETURN   // return
)

// Token represents a lexical token. Two tokens are equal when both fields match.
type Token struct {
	Type    TokenType
	Literal string
}

// String returns the token in the form printed by the REPL
func (t Token) String() string {
	return "{Type:" + t.Type.String() + " Literal:" + t.Literal + "}"
}

var tokenTypeNames = [...]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	INTEGER:    "INTEGER",
	ASSIGN:     "ASSIGN",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	BANG:       "BANG",
	ASTERISK:   "ASTERISK",
	SLASH:      "SLASH",
	LT:         "LT",
	GT:         "GT",
	EQ_EQ:      "EQ_EQ",
	NOT_EQ:     "NOT_EQ",
	COMMA:      "COMMA",
	SEMICOLON:  "SEMICOLON",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACE:     "LBRACE",
	RBRACE:     "RBRACE",
	FUNCTION:   "FUNCTION",
	LET:        "LET",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	IF:         "IF",
	ELSE:       "ELSE",
	RETURN:     "RETURN",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "UNKNOWN"
	}
	return tokenTypeNames[t]
}

// IsKeyword reports whether t is one of the reserved-word types
func (t TokenType) IsKeyword() bool {
	return t >= FUNCTION && t <= RETURN
}

// tokenTypesByName is the inverse of tokenTypeNames, built once
var tokenTypesByName = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenTypeNames))
	for i, name := range tokenTypeNames {
		m[name] = TokenType(i)
	}
	return m
}()

// ParseTokenType returns the type whose String() is name
func ParseTokenType(name string) (TokenType, bool) {
	t, ok := tokenTypesByName[name]
	return t, ok
}

// keywords maps reserved spellings to their token types. Read-only after init,
// so it is shared by every lexer.
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent returns the keyword type for ident, or IDENTIFIER
func LookupIdent(ident string) TokenType {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENTIFIER
}

// Keywords returns the reserved spellings in declaration order of their types
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for t := FUNCTION; t <= RETURN; t++ {
		for spelling, kt := range keywords {
			if kt == t {
				out = append(out, spelling)
			}
		}
	}
	return out
}

// operator pairs a literal spelling with its token type
type operator struct {
	literal string
	typ     TokenType
}

// twoCharTokens is checked in order before singleCharTokens. New multi-character
// operators (<=, &&) are added here.
var twoCharTokens = []operator{
	{"==", EQ_EQ},
	{"!=", NOT_EQ},
}

// singleCharTokens maps single characters to their token types
var singleCharTokens = map[byte]TokenType{
	'=': ASSIGN,
	'+': PLUS,
	'-': MINUS,
	'!': BANG,
	'*': ASTERISK,
	'/': SLASH,
	'<': LT,
	'>': GT,
	',': COMMA,
	';': SEMICOLON,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
}
