package lexer

// ASCII character lookup tables for fast classification
//
// Use inline bounds-checked lookups:
//
//	if ch < 128 && isLetter[ch] { ... }
//
// Bytes >= 128 never belong to any class; identifiers are ASCII-only.
var (
	isWhitespace [128]bool // Space, tab, newline, carriage return
	isLetter     [128]bool // a-z, A-Z, _
	isDigit      [128]bool // 0-9
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		// Newlines are not significant in Monkey
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'

		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'

		isDigit[i] = '0' <= ch && ch <= '9'
	}
}

// IsLetter reports whether ch may appear in an identifier
func IsLetter(ch byte) bool {
	return ch < 128 && isLetter[ch]
}

// IsDigit reports whether ch is an ASCII decimal digit
func IsDigit(ch byte) bool {
	return ch < 128 && isDigit[ch]
}

// IsWhitespace reports whether ch separates tokens
func IsWhitespace(ch byte) bool {
	return ch < 128 && isWhitespace[ch]
}
