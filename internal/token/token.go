// Package token defines the closed category set shared by the lexer
// and the renderers: each category's display name, its scope role, and
// the pairing between closing and opening delimiters.
package token

// Token is one lexed span of source text. Start and Len are byte
// offsets into the source the token was produced from; the end offset
// is always derived from them, never stored.
type Token struct {
	// Category is the lexical kind of the token.
	Category Category

	// Start is the byte offset of the token's first byte.
	Start int

	// Len is the token's length in bytes.
	Len int
}

// End returns the exclusive end offset.
func (t Token) End() int {
	return t.Start + t.Len
}

// Text returns the token's slice of the source it was lexed from.
func (t Token) Text(source string) string {
	return source[t.Start:t.End()]
}
