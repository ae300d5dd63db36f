package token

import "fmt"

// Category identifies the lexical kind of a token. Exactly one of a
// fixed closed set.
type Category uint8

// Categories produced by the scanner.
const (
	Invalid Category = iota

	// Content
	Word
	Number
	Escape
	CommentLine
	CommentBlock
	Operator
	Assigner

	// Brackets
	ParenOpen
	ParenClose
	BracketOpen
	BracketClose
	BraceOpen
	BraceClose
	AngleOpen
	AngleClose

	// Quote-like delimiters
	DoubleQuoteOpen
	DoubleQuoteClose
	SingleQuoteOpen
	SingleQuoteClose
	BacktickOpen
	BacktickClose

	// End of input marker
	EOF

	// Sentinel for iteration
	categoryCount
)

// String returns the display name of a category. Theme files key
// their color tables by these names.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "invalid"
}

// Role classifies a category's scope behavior: an Opener introduces a
// scope, a Closer ends one, Plain carries no scope semantics. The role
// is a fixed attribute of the category, never of a token instance.
type Role uint8

// Roles a category can carry.
const (
	RolePlain Role = iota
	RoleOpener
	RoleCloser
)

// Role returns the scope role fixed for this category.
func (c Category) Role() Role {
	if int(c) < len(categoryRoles) {
		return categoryRoles[c]
	}
	return RolePlain
}

// IsOpener reports whether this category introduces a scope.
func (c Category) IsOpener() bool {
	return c.Role() == RoleOpener
}

// IsCloser reports whether this category ends a scope.
func (c Category) IsCloser() bool {
	return c.Role() == RoleCloser
}

// IsQuote reports whether this category opens a quote-like scope.
// Quote-like scopes are opaque: while one is active no further scopes
// open, and their content is rendered as string content.
func (c Category) IsQuote() bool {
	return c == DoubleQuoteOpen || c == SingleQuoteOpen || c == BacktickOpen
}

// RequiredOpener returns the Opener category a closing token must
// match. Calling it with a category whose role is not Closer is a
// programming error and panics.
func RequiredOpener(closer Category) Category {
	opener, ok := pairing[closer]
	if !ok {
		panic("token: RequiredOpener called on non-closer category " + closer.String())
	}
	return opener
}

// categoryNames maps categories to their display names.
var categoryNames = []string{
	Invalid: "invalid",

	Word:         "word",
	Number:       "number",
	Escape:       "escape",
	CommentLine:  "comment-line",
	CommentBlock: "comment-block",
	Operator:     "operator",
	Assigner:     "assigner",

	ParenOpen:    "paren-open",
	ParenClose:   "paren-close",
	BracketOpen:  "bracket-open",
	BracketClose: "bracket-close",
	BraceOpen:    "brace-open",
	BraceClose:   "brace-close",
	AngleOpen:    "angle-open",
	AngleClose:   "angle-close",

	DoubleQuoteOpen:  "dquote-open",
	DoubleQuoteClose: "dquote-close",
	SingleQuoteOpen:  "squote-open",
	SingleQuoteClose: "squote-close",
	BacktickOpen:     "backtick-open",
	BacktickClose:    "backtick-close",

	EOF: "eof",
}

// CategoryByName resolves a display name to its category. Theme files
// reference categories by these names.
func CategoryByName(name string) (Category, bool) {
	c, ok := nameToCategory[name]
	return c, ok
}

// nameToCategory maps display names back to categories.
var nameToCategory = func() map[string]Category {
	m := make(map[string]Category, len(categoryNames))
	for i, name := range categoryNames {
		m[name] = Category(i)
	}
	return m
}()

// categoryRoles is the attribute table assigning each category its
// role. Unlisted categories are Plain.
var categoryRoles = [categoryCount]Role{
	ParenOpen:   RoleOpener,
	BracketOpen: RoleOpener,
	BraceOpen:   RoleOpener,
	AngleOpen:   RoleOpener,

	DoubleQuoteOpen: RoleOpener,
	SingleQuoteOpen: RoleOpener,
	BacktickOpen:    RoleOpener,

	ParenClose:   RoleCloser,
	BracketClose: RoleCloser,
	BraceClose:   RoleCloser,
	AngleClose:   RoleCloser,

	DoubleQuoteClose: RoleCloser,
	SingleQuoteClose: RoleCloser,
	BacktickClose:    RoleCloser,
}

// pairing maps each Closer category to the Opener it is expected to
// match. Totality over closers is verified at init.
var pairing = map[Category]Category{
	ParenClose:   ParenOpen,
	BracketClose: BracketOpen,
	BraceClose:   BraceOpen,
	AngleClose:   AngleOpen,

	DoubleQuoteClose: DoubleQuoteOpen,
	SingleQuoteClose: SingleQuoteOpen,
	BacktickClose:    BacktickOpen,
}

func init() {
	if err := verifyTables(); err != nil {
		panic(err)
	}
}

// verifyTables checks the category attribute tables once at startup:
// every pairing key is a Closer, every pairing value an Opener, every
// Closer has a pairing entry, and every Opener is the value of exactly
// one entry.
func verifyTables() error {
	paired := make(map[Category]int, len(pairing))
	for closer, opener := range pairing {
		if closer.Role() != RoleCloser {
			return fmt.Errorf("token: pairing key %s is not a closer", closer)
		}
		if opener.Role() != RoleOpener {
			return fmt.Errorf("token: pairing value %s is not an opener", opener)
		}
		paired[opener]++
	}
	for c := Invalid; c < categoryCount; c++ {
		switch c.Role() {
		case RoleCloser:
			if _, ok := pairing[c]; !ok {
				return fmt.Errorf("token: closer %s has no pairing entry", c)
			}
		case RoleOpener:
			if n := paired[c]; n != 1 {
				return fmt.Errorf("token: opener %s paired %d times", c, n)
			}
		}
	}
	return nil
}
