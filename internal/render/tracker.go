package render

import (
	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/theme"
	"github.com/dshills/lexstorm/internal/token"
)

// EventKind classifies what the tracker did with one observed token.
type EventKind uint8

const (
	// EventPlain carries no scope semantics; the color is the policy
	// color, or the quote tint while a quote scope is active.
	EventPlain EventKind = iota
	// EventOpened pushed a new scope.
	EventOpened
	// EventSuppressed is an opener swallowed by an active quote scope.
	// Quote scopes are opaque: nothing nests inside them.
	EventSuppressed
	// EventClosed popped the matching scope.
	EventClosed
	// EventMismatch is a closer that does not match the innermost open
	// scope, or arrives with no scope open. The stack is unchanged.
	EventMismatch
)

var eventKindNames = []string{
	EventPlain:      "plain",
	EventOpened:     "opened",
	EventSuppressed: "suppressed",
	EventClosed:     "closed",
	EventMismatch:   "mismatch",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is the tracker's verdict on one token.
type Event struct {
	Kind EventKind
	// Depth is the 1-based nesting depth: for EventOpened the depth of
	// the new scope, for EventClosed the depth of the scope just
	// closed. Zero otherwise.
	Depth int
	// Text is the effective color for the token's own source text.
	Text style.Color
	// Scope is the color bound to the scope at open, repeated at the
	// matching close. Zero for other kinds.
	Scope style.Color
}

type scopeEntry struct {
	opener token.Token
	color  style.Color
	depth  int
}

// Tracker resolves delimiter scopes for a single render pass. It is
// rebuilt fresh per pass and holds nothing across calls.
//
// A nil theme yields a color-free structural walk; the continuation
// probe in the repl package uses that to decide whether input is still
// inside an open scope without touching a palette.
type Tracker struct {
	theme  *theme.Theme
	choose func(opener token.Token) style.Color
	stack  []scopeEntry
}

// NewTracker returns an empty tracker. choose supplies the color bound
// to each newly opened scope; nil means the opener category's policy
// color, which is what the inline renderer wants.
func NewTracker(th *theme.Theme, choose func(opener token.Token) style.Color) *Tracker {
	return &Tracker{theme: th, choose: choose}
}

// Observe consumes the next token in source order and reports how it
// affected the scope stack along with its resolved colors.
func (t *Tracker) Observe(tok token.Token) Event {
	cat := tok.Category
	switch {
	case cat.IsOpener():
		if t.InQuote() {
			return Event{Kind: EventSuppressed, Text: t.tint()}
		}
		color := t.scopeColor(tok)
		depth := len(t.stack) + 1
		t.stack = append(t.stack, scopeEntry{opener: tok, color: color, depth: depth})
		return Event{Kind: EventOpened, Depth: depth, Text: t.policyColor(cat), Scope: color}

	case cat.IsCloser():
		if n := len(t.stack); n > 0 && token.RequiredOpener(cat) == t.stack[n-1].opener.Category {
			entry := t.stack[n-1]
			t.stack = t.stack[:n-1]
			return Event{Kind: EventClosed, Depth: entry.depth, Text: entry.color, Scope: entry.color}
		}
		return Event{Kind: EventMismatch, Text: t.mismatchColor()}

	default:
		return Event{Kind: EventPlain, Text: t.contentColor(cat)}
	}
}

// Depth reports how many scopes are currently open.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// InQuote reports whether the innermost open scope is quote-like.
func (t *Tracker) InQuote() bool {
	n := len(t.stack)
	return n > 0 && t.stack[n-1].opener.Category.IsQuote()
}

// OpenScopes returns the opener categories of the open scopes,
// outermost first.
func (t *Tracker) OpenScopes() []token.Category {
	if len(t.stack) == 0 {
		return nil
	}
	out := make([]token.Category, len(t.stack))
	for i, entry := range t.stack {
		out[i] = entry.opener.Category
	}
	return out
}

func (t *Tracker) policyColor(cat token.Category) style.Color {
	if t.theme == nil {
		return style.Color{}
	}
	return t.theme.ColorOf(cat)
}

func (t *Tracker) scopeColor(tok token.Token) style.Color {
	if t.choose != nil {
		return t.choose(tok)
	}
	return t.policyColor(tok.Category)
}

// quoteTintAmount darkens a quote's policy color into the tint applied
// to everything inside the scope, keeping the interior visually related
// to its delimiters.
const quoteTintAmount = 0.25

func (t *Tracker) tint() style.Color {
	n := len(t.stack)
	return t.policyColor(t.stack[n-1].opener.Category).Darken(quoteTintAmount)
}

// contentColor is the policy color, except inside a quote scope where
// content is tinted as string interior whatever its own category.
func (t *Tracker) contentColor(cat token.Category) style.Color {
	if t.InQuote() {
		return t.tint()
	}
	return t.policyColor(cat)
}

// mismatchColor degrades a stray closer: inside a quote scope it reads
// as scope content, elsewhere it gets the theme's mismatch color.
func (t *Tracker) mismatchColor() style.Color {
	if t.InQuote() {
		return t.tint()
	}
	if t.theme == nil {
		return style.Color{}
	}
	return t.theme.MismatchColor()
}
