// Package render turns a scanned token sequence back into display
// text. The inline renderer reproduces the source with each token's
// span colorized in place; the describe renderer emits one annotated
// line per token. Both share the scope tracker, which resolves nesting
// depth, quote opacity and mismatched closers so the output degrades
// gracefully on malformed input instead of failing.
package render

import (
	"strings"

	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/theme"
	"github.com/dshills/lexstorm/internal/token"
)

// Renderer colorizes token streams against a theme. It is cheap to
// construct; each render pass builds its own tracker, so a Renderer
// carries no state between calls.
type Renderer struct {
	theme  *theme.Theme
	mode   style.Mode
	scopes ColorSource
}

// NewRenderer returns a renderer over th emitting sequences for mode.
func NewRenderer(th *theme.Theme, mode style.Mode) *Renderer {
	return &Renderer{theme: th, mode: mode, scopes: NewHueSource()}
}

// SetScopeColors replaces the per-scope color source used by depth
// annotations. Tests install a fixed sequence here so assertions do
// not depend on random hues.
func (r *Renderer) SetScopeColors(src ColorSource) {
	r.scopes = src
}

// Render walks tokens in ascending source order and reproduces source
// with each token's span wrapped in its resolved color. Text between
// tokens is copied verbatim and never colored. The end-of-stream token
// stops the walk once the gap before it has been written; a sequence
// without one (a failed scan) has the remaining source appended
// verbatim so partial results still show the whole input.
//
// Token offsets are trusted, not validated: the scanner produces them
// strictly increasing and non-overlapping.
func (r *Renderer) Render(source string, tokens []token.Token) string {
	tr := NewTracker(r.theme, nil)

	var b strings.Builder
	b.Grow(len(source) + len(tokens)*16)
	cursor := 0
	for _, tok := range tokens {
		b.WriteString(source[cursor:tok.Start])
		cursor = tok.End()
		if tok.Category == token.EOF {
			return b.String()
		}
		ev := tr.Observe(tok)
		b.WriteString(r.mode.Foreground(ev.Text))
		b.WriteString(tok.Text(source))
		b.WriteString(style.Reset)
	}
	b.WriteString(source[cursor:])
	return b.String()
}

// Plain reproduces the same walk without consulting the theme at all,
// so truncation at the end-of-stream token matches Render exactly.
func (r *Renderer) Plain(source string, tokens []token.Token) string {
	var b strings.Builder
	b.Grow(len(source))
	cursor := 0
	for _, tok := range tokens {
		b.WriteString(source[cursor:tok.Start])
		cursor = tok.End()
		if tok.Category == token.EOF {
			return b.String()
		}
		b.WriteString(tok.Text(source))
	}
	b.WriteString(source[cursor:])
	return b.String()
}
