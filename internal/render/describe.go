package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/token"
)

// DescribeOptions select the annotation set for a token listing.
type DescribeOptions struct {
	// Depth labels each opener with its nesting depth as (n) and each
	// cleanly matched closer with the bare n, both in the color bound
	// to that scope.
	Depth bool
	// Color colorizes the category column and the depth labels. Off,
	// the listing is plain text.
	Color bool
}

// Describe emits one line per token: the quoted source text, the
// category name, the start..end span and, when requested, the depth
// annotation. Every token gets a line whether or not it is annotated;
// column widths follow the widest entry so the listing stays aligned
// even with wide runes in the source.
func (r *Renderer) Describe(source string, tokens []token.Token, opts DescribeOptions) []string {
	tr := NewTracker(r.theme, func(token.Token) style.Color { return r.scopes.Next() })

	textw, catw := 0, 0
	for _, tok := range tokens {
		if w := uniseg.StringWidth(strconv.Quote(tok.Text(source))); w > textw {
			textw = w
		}
		if w := len(tok.Category.String()); w > catw {
			catw = w
		}
	}

	lines := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		quoted := strconv.Quote(tok.Text(source))
		name := tok.Category.String()
		ev := tr.Observe(tok)

		var b strings.Builder
		b.WriteString(quoted)
		b.WriteString(strings.Repeat(" ", textw-uniseg.StringWidth(quoted)+2))
		r.writeCell(&b, opts.Color, ev.Text, name)
		b.WriteString(strings.Repeat(" ", catw-len(name)+2))
		fmt.Fprintf(&b, "%d..%d", tok.Start, tok.End())

		if opts.Depth {
			switch ev.Kind {
			case EventOpened:
				b.WriteString("  ")
				r.writeCell(&b, opts.Color, ev.Scope, "("+strconv.Itoa(ev.Depth)+")")
			case EventClosed:
				b.WriteString("  ")
				r.writeCell(&b, opts.Color, ev.Scope, strconv.Itoa(ev.Depth))
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// writeCell appends text, wrapped in c when colorize is on. Padding is
// the caller's business since escape bytes have no display width.
func (r *Renderer) writeCell(b *strings.Builder, colorize bool, c style.Color, text string) {
	if !colorize {
		b.WriteString(text)
		return
	}
	b.WriteString(r.mode.Foreground(c))
	b.WriteString(text)
	b.WriteString(style.Reset)
}
