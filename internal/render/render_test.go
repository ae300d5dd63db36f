package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/dshills/lexstorm/internal/lexer"
	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/token"
)

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func fg(c style.Color) string {
	return style.ModeTrueColor.Foreground(c)
}

func TestRenderNoTokensIdentity(t *testing.T) {
	r := NewRenderer(testTheme(), style.ModeTrueColor)

	for _, text := range []string{"", "plain text, untouched", "tabs\tand\nnewlines"} {
		if got := r.Render(text, nil); got != text {
			t.Errorf("Render(%q, nil) = %q, want identity", text, got)
		}
	}
}

func TestRenderExactOutput(t *testing.T) {
	th := testTheme()
	r := NewRenderer(th, style.ModeTrueColor)

	source := "(x)"
	tokens := []token.Token{
		mkTok(token.ParenOpen, 0, 1),
		mkTok(token.Word, 1, 1),
		mkTok(token.ParenClose, 2, 1),
		mkTok(token.EOF, 3, 0),
	}

	paren := th.ColorOf(token.ParenOpen)
	word := th.ColorOf(token.Word)
	want := fg(paren) + "(" + style.Reset +
		fg(word) + "x" + style.Reset +
		fg(paren) + ")" + style.Reset

	if got := r.Render(source, tokens); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderVerbatimCoverage(t *testing.T) {
	sources := []string{
		"x := compute(a, b) + 7",
		"s = \"hÉllo\\tworld\" # note",
		"if n <= 0 { return [] }",
		") stray ] closers }",
		"  leading and trailing  ",
	}
	r := NewRenderer(testTheme(), style.ModeTrueColor)

	for _, source := range sources {
		res := lexer.Scan(source)
		if res.Failed() {
			t.Fatalf("Scan(%q) failed: %v", source, res.Errs)
		}
		got := stripANSI(r.Render(source, res.Tokens))
		if got != source {
			t.Errorf("stripped Render(%q) = %q, want the source back", source, got)
		}
	}
}

func TestRenderEOSTruncation(t *testing.T) {
	r := NewRenderer(testTheme(), style.ModeTrueColor)

	// Gap before the marker is kept, everything at or after its start
	// offset is dropped, tokens after it included.
	source := "ab cd ef"
	tokens := []token.Token{
		mkTok(token.Word, 0, 2),
		mkTok(token.EOF, 5, 0),
		mkTok(token.Word, 6, 2),
	}

	got := stripANSI(r.Render(source, tokens))
	if want := "ab cd"; got != want {
		t.Errorf("truncated render = %q, want %q", got, want)
	}
}

func TestRenderFailedScanShowsTail(t *testing.T) {
	r := NewRenderer(testTheme(), style.ModeTrueColor)

	source := `x "abc`
	res := lexer.Scan(source)
	if !res.Failed() {
		t.Fatalf("Scan(%q) succeeded, want failure", source)
	}

	// No end-of-stream marker, so the unconsumed tail comes through
	// verbatim and nothing of the input is hidden.
	got := stripANSI(r.Render(source, res.Tokens))
	if got != source {
		t.Errorf("stripped render of failed scan = %q, want %q", got, source)
	}
}

func TestRenderMismatchUsesDegradedColor(t *testing.T) {
	th := testTheme()
	r := NewRenderer(th, style.ModeTrueColor)

	source := "(]"
	tokens := []token.Token{
		mkTok(token.ParenOpen, 0, 1),
		mkTok(token.BracketClose, 1, 1),
		mkTok(token.EOF, 2, 0),
	}

	got := r.Render(source, tokens)
	if !strings.Contains(got, fg(th.MismatchColor())+"]") {
		t.Errorf("render %q does not color ] with the mismatch color", got)
	}
	if strings.Contains(got, fg(th.ColorOf(token.BracketClose))+"]") {
		t.Errorf("render %q gives the stray ] its normal bracket color", got)
	}
}

func TestRenderQuoteContentTint(t *testing.T) {
	th := testTheme()
	r := NewRenderer(th, style.ModeTrueColor)

	source := `"( hi )"`
	res := lexer.Scan(source)
	if res.Failed() {
		t.Fatalf("Scan(%q) failed: %v", source, res.Errs)
	}

	tint := th.ColorOf(token.DoubleQuoteOpen).Darken(quoteTintAmount)
	got := r.Render(source, res.Tokens)
	if !strings.Contains(got, fg(tint)+"hi") {
		t.Errorf("render %q does not tint quote content", got)
	}
}

func TestPlainMatchesStrippedRender(t *testing.T) {
	r := NewRenderer(testTheme(), style.ModeTrueColor)

	sources := []string{
		"x := y + 1",
		"deep(nest[why{so<serious>}])",
		"'quoted (content)' tail",
	}
	for _, source := range sources {
		res := lexer.Scan(source)
		if res.Failed() {
			t.Fatalf("Scan(%q) failed: %v", source, res.Errs)
		}
		plain := r.Plain(source, res.Tokens)
		stripped := stripANSI(r.Render(source, res.Tokens))
		if plain != stripped {
			t.Errorf("Plain(%q) = %q, stripped Render = %q", source, plain, stripped)
		}
		if plain != source {
			t.Errorf("Plain(%q) = %q, want the source back", source, plain)
		}
	}
}

func TestPlainTruncatesAtEOS(t *testing.T) {
	r := NewRenderer(testTheme(), style.ModeTrueColor)

	source := "kept dropped"
	tokens := []token.Token{
		mkTok(token.Word, 0, 4),
		mkTok(token.EOF, 5, 0),
	}
	if got, want := r.Plain(source, tokens), "kept "; got != want {
		t.Errorf("Plain = %q, want %q", got, want)
	}
}
