// Package repl runs the interactive loop: it reads lines in raw mode,
// holds the prompt open while input is visibly unfinished, and renders
// each submission through the scanner and the inline renderer.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/lexstorm/internal/config"
	"github.com/dshills/lexstorm/internal/lexer"
	"github.com/dshills/lexstorm/internal/render"
	"github.com/dshills/lexstorm/internal/style"
	"github.com/dshills/lexstorm/internal/theme"
	"github.com/dshills/lexstorm/internal/token"
)

// Session is one interactive run over the user's terminal.
type Session struct {
	cfg      config.Config
	registry *theme.Registry
	mode     style.Mode

	// Toggled at runtime by colon commands.
	color bool
	list  bool
	depth bool

	term  *term.Terminal
	out   io.Writer
	hist  *FileHistory
	stats *Stats
}

// New builds a session. Whether color is on and which escape mode to
// use are the caller's decision; they depend on where output lands.
func New(cfg config.Config, reg *theme.Registry, color bool, mode style.Mode) *Session {
	return &Session{
		cfg:      cfg,
		registry: reg,
		mode:     mode,
		color:    color,
		list:     cfg.List,
		depth:    cfg.Depth,
		stats:    NewStats(),
	}
}

// Run reads input until the user leaves with :quit or Ctrl+D. It puts
// the terminal into raw mode for the duration and restores it on the
// way out.
func (s *Session) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("repl: entering raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	s.term = term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, s.cfg.Prompt)
	s.out = s.term

	hist, err := LoadHistory(s.cfg.HistoryFile, s.cfg.HistorySize)
	if err != nil {
		s.printf("warning: %v", err)
		hist, _ = LoadHistory("", 0)
	}
	s.hist = hist
	defer s.hist.Close()
	if s.hist.path != "" {
		s.term.History = s.hist
	}

	banner := "lexstorm (type :help for commands)"
	if s.color {
		banner = s.mode.Apply(style.DefaultStyle().Bold()) + banner + style.Reset
	}
	s.writeLine(banner)

	var pending []string
	for {
		line, err := s.term.ReadLine()
		if err != nil {
			if err == io.EOF {
				s.writeLine("")
				return nil
			}
			return fmt.Errorf("repl: reading input: %w", err)
		}
		s.stats.RecordLine()

		if len(pending) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			quit, err := s.command(strings.TrimSpace(line))
			if err != nil {
				s.printf("error: %v", err)
			}
			if quit {
				return nil
			}
			continue
		}

		pending = append(pending, line)
		source := strings.Join(pending, "\n")

		// An empty line always submits; it is the escape hatch when
		// the scanner thinks a scope is still open.
		if line != "" && needsMore(source) {
			s.term.SetPrompt(s.cfg.Continuation)
			continue
		}
		s.term.SetPrompt(s.cfg.Prompt)
		pending = pending[:0]

		if strings.TrimSpace(source) == "" {
			continue
		}
		s.render(source)
	}
}

// needsMore reports whether source is visibly unfinished: an
// unterminated quote or block comment, or open bracket scopes. Angle
// scopes do not hold the prompt open since < and > are usually
// comparisons rather than brackets.
func needsMore(source string) bool {
	res := lexer.Scan(source)
	if res.Failed() {
		for _, e := range res.Errs {
			if strings.HasPrefix(e.Msg, "unterminated") {
				return true
			}
		}
		// Anything else, a dangling escape say, will not improve with
		// more lines; submit it and show the failure.
		return false
	}

	tr := render.NewTracker(nil, nil)
	for _, tok := range res.Tokens {
		tr.Observe(tok)
	}
	for _, cat := range tr.OpenScopes() {
		if cat != token.AngleOpen {
			return true
		}
	}
	return false
}

// render scans source and writes the inline rendering, the optional
// token listing, and any scan errors.
func (s *Session) render(source string) {
	timer := StartTimer()
	res := lexer.Scan(source)

	r := render.NewRenderer(s.registry.Current(), s.mode)
	if s.color {
		s.writeLine(r.Render(source, res.Tokens))
	} else {
		s.writeLine(r.Plain(source, res.Tokens))
	}

	if s.list {
		opts := render.DescribeOptions{Depth: s.depth, Color: s.color}
		for _, line := range r.Describe(source, res.Tokens, opts) {
			s.writeLine(line)
		}
	}

	for _, e := range res.Errs {
		if s.color {
			mc := s.registry.Current().MismatchColor()
			s.writeLine(s.mode.Foreground(mc) + "lex error: " + e.Error() + style.Reset)
		} else {
			s.printf("lex error: %s", e)
		}
	}

	s.stats.RecordRender(len(res.Tokens), res.Failed(), peakDepth(res.Tokens), timer.Elapsed())
}

// peakDepth is the deepest nesting the tokens reach.
func peakDepth(tokens []token.Token) int {
	tr := render.NewTracker(nil, nil)
	peak := 0
	for _, tok := range tokens {
		tr.Observe(tok)
		if d := tr.Depth(); d > peak {
			peak = d
		}
	}
	return peak
}

func (s *Session) writeLine(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
