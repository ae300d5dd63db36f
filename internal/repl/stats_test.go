package repl

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/lexstorm/internal/lexer"
)

func TestStatsRecordRender(t *testing.T) {
	st := NewStats()
	st.RecordLine()
	st.RecordLine()
	st.RecordRender(4, false, 2, 100*time.Microsecond)
	st.RecordRender(6, true, 1, 300*time.Microsecond)

	snap := st.Snapshot()
	if snap.LinesRead != 2 {
		t.Errorf("LinesRead = %d, want 2", snap.LinesRead)
	}
	if snap.Renders != 2 {
		t.Errorf("Renders = %d, want 2", snap.Renders)
	}
	if snap.Tokens != 10 {
		t.Errorf("Tokens = %d, want 10", snap.Tokens)
	}
	if snap.ScanFailures != 1 {
		t.Errorf("ScanFailures = %d, want 1", snap.ScanFailures)
	}
	if snap.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", snap.MaxDepth)
	}
	if got := snap.TokensPerRender(); got != 5 {
		t.Errorf("TokensPerRender() = %v, want 5", got)
	}
	if got := snap.FailureRate(); got != 50 {
		t.Errorf("FailureRate() = %v, want 50", got)
	}
	if snap.MaxRenderNs != (300 * time.Microsecond).Nanoseconds() {
		t.Errorf("MaxRenderNs = %d, want 300µs", snap.MaxRenderNs)
	}
	if snap.AvgRenderNs != (200 * time.Microsecond).Nanoseconds() {
		t.Errorf("AvgRenderNs = %d, want 200µs", snap.AvgRenderNs)
	}
}

func TestStatsEmptySnapshot(t *testing.T) {
	snap := NewStats().Snapshot()
	if snap.TokensPerRender() != 0 || snap.FailureRate() != 0 {
		t.Error("expected zero rates before any renders")
	}
	if snap.AvgRenderNs != 0 {
		t.Errorf("AvgRenderNs = %d, want 0", snap.AvgRenderNs)
	}
}

func TestStatsReset(t *testing.T) {
	st := NewStats()
	st.RecordLine()
	st.RecordRender(3, true, 4, time.Millisecond)
	st.Reset()

	snap := st.Snapshot()
	if snap.LinesRead != 0 || snap.Renders != 0 || snap.Tokens != 0 ||
		snap.ScanFailures != 0 || snap.MaxDepth != 0 || snap.MaxRenderNs != 0 {
		t.Errorf("expected zeroed stats after Reset, got %+v", snap)
	}
}

func TestPeakDepth(t *testing.T) {
	tests := []struct {
		source string
		want   int
	}{
		{"", 0},
		{"x", 0},
		{"(x)", 1},
		{"([])", 2},
		{"({[<x>]})", 4},
		// Quote contents are opaque; brackets inside do not nest.
		{`"( [ {"`, 1},
	}

	for _, tt := range tests {
		res := lexer.Scan(tt.source)
		if got := peakDepth(res.Tokens); got != tt.want {
			t.Errorf("peakDepth(%q) = %d, want %d", tt.source, got, tt.want)
		}
	}
}

func TestCommandStats(t *testing.T) {
	s, buf := testSession(t)
	s.list = false

	s.render("(a b)")
	if _, err := s.command(":stats"); err != nil {
		t.Fatalf(":stats error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "renders         1") {
		t.Errorf("expected one render counted:\n%s", out)
	}
	if !strings.Contains(out, "deepest nesting 1") {
		t.Errorf("expected nesting depth 1:\n%s", out)
	}

	buf.Reset()
	if _, err := s.command(":stats reset"); err != nil {
		t.Fatalf(":stats reset error: %v", err)
	}
	if !strings.Contains(buf.String(), "stats reset") {
		t.Errorf("expected reset confirmation, got %q", buf.String())
	}
	if snap := s.stats.Snapshot(); snap.Renders != 0 {
		t.Errorf("expected zeroed renders after reset, got %d", snap.Renders)
	}
}
