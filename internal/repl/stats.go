package repl

import (
	"sync/atomic"
	"time"
)

// Stats tracks session activity for the :stats command.
type Stats struct {
	linesRead    atomic.Uint64
	renders      atomic.Uint64
	tokens       atomic.Uint64
	scanFailures atomic.Uint64

	renderTotalNs atomic.Int64
	renderMaxNs   atomic.Int64
	maxDepth      atomic.Int64

	startTime time.Time
}

// NewStats creates a stats tracker starting now.
func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// RecordLine counts one physical input line.
func (s *Stats) RecordLine() {
	s.linesRead.Add(1)
}

// RecordRender records one scan-and-render pass.
func (s *Stats) RecordRender(tokens int, failed bool, depth int, d time.Duration) {
	s.renders.Add(1)
	s.tokens.Add(uint64(tokens))
	if failed {
		s.scanFailures.Add(1)
	}

	ns := d.Nanoseconds()
	s.renderTotalNs.Add(ns)

	// Update max (atomic compare-and-swap loop)
	for {
		old := s.renderMaxNs.Load()
		if ns <= old {
			break
		}
		if s.renderMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := s.maxDepth.Load()
		if int64(depth) <= old {
			break
		}
		if s.maxDepth.CompareAndSwap(old, int64(depth)) {
			break
		}
	}
}

// Snapshot returns a snapshot of current stats.
func (s *Stats) Snapshot() StatsSnapshot {
	renders := s.renders.Load()

	var avgNs int64
	if renders > 0 {
		avgNs = s.renderTotalNs.Load() / int64(renders)
	}

	return StatsSnapshot{
		Uptime:       time.Since(s.startTime),
		LinesRead:    s.linesRead.Load(),
		Renders:      renders,
		Tokens:       s.tokens.Load(),
		ScanFailures: s.scanFailures.Load(),
		AvgRenderNs:  avgNs,
		MaxRenderNs:  s.renderMaxNs.Load(),
		MaxDepth:     s.maxDepth.Load(),
	}
}

// Reset clears all stats and restarts the clock.
func (s *Stats) Reset() {
	s.linesRead.Store(0)
	s.renders.Store(0)
	s.tokens.Store(0)
	s.scanFailures.Store(0)
	s.renderTotalNs.Store(0)
	s.renderMaxNs.Store(0)
	s.maxDepth.Store(0)
	s.startTime = time.Now()
}

// StatsSnapshot is a point-in-time view of session stats.
type StatsSnapshot struct {
	Uptime       time.Duration
	LinesRead    uint64
	Renders      uint64
	Tokens       uint64
	ScanFailures uint64
	AvgRenderNs  int64
	MaxRenderNs  int64
	MaxDepth     int64
}

// TokensPerRender returns the average token count per submission.
func (s StatsSnapshot) TokensPerRender() float64 {
	if s.Renders == 0 {
		return 0
	}
	return float64(s.Tokens) / float64(s.Renders)
}

// FailureRate returns the percentage of submissions the scanner
// rejected.
func (s StatsSnapshot) FailureRate() float64 {
	if s.Renders == 0 {
		return 0
	}
	return float64(s.ScanFailures) / float64(s.Renders) * 100
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
