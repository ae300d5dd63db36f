package repl

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// command handles one :colon line. It reports whether the session
// should end. Command failures are messages for the user, never
// reasons to leave the loop.
func (s *Session) command(line string) (bool, error) {
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return false, errors.New("empty command, try :help")
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "q", "quit", "exit":
		return true, nil

	case "h", "help":
		s.help()

	case "theme":
		if len(args) == 0 {
			s.printf("theme: %s", s.registry.Current().Name)
			s.printf("available: %s", strings.Join(s.registry.Names(), ", "))
			return false, nil
		}
		if !s.registry.SetCurrent(args[0]) {
			return false, fmt.Errorf("unknown theme %q, see :theme for names", args[0])
		}
		s.printf("theme: %s", args[0])

	case "ls", "list":
		s.list = !s.list
		s.printf("token listing %s", onOff(s.list))

	case "depth":
		s.depth = !s.depth
		s.printf("depth labels %s", onOff(s.depth))

	case "color":
		s.color = !s.color
		s.printf("color %s", onOff(s.color))

	case "stats":
		if len(args) > 0 && args[0] == "reset" {
			s.stats.Reset()
			s.writeLine("stats reset")
			return false, nil
		}
		s.showStats()

	default:
		return false, fmt.Errorf("unknown command %q, try :help", name)
	}
	return false, nil
}

func (s *Session) help() {
	s.writeLine("commands:")
	s.writeLine("  :help           show this help")
	s.writeLine("  :theme [name]   show or switch the color theme")
	s.writeLine("  :list           toggle the per-token listing")
	s.writeLine("  :depth          toggle depth labels in the listing")
	s.writeLine("  :color          toggle colorized output")
	s.writeLine("  :stats [reset]  show or reset session counters")
	s.writeLine("  :quit           leave, Ctrl+D works too")
	s.writeLine("")
	s.writeLine("anything else is scanned and rendered; unfinished quotes,")
	s.writeLine("comments and brackets keep the line open, and an empty")
	s.writeLine("line forces submission")
}

func (s *Session) showStats() {
	snap := s.stats.Snapshot()
	s.printf("uptime          %s", snap.Uptime.Round(time.Second))
	s.printf("lines read      %d", snap.LinesRead)
	s.printf("renders         %d", snap.Renders)
	s.printf("tokens          %d (%.1f per render)", snap.Tokens, snap.TokensPerRender())
	s.printf("scan failures   %d (%.1f%%)", snap.ScanFailures, snap.FailureRate())
	s.printf("deepest nesting %d", snap.MaxDepth)
	s.printf("render time     avg %s, max %s",
		time.Duration(snap.AvgRenderNs).Round(time.Microsecond),
		time.Duration(snap.MaxRenderNs).Round(time.Microsecond))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
