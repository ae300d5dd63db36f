package repl

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// FileHistory is a bounded input history backed by a plain text file,
// one quoted entry per line. It satisfies the terminal's History
// interface, so recalled entries include past sessions.
type FileHistory struct {
	path    string
	max     int
	entries []string // oldest first
	file    *os.File // append handle, nil when persistence is off
	lines   int      // lines currently in the file, for compaction
}

var _ term.History = (*FileHistory)(nil)

// LoadHistory reads up to max entries from path and opens it for
// appending. An empty path or max of zero disables persistence; a
// missing file just starts empty.
func LoadHistory(path string, max int) (*FileHistory, error) {
	h := &FileHistory{path: path, max: max}
	if path == "" || max <= 0 {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("repl: reading history %s: %w", path, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		h.lines++
		entry := line
		// Entries are stored quoted; a line that does not unquote is
		// kept raw so hand-edited files still load.
		if unquoted, err := strconv.Unquote(line); err == nil {
			entry = unquoted
		}
		h.push(entry)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("repl: opening history %s: %w", path, err)
	}
	h.file = f
	return h, nil
}

// Add records one input line. Blank lines and immediate repeats are
// dropped, the way shells do it. The terminal calls this from
// ReadLine.
func (h *FileHistory) Add(entry string) {
	if strings.TrimSpace(entry) == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.push(entry)
	if h.file != nil {
		fmt.Fprintln(h.file, strconv.Quote(entry))
		h.lines++
	}
}

// Len reports the number of recallable entries.
func (h *FileHistory) Len() int {
	return len(h.entries)
}

// At returns the idx'th most recent entry; At(0) is the newest.
func (h *FileHistory) At(idx int) string {
	return h.entries[len(h.entries)-1-idx]
}

// Close releases the append handle, first rewriting the file when it
// has grown well past the retention limit.
func (h *FileHistory) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil

	if h.lines > 2*h.max {
		var b strings.Builder
		for _, entry := range h.entries {
			b.WriteString(strconv.Quote(entry))
			b.WriteByte('\n')
		}
		if werr := os.WriteFile(h.path, []byte(b.String()), 0o600); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func (h *FileHistory) push(entry string) {
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}
