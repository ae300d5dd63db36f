package lexer

import (
	"fmt"
	"strings"
)

// Error is one scan problem, positioned by byte offset into the
// scanned source.
type Error struct {
	Offset int
	Msg    string
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// ErrorList collects scan problems in source order.
type ErrorList []Error

// Add appends an error at the given offset.
func (l *ErrorList) Add(offset int, msg string) {
	*l = append(*l, Error{Offset: offset, Msg: msg})
}

// Error implements the error interface by joining the messages.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Err returns an error equivalent to this list, nil when empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
