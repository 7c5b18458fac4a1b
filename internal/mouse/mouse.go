// Package mouse decodes SGR extended mouse reports and translates them
// into cursor motion, drag selection, and wheel scrolling over a window
// set. Click to place the cursor, drag to select.
package mouse

import (
	"errors"
	"io"
)

// Escape sequences enabling and disabling terminal mouse tracking. SGR
// extended mode (1006) is requested for coordinates beyond column 223.
const (
	EnableSeq  = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	DisableSeq = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
)

// EventType classifies a decoded mouse report.
type EventType int

const (
	Press EventType = iota
	Release
	Drag
)

// Button numbers as reported by the terminal.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
	WheelUp      = 64
	WheelDown    = 65
)

// Event is one decoded mouse report with zero-based screen coordinates.
type Event struct {
	Type   EventType
	Button int
	X      int
	Y      int
}

// ErrMalformed is returned by Decode for byte sequences that are not
// valid SGR mouse reports.
var ErrMalformed = errors.New("mouse: malformed SGR sequence")

// Decode reads one SGR mouse report from r. The caller has already
// consumed the "ESC [ <" introducer; Decode consumes through the final
// 'M' or 'm'. The reported one-based coordinates are converted to
// zero-based, and bit 5 of the button number marks motion with a button
// held (a drag).
func Decode(r io.ByteReader) (Event, error) {
	button, c, err := decodeInt(r)
	if err != nil {
		return Event{}, err
	}
	if c != ';' {
		return Event{}, ErrMalformed
	}
	x, c, err := decodeInt(r)
	if err != nil {
		return Event{}, err
	}
	if c != ';' {
		return Event{}, ErrMalformed
	}
	y, c, err := decodeInt(r)
	if err != nil {
		return Event{}, err
	}

	ev := Event{X: x - 1, Y: y - 1}
	released := false
	switch c {
	case 'M':
	case 'm':
		released = true
	default:
		return Event{}, ErrMalformed
	}

	switch {
	case button&32 != 0:
		ev.Type = Drag
		ev.Button = button &^ 32
	case released:
		ev.Type = Release
		ev.Button = button
	default:
		ev.Type = Press
		ev.Button = button
	}
	return ev, nil
}

// decodeInt reads a decimal integer and returns it with the byte that
// terminated it.
func decodeInt(r io.ByteReader) (n int, term byte, err error) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, 0, ErrMalformed
		}
		if c < '0' || c > '9' {
			return n, c, nil
		}
		n = n*10 + int(c-'0')
	}
}
