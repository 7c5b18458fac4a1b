package app

import (
	"github.com/mariusae/mg/internal/mouse"
	"github.com/mariusae/mg/internal/window"
)

// eventKind classifies a decoded input event.
type eventKind int

const (
	keyEvent eventKind = iota
	mouseEvent
	upEvent
	downEvent
	leftEvent
	rightEvent
	pageUpEvent
	pageDownEvent
	errEvent
)

type inputEvent struct {
	kind  eventKind
	key   byte
	mouse mouse.Event
	err   error
}

// readLoop decodes the raw byte stream into events. Escape sequences are
// parsed here because they need sequential reads; everything else is a
// single byte.
func (e *Editor) readLoop() {
	for {
		c, err := e.in.ReadByte()
		if err != nil {
			e.events <- inputEvent{kind: errEvent, err: err}
			return
		}
		if c != 0x1b {
			e.events <- inputEvent{kind: keyEvent, key: c}
			continue
		}

		c, err = e.in.ReadByte()
		if err != nil {
			e.events <- inputEvent{kind: errEvent, err: err}
			return
		}
		if c != '[' {
			// Bare escape or an alt-modified key; both are ignored.
			continue
		}

		c, err = e.in.ReadByte()
		if err != nil {
			e.events <- inputEvent{kind: errEvent, err: err}
			return
		}
		switch c {
		case '<':
			ev, err := mouse.Decode(e.in)
			if err != nil {
				e.log.Debug("mouse decode: %v", err)
				continue
			}
			e.events <- inputEvent{kind: mouseEvent, mouse: ev}
		case 'A':
			e.events <- inputEvent{kind: upEvent}
		case 'B':
			e.events <- inputEvent{kind: downEvent}
		case 'C':
			e.events <- inputEvent{kind: rightEvent}
		case 'D':
			e.events <- inputEvent{kind: leftEvent}
		case '5', '6':
			kind := pageUpEvent
			if c == '6' {
				kind = pageDownEvent
			}
			if t, err := e.in.ReadByte(); err != nil {
				e.events <- inputEvent{kind: errEvent, err: err}
				return
			} else if t == '~' {
				e.events <- inputEvent{kind: kind}
			}
		}
	}
}

// handle applies one input event to the editor state.
func (e *Editor) handle(ev inputEvent) error {
	switch ev.kind {
	case errEvent:
		return NewOperationError("read input", "", ev.err)

	case mouseEvent:
		e.tracker.Handle(e.ws, ev.mouse)

	case upEvent:
		e.moveDot(-1)
	case downEvent:
		e.moveDot(1)
	case leftEvent:
		w := e.ws.Current()
		if w.DotOff > 0 {
			w.MoveTo(w.Dot, w.DotOff-1, w.DotLine)
		}
	case rightEvent:
		w := e.ws.Current()
		if w.DotOff < w.Dot.Len() {
			w.MoveTo(w.Dot, w.DotOff+1, w.DotLine)
		}

	case pageUpEvent:
		w := e.ws.Current()
		w.Scroll(-(w.Rows - 2))
	case pageDownEvent:
		w := e.ws.Current()
		w.Scroll(w.Rows - 2)

	case keyEvent:
		switch ev.key {
		case 'q', 0x11, 0x03: // q, C-q, C-c
			return ErrQuit
		case 0x0c: // C-l
			e.eng.Garbage()
		case 0x00: // C-space sets the mark
			w := e.ws.Current()
			w.SetMark()
			w.SetFlag(window.RedrawMove)
		case 0x07: // C-g clears the mark
			w := e.ws.Current()
			if w.Mark != nil {
				w.ClearMark()
				w.SetFlag(window.RedrawFull)
			}
		}
	}
	return nil
}

// moveDot moves the cursor one line up or down, clamping the offset to
// the new line's length.
func (e *Editor) moveDot(dir int) {
	w := e.ws.Current()
	head := w.Buf.Head()
	lp := w.Dot
	lineNo := w.DotLine
	if dir < 0 {
		if lp.Prev() == head {
			return
		}
		lp = lp.Prev()
		lineNo--
	} else {
		if lp.Next() == head {
			return
		}
		lp = lp.Next()
		lineNo++
	}
	off := w.DotOff
	if off > lp.Len() {
		off = lp.Len()
	}
	w.MoveTo(lp, off, lineNo)
}
