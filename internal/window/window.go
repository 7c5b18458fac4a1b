package window

import (
	"github.com/google/uuid"

	"github.com/mariusae/mg/internal/selection"
)

// RedrawFlag is a bitset of pending redraw work for one window.
type RedrawFlag uint8

const (
	// RedrawEdit means the line holding the cursor changed in place.
	RedrawEdit RedrawFlag = 1 << iota
	// RedrawFull means every visible row must be re-rendered.
	RedrawFull
	// RedrawFrame means the window must be recentered around the cursor.
	RedrawFrame
	// RedrawMode means the mode line is stale.
	RedrawMode
	// RedrawMove means only the cursor moved.
	RedrawMove
)

// Window is one viewport onto a buffer.
type Window struct {
	// ID uniquely identifies the window across its lifetime.
	ID uuid.UUID

	// Buf is the buffer displayed in this window.
	Buf *Buffer

	// TopRow is the first terminal row of the text area.
	TopRow int
	// Rows is the number of text rows; the mode line sits at
	// TopRow+Rows.
	Rows int

	// Top is the first displayed line.
	Top *Line

	// Dot is the cursor line; DotOff the byte offset within it;
	// DotLine its 1-based line number.
	Dot     *Line
	DotOff  int
	DotLine int

	// Mark anchors the selection; nil means no selection.
	Mark *selection.Pos

	// Frame requests recentering: positive counts rows from the top,
	// negative from the bottom, zero centers. Consumed by the engine.
	Frame int

	flags RedrawFlag
}

// New creates a window onto buf occupying rows topRow..topRow+rows-1,
// marked for a full initial redraw.
func New(buf *Buffer, topRow, rows int) *Window {
	w := &Window{
		ID:      uuid.New(),
		Buf:     buf,
		TopRow:  topRow,
		Rows:    rows,
		Top:     buf.FirstLine(),
		Dot:     buf.FirstLine(),
		DotLine: 1,
	}
	w.SetFlag(RedrawFull | RedrawMode)
	return w
}

// Flags returns the pending redraw flags.
func (w *Window) Flags() RedrawFlag { return w.flags }

// SetFlag adds redraw flags.
func (w *Window) SetFlag(f RedrawFlag) { w.flags |= f }

// ClearFlags resets all redraw flags; called by the engine after a
// window has been reconciled.
func (w *Window) ClearFlags() { w.flags = 0 }

// DotPos returns the cursor's document position.
func (w *Window) DotPos() selection.Pos {
	return selection.Pos{Line: w.DotLine, Col: w.DotOff}
}

// SetMark places the selection anchor at the cursor.
func (w *Window) SetMark() {
	pos := w.DotPos()
	w.Mark = &pos
}

// ClearMark removes the selection anchor.
func (w *Window) ClearMark() { w.Mark = nil }

// Selection returns the active selection span, if any. An empty span
// (mark equal to dot) is reported as no selection.
func (w *Window) Selection() (selection.Span, bool) {
	if w.Mark == nil {
		return selection.Span{}, false
	}
	span := selection.Span{Anchor: *w.Mark, Active: w.DotPos()}
	if span.IsEmpty() {
		return selection.Span{}, false
	}
	return span, true
}

// TopLineNo returns the 1-based line number of the first displayed line,
// derived by walking back from the cursor.
func (w *Window) TopLineNo() int {
	n := w.DotLine
	for lp := w.Dot; lp != w.Top && lp.Prev() != w.Buf.Head(); lp = lp.Prev() {
		n--
	}
	return n
}

// MoveTo places the cursor on lp at the given offset and line number.
func (w *Window) MoveTo(lp *Line, off, lineNo int) {
	w.Dot = lp
	w.DotOff = off
	w.DotLine = lineNo
	w.SetFlag(RedrawMove)
}

// Scroll moves the displayed region n lines forward (positive) or
// backward (negative), dragging the cursor along so it stays visible.
func (w *Window) Scroll(n int) {
	head := w.Buf.Head()
	for ; n > 0; n-- {
		if w.Top.Next() == head {
			break
		}
		w.Top = w.Top.Next()
		if w.Dot == w.Top.Prev() {
			w.Dot = w.Top
			w.DotOff = 0
			w.DotLine++
		}
	}
	for ; n < 0; n++ {
		if w.Top.Prev() == head {
			break
		}
		w.Top = w.Top.Prev()
	}
	// Keep dot inside the window.
	lp := w.Top
	row := 0
	for lp != w.Dot && lp != head && row < w.Rows-1 {
		lp = lp.Next()
		row++
	}
	if lp != w.Dot {
		w.Dot = lp
		w.DotOff = 0
		w.DotLine = w.Buf.LineNo(lp)
	}
	w.SetFlag(RedrawFull | RedrawMode)
}

// Set is an ordered collection of windows sharing the terminal, with one
// window current.
type Set struct {
	windows []*Window
	current *Window
}

// NewSet creates a window set; the first window becomes current.
func NewSet(ws ...*Window) *Set {
	s := &Set{windows: ws}
	if len(ws) > 0 {
		s.current = ws[0]
	}
	return s
}

// Windows returns the windows in screen order.
func (s *Set) Windows() []*Window { return s.windows }

// Current returns the current window.
func (s *Set) Current() *Window { return s.current }

// SetCurrent switches the current window.
func (s *Set) SetCurrent(w *Window) { s.current = w }

// ByID returns the window with the given identity, or nil if no window
// in the set carries it.
func (s *Set) ByID(id uuid.UUID) *Window {
	for _, w := range s.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// At returns the window whose text area contains the given terminal row,
// or nil if the row falls on a mode line or the echo line.
func (s *Set) At(row int) *Window {
	for _, w := range s.windows {
		if row >= w.TopRow && row < w.TopRow+w.Rows {
			return w
		}
	}
	return nil
}
