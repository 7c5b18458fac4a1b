package mouse

import (
	"github.com/google/uuid"

	"github.com/mariusae/mg/internal/window"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// Tracker applies mouse events to a window set. The identity of the
// window a press landed in is carried across the drags that follow it,
// so a drag that wanders over a mode line or into another window keeps
// extending the selection it started.
type Tracker struct {
	down    bool
	pressed uuid.UUID
}

// Handle applies one event. It reports whether the event changed any
// editor state.
func (t *Tracker) Handle(ws *window.Set, ev Event) bool {
	switch ev.Type {
	case Press:
		switch ev.Button {
		case ButtonLeft:
			w := ws.At(ev.Y)
			if w == nil {
				return false
			}
			t.down = true
			t.pressed = w.ID
			ws.SetCurrent(w)
			if w.Mark != nil {
				w.ClearMark()
				w.SetFlag(window.RedrawFull)
			}
			t.place(w, ev.X, ev.Y)
			return true
		case WheelUp:
			ws.Current().Scroll(-wheelLines)
			return true
		case WheelDown:
			ws.Current().Scroll(wheelLines)
			return true
		}

	case Drag:
		if t.down && ev.Button == ButtonLeft {
			w := ws.ByID(t.pressed)
			if w == nil {
				return false
			}
			y := ev.Y
			if y < w.TopRow {
				y = w.TopRow
			}
			if y >= w.TopRow+w.Rows {
				y = w.TopRow + w.Rows - 1
			}
			if w.Mark == nil {
				// Anchor the selection where the press landed.
				w.SetMark()
			}
			t.place(w, ev.X, y)
			return true
		}

	case Release:
		if ev.Button == ButtonLeft {
			t.down = false
			return true
		}
	}
	return false
}

// place moves the window's cursor to screen position (x, y), which must
// lie inside the window's text area.
func (t *Tracker) place(w *window.Window, x, y int) {
	head := w.Buf.Head()
	lp := w.Top
	for row := y - w.TopRow; row > 0 && lp != head; row-- {
		lp = lp.Next()
	}
	if lp == head {
		lp = lp.Prev()
	}

	off := colToOffset(lp, x, w.Buf.TabWidth)
	w.MoveTo(lp, off, w.Buf.LineNo(lp))
}

// colToOffset maps a screen column back to a byte offset on the line,
// undoing tab and caret expansion. Columns past the end of the line map
// to the line length.
func colToOffset(lp *window.Line, targetCol, tabWidth int) int {
	col := 0
	for i := 0; i < lp.Len(); i++ {
		if col >= targetCol {
			return i
		}
		switch c := lp.Byte(i); {
		case c == '\t':
			if tabWidth <= 0 {
				tabWidth = 8
			}
			col = col - col%tabWidth + tabWidth
		case c < 0x20:
			col += 2
		default:
			col++
		}
	}
	return lp.Len()
}
