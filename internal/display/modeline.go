package display

import (
	"fmt"
	"strings"

	"github.com/mariusae/mg/internal/display/driver"
	"github.com/mariusae/mg/internal/window"
)

// Mode line column pads. The buffer name field ends at the first, the
// position indicator at the second.
const (
	padName = 27
	padPos  = 35
)

// modeline renders the status line below a window into the virtual
// screen: change and read-only markers, the buffer name, the optional
// cursor position, the active mode list, and the optional clock.
func (e *Engine) modeline(w *window.Window) {
	row := w.TopRow + w.Rows
	vp := e.vscreen[row]
	vp.color = driver.ColorMode
	vp.changed = true
	vp.hashBad = true

	bp := w.Buf
	tw := bp.TabWidth
	e.vtMove(row, 0)
	e.vtPutc('-', tw)
	e.vtPutc(':', tw)
	switch {
	case bp.Flags&window.BufferReadOnly != 0:
		e.vtPutc('%', tw)
		if bp.Flags&window.BufferChanged != 0 {
			e.vtPutc('*', tw)
		} else {
			e.vtPutc('%', tw)
		}
	case bp.Flags&window.BufferChanged != 0:
		e.vtPutc('*', tw)
		e.vtPutc('*', tw)
	default:
		e.vtPutc('-', tw)
		e.vtPutc('-', tw)
	}
	e.vtPutc('-', tw)
	e.vtPutc(' ', tw)
	n := 6
	if bp.Name != "" {
		n += e.vtPuts(bp.Name, tw)
		n += e.vtPuts("  ", tw)
	}
	for n < padName {
		e.vtPutc(' ', tw)
		n++
	}

	switch {
	case e.lineNos && e.colNos:
		n += e.vtPuts(fmt.Sprintf("(%d,%d)  ", w.DotLine, columnOf(w.Dot, w.DotOff, tw)+1), tw)
	case e.lineNos:
		n += e.vtPuts(fmt.Sprintf("L%d  ", w.DotLine), tw)
	case e.colNos:
		n += e.vtPuts(fmt.Sprintf("C%d  ", columnOf(w.Dot, w.DotOff, tw)+1), tw)
	}
	for n < padPos {
		e.vtPutc(' ', tw)
		n++
	}

	e.vtPutc('(', tw)
	n++
	for i, mode := range bp.Modes {
		if i > 0 {
			e.vtPutc(' ', tw)
			n++
		}
		n += e.vtPuts(capitalize(mode), tw)
	}
	e.vtPutc(')', tw)
	n++

	if e.clock {
		n += e.vtPuts(e.now().Format("  15:04"), tw)
	}

	for n < e.cols {
		e.vtPutc(' ', tw)
		n++
	}
}

// capitalize upcases the first byte of a mode name for display.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
