package display

import (
	"fmt"

	"github.com/mariusae/mg/internal/display/driver"
	"github.com/mariusae/mg/internal/selection"
	"github.com/mariusae/mg/internal/window"
)

// contMarker flags a truncated or horizontally scrolled line in its
// outermost visible column.
const contMarker = '$'

// nextTabStop returns the first tab stop after col for the given tab
// width.
func nextTabStop(col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 8
	}
	return col - col%tabWidth + tabWidth
}

// isCtrl reports whether c renders as a two-column caret escape.
func isCtrl(c byte) bool { return c < 0x20 }

// isPrint reports whether c occupies exactly one column as itself.
func isPrint(c byte) bool { return c >= 0x20 && c < 0x7f }

// octalEscape renders a non-printable byte as backslash plus octal
// digits.
func octalEscape(c byte) string { return fmt.Sprintf("\\%o", c) }

// vtMove positions the software cursor on the virtual screen.
func (e *Engine) vtMove(row, col int) {
	e.vtRow = row
	e.vtCol = col
}

// vtPutc writes one buffer byte to the virtual screen, expanding tabs to
// the window's tab stops, control bytes to caret pairs, and other
// non-printable bytes to octal escapes. Once the column reaches the row
// width the last column is overwritten with the continuation marker.
//
// Tab expansion stops the instant the column reaches the row width: on a
// screen whose width is not a multiple of the tab width the next stop can
// lie past the right margin, and the expansion loop must not run on
// toward it.
func (e *Engine) vtPutc(c byte, tabWidth int) {
	vp := e.vscreen[e.vtRow]
	switch {
	case e.vtCol >= e.cols:
		vp.text[e.cols-1] = contMarker
	case c == '\t':
		target := nextTabStop(e.vtCol, tabWidth)
		for {
			e.vtPutc(' ', tabWidth)
			if e.vtCol >= e.cols || e.vtCol >= target {
				break
			}
		}
	case isCtrl(c):
		e.vtPutc('^', tabWidth)
		e.vtPutc(c^0x40, tabWidth)
	case isPrint(c):
		vp.text[e.vtCol] = c
		e.vtCol++
	default:
		esc := octalEscape(c)
		for i := 0; i < len(esc); i++ {
			e.vtPutc(esc[i], tabWidth)
		}
	}
}

// vtPute writes one byte of an extended (horizontally scrolled) line.
// Columns left of the scroll origin are consumed without being written;
// tab stops are computed against the unscrolled column.
func (e *Engine) vtPute(c byte, tabWidth int) {
	vp := e.vscreen[e.vtRow]
	switch {
	case e.vtCol >= e.cols:
		vp.text[e.cols-1] = contMarker
	case c == '\t':
		target := nextTabStop(e.vtCol+e.lbound, tabWidth)
		for {
			e.vtPute(' ', tabWidth)
			if e.vtCol+e.lbound >= target || e.vtCol >= e.cols {
				break
			}
		}
	case isCtrl(c):
		e.vtPute('^', tabWidth)
		e.vtPute(c^0x40, tabWidth)
	case isPrint(c):
		if e.vtCol >= 0 {
			vp.text[e.vtCol] = c
		}
		e.vtCol++
	default:
		esc := octalEscape(c)
		for i := 0; i < len(esc); i++ {
			e.vtPute(esc[i], tabWidth)
		}
	}
}

// vtPuts writes a string and reports how many bytes it wrote.
func (e *Engine) vtPuts(s string, tabWidth int) int {
	for i := 0; i < len(s); i++ {
		e.vtPutc(s[i], tabWidth)
	}
	return len(s)
}

// vtEEOL blanks the virtual row from the software cursor to the right
// margin and clears the selection attribute there. Columns already
// written are never touched.
func (e *Engine) vtEEOL() {
	vp := e.vscreen[e.vtRow]
	for e.vtCol < e.cols {
		if e.vtCol >= 0 {
			vp.text[e.vtCol] = ' '
			vp.attr[e.vtCol] = 0
		}
		e.vtCol++
	}
}

// renderLine renders one document line into virtual row vrow starting at
// column zero, stamping the selection attribute over every column each
// byte expands to, then blanks to the right margin.
func (e *Engine) renderLine(vrow int, lp *window.Line, lineNo int, sel selection.Span, hasSel bool, tabWidth int) {
	vp := e.vscreen[vrow]
	vp.color = driver.ColorText
	vp.changed = true
	vp.hashBad = true
	e.vtMove(vrow, 0)
	if lp != nil {
		for j := 0; j < lp.Len(); j++ {
			old := e.vtCol
			var a byte
			if hasSel && sel.Contains(lineNo, j) {
				a = 1
			}
			e.vtPutc(lp.Byte(j), tabWidth)
			for ; old < e.vtCol && old < e.cols; old++ {
				vp.attr[old] = a
			}
		}
	}
	e.vtEEOL()
}
