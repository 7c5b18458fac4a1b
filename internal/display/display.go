package display

import (
	"bytes"
	"time"

	"github.com/mariusae/mg/internal/display/driver"
	"github.com/mariusae/mg/internal/window"
)

// Engine owns the redisplay state: the virtual screen being built for the
// next frame, the physical screen believed to be on the terminal, the
// score matrix for the insert/delete optimization, and the software and
// hardware cursor positions. All reconciliation runs through one Engine
// from one goroutine; independent engines are fully isolated.
type Engine struct {
	drv driver.Driver

	rows int // terminal rows; the bottom one is the echo line
	cols int

	vscreen []*Row
	pscreen []*Row
	blanks  *Row
	score   []score

	// Software cursor used while building virtual rows.
	vtRow int
	vtCol int

	// lbound is the horizontal scroll origin of the extended line, zero
	// when no line is extended.
	lbound int

	garbage bool

	lineNos bool
	colNos  bool
	clock   bool

	typeahead func() bool
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithTypeahead installs the pending-input probe used to skip redisplay
// cycles while keystrokes are still queued.
func WithTypeahead(f func() bool) Option {
	return func(e *Engine) { e.typeahead = f }
}

// WithClock overrides the time source for the mode-line clock.
func WithClock(f func() time.Time) Option {
	return func(e *Engine) { e.now = f }
}

// New creates an engine sized to the driver's terminal, with the whole
// screen marked garbage so the first Update paints everything.
func New(drv driver.Driver, opts ...Option) (*Engine, error) {
	e := &Engine{
		drv:     drv,
		lineNos: true,
		colNos:  true,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	rows, cols := drv.Size()
	if err := e.Resize(rows, cols); err != nil {
		return nil, err
	}
	return e, nil
}

// Size returns the engine's current terminal dimensions.
func (e *Engine) Size() (rows, cols int) { return e.rows, e.cols }

// Garbage marks the entire screen as unknown, forcing the next Update to
// erase and repaint everything.
func (e *Engine) Garbage() { e.garbage = true }

// SetLineNumbers sets the mode-line line-number display and forces a full
// repaint.
func (e *Engine) SetLineNumbers(on bool) {
	e.lineNos = on
	e.garbage = true
}

// ToggleLineNumbers flips the mode-line line-number display.
func (e *Engine) ToggleLineNumbers() { e.SetLineNumbers(!e.lineNos) }

// SetColumnNumbers sets the mode-line column-number display and forces a
// full repaint.
func (e *Engine) SetColumnNumbers(on bool) {
	e.colNos = on
	e.garbage = true
}

// ToggleColumnNumbers flips the mode-line column-number display.
func (e *Engine) ToggleColumnNumbers() { e.SetColumnNumbers(!e.colNos) }

// SetClock sets the mode-line clock display and forces a full repaint.
func (e *Engine) SetClock(on bool) {
	e.clock = on
	e.garbage = true
}

// ToggleClock flips the mode-line clock display.
func (e *Engine) ToggleClock() { e.SetClock(!e.clock) }

// Tidy parks the cursor on the echo line and erases it, in anticipation
// of handing the terminal back to the shell. Drivers that maintain a
// scroll region get it restored to the full screen.
func (e *Engine) Tidy() error {
	if rr, ok := e.drv.(interface{ ResetRegion() }); ok {
		rr.ResetRegion()
	}
	e.drv.SetColor(driver.ColorText)
	e.drv.Move(e.rows-1, 0)
	e.drv.EraseEOL()
	return e.drv.Flush()
}

// Update reconciles the terminal with the window set. It renders dirty
// windows into the virtual screen, then picks the cheapest path to make
// the physical screen match: a garbage repaint, a hard update with the
// insert/delete edit script, or per-row easy updates. The cycle is
// skipped entirely while input is pending so fast typing coalesces into
// one redraw.
func (e *Engine) Update(ws *window.Set) error {
	if e.typeahead != nil && e.typeahead() {
		return nil
	}

	if e.garbage {
		for _, w := range ws.Windows() {
			w.SetFlag(window.RedrawMode | window.RedrawFull)
		}
	}
	if e.lineNos || e.colNos {
		// The position indicator changes on every cursor move.
		for _, w := range ws.Windows() {
			w.SetFlag(window.RedrawMode)
		}
	}
	// A selection highlight can change far from the edited row, because
	// its other endpoint may be anywhere. Promote any pending change on
	// a selecting window to a full redraw.
	for _, w := range ws.Windows() {
		if w.Mark != nil && w.Flags() != 0 {
			w.SetFlag(window.RedrawFull)
		}
	}

	hard := false
	for _, w := range ws.Windows() {
		if w.Flags() == 0 {
			continue
		}
		e.frameWindow(w)

		sel, hasSel := w.Selection()
		tabWidth := w.Buf.TabWidth
		head := w.Buf.Head()
		lp := w.Top
		row := w.TopRow
		lineNo := w.TopLineNo()

		switch {
		case w.Flags()&^window.RedrawMode == window.RedrawEdit:
			// Fast path: only the cursor line changed in place. An
			// edit coalesced with a cursor move must not take it,
			// since only the new dot row would be repainted.
			for lp != w.Dot {
				row++
				lineNo++
				lp = lp.Next()
			}
			e.renderLine(row, lp, lineNo, sel, hasSel, tabWidth)

		case w.Flags()&(window.RedrawEdit|window.RedrawFull) != 0:
			hard = true
			for row < w.TopRow+w.Rows {
				if lp != head {
					e.renderLine(row, lp, lineNo, sel, hasSel, tabWidth)
					lp = lp.Next()
					lineNo++
				} else {
					e.renderLine(row, nil, 0, sel, false, tabWidth)
				}
				row++
			}
		}

		if w.Flags()&window.RedrawMode != 0 {
			e.modeline(w)
		}
		w.ClearFlags()
		w.Frame = 0
	}

	cur := ws.Current()
	curRow, curCol := e.cursorPos(cur)

	if curCol >= e.cols-1 {
		// The cursor line renders past the right margin: show it
		// horizontally scrolled.
		vp := e.vscreen[curRow]
		vp.extended = true
		vp.changed = true
		vp.hashBad = true
		e.extendLine(cur, curRow, curCol)
	} else {
		e.lbound = 0
	}

	e.deextend(ws, cur, curCol)

	if e.garbage {
		return e.garbageRepaint(curRow, curCol)
	}
	if hard {
		return e.hardUpdate(curRow, curCol)
	}

	for i := 0; i < e.rows-1; i++ {
		if e.vscreen[i].changed {
			e.rowUpdate(i, e.vscreen[i], e.pscreen[i])
			e.vscreen[i].copyTo(e.pscreen[i])
		}
	}
	e.drv.Move(curRow, curCol-e.lbound)
	return e.drv.Flush()
}

// frameWindow ensures the cursor line is visible, recentering the window
// when it is not or when an explicit reframe was requested. A reframed
// window is forced to a full redraw.
func (e *Engine) frameWindow(w *window.Window) {
	head := w.Buf.Head()
	if w.Flags()&window.RedrawFrame == 0 {
		lp := w.Top
		for i := 0; i < w.Rows; i++ {
			if lp == w.Dot {
				return
			}
			if lp == head {
				break
			}
			lp = lp.Next()
		}
	}

	i := w.Frame
	switch {
	case i > 0:
		i--
		if i >= w.Rows {
			i = w.Rows - 1
		}
	case i < 0:
		i += w.Rows
		if i < 0 {
			i = 0
		}
	default:
		i = w.Rows / 2
	}

	lp := w.Dot
	for i != 0 && lp.Prev() != head {
		i--
		lp = lp.Prev()
	}
	w.Top = lp
	w.SetFlag(window.RedrawFull)
}

// cursorPos computes the terminal row and column of the document cursor
// by replaying the builder's expansion rules over the line prefix.
func (e *Engine) cursorPos(w *window.Window) (row, col int) {
	row = w.TopRow
	head := w.Buf.Head()
	for lp := w.Top; lp != w.Dot && lp != head; lp = lp.Next() {
		row++
	}
	col = columnOf(w.Dot, w.DotOff, w.Buf.TabWidth)
	return row, col
}

// columnOf returns the terminal column the given byte offset lands on,
// using the same expansion rules as the builder.
func columnOf(lp *window.Line, off, tabWidth int) int {
	col := 0
	for i := 0; i < off && i < lp.Len(); i++ {
		c := lp.Byte(i)
		switch {
		case c == '\t':
			col = nextTabStop(col, tabWidth)
		case isCtrl(c):
			col += 2
		case isPrint(c):
			col++
		default:
			col += len(octalEscape(c))
		}
	}
	return col
}

// extendLine re-renders the cursor line with a horizontal scroll origin
// chosen so the cursor sits within the middle half of the screen, and
// marks column zero with the continuation marker.
func (e *Engine) extendLine(w *window.Window, curRow, curCol int) {
	if e.cols < 2 {
		return
	}
	e.lbound = curCol - curCol%(e.cols>>1) - (e.cols >> 2)

	sel, hasSel := w.Selection()
	tabWidth := w.Buf.TabWidth
	vp := e.vscreen[curRow]

	e.vtMove(curRow, -e.lbound)
	lp := w.Dot
	for j := 0; j < lp.Len(); j++ {
		old := e.vtCol
		var a byte
		if hasSel && sel.Contains(w.DotLine, j) {
			a = 1
		}
		e.vtPute(lp.Byte(j), tabWidth)
		for ; old < e.vtCol; old++ {
			if old >= 0 && old < e.cols {
				vp.attr[old] = a
			}
		}
	}
	e.vtEEOL()
	vp.text[0] = contMarker
}

// deextend re-renders, without the horizontal offset, any row still
// flagged extended whose cursor has departed or now fits. It also marks
// mode lines changed during a garbage repaint.
func (e *Engine) deextend(ws *window.Set, cur *window.Window, curCol int) {
	for _, w := range ws.Windows() {
		sel, hasSel := w.Selection()
		tabWidth := w.Buf.TabWidth
		head := w.Buf.Head()
		lp := w.Top
		lineNo := w.TopLineNo()

		for row := w.TopRow; row < w.TopRow+w.Rows; row++ {
			vp := e.vscreen[row]
			if vp.extended {
				// Extended rows always repaint; their image
				// depends on the scroll origin.
				vp.changed = true
				vp.hashBad = true
				if w != cur || lp != w.Dot || curCol < e.cols-1 {
					e.renderLine(row, lp, lineNo, sel, hasSel, tabWidth)
					e.vscreen[row].extended = false
				}
			}
			if lp != head {
				lp = lp.Next()
				lineNo++
			}
		}
		if e.garbage {
			e.vscreen[w.TopRow+w.Rows].changed = true
		}
	}
}

// garbageRepaint erases the terminal and repaints every visible row from
// the virtual screen, diffing against a blank image.
func (e *Engine) garbageRepaint(curRow, curCol int) error {
	e.garbage = false
	e.drv.Move(0, 0)
	e.drv.ErasePage()
	for i := 0; i < e.rows-1; i++ {
		e.rowUpdate(i, e.vscreen[i], e.blanks)
		e.vscreen[i].copyTo(e.pscreen[i])
	}
	e.drv.Move(curRow, curCol-e.lbound)
	return e.drv.Flush()
}

// hardUpdate reconciles after a structural change. It hashes both
// screens, trims the matching prefix and suffix, and runs the
// insert/delete edit script over the remaining band.
func (e *Engine) hardUpdate(curRow, curCol int) error {
	for i := 0; i < e.rows-1; i++ {
		e.hashRow(e.vscreen[i])
		e.hashRow(e.pscreen[i])
	}

	offs := 0
	for offs != e.rows-1 {
		vp, pp := e.vscreen[offs], e.pscreen[offs]
		if !sameRow(vp, pp) {
			break
		}
		e.rowUpdate(offs, vp, pp)
		vp.copyTo(pp)
		offs++
	}
	if offs == e.rows-1 {
		// Everything matched by hash; only the cursor moves.
		e.drv.Move(curRow, curCol-e.lbound)
		return e.drv.Flush()
	}

	size := e.rows - 1
	for size != offs {
		vp, pp := e.vscreen[size-1], e.pscreen[size-1]
		if !sameRow(vp, pp) {
			break
		}
		e.rowUpdate(size-1, vp, pp)
		vp.copyTo(pp)
		size--
	}

	size -= offs
	if size == 0 {
		// A structural change was requested but the trim consumed the
		// whole screen; the matrix would not be reconcilable with the
		// terminal.
		panic("display: empty band in hard update")
	}

	e.setScores(offs, size)
	e.traceback(offs, size, size, size)
	for i := 0; i < size; i++ {
		e.vscreen[offs+i].copyTo(e.pscreen[offs+i])
	}
	e.drv.Move(curRow, curCol-e.lbound)
	return e.drv.Flush()
}

// rowUpdate makes one physical row match its virtual image using only
// basic operations (no insert/delete character). Rows carrying a
// selection attribute, mode lines, and rows whose color or attributes
// changed repaint in full, switching the rendition per attribute run;
// plain text rows emit only the differing middle span, substituting an
// erase-to-end-of-line for trailing blanks when that is cheaper.
func (e *Engine) rowUpdate(row int, vvp, pvp *Row) {
	hasSel := false
	for _, a := range vvp.attr {
		if a != 0 {
			hasSel = true
			break
		}
	}

	if vvp.color == driver.ColorMode || hasSel ||
		vvp.color != pvp.color || !bytes.Equal(vvp.attr, pvp.attr) {
		e.drv.Move(row, 0)
		if vvp.color == driver.ColorMode {
			e.drv.SetColor(driver.ColorMode)
			for col := 0; col < e.cols; col++ {
				e.drv.PutChar(vvp.text[col])
			}
		} else {
			cur := byte(0xff) // force the initial rendition switch
			for col := 0; col < e.cols; col++ {
				if a := vvp.attr[col]; a != cur {
					if a != 0 {
						e.drv.SetColor(driver.ColorSelect)
					} else {
						e.drv.SetColor(driver.ColorText)
					}
					cur = a
				}
				e.drv.PutChar(vvp.text[col])
			}
		}
		e.drv.SetColor(driver.ColorText)
		if pvp != e.blanks {
			copy(pvp.attr, vvp.attr)
		}
		return
	}

	// Plain, unselected text: emit only the differing middle span.
	start := 0
	for start < e.cols && vvp.text[start] == pvp.text[start] {
		start++
	}
	if start == e.cols {
		return
	}

	nonBlank := false
	end := e.cols
	for end > start && vvp.text[end-1] == pvp.text[end-1] {
		end--
		if vvp.text[end] != ' ' {
			nonBlank = true
		}
	}

	if !nonBlank && vvp.color == driver.ColorText {
		eolStart := end
		for eolStart > start && vvp.text[eolStart-1] == ' ' {
			eolStart--
		}
		if end-eolStart <= e.drv.Costs().EraseEOL {
			// The blank run is too short for the erase to pay off.
			eolStart = end
		}
		e.drv.Move(row, start)
		e.drv.SetColor(driver.ColorText)
		for col := start; col < eolStart; col++ {
			e.drv.PutChar(vvp.text[col])
		}
		if eolStart != end {
			e.drv.EraseEOL()
		}
	} else {
		e.drv.Move(row, start)
		e.drv.SetColor(vvp.color)
		for col := start; col < end; col++ {
			e.drv.PutChar(vvp.text[col])
		}
	}
}
