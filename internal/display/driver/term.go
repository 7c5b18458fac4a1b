package driver

import (
	"bufio"
	"fmt"
	"io"
)

// Term is a Driver that writes VT100/ANSI escape sequences directly to an
// output stream. It tracks the hardware cursor and scroll region so it can
// skip redundant motion and rendition changes.
type Term struct {
	out  *bufio.Writer
	rows int
	cols int

	costs Costs

	// Believed terminal state. A negative value means unknown.
	curRow int
	curCol int
	top    int
	bot    int
	color  Color
}

// TermOption configures a Term driver.
type TermOption func(*Term)

// WithCosts overrides the default capability costs.
func WithCosts(costs Costs) TermOption {
	return func(t *Term) { t.costs = costs }
}

// NewTerm creates an ANSI driver writing to w for a rows x cols terminal.
func NewTerm(w io.Writer, rows, cols int, opts ...TermOption) *Term {
	t := &Term{
		out:  bufio.NewWriterSize(w, 4096),
		rows: rows,
		cols: cols,
		// Sequence lengths of CSI L, CSI M and CSI K on a VT100-class
		// terminal; tests and config may override.
		costs:  Costs{InsertLine: 4, DeleteLine: 4, EraseEOL: 3},
		curRow: -1,
		curCol: -1,
		top:    -1,
		bot:    -1,
		color:  ColorNone,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Resize records new terminal dimensions and forgets believed state.
func (t *Term) Resize(rows, cols int) {
	t.rows = rows
	t.cols = cols
	t.Invalidate()
}

// Invalidate forgets the believed cursor, region, and color state, forcing
// the next operations to re-establish them.
func (t *Term) Invalidate() {
	t.curRow, t.curCol = -1, -1
	t.top, t.bot = -1, -1
	t.color = ColorNone
}

func (t *Term) Size() (int, int) { return t.rows, t.cols }

func (t *Term) Move(row, col int) {
	if row == t.curRow && col == t.curCol {
		return
	}
	fmt.Fprintf(t.out, "\x1b[%d;%dH", row+1, col+1)
	t.curRow, t.curCol = row, col
}

func (t *Term) PutChar(c byte) {
	t.out.WriteByte(c)
	t.curCol++
	if t.curCol >= t.cols {
		// Autowrap behavior varies; treat the cursor as unknown.
		t.curRow, t.curCol = -1, -1
	}
}

func (t *Term) SetColor(c Color) {
	if c == t.color {
		return
	}
	switch c {
	case ColorText:
		t.out.WriteString("\x1b[0m")
	case ColorMode, ColorSelect:
		t.out.WriteString("\x1b[7m")
	default:
		t.out.WriteString("\x1b[0m")
	}
	t.color = c
}

func (t *Term) EraseEOL() {
	t.out.WriteString("\x1b[K")
}

func (t *Term) ErasePage() {
	t.out.WriteString("\x1b[2J")
}

func (t *Term) InsertLines(top, bot, count int) {
	if count <= 0 {
		return
	}
	t.setRegion(top, bot)
	t.Move(top, 0)
	fmt.Fprintf(t.out, "\x1b[%dL", count)
}

func (t *Term) DeleteLines(top, bot, count int) {
	if count <= 0 {
		return
	}
	t.setRegion(top, bot)
	t.Move(top, 0)
	fmt.Fprintf(t.out, "\x1b[%dM", count)
}

// setRegion establishes the scroll region top..bot inclusive. Setting the
// region homes the cursor, so the believed position is dropped.
func (t *Term) setRegion(top, bot int) {
	if top == t.top && bot == t.bot {
		return
	}
	fmt.Fprintf(t.out, "\x1b[%d;%dr", top+1, bot+1)
	t.top, t.bot = top, bot
	t.curRow, t.curCol = -1, -1
}

// ResetRegion restores the scroll region to the full screen.
func (t *Term) ResetRegion() {
	if t.top < 0 && t.bot < 0 {
		return
	}
	t.out.WriteString("\x1b[r")
	t.top, t.bot = -1, -1
	t.curRow, t.curCol = -1, -1
}

func (t *Term) Flush() error {
	return t.out.Flush()
}

func (t *Term) Costs() Costs { return t.costs }
