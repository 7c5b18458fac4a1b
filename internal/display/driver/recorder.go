package driver

import "fmt"

// OpKind identifies a recorded driver operation.
type OpKind int

const (
	OpMove OpKind = iota
	OpPutChar
	OpSetColor
	OpEraseEOL
	OpErasePage
	OpInsertLines
	OpDeleteLines
	OpFlush
)

// Op is one recorded driver call.
type Op struct {
	Kind  OpKind
	Row   int
	Col   int
	Char  byte
	Color Color
	Count int
}

// String renders the operation for test failure messages.
func (o Op) String() string {
	switch o.Kind {
	case OpMove:
		return fmt.Sprintf("move(%d,%d)", o.Row, o.Col)
	case OpPutChar:
		return fmt.Sprintf("putc(%q)", o.Char)
	case OpSetColor:
		return fmt.Sprintf("color(%s)", o.Color)
	case OpEraseEOL:
		return "eraseEOL"
	case OpErasePage:
		return "erasePage"
	case OpInsertLines:
		return fmt.Sprintf("insl(%d..%d,%d)", o.Row, o.Col, o.Count)
	case OpDeleteLines:
		return fmt.Sprintf("dell(%d..%d,%d)", o.Row, o.Col, o.Count)
	case OpFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// Recorder is a no-op driver that records every operation, plus a cell
// image of what a real terminal would show. It is the display engine's
// test double.
type Recorder struct {
	rows, cols int
	costs      Costs

	ops []Op

	// cells mirrors what the operations would leave on a terminal.
	cells  [][]byte
	curRow int
	curCol int
	color  Color
}

// NewRecorder creates a recorder for a rows x cols terminal with the
// given capability costs.
func NewRecorder(rows, cols int, costs Costs) *Recorder {
	r := &Recorder{rows: rows, cols: cols, costs: costs}
	r.cells = make([][]byte, rows)
	for i := range r.cells {
		r.cells[i] = blankLine(cols)
	}
	return r
}

func blankLine(cols int) []byte {
	b := make([]byte, cols)
	for i := range b {
		b[i] = ' '
	}
	return b
}

func (r *Recorder) Size() (int, int) { return r.rows, r.cols }

func (r *Recorder) Move(row, col int) {
	r.ops = append(r.ops, Op{Kind: OpMove, Row: row, Col: col})
	r.curRow, r.curCol = row, col
}

func (r *Recorder) PutChar(c byte) {
	r.ops = append(r.ops, Op{Kind: OpPutChar, Char: c})
	if r.curRow >= 0 && r.curRow < r.rows && r.curCol >= 0 && r.curCol < r.cols {
		r.cells[r.curRow][r.curCol] = c
	}
	r.curCol++
}

func (r *Recorder) SetColor(c Color) {
	r.ops = append(r.ops, Op{Kind: OpSetColor, Color: c})
	r.color = c
}

func (r *Recorder) EraseEOL() {
	r.ops = append(r.ops, Op{Kind: OpEraseEOL})
	if r.curRow >= 0 && r.curRow < r.rows {
		for col := r.curCol; col >= 0 && col < r.cols; col++ {
			r.cells[r.curRow][col] = ' '
		}
	}
}

func (r *Recorder) ErasePage() {
	r.ops = append(r.ops, Op{Kind: OpErasePage})
	for i := range r.cells {
		r.cells[i] = blankLine(r.cols)
	}
}

func (r *Recorder) InsertLines(top, bot, count int) {
	r.ops = append(r.ops, Op{Kind: OpInsertLines, Row: top, Col: bot, Count: count})
	for i := bot; i >= top+count; i-- {
		copy(r.cells[i], r.cells[i-count])
	}
	for i := top; i < top+count && i <= bot; i++ {
		r.cells[i] = blankLine(r.cols)
	}
}

func (r *Recorder) DeleteLines(top, bot, count int) {
	r.ops = append(r.ops, Op{Kind: OpDeleteLines, Row: top, Col: bot, Count: count})
	for i := top; i+count <= bot; i++ {
		copy(r.cells[i], r.cells[i+count])
	}
	for i := bot - count + 1; i <= bot; i++ {
		if i >= top {
			r.cells[i] = blankLine(r.cols)
		}
	}
}

func (r *Recorder) Flush() error {
	r.ops = append(r.ops, Op{Kind: OpFlush})
	return nil
}

func (r *Recorder) Costs() Costs { return r.costs }

// Ops returns the recorded operations since the last Reset.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset discards recorded operations; the cell image is kept.
func (r *Recorder) Reset() { r.ops = nil }

// Line returns the terminal image of one row as a string.
func (r *Recorder) Line(row int) string {
	if row < 0 || row >= r.rows {
		return ""
	}
	return string(r.cells[row])
}

// CountKind returns how many operations of the given kind were recorded.
func (r *Recorder) CountKind(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// OpsOfKind returns the recorded operations of the given kind, in order.
func (r *Recorder) OpsOfKind(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Cursor returns where the recorded operations left the cursor.
func (r *Recorder) Cursor() (row, col int) { return r.curRow, r.curCol }
