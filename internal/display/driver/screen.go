package driver

import (
	"github.com/gdamore/tcell/v2"
)

// Screen is a Driver backed by a tcell.Screen. It is useful where direct
// escape output is unwanted (Windows consoles, test harnesses driving a
// simulation screen). tcell exposes no insert/delete-line primitives, so
// those capabilities are priced as CostInfinite and the reconciler falls
// back to per-row redraws.
type Screen struct {
	screen tcell.Screen

	curRow int
	curCol int
	style  tcell.Style
}

// NewScreen creates a tcell-backed driver. The screen must already be
// initialized.
func NewScreen(screen tcell.Screen) *Screen {
	return &Screen{
		screen: screen,
		style:  tcell.StyleDefault,
	}
}

func (s *Screen) Size() (int, int) {
	w, h := s.screen.Size()
	return h, w
}

func (s *Screen) Move(row, col int) {
	s.curRow, s.curCol = row, col
	s.screen.ShowCursor(col, row)
}

func (s *Screen) PutChar(c byte) {
	s.screen.SetContent(s.curCol, s.curRow, rune(c), nil, s.style)
	s.curCol++
}

func (s *Screen) SetColor(c Color) {
	switch c {
	case ColorMode, ColorSelect:
		s.style = tcell.StyleDefault.Reverse(true)
	default:
		s.style = tcell.StyleDefault
	}
}

func (s *Screen) EraseEOL() {
	w, _ := s.screen.Size()
	for col := s.curCol; col < w; col++ {
		s.screen.SetContent(col, s.curRow, ' ', nil, tcell.StyleDefault)
	}
}

func (s *Screen) ErasePage() {
	s.screen.Clear()
}

// InsertLines is reported as unsupported via Costs; it is still
// implemented by shifting cells so a caller that ignores costs stays
// correct.
func (s *Screen) InsertLines(top, bot, count int) {
	w, _ := s.screen.Size()
	for row := bot; row >= top+count; row-- {
		s.copyRow(row-count, row, w)
	}
	s.blankRows(top, minInt(top+count-1, bot), w)
}

// DeleteLines is reported as unsupported via Costs; see InsertLines.
func (s *Screen) DeleteLines(top, bot, count int) {
	w, _ := s.screen.Size()
	for row := top; row+count <= bot; row++ {
		s.copyRow(row+count, row, w)
	}
	start := bot - count + 1
	if start < top {
		start = top
	}
	s.blankRows(start, bot, w)
}

func (s *Screen) copyRow(from, to, width int) {
	for col := 0; col < width; col++ {
		mainc, combc, style, _ := s.screen.GetContent(col, from)
		s.screen.SetContent(col, to, mainc, combc, style)
	}
}

func (s *Screen) blankRows(top, bot, width int) {
	for row := top; row <= bot; row++ {
		for col := 0; col < width; col++ {
			s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
		}
	}
}

func (s *Screen) Flush() error {
	s.screen.Show()
	return nil
}

func (s *Screen) Costs() Costs {
	return Costs{
		InsertLine: CostInfinite,
		DeleteLine: CostInfinite,
		EraseEOL:   1,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
