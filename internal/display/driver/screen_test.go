package driver

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("initializing simulation screen: %v", err)
	}
	sim.SetSize(cols, rows)
	t.Cleanup(sim.Fini)
	return sim
}

func simLine(sim tcell.SimulationScreen, row int) string {
	cells, cols, _ := sim.GetContents()
	line := make([]rune, cols)
	for col := 0; col < cols; col++ {
		line[col] = cells[row*cols+col].Runes[0]
	}
	return string(line)
}

func TestScreenSizeSwapsAxes(t *testing.T) {
	sim := newSimScreen(t, 80, 24)
	s := NewScreen(sim)

	rows, cols := s.Size()
	if rows != 24 || cols != 80 {
		t.Errorf("Size = (%d,%d), want (24,80)", rows, cols)
	}
}

func TestScreenWrite(t *testing.T) {
	sim := newSimScreen(t, 10, 4)
	s := NewScreen(sim)

	s.Move(1, 2)
	for _, c := range []byte("hi") {
		s.PutChar(c)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if got, want := simLine(sim, 1), "  hi      "; got != want {
		t.Errorf("row 1 = %q, want %q", got, want)
	}
}

func TestScreenEraseEOL(t *testing.T) {
	sim := newSimScreen(t, 10, 4)
	s := NewScreen(sim)

	s.Move(0, 0)
	for _, c := range []byte("abcdef") {
		s.PutChar(c)
	}
	s.Move(0, 2)
	s.EraseEOL()
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if got, want := simLine(sim, 0), "ab        "; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
}

func TestScreenDeleteLines(t *testing.T) {
	sim := newSimScreen(t, 5, 4)
	s := NewScreen(sim)

	for row, text := range []string{"aaaa", "bbbb", "cccc", "dddd"} {
		s.Move(row, 0)
		for _, c := range []byte(text) {
			s.PutChar(c)
		}
	}
	s.DeleteLines(0, 3, 1)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	want := []string{"bbbb ", "cccc ", "dddd ", "     "}
	for row, text := range want {
		if got := simLine(sim, row); got != text {
			t.Errorf("row %d = %q, want %q", row, got, text)
		}
	}
}

func TestScreenReportsInfiniteScrollCost(t *testing.T) {
	sim := newSimScreen(t, 10, 4)
	s := NewScreen(sim)

	costs := s.Costs()
	if costs.InsertLine != CostInfinite || costs.DeleteLine != CostInfinite {
		t.Errorf("scroll costs = %+v, want CostInfinite", costs)
	}
}
