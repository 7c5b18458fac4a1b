package mouse

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mariusae/mg/internal/window"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{
			name:  "left press",
			input: "0;10;5M",
			want:  Event{Type: Press, Button: ButtonLeft, X: 9, Y: 4},
		},
		{
			name:  "left release",
			input: "0;10;5m",
			want:  Event{Type: Release, Button: ButtonLeft, X: 9, Y: 4},
		},
		{
			name:  "drag",
			input: "32;3;7M",
			want:  Event{Type: Drag, Button: ButtonLeft, X: 2, Y: 6},
		},
		{
			name:  "wheel up",
			input: "64;1;1M",
			want:  Event{Type: Press, Button: WheelUp, X: 0, Y: 0},
		},
		{
			name:  "wide coordinates",
			input: "0;250;120M",
			want:  Event{Type: Press, Button: ButtonLeft, X: 249, Y: 119},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader([]byte(tt.input)))
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{"", "0;10;5", "0:10;5M", "0;10;5X"}
	for _, input := range inputs {
		if _, err := Decode(bytes.NewReader([]byte(input))); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) err = %v, want ErrMalformed", input, err)
		}
	}
}

func testSet(lines []string, rows int) (*window.Set, *window.Window) {
	buf := window.NewBufferLines("test", lines)
	w := window.New(buf, 0, rows)
	return window.NewSet(w), w
}

func TestClickMovesCursor(t *testing.T) {
	ws, w := testSet([]string{"first line", "second line", "third"}, 6)
	var tr Tracker

	if !tr.Handle(ws, Event{Type: Press, Button: ButtonLeft, X: 3, Y: 1}) {
		t.Fatal("press not handled")
	}
	if w.DotLine != 2 {
		t.Errorf("DotLine = %d, want 2", w.DotLine)
	}
	if w.DotOff != 3 {
		t.Errorf("DotOff = %d, want 3", w.DotOff)
	}
	if w.Mark != nil {
		t.Error("plain click should not set the mark")
	}
}

func TestClickClearsMark(t *testing.T) {
	ws, w := testSet([]string{"first line", "second"}, 6)
	w.SetMark()
	var tr Tracker

	tr.Handle(ws, Event{Type: Press, Button: ButtonLeft, X: 0, Y: 0})

	if w.Mark != nil {
		t.Error("click should clear an existing mark")
	}
	if w.Flags()&window.RedrawFull == 0 {
		t.Error("clearing a visible selection should force a full redraw")
	}
}

func TestDragSelects(t *testing.T) {
	ws, w := testSet([]string{"first line", "second line"}, 6)
	var tr Tracker

	tr.Handle(ws, Event{Type: Press, Button: ButtonLeft, X: 2, Y: 0})
	tr.Handle(ws, Event{Type: Drag, Button: ButtonLeft, X: 4, Y: 1})

	if w.Mark == nil {
		t.Fatal("drag should set the mark")
	}
	if w.Mark.Line != 1 || w.Mark.Col != 2 {
		t.Errorf("mark = (%d,%d), want (1,2)", w.Mark.Line, w.Mark.Col)
	}
	if w.DotLine != 2 || w.DotOff != 4 {
		t.Errorf("dot = (%d,%d), want (2,4)", w.DotLine, w.DotOff)
	}

	tr.Handle(ws, Event{Type: Release, Button: ButtonLeft, X: 4, Y: 1})
	if w.Mark == nil {
		t.Error("release should keep the selection")
	}
}

func TestDragWithoutPressIgnored(t *testing.T) {
	ws, w := testSet([]string{"first", "second"}, 6)
	var tr Tracker

	if tr.Handle(ws, Event{Type: Drag, Button: ButtonLeft, X: 1, Y: 1}) {
		t.Error("drag without a preceding press should be ignored")
	}
	if w.Mark != nil {
		t.Error("stray drag should not set the mark")
	}
}

func TestDragPastWindowEdgeClamps(t *testing.T) {
	ws, w := testSet([]string{"first line", "second line", "third"}, 6)
	var tr Tracker

	tr.Handle(ws, Event{Type: Press, Button: ButtonLeft, X: 2, Y: 0})
	// Row 6 is the mode line; the drag clamps to the pressed window.
	if !tr.Handle(ws, Event{Type: Drag, Button: ButtonLeft, X: 1, Y: 6}) {
		t.Fatal("clamped drag not handled")
	}

	if w.Mark == nil || w.Mark.Line != 1 || w.Mark.Col != 2 {
		t.Fatalf("mark = %v, want (1,2)", w.Mark)
	}
	if w.DotLine != 3 || w.DotOff != 1 {
		t.Errorf("dot = (%d,%d), want (3,1)", w.DotLine, w.DotOff)
	}
}

func TestDragIntoOtherWindowStaysInPressed(t *testing.T) {
	w1 := window.New(window.NewBufferLines("one", []string{"aaaa", "bbbb"}), 0, 3)
	w2 := window.New(window.NewBufferLines("two", []string{"cccc", "dddd"}), 4, 3)
	ws := window.NewSet(w1, w2)
	var tr Tracker

	tr.Handle(ws, Event{Type: Press, Button: ButtonLeft, X: 0, Y: 1})
	tr.Handle(ws, Event{Type: Drag, Button: ButtonLeft, X: 2, Y: 5})

	if ws.Current() != w1 {
		t.Error("drag should not switch the current window")
	}
	if w1.Mark == nil {
		t.Fatal("drag should set the mark in the pressed window")
	}
	if w1.DotLine != 2 || w1.DotOff != 2 {
		t.Errorf("pressed window dot = (%d,%d), want (2,2)", w1.DotLine, w1.DotOff)
	}
	if w2.DotLine != 1 || w2.DotOff != 0 {
		t.Errorf("other window dot = (%d,%d), want unchanged (1,0)", w2.DotLine, w2.DotOff)
	}
}

func TestWheelScrolls(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	ws, w := testSet(lines, 6)
	var tr Tracker

	tr.Handle(ws, Event{Type: Press, Button: WheelDown, X: 0, Y: 0})
	if got := w.Buf.LineNo(w.Top); got != 4 {
		t.Errorf("top line after wheel down = %d, want 4", got)
	}

	tr.Handle(ws, Event{Type: Press, Button: WheelUp, X: 0, Y: 0})
	if got := w.Buf.LineNo(w.Top); got != 1 {
		t.Errorf("top line after wheel up = %d, want 1", got)
	}
}

func TestClickOutsideWindowsIgnored(t *testing.T) {
	ws, w := testSet([]string{"only"}, 6)
	var tr Tracker

	// Row 6 is the mode line.
	if tr.Handle(ws, Event{Type: Press, Button: ButtonLeft, X: 0, Y: 6}) {
		t.Error("click on the mode line should be ignored")
	}
	if w.DotLine != 1 {
		t.Errorf("DotLine = %d, want unchanged 1", w.DotLine)
	}
}

func TestColToOffset(t *testing.T) {
	buf := window.NewBufferLines("test", []string{"a\tbc"})
	lp := buf.FirstLine()

	tests := []struct {
		col  int
		want int
	}{
		{0, 0},
		{1, 1},  // inside the tab
		{8, 2},  // first column after the tab
		{9, 3},
		{99, 4}, // past end of line
	}
	for _, tt := range tests {
		if got := colToOffset(lp, tt.col, 8); got != tt.want {
			t.Errorf("colToOffset(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}
}
