package selection

import "testing"

func TestSpanNormalized(t *testing.T) {
	span := Span{
		Anchor: Pos{Line: 3, Col: 2},
		Active: Pos{Line: 1, Col: 5},
	}
	start, end := span.Normalized()
	if start != (Pos{Line: 1, Col: 5}) {
		t.Errorf("start = %+v, want {1 5}", start)
	}
	if end != (Pos{Line: 3, Col: 2}) {
		t.Errorf("end = %+v, want {3 2}", end)
	}
}

func TestSpanContains(t *testing.T) {
	span := Span{
		Anchor: Pos{Line: 2, Col: 3},
		Active: Pos{Line: 4, Col: 2},
	}

	tests := []struct {
		line, col int
		want      bool
	}{
		{1, 9, false}, // before the span
		{2, 2, false}, // start line, before start column
		{2, 3, true},  // start position is inclusive
		{2, 99, true}, // rest of the start line
		{3, 0, true},  // interior line
		{4, 1, true},  // end line, before end column
		{4, 2, false}, // end column is exclusive
		{5, 0, false}, // past the span
	}
	for _, tt := range tests {
		if got := span.Contains(tt.line, tt.col); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestSpanContainsReversed(t *testing.T) {
	forward := Span{Anchor: Pos{Line: 2, Col: 1}, Active: Pos{Line: 3, Col: 4}}
	reversed := Span{Anchor: Pos{Line: 3, Col: 4}, Active: Pos{Line: 2, Col: 1}}

	for line := 1; line <= 4; line++ {
		for col := 0; col < 8; col++ {
			if forward.Contains(line, col) != reversed.Contains(line, col) {
				t.Errorf("Contains(%d,%d) differs between directions", line, col)
			}
		}
	}
}

func TestSpanIsEmpty(t *testing.T) {
	p := Pos{Line: 2, Col: 3}
	if !(Span{Anchor: p, Active: p}).IsEmpty() {
		t.Error("anchor == active should be empty")
	}
	if (Span{Anchor: p, Active: Pos{Line: 2, Col: 4}}).IsEmpty() {
		t.Error("distinct endpoints should not be empty")
	}
}
