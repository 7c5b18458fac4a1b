// Package selection provides the selection span used by the display
// engine and the mouse handler.
package selection

// Pos is a document position: a 1-based line number and a 0-based byte
// offset within the line.
type Pos struct {
	Line int
	Col  int
}

// Before returns true if p comes before other in document order.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Span is a selection between an anchor (where the selection started, the
// mark) and an active endpoint (the cursor). Either endpoint may come
// first in document order.
type Span struct {
	Anchor Pos
	Active Pos
}

// IsEmpty returns true if the span selects nothing.
func (s Span) IsEmpty() bool {
	return s.Anchor == s.Active
}

// Normalized returns the span's endpoints in document order.
func (s Span) Normalized() (start, end Pos) {
	if s.Active.Before(s.Anchor) {
		return s.Active, s.Anchor
	}
	return s.Anchor, s.Active
}

// Contains reports whether the document position (line, col) lies within
// the span. Membership is inclusive of the start position and of any
// fully contained line, and exclusive of the end column.
func (s Span) Contains(line, col int) bool {
	if s.IsEmpty() {
		return false
	}
	start, end := s.Normalized()
	if line < start.Line || line > end.Line {
		return false
	}
	if line == start.Line && col < start.Col {
		return false
	}
	if line == end.Line && col >= end.Col {
		return false
	}
	return true
}
