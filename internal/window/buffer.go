// Package window provides the window and buffer model consumed by the
// display engine: per-window geometry, cursor and mark positions, redraw
// flags, and buffer line enumeration.
package window

// Line is one line of buffer text. Lines form a doubly linked circular
// list around the buffer's sentinel head line.
type Line struct {
	prev, next *Line
	text       []byte
}

// Next returns the following line.
func (l *Line) Next() *Line { return l.next }

// Prev returns the preceding line.
func (l *Line) Prev() *Line { return l.prev }

// Len returns the line length in bytes.
func (l *Line) Len() int { return len(l.text) }

// Byte returns the byte at offset i.
func (l *Line) Byte(i int) byte { return l.text[i] }

// Text returns the line content.
func (l *Line) Text() []byte { return l.text }

// SetText replaces the line content.
func (l *Line) SetText(text []byte) { l.text = text }

// BufferFlag is a bitset of buffer-level state.
type BufferFlag uint8

const (
	// BufferChanged marks unsaved modifications.
	BufferChanged BufferFlag = 1 << iota
	// BufferReadOnly marks a read-only buffer.
	BufferReadOnly
)

// Buffer holds the text and metadata shown in one or more windows.
type Buffer struct {
	head *Line // sentinel; head.next is the first line

	// Name is the buffer's display name.
	Name string
	// Flags carries read-only and modified state.
	Flags BufferFlag
	// Modes lists the enabled mode names, major mode first.
	Modes []string
	// TabWidth is the distance between tab stops.
	TabWidth int
}

// NewBuffer creates an empty buffer with a single empty line.
func NewBuffer(name string) *Buffer {
	head := &Line{}
	head.next = head
	head.prev = head
	b := &Buffer{
		head:     head,
		Name:     name,
		Modes:    []string{"fundamental"},
		TabWidth: 8,
	}
	b.InsertAfter(head, nil)
	return b
}

// NewBufferLines creates a buffer holding the given lines.
func NewBufferLines(name string, lines []string) *Buffer {
	b := NewBuffer(name)
	if len(lines) == 0 {
		return b
	}
	lp := b.head
	b.FirstLine().SetText([]byte(lines[0]))
	lp = b.FirstLine()
	for _, s := range lines[1:] {
		lp = b.InsertAfter(lp, []byte(s))
	}
	return b
}

// Head returns the sentinel line; enumeration stops when it is reached.
func (b *Buffer) Head() *Line { return b.head }

// FirstLine returns the first text line.
func (b *Buffer) FirstLine() *Line { return b.head.next }

// LastLine returns the last text line.
func (b *Buffer) LastLine() *Line { return b.head.prev }

// InsertAfter inserts a new line holding text after lp and returns it.
func (b *Buffer) InsertAfter(lp *Line, text []byte) *Line {
	nl := &Line{text: text, prev: lp, next: lp.next}
	lp.next.prev = nl
	lp.next = nl
	return nl
}

// Remove unlinks lp from the buffer. Removing the sentinel is ignored.
func (b *Buffer) Remove(lp *Line) {
	if lp == b.head {
		return
	}
	lp.prev.next = lp.next
	lp.next.prev = lp.prev
}

// LineCount returns the number of text lines.
func (b *Buffer) LineCount() int {
	n := 0
	for lp := b.FirstLine(); lp != b.head; lp = lp.next {
		n++
	}
	return n
}

// LineNo returns the 1-based line number of lp, or 0 if lp is not in the
// buffer.
func (b *Buffer) LineNo(lp *Line) int {
	n := 1
	for p := b.FirstLine(); p != b.head; p = p.next {
		if p == lp {
			return n
		}
		n++
	}
	return 0
}
