// Package driver provides the terminal driver abstraction for the display
// engine. Implementations handle cursor motion, raw character output, and
// line insertion/deletion; the engine only talks to this interface.
package driver

// Color identifies the display color class of emitted text.
type Color int

const (
	// ColorNone means the current color is unknown and must be reset
	// before the next emit.
	ColorNone Color = iota
	// ColorText is ordinary buffer text.
	ColorText
	// ColorMode is the mode-line rendition (usually reverse video).
	ColorMode
	// ColorSelect is the selection-highlight rendition.
	ColorSelect
)

// String returns the string representation of the color class.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorText:
		return "text"
	case ColorMode:
		return "mode"
	case ColorSelect:
		return "select"
	default:
		return "unknown"
	}
}

// CostInfinite prices an operation the terminal cannot perform. The
// reconciler never chooses an operation at this cost over redrawing.
const CostInfinite = 1 << 24

// Costs carries the driver's integer cost figures, in output bytes, for
// the operations the reconciler trades off against plain redraws.
type Costs struct {
	// InsertLine is the cost of inserting one terminal line.
	InsertLine int
	// DeleteLine is the cost of deleting one terminal line.
	DeleteLine int
	// EraseEOL is the cost of erasing from the cursor to end of line.
	EraseEOL int
}

// Driver is the narrow boundary between the display engine and the
// terminal. Implementations keep their own notion of the hardware cursor;
// PutChar advances it by one column.
type Driver interface {
	// Size returns the terminal dimensions in character cells.
	Size() (rows, cols int)

	// Move places the hardware cursor at the given origin-0 position.
	Move(row, col int)

	// PutChar emits one byte at the cursor and advances one column.
	// Only printable bytes are ever passed; the engine expands tabs,
	// control bytes, and octal escapes before emitting.
	PutChar(c byte)

	// SetColor switches the rendition used for subsequent output.
	SetColor(c Color)

	// EraseEOL erases from the cursor to the end of the line.
	EraseEOL()

	// ErasePage erases the whole screen.
	ErasePage()

	// InsertLines opens count blank lines at top, shifting rows down
	// within the region top..bot inclusive.
	InsertLines(top, bot, count int)

	// DeleteLines removes count lines at top, shifting rows up within
	// the region top..bot inclusive.
	DeleteLines(top, bot, count int)

	// Flush pushes buffered output to the terminal device. This is the
	// only blocking point of a reconciliation cycle.
	Flush() error

	// Costs reports the capability cost figures. Unsupported
	// operations are reported as CostInfinite.
	Costs() Costs
}
