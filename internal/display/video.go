// Package display implements the terminal redisplay engine: it renders
// the visible portion of each window into a virtual screen, diffs it
// against the believed physical screen, and emits a minimal-cost sequence
// of driver operations to reconcile the two.
package display

import (
	"errors"

	"github.com/mariusae/mg/internal/display/driver"
)

// ErrBadDimensions is returned by Resize for unusable terminal sizes.
var ErrBadDimensions = errors.New("display: bad terminal dimensions")

// Row is one screen line, in both the virtual and physical screens: the
// character image, the per-column selection attribute, a color class, and
// the cached hash and redraw-cost used by the reconciler.
type Row struct {
	text []byte
	attr []byte

	color driver.Color

	// changed marks the row for the easy-update path.
	changed bool
	// hashBad marks hash and cost as stale.
	hashBad bool
	// extended marks a horizontally scrolled long line.
	extended bool

	hash uint32
	cost int
}

// newRow creates a blank row of the given width.
func newRow(cols int) *Row {
	r := &Row{}
	r.alloc(cols)
	return r
}

// alloc recreates the row's buffers at the given width. Buffers are
// replaced wholesale rather than patched so a failed resize can never
// leave a row half-sized.
func (r *Row) alloc(cols int) {
	r.text = make([]byte, cols)
	for i := range r.text {
		r.text[i] = ' '
	}
	r.attr = make([]byte, cols)
	r.color = driver.ColorNone
	r.changed = false
	r.hashBad = true
	r.extended = false
}

// Text returns the row image; exposed for tests.
func (r *Row) Text() string { return string(r.text) }

// Attr returns the selection attribute for one column; exposed for tests.
func (r *Row) Attr(col int) byte { return r.attr[col] }

// copyTo syncs the physical row pvp with this virtual row after the
// display has emitted an update for it.
func (r *Row) copyTo(pvp *Row) {
	r.changed = false
	pvp.changed = false
	pvp.hashBad = r.hashBad
	pvp.extended = r.extended
	pvp.hash = r.hash
	pvp.cost = r.cost
	pvp.color = r.color
	copy(pvp.text, r.text)
	copy(pvp.attr, r.attr)
}

// Resize reallocates the screens and the score matrix for new terminal
// dimensions. Rows surviving the resize keep their identity by index;
// their buffers are recreated blank. The whole screen is marked garbage
// since nothing believed about the terminal survives a resize.
func (e *Engine) Resize(rows, cols int) error {
	if rows < 2 || cols < 1 {
		return ErrBadDimensions
	}
	if rows == e.rows && cols == e.cols && e.vscreen != nil {
		return nil
	}

	nview := rows - 1 // the echo line is not part of the screens
	vnew := make([]*Row, nview)
	pnew := make([]*Row, nview)
	for i := 0; i < nview; i++ {
		if i < len(e.vscreen) {
			vnew[i] = e.vscreen[i]
			pnew[i] = e.pscreen[i]
		} else {
			vnew[i] = &Row{}
			pnew[i] = &Row{}
		}
		vnew[i].alloc(cols)
		pnew[i].alloc(cols)
	}
	e.vscreen = vnew
	e.pscreen = pnew

	e.blanks = newRow(cols)
	e.blanks.color = driver.ColorText

	e.score = make([]score, rows*rows)
	e.rows = rows
	e.cols = cols
	e.garbage = true
	return nil
}
