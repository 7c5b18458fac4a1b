package display

import "github.com/mariusae/mg/internal/display/driver"

// score is one cell of the insert/delete cost matrix: the minimal
// cumulative cost of producing the first j virtual rows from the first i
// physical rows, with a back-pointer for the traceback.
type score struct {
	itrace int
	jtrace int
	cost   int
}

// setScores fills the dynamic-programming cost matrix for the band of
// size rows starting at row offs, after the matching prefix and suffix
// have been trimmed. The matrix is stored flat with stride e.rows.
//
// The recurrence evaluates, in order: delete the physical row (the
// default), insert the virtual row if strictly cheaper, and match or
// redraw diagonally if strictly cheaper again. Several equal-cost edit
// scripts can exist; this evaluation order decides which one is chosen,
// so it must not be reordered.
func (e *Engine) setScores(offs, size int) {
	costs := e.drv.Costs()
	insl, dell := costs.InsertLine, costs.DeleteLine
	stride := e.rows

	e.score[0] = score{}

	// Row 0: pure insert chains.
	cum := 0
	for j := 1; j <= size; j++ {
		cum += insl + e.vscreen[offs+j-1].cost
		e.score[j] = score{itrace: 0, jtrace: j - 1, cost: cum}
	}

	// Column 0: pure delete chains.
	cum = 0
	for i := 1; i <= size; i++ {
		cum += dell
		e.score[i*stride] = score{itrace: i - 1, jtrace: 0, cost: cum}
	}

	for i := 1; i <= size; i++ {
		pp := e.pscreen[offs+i-1]
		for j := 1; j <= size; j++ {
			vp := e.vscreen[offs+j-1]
			sp := &e.score[i*stride+j]

			// Delete physical row i. In the last column the
			// remaining physical rows vanish off the bottom for
			// free.
			sp.itrace, sp.jtrace = i-1, j
			best := e.score[(i-1)*stride+j].cost
			if j != size {
				best += dell
			}

			// Insert virtual row j, then draw it. In the last
			// row the insert itself is free at the bottom
			// margin.
			cost := e.score[i*stride+j-1].cost + vp.cost
			if i != size {
				cost += insl
			}
			if cost < best {
				sp.itrace, sp.jtrace = i, j-1
				best = cost
			}

			// Match row j against physical row i, redrawing only
			// if they differ.
			cost = e.score[(i-1)*stride+j-1].cost
			if !sameRow(pp, vp) {
				cost += vp.cost
			}
			if cost < best {
				sp.itrace, sp.jtrace = i-1, j-1
				best = cost
			}
			sp.cost = best
		}
	}
}

// traceback walks the back-pointers from matrix cell (i, j) and emits the
// optimal operation sequence. Runs of insert steps become one batched
// InsertLines followed by top-down redraws of the revealed rows; runs of
// delete steps become one batched DeleteLines; a diagonal step redraws a
// single row against its matched physical row. The upper-left sub-path is
// processed before the current step so operations land top-to-bottom.
// Recursion depth is bounded by the visible row count.
func (e *Engine) traceback(offs, size, i, j int) {
	if i == 0 && j == 0 {
		return
	}
	stride := e.rows
	it := e.score[i*stride+j].itrace
	jt := e.score[i*stride+j].jtrace

	if it == i { // insert run ending at (i, j)
		ninsl := 0
		if i != size {
			ninsl = 1
		}
		ndraw := 1
		for it != 0 || jt != 0 {
			if e.score[it*stride+jt].itrace != it {
				break
			}
			jt = e.score[it*stride+jt].jtrace
			if i != size {
				ninsl++
			}
			ndraw++
		}
		e.traceback(offs, size, it, jt)
		if ninsl != 0 {
			e.drv.SetColor(driver.ColorText)
			e.drv.InsertLines(offs+j-ninsl, offs+size-1, ninsl)
		}
		for ; ndraw > 0; ndraw-- {
			k := offs + j - ndraw
			e.rowUpdate(k, e.vscreen[k], e.blanks)
		}
		return
	}

	if jt == j { // delete run ending at (i, j)
		ndell := 0
		if j != size {
			ndell = 1
		}
		for it != 0 || jt != 0 {
			if e.score[it*stride+jt].jtrace != jt {
				break
			}
			it = e.score[it*stride+jt].itrace
			if j != size {
				ndell++
			}
		}
		if ndell != 0 {
			e.drv.SetColor(driver.ColorText)
			e.drv.DeleteLines(offs+i-ndell, offs+size-1, ndell)
		}
		e.traceback(offs, size, it, jt)
		return
	}

	e.traceback(offs, size, it, jt)
	k := offs + j - 1
	e.rowUpdate(k, e.vscreen[k], e.pscreen[offs+i-1])
}
