package display

// hashRow recomputes a row's hash code and redraw-cost estimate if they
// are stale. The cost understands erase-to-end-of-line: trailing blanks
// beyond the driver's erase cost cannot be erased any cheaper than the
// erase itself, so the cost is the significant byte count plus the capped
// blank count. The hash folds the significant bytes with a 33-multiplier
// rolling hash.
func (e *Engine) hashRow(vp *Row) {
	if !vp.hashBad {
		return
	}
	i := e.cols
	for ; i != 0; i-- {
		if vp.text[i-1] != ' ' {
			break
		}
	}
	blanks := e.cols - i
	if ec := e.drv.Costs().EraseEOL; blanks > ec {
		blanks = ec
	}
	vp.cost = i + blanks

	var h uint32
	for ; i != 0; i-- {
		h = (h << 5) + h + uint32(vp.text[i-1])
	}
	vp.hash = h
	vp.hashBad = false
}

// sameRow reports whether two hashed rows are candidates for skipping a
// redraw: color class and hash must both match. Equal hashes are a fast
// pre-filter; rowUpdate still byte-compares before emitting anything.
func sameRow(a, b *Row) bool {
	return a.color == b.color && a.hash == b.hash
}
