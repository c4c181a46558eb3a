package wfc

// Propagate restores arc-consistency after the domain of (row, col) was
// reduced. A neighbour candidate survives if at least one candidate of the
// current cell accepts it in that direction and is accepted back from the
// opposite one. Narrowed neighbours are queued until a fixed point is
// reached. An emptied domain stops propagation with a *ContradictionError.
func (g *Grid) Propagate(row, col int) error {
	origin := g.index(row, col)
	if len(g.queued) != len(g.cells) {
		g.queued = make([]bool, len(g.cells))
	}
	queue := append(g.queue[:0], origin)
	queued := g.queued
	queued[origin] = true
	defer func() { g.queue = queue[:0] }()

	for head := 0; head < len(queue); head++ {
		c := queue[head]
		queued[c] = false
		cr, cc := g.coordinate(c)
		cur := g.cells[c]

		for _, d := range Directions {
			dr, dc := d.Offset()
			nr, nc := cr+dr, cc+dc
			if !g.InBounds(nr, nc) {
				continue
			}
			ni := g.index(nr, nc)
			old := g.cells[ni]
			next := old & g.rules.supported(cur, d)
			if next == old {
				continue
			}
			if next.Empty() {
				for _, q := range queue[head+1:] {
					queued[q] = false
				}
				return &ContradictionError{
					Row: nr, Col: nc,
					OriginRow: row, OriginCol: col,
				}
			}
			g.set(ni, next, EventNarrow)
			if !queued[ni] {
				queued[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return nil
}
