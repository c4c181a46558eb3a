package wfc

import (
	"fmt"
	"strings"
)

// Grid is the n×n domain grid a solve works on. Cells are stored row-major
// at row*n+col. A Grid is owned by a single solve and is not safe for
// concurrent use.
type Grid struct {
	n       int
	cells   []Domain
	rules   *RuleTable
	observe func(Event)

	// propagation scratch, reused across calls
	queue  []int
	queued []bool
}

// NewGrid returns a grid whose domains are seeded from boundary. Every
// boundary tile must be in rules.
func NewGrid(n int, rules *RuleTable, boundary Boundary) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	seeds, err := boundary.domains(rules)
	if err != nil {
		return nil, err
	}

	g := &Grid{
		n:     n,
		cells:  make([]Domain, n*n),
		rules:  rules,
		queued: make([]bool, n*n),
	}
	for row := range n {
		for col := range n {
			g.cells[g.index(row, col)] = seeds[positionOf(row, col, n)]
		}
	}
	return g, nil
}

func (g *Grid) index(row, col int) int { return row*g.n + col }

func (g *Grid) coordinate(i int) (row, col int) { return i / g.n, i % g.n }

func (g *Grid) Size() int { return g.n }

func (g *Grid) Rules() *RuleTable { return g.rules }

func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

// Domain returns the current domain of (row, col).
func (g *Grid) Domain(row, col int) Domain { return g.cells[g.index(row, col)] }

func (g *Grid) Collapsed(row, col int) bool { return g.Domain(row, col).Collapsed() }

// Done reports whether every cell is collapsed.
func (g *Grid) Done() bool {
	for _, d := range g.cells {
		if !d.Collapsed() {
			return false
		}
	}
	return true
}

// Restrict intersects the domain of (row, col) with d and propagates the
// change. Domains never grow, so tiles of d not already possible are
// ignored.
func (g *Grid) Restrict(row, col int, d Domain) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("wfc: cell (%d,%d) out of bounds", row, col)
	}
	i := g.index(row, col)
	old := g.cells[i]
	next := old & d
	if next == old {
		return nil
	}
	if next.Empty() {
		return &ContradictionError{Row: row, Col: col, OriginRow: row, OriginCol: col}
	}
	g.set(i, next, EventNarrow)
	return g.Propagate(row, col)
}

func (g *Grid) set(i int, d Domain, kind EventKind) {
	g.cells[i] = d
	if g.observe != nil {
		row, col := g.coordinate(i)
		g.observe(Event{Kind: kind, Row: row, Col: col, Domain: d})
	}
}

// Layout snapshots a fully collapsed grid. ok is false if some cell is not
// collapsed yet.
func (g *Grid) Layout() (layout Layout, ok bool) {
	layout = make(Layout, g.n)
	for row := range g.n {
		layout[row] = make([]Tile, g.n)
		for col := range g.n {
			t, single := g.Domain(row, col).Single()
			if !single {
				return nil, false
			}
			layout[row][col] = g.rules.Tile(t)
		}
	}
	return layout, true
}

// Grid implements [fmt.Stringer]
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.n {
		for col := range g.n {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g.Domain(row, col).Format(g.rules))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
