package wfc

// Boundary fixes the initial domain of every cell from its position: corner
// cells get a corner tile, the remaining edge cells the wall tile of their
// edge, and interior cells the Interior candidates.
type Boundary struct {
	TopLeft, TopRight, BottomLeft, BottomRight Tile
	Top, Bottom, Left, Right                   Tile
	Interior                                   []Tile
}

// OfficeBoundary returns the boundary of the desk-office layout.
func OfficeBoundary() Boundary {
	return Boundary{
		TopLeft:     CornerTL,
		TopRight:    CornerTR,
		BottomLeft:  CornerBL,
		BottomRight: CornerBR,
		Top:         WallTop,
		Bottom:      WallBottom,
		Left:        WallLeft,
		Right:       WallRight,
		Interior:    []Tile{Desk, Carpet},
	}
}

// IsZero reports whether b has no tiles at all.
func (b Boundary) IsZero() bool {
	return b.TopLeft == "" && b.TopRight == "" &&
		b.BottomLeft == "" && b.BottomRight == "" &&
		b.Top == "" && b.Bottom == "" && b.Left == "" && b.Right == "" &&
		len(b.Interior) == 0
}

// position classes in the order they are tested.
const (
	topLeft = iota
	topRight
	bottomLeft
	bottomRight
	top
	bottom
	left
	right
	interior
)

func positionOf(row, col, n int) int {
	last := n - 1
	switch {
	case row == 0 && col == 0:
		return topLeft
	case row == 0 && col == last:
		return topRight
	case row == last && col == 0:
		return bottomLeft
	case row == last && col == last:
		return bottomRight
	case row == 0:
		return top
	case row == last:
		return bottom
	case col == 0:
		return left
	case col == last:
		return right
	default:
		return interior
	}
}

func (b Boundary) edges() [8]Tile {
	return [8]Tile{
		b.TopLeft, b.TopRight, b.BottomLeft, b.BottomRight,
		b.Top, b.Bottom, b.Left, b.Right,
	}
}

// At returns the tiles seeded at (row, col) of an n×n grid. Positions are
// tested in the order top-left, top-right, bottom-left, bottom-right, top,
// bottom, left, right, so in a 1×1 grid the only cell is the top-left
// corner.
func (b Boundary) At(row, col, n int) []Tile {
	p := positionOf(row, col, n)
	if p == interior {
		return b.Interior
	}
	return []Tile{b.edges()[p]}
}

// domains resolves every position class against rules.
func (b Boundary) domains(rules *RuleTable) (ds [interior + 1]Domain, err error) {
	for p, t := range b.edges() {
		if t == "" {
			return ds, invalidRules("boundary position %d has no tile", p)
		}
		if ds[p], err = rules.DomainOf(t); err != nil {
			return ds, err
		}
	}
	if len(b.Interior) == 0 {
		return ds, invalidRules("boundary has no interior tiles")
	}
	ds[interior], err = rules.DomainOf(b.Interior...)
	return ds, err
}
