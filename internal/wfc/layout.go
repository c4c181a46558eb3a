package wfc

import (
	"fmt"
	"strings"
)

// Layout is a solved grid: Layout[row][col] is the tile of that cell. A
// Layout returned by a solve is not modified afterwards; use [Layout.Rows]
// to get a copy to edit.
type Layout [][]Tile

func (l Layout) Size() int { return len(l) }

func (l Layout) At(row, col int) Tile { return l[row][col] }

// Rows returns a deep copy of l.
func (l Layout) Rows() [][]Tile {
	rows := make([][]Tile, len(l))
	for i, row := range l {
		rows[i] = append([]Tile(nil), row...)
	}
	return rows
}

// Complete reports whether l is a non-empty square with a tile in every
// cell.
func (l Layout) Complete() bool {
	if len(l) == 0 {
		return false
	}
	for _, row := range l {
		if len(row) != len(l) {
			return false
		}
		for _, t := range row {
			if t == "" {
				return false
			}
		}
	}
	return true
}

// Validate checks that every pair of adjacent cells is accepted by rules
// from both sides.
func (l Layout) Validate(rules *RuleTable) error { return l.validate(rules, false) }

// ValidateSolved checks a layout produced by [Solver]. Pairs of two edge
// cells are skipped: both tiles come from the [Boundary] and never
// constrain each other, so a 2×2 layout of four corners is valid. Every
// pair with an interior cell must still be accepted from both sides.
func (l Layout) ValidateSolved(rules *RuleTable) error { return l.validate(rules, true) }

func (l Layout) validate(rules *RuleTable, skipEdges bool) error {
	if !l.Complete() {
		return fmt.Errorf("wfc: layout is not a complete square")
	}
	n := len(l)
	for row := range n {
		for col := range n {
			from := l[row][col]
			if !rules.Has(from) {
				return invalidRules("tile %q at (%d,%d) has no entry", from, row, col)
			}
			for _, d := range []Direction{East, South} {
				dr, dc := d.Offset()
				nr, nc := row+dr, col+dc
				if nr >= n || nc >= n {
					continue
				}
				if skipEdges && positionOf(row, col, n) != interior &&
					positionOf(nr, nc, n) != interior {
					continue
				}
				to := l[nr][nc]
				if !rules.Compatible(from, d, to) {
					return fmt.Errorf(
						"wfc: %s at (%d,%d) does not accept %s to the %s",
						from, row, col, to, d,
					)
				}
			}
		}
	}
	return nil
}

// Layout implements [fmt.Stringer]
func (l Layout) String() string {
	width := 0
	for _, row := range l {
		for _, t := range row {
			width = max(width, len(t))
		}
	}
	var b strings.Builder
	for _, row := range l {
		for col, t := range row {
			if col > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%-*s", width, t)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
