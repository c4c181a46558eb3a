package wfc

import (
	"math/bits"
	"strings"
)

// MaxTiles is the largest tile universe a [RuleTable] can hold.
const MaxTiles = 64

// Domain is the set of tiles still possible for a cell, stored as a bitset
// over the tile indices of a [RuleTable]. Bit i stands for the i-th tile of
// the table.
type Domain uint64

func domainOf(indices ...int) Domain {
	var d Domain
	for _, i := range indices {
		d |= 1 << uint(i)
	}
	return d
}

func (d Domain) Len() int { return bits.OnesCount64(uint64(d)) }

func (d Domain) Empty() bool { return d == 0 }

func (d Domain) Collapsed() bool { return d.Len() == 1 }

func (d Domain) Has(i int) bool { return i >= 0 && i < MaxTiles && d&(1<<uint(i)) != 0 }

// Members returns the tile indices in d in ascending order.
func (d Domain) Members() []int {
	members := make([]int, 0, d.Len())
	for m := uint64(d); m != 0; m &= m - 1 {
		members = append(members, bits.TrailingZeros64(m))
	}
	return members
}

// Single returns the only member of d. ok is false unless d is collapsed.
func (d Domain) Single() (i int, ok bool) {
	if !d.Collapsed() {
		return -1, false
	}
	return bits.TrailingZeros64(uint64(d)), true
}

// Format renders d as a set of tile names, e.g. "{Desk Carpet}".
func (d Domain) Format(rules *RuleTable) string {
	var b strings.Builder
	b.WriteByte('{')
	for k, i := range d.Members() {
		if k > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(rules.tiles[i]))
	}
	b.WriteByte('}')
	return b.String()
}
