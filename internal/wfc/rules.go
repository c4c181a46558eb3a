package wfc

import "math/bits"

// Adjacency lists, for one tile, the tiles allowed next to it in each
// direction.
type Adjacency struct {
	Tile  Tile
	North []Tile
	East  []Tile
	South []Tile
	West  []Tile
}

func (a Adjacency) side(d Direction) []Tile {
	switch d {
	case North:
		return a.North
	case East:
		return a.East
	case South:
		return a.South
	default:
		return a.West
	}
}

// RuleTable is an immutable adjacency rule table. Rules may be asymmetric:
// B listed east of A does not imply A listed west of B.
type RuleTable struct {
	tiles []Tile
	index map[Tile]int

	// allowed[d][t] is the set of tiles tile t lists in direction d.
	allowed [4][]Domain
	// support[d][t] is the set of tiles u that may sit in direction d of t
	// with both t and u agreeing: u in allowed[d][t] and t in
	// allowed[opposite d][u].
	support [4][]Domain
}

// NewRuleTable builds a rule table from entries. The order of entries fixes
// the tile order used for domains.
func NewRuleTable(entries []Adjacency) (*RuleTable, error) {
	if len(entries) == 0 {
		return nil, invalidRules("no tiles")
	}
	if len(entries) > MaxTiles {
		return nil, invalidRules("%d tiles, at most %d supported", len(entries), MaxTiles)
	}

	rt := &RuleTable{
		tiles: make([]Tile, len(entries)),
		index: make(map[Tile]int, len(entries)),
	}
	for i, e := range entries {
		if e.Tile == "" {
			return nil, invalidRules("entry %d has no tile name", i)
		}
		if _, dup := rt.index[e.Tile]; dup {
			return nil, invalidRules("duplicate entry for tile %q", e.Tile)
		}
		rt.tiles[i] = e.Tile
		rt.index[e.Tile] = i
	}

	for _, d := range Directions {
		rt.allowed[d] = make([]Domain, len(entries))
		rt.support[d] = make([]Domain, len(entries))
	}
	for i, e := range entries {
		for _, d := range Directions {
			for _, n := range e.side(d) {
				j, ok := rt.index[n]
				if !ok {
					return nil, invalidRules(
						"tile %q lists %q to the %s, but %q has no entry",
						e.Tile, n, d, n,
					)
				}
				rt.allowed[d][i] |= domainOf(j)
			}
		}
	}

	for _, d := range Directions {
		opp := d.Opposite()
		for t := range rt.tiles {
			for _, u := range rt.allowed[d][t].Members() {
				if rt.allowed[opp][u].Has(t) {
					rt.support[d][t] |= domainOf(u)
				}
			}
		}
	}

	return rt, nil
}

// DefaultRules returns the desk-office rule table: four corners, four walls
// and an interior of desks and carpet.
func DefaultRules() *RuleTable {
	rt, err := NewRuleTable(OfficeAdjacency())
	if err != nil {
		panic(err)
	}
	return rt
}

// OfficeAdjacency returns the entries of [DefaultRules].
func OfficeAdjacency() []Adjacency {
	interior := []Tile{Desk, Carpet}
	return []Adjacency{
		{Tile: CornerTL, East: []Tile{WallTop}, South: []Tile{WallLeft}},
		{Tile: CornerTR, South: []Tile{WallRight}, West: []Tile{WallTop}},
		{Tile: CornerBL, North: []Tile{WallLeft}, East: []Tile{WallBottom}},
		{Tile: CornerBR, North: []Tile{WallRight}, West: []Tile{WallBottom}},
		{
			Tile:  WallTop,
			East:  []Tile{WallTop, CornerTR},
			South: interior,
			West:  []Tile{WallTop, CornerTL},
		},
		{
			Tile:  WallBottom,
			North: interior,
			East:  []Tile{WallBottom, CornerBR},
			West:  []Tile{WallBottom, CornerBL},
		},
		{
			Tile:  WallLeft,
			North: []Tile{WallLeft, CornerTL},
			East:  interior,
			South: []Tile{WallLeft, CornerBL},
		},
		{
			Tile:  WallRight,
			North: []Tile{WallRight, CornerTR},
			South: []Tile{WallRight, CornerBR},
			West:  interior,
		},
		{
			Tile:  Desk,
			North: []Tile{Desk, Carpet, WallTop},
			East:  []Tile{Desk, Carpet, WallRight},
			South: []Tile{Desk, Carpet, WallBottom},
			West:  []Tile{Desk, Carpet, WallLeft},
		},
		{
			Tile:  Carpet,
			North: []Tile{Desk, Carpet, WallTop},
			East:  []Tile{Desk, Carpet, WallRight},
			South: []Tile{Desk, Carpet, WallBottom},
			West:  []Tile{Desk, Carpet, WallLeft},
		},
	}
}

// Len returns the number of tiles in the table.
func (rt *RuleTable) Len() int { return len(rt.tiles) }

// Tiles returns the tiles of the table in domain order.
func (rt *RuleTable) Tiles() []Tile {
	tiles := make([]Tile, len(rt.tiles))
	copy(tiles, rt.tiles)
	return tiles
}

func (rt *RuleTable) Has(t Tile) bool {
	_, ok := rt.index[t]
	return ok
}

// Index returns the domain bit of t.
func (rt *RuleTable) Index(t Tile) (int, bool) {
	i, ok := rt.index[t]
	return i, ok
}

// Tile returns the tile stored at domain bit i.
func (rt *RuleTable) Tile(i int) Tile { return rt.tiles[i] }

// Allowed returns the tiles t lists in direction d. The result is empty when
// t allows nothing there, and nil when t is not in the table.
func (rt *RuleTable) Allowed(t Tile, d Direction) []Tile {
	i, ok := rt.index[t]
	if !ok {
		return nil
	}
	members := rt.allowed[d][i].Members()
	tiles := make([]Tile, len(members))
	for k, j := range members {
		tiles[k] = rt.tiles[j]
	}
	return tiles
}

// Permits reports whether from lists to in direction d. Only the entry of
// from is consulted.
func (rt *RuleTable) Permits(from Tile, d Direction, to Tile) bool {
	i, ok := rt.index[from]
	if !ok {
		return false
	}
	j, ok := rt.index[to]
	if !ok {
		return false
	}
	return rt.allowed[d][i].Has(j)
}

// Compatible reports whether to may sit in direction d of from, according
// to both entries.
func (rt *RuleTable) Compatible(from Tile, d Direction, to Tile) bool {
	return rt.Permits(from, d, to) && rt.Permits(to, d.Opposite(), from)
}

// DomainOf returns the domain holding exactly tiles.
func (rt *RuleTable) DomainOf(tiles ...Tile) (Domain, error) {
	var d Domain
	for _, t := range tiles {
		i, ok := rt.index[t]
		if !ok {
			return 0, invalidRules("tile %q has no entry", t)
		}
		d |= domainOf(i)
	}
	return d, nil
}

// Full returns the domain holding every tile of the table.
func (rt *RuleTable) Full() Domain {
	if len(rt.tiles) == MaxTiles {
		return ^Domain(0)
	}
	return Domain(1)<<uint(len(rt.tiles)) - 1
}

// Entries returns the table as adjacency entries, in domain order.
func (rt *RuleTable) Entries() []Adjacency {
	entries := make([]Adjacency, len(rt.tiles))
	for i, t := range rt.tiles {
		entries[i] = Adjacency{
			Tile:  t,
			North: rt.Allowed(t, North),
			East:  rt.Allowed(t, East),
			South: rt.Allowed(t, South),
			West:  rt.Allowed(t, West),
		}
	}
	return entries
}

// supported returns every tile that may sit in direction d of some member
// of cur.
func (rt *RuleTable) supported(cur Domain, d Direction) Domain {
	var out Domain
	for m := uint64(cur); m != 0; m &= m - 1 {
		out |= rt.support[d][bits.TrailingZeros64(m)]
	}
	return out
}
