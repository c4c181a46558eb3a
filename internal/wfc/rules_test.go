package wfc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesLookup(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 10, rules.Len())
	assert.Equal(t, []Tile{WallLeft}, rules.Allowed(CornerTL, South))
	assert.Empty(t, rules.Allowed(CornerTL, North))
	assert.NotNil(t, rules.Allowed(CornerTL, North))
	assert.Nil(t, rules.Allowed("Sofa", North))

	assert.True(t, rules.Permits(WallTop, South, Desk))
	assert.True(t, rules.Compatible(WallTop, South, Carpet))
	assert.False(t, rules.Permits(Desk, North, WallBottom))
	assert.False(t, rules.Permits("Sofa", North, Desk))
}

func TestNewRuleTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []Adjacency
	}{
		{name: "empty", entries: nil},
		{name: "unnamed", entries: []Adjacency{{}}},
		{
			name:    "duplicate",
			entries: []Adjacency{{Tile: Desk}, {Tile: Desk}},
		},
		{
			name:    "unknown neighbour",
			entries: []Adjacency{{Tile: Desk, East: []Tile{"Sofa"}}},
		},
		{name: "too many tiles", entries: manyTiles(MaxTiles + 1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewRuleTable(test.entries)
			assert.ErrorIs(t, err, ErrInvalidRuleTable)
		})
	}
}

func manyTiles(n int) []Adjacency {
	entries := make([]Adjacency, n)
	for i := range entries {
		entries[i].Tile = Tile(fmt.Sprintf("T%d", i))
	}
	return entries
}

func TestRuleTableFullUniverse(t *testing.T) {
	rules, err := NewRuleTable(manyTiles(MaxTiles))
	require.NoError(t, err)
	assert.Equal(t, MaxTiles, rules.Full().Len())

	small, err := NewRuleTable(manyTiles(3))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, small.Full().Members())
}

func TestRuleTableEntriesRoundTrip(t *testing.T) {
	rules := DefaultRules()
	again, err := NewRuleTable(rules.Entries())
	require.NoError(t, err)

	assert.Equal(t, rules.Tiles(), again.Tiles())
	for _, from := range rules.Tiles() {
		for _, d := range Directions {
			assert.ElementsMatch(t, rules.Allowed(from, d), again.Allowed(from, d))
		}
	}
}

func TestSupportChecksBothEntries(t *testing.T) {
	rules := DefaultRules()
	tl, _ := rules.Index(CornerTL)
	tr, _ := rules.Index(CornerTR)
	top, _ := rules.Index(WallTop)

	east := rules.supported(domainOf(tl), East)
	assert.True(t, east.Has(top))
	assert.False(t, east.Has(tr), "top-left corner does not list the top-right one")

	desk, _ := rules.Index(Desk)
	carpet, _ := rules.Index(Carpet)
	north := rules.supported(domainOf(desk, carpet), North)
	assert.Equal(t, domainOf(desk, carpet, top), north)
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, West, East.Opposite())
	assert.Equal(t, North, South.Opposite())
	assert.Equal(t, East, West.Opposite())

	for _, d := range Directions {
		dr, dc := d.Offset()
		or, oc := d.Opposite().Offset()
		assert.Equal(t, 0, dr+or, d.String())
		assert.Equal(t, 0, dc+oc, d.String())
	}
}

func TestDomain(t *testing.T) {
	d := domainOf(5, 1, 3)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []int{1, 3, 5}, d.Members())
	assert.True(t, d.Has(3))
	assert.False(t, d.Has(2))
	assert.False(t, d.Has(-1))
	assert.False(t, d.Collapsed())

	_, ok := d.Single()
	assert.False(t, ok)

	i, ok := domainOf(4).Single()
	assert.True(t, ok)
	assert.Equal(t, 4, i)

	assert.True(t, Domain(0).Empty())
	assert.Empty(t, Domain(0).Members())
}

func TestDomainFormat(t *testing.T) {
	rules := DefaultRules()
	d, err := rules.DomainOf(Carpet, Desk)
	require.NoError(t, err)
	assert.Equal(t, "{Desk Carpet}", d.Format(rules))
}

func TestBoundaryAt(t *testing.T) {
	b := OfficeBoundary()
	assert.Equal(t, []Tile{CornerTL}, b.At(0, 0, 1))
	assert.Equal(t, []Tile{CornerTR}, b.At(0, 1, 2))
	assert.Equal(t, []Tile{CornerBL}, b.At(1, 0, 2))
	assert.Equal(t, []Tile{WallRight}, b.At(2, 4, 5))
	assert.Equal(t, []Tile{Desk, Carpet}, b.At(2, 2, 5))
	assert.False(t, b.IsZero())
	assert.True(t, Boundary{}.IsZero())
}
