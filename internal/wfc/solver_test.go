package wfc_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/officegen/internal/wfc"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 2))
}

func TestSolveThreeByThree(t *testing.T) {
	layout, err := wfc.Solve(3, nil, newRand(1))
	require.NoError(t, err)
	require.Equal(t, 3, layout.Size())

	assert.Equal(t, wfc.CornerTL, layout.At(0, 0))
	assert.Equal(t, wfc.CornerTR, layout.At(0, 2))
	assert.Equal(t, wfc.CornerBL, layout.At(2, 0))
	assert.Equal(t, wfc.CornerBR, layout.At(2, 2))

	assert.Equal(t, wfc.WallTop, layout.At(0, 1))
	assert.Equal(t, wfc.WallBottom, layout.At(2, 1))
	assert.Equal(t, wfc.WallLeft, layout.At(1, 0))
	assert.Equal(t, wfc.WallRight, layout.At(1, 2))

	assert.Contains(t, []wfc.Tile{wfc.Desk, wfc.Carpet}, layout.At(1, 1))
}

func TestSolveBoundary(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 12; n++ {
		t.Run(fmt.Sprintf("%dx%d", n, n), func(t *testing.T) {
			t.Parallel()
			layout, err := wfc.Solve(n, nil, newRand(uint64(n)))
			require.NoError(t, err)

			last := n - 1
			assert.Equal(t, wfc.CornerTL, layout.At(0, 0))
			assert.Equal(t, wfc.CornerTR, layout.At(0, last))
			assert.Equal(t, wfc.CornerBL, layout.At(last, 0))
			assert.Equal(t, wfc.CornerBR, layout.At(last, last))

			for i := 1; i < last; i++ {
				assert.Equal(t, wfc.WallTop, layout.At(0, i))
				assert.Equal(t, wfc.WallBottom, layout.At(last, i))
				assert.Equal(t, wfc.WallLeft, layout.At(i, 0))
				assert.Equal(t, wfc.WallRight, layout.At(i, last))
			}
			for row := 1; row < last; row++ {
				for col := 1; col < last; col++ {
					tile := layout.At(row, col)
					if tile != wfc.Desk && tile != wfc.Carpet {
						t.Errorf("interior (%d,%d) = %s", row, col, tile)
					}
				}
			}
		})
	}
}

func TestSolveLocallyConsistent(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	rules := wfc.DefaultRules()
	for n := 1; n <= 20; n++ {
		for seed := range uint64(5) {
			layout, err := wfc.Solve(n, rules, rand.New(rand.NewPCG(seed, uint64(n))))
			if err != nil {
				t.Errorf("solve %d @ seed %d: %v", n, seed, err)
				continue
			}
			if err := layout.ValidateSolved(rules); err != nil {
				t.Errorf("solve %d @ seed %d: %v", n, seed, err)
			}
			// only the 2×2 room has corners touching each other
			if n == 2 {
				continue
			}
			if err := layout.Validate(rules); err != nil {
				t.Errorf("solve %d @ seed %d: %v", n, seed, err)
			}
		}
	}
}

func TestSolveSmallRooms(t *testing.T) {
	rules := wfc.DefaultRules()

	tests := []struct {
		n      int
		want   wfc.Layout
		strict bool
	}{
		{n: 1, want: wfc.Layout{{wfc.CornerTL}}, strict: true},
		{
			n: 2,
			want: wfc.Layout{
				{wfc.CornerTL, wfc.CornerTR},
				{wfc.CornerBL, wfc.CornerBR},
			},
			// CornerTL only accepts WallTop to its east
			strict: false,
		},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.n, tt.n), func(t *testing.T) {
			collapses := 0
			s := &wfc.Solver{
				Rules: rules,
				Rand:  newRand(1),
				Observer: func(e wfc.Event) {
					if e.Kind == wfc.EventCollapse {
						collapses++
					}
				},
			}
			layout, err := s.Solve(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, layout)
			assert.Zero(t, collapses)

			assert.NoError(t, layout.ValidateSolved(rules))
			if tt.strict {
				assert.NoError(t, layout.Validate(rules))
			} else {
				assert.Error(t, layout.Validate(rules))
			}
		})
	}
}

func TestSolveDeterministic(t *testing.T) {
	first, err := wfc.Solve(10, nil, newRand(42))
	require.NoError(t, err)

	for range 5 {
		again, err := wfc.Solve(10, nil, newRand(42))
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, first.String(), again.String())
	}
}

func TestSolveReseed(t *testing.T) {
	rules := wfc.DefaultRules()

	a, err := wfc.Solve(8, rules, newRand(1))
	require.NoError(t, err)
	b, err := wfc.Solve(8, rules, newRand(2))
	require.NoError(t, err)

	assert.NoError(t, a.Validate(rules))
	assert.NoError(t, b.Validate(rules))
}

func TestSolveSingleCell(t *testing.T) {
	layout, err := wfc.Solve(1, nil, newRand(1))
	require.NoError(t, err)
	assert.Equal(t, wfc.Layout{{wfc.CornerTL}}, layout)
}

func TestSolveInvalidSize(t *testing.T) {
	_, err := wfc.Solve(0, nil, newRand(1))
	assert.ErrorIs(t, err, wfc.ErrInvalidSize)
}

func TestSolveNoRandomSource(t *testing.T) {
	_, err := wfc.Solve(3, nil, nil)
	assert.ErrorIs(t, err, wfc.ErrNoRandomSource)
}

// blockedInterior returns the office table with desks and carpet refusing
// every neighbour.
func blockedInterior(t *testing.T) *wfc.RuleTable {
	t.Helper()
	entries := wfc.OfficeAdjacency()
	for i, e := range entries {
		if e.Tile == wfc.Desk || e.Tile == wfc.Carpet {
			entries[i] = wfc.Adjacency{Tile: e.Tile}
		}
	}
	rules, err := wfc.NewRuleTable(entries)
	require.NoError(t, err)
	return rules
}

func TestSolveContradiction(t *testing.T) {
	_, err := wfc.Solve(3, blockedInterior(t), newRand(1))
	require.ErrorIs(t, err, wfc.ErrContradiction)

	var ce *wfc.ContradictionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, ce.Row)
	assert.Equal(t, 1, ce.Col)
	assert.Equal(t, 1, ce.OriginRow)
	assert.Equal(t, 1, ce.OriginCol)
}

func TestSolveStepBudget(t *testing.T) {
	s := &wfc.Solver{Rand: newRand(1), MaxSteps: 1}
	_, err := s.Solve(5)
	assert.ErrorIs(t, err, wfc.ErrStepBudget)
	assert.NotErrorIs(t, err, wfc.ErrContradiction)

	s = &wfc.Solver{Rand: newRand(1), MaxSteps: 9}
	_, err = s.Solve(5)
	assert.NoError(t, err)
}

func TestSolveMissingBoundaryTile(t *testing.T) {
	rules, err := wfc.NewRuleTable([]wfc.Adjacency{
		{Tile: wfc.Desk, East: []wfc.Tile{wfc.Desk}, West: []wfc.Tile{wfc.Desk}},
	})
	require.NoError(t, err)

	_, err = wfc.Solve(3, rules, newRand(1))
	assert.ErrorIs(t, err, wfc.ErrInvalidRuleTable)
}

func TestSolveDomainsOnlyShrink(t *testing.T) {
	const n = 9
	sizes := make(map[[2]int]int)
	prev := make(map[[2]int]wfc.Domain)
	events := 0

	s := &wfc.Solver{
		Rand: newRand(7),
		Observer: func(e wfc.Event) {
			events++
			key := [2]int{e.Row, e.Col}
			if last, ok := sizes[key]; ok {
				if e.Domain.Len() >= last {
					t.Errorf("%s at (%d,%d) grew or kept size: %d -> %d",
						e.Kind, e.Row, e.Col, last, e.Domain.Len())
				}
				if e.Domain&^prev[key] != 0 {
					t.Errorf("%s at (%d,%d) gained candidates", e.Kind, e.Row, e.Col)
				}
			}
			sizes[key] = e.Domain.Len()
			prev[key] = e.Domain
		},
	}
	layout, err := s.Solve(n)
	require.NoError(t, err)
	require.Equal(t, n, layout.Size())
	assert.Positive(t, events)

	for key, size := range sizes {
		assert.Equal(t, 1, size, "cell %v", key)
	}
}

func TestSolverCustomBoundary(t *testing.T) {
	floor := wfc.Tile("Floor")
	wall := wfc.Tile("Wall")
	all := []wfc.Tile{floor, wall}
	rules, err := wfc.NewRuleTable([]wfc.Adjacency{
		{Tile: floor, North: all, East: all, South: all, West: all},
		{Tile: wall, North: all, East: all, South: all, West: all},
	})
	require.NoError(t, err)

	s := &wfc.Solver{
		Rules: rules,
		Boundary: wfc.Boundary{
			TopLeft: wall, TopRight: wall, BottomLeft: wall, BottomRight: wall,
			Top: wall, Bottom: wall, Left: wall, Right: wall,
			Interior: all,
		},
		Rand: newRand(3),
	}
	layout, err := s.Solve(6)
	require.NoError(t, err)
	assert.NoError(t, layout.Validate(rules))
	for i := range 6 {
		assert.Equal(t, wall, layout.At(0, i))
		assert.Equal(t, wall, layout.At(5, i))
	}
}

func TestSolveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collapses := 0
	s := &wfc.Solver{
		Rand: newRand(1),
		Observer: func(e wfc.Event) {
			if e.Kind == wfc.EventCollapse {
				collapses++
				cancel()
			}
		},
	}
	_, err := s.SolveContext(ctx, 16)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, collapses)

	_, err = s.SolveContext(ctx, 1)
	assert.NoError(t, err, "nothing to collapse")
}
