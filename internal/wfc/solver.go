package wfc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var Log *slog.Logger = slog.Default()

// Rand is the random source a solve draws collapses from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type EventKind uint8

const (
	// EventCollapse is sent when the solver picks a tile for a cell.
	EventCollapse EventKind = iota
	// EventNarrow is sent when propagation removes candidates from a cell.
	EventNarrow
)

// EventKind implements [fmt.Stringer]
func (k EventKind) String() string {
	switch k {
	case EventCollapse:
		return "collapse"
	case EventNarrow:
		return "narrow"
	default:
		return "unknown"
	}
}

// Event describes one domain change during a solve.
type Event struct {
	Kind     EventKind
	Step     int
	Row, Col int
	Domain   Domain
}

// Solver runs wave function collapse over a square grid.
type Solver struct {
	// Rules defaults to [DefaultRules] when nil.
	Rules *RuleTable
	// Boundary defaults to [OfficeBoundary] when zero.
	Boundary Boundary
	Rand     Rand
	// MaxSteps bounds the number of collapses; 0 means unbounded.
	MaxSteps int
	// Observer, if set, is called synchronously for every domain change.
	Observer func(Event)
	// Log defaults to the package Log.
	Log *slog.Logger
}

// Solve is shorthand for a [Solver] with the office boundary.
func Solve(n int, rules *RuleTable, rnd Rand) (Layout, error) {
	s := &Solver{Rules: rules, Rand: rnd}
	return s.Solve(n)
}

// Solve builds a fresh n×n grid and collapses it. The first contradiction
// aborts the solve; there is no backtracking.
func (s *Solver) Solve(n int) (Layout, error) {
	return s.SolveContext(context.Background(), n)
}

// SolveContext is Solve that also stops with ctx.Err() once ctx is done.
// ctx is checked before every collapse.
func (s *Solver) SolveContext(ctx context.Context, n int) (Layout, error) {
	if s.Rand == nil {
		return nil, ErrNoRandomSource
	}
	rules := s.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	boundary := s.Boundary
	if boundary.IsZero() {
		boundary = OfficeBoundary()
	}
	log := s.Log
	if log == nil {
		log = Log
	}

	g, err := NewGrid(n, rules, boundary)
	if err != nil {
		return nil, err
	}

	step := 0
	if s.Observer != nil {
		g.observe = func(e Event) {
			e.Step = step
			s.Observer(e)
		}
	}

	for {
		c := g.pickMinDomain()
		if c < 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			log.Debug("solve cancelled", "size", n, "steps", step)
			return nil, err
		}
		if s.MaxSteps > 0 && step >= s.MaxSteps {
			log.Debug("step budget exhausted", "size", n, "steps", step)
			return nil, fmt.Errorf("%w after %d collapses", ErrStepBudget, step)
		}
		step++

		row, col := g.coordinate(c)
		members := g.cells[c].Members()
		choice := members[s.Rand.IntN(len(members))]
		g.set(c, domainOf(choice), EventCollapse)

		if err := g.Propagate(row, col); err != nil {
			var ce *ContradictionError
			if errors.As(err, &ce) {
				log.Debug("contradiction",
					"size", n, "step", step,
					"cell", fmt.Sprintf("%d,%d", ce.Row, ce.Col),
					"origin", fmt.Sprintf("%d,%d", ce.OriginRow, ce.OriginCol),
				)
			}
			return nil, err
		}
	}

	layout, ok := g.Layout()
	if !ok {
		return nil, fmt.Errorf("wfc: solve finished with uncollapsed cells")
	}
	log.Debug("solved", "size", n, "steps", step)
	return layout, nil
}

// pickMinDomain returns the index of the first cell, in row-major order,
// among those with the fewest candidates above one, or -1 if every cell is
// collapsed.
func (g *Grid) pickMinDomain() int {
	best, bestLen := -1, MaxTiles+1
	for i, d := range g.cells {
		if l := d.Len(); l > 1 && l < bestLen {
			best, bestLen = i, l
		}
	}
	return best
}
