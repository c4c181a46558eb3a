// Package generator turns a size and a seed into a finished office layout,
// retrying contradicted solves with successive seeds.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/vancomm/officegen/internal/tileset"
	"github.com/vancomm/officegen/internal/wfc"
)

var Log *slog.Logger = slog.Default()

var ErrSizeTooLarge = errors.New("generator: size too large")

const (
	DefaultMaxSize  = 128
	DefaultAttempts = 10

	// second PCG word; the request seed is the first
	stream = 0x6f6666696365
)

type Config struct {
	Tileset  *tileset.Tileset // [tileset.Default] when nil
	MaxSize  int
	Attempts int
	MaxSteps int // no limit when zero
}

// Progress is a solver event tagged with the attempt that produced it.
type Progress struct {
	Attempt int
	Seed    uint64
	wfc.Event
}

type Request struct {
	Size     int
	Seed     uint64
	Observer func(Progress)
}

type Result struct {
	Layout wfc.Layout
	// Seed reproduces Layout in a single attempt.
	Seed     uint64
	Attempts int
}

type Generator struct {
	tiles    *tileset.Tileset
	maxSize  int
	attempts int
	maxSteps int
}

func New(cfg Config) *Generator {
	g := &Generator{
		tiles:    cfg.Tileset,
		maxSize:  cfg.MaxSize,
		attempts: cfg.Attempts,
		maxSteps: cfg.MaxSteps,
	}
	if g.tiles == nil {
		g.tiles = tileset.Default()
	}
	if g.maxSize <= 0 {
		g.maxSize = DefaultMaxSize
	}
	if g.attempts <= 0 {
		g.attempts = DefaultAttempts
	}
	return g
}

func (g *Generator) Tileset() *tileset.Tileset { return g.tiles }

func (g *Generator) MaxSize() int { return g.maxSize }

// Generate runs up to the configured number of attempts. Attempt k uses
// seed Seed+k-1; only contradictions are retried. Cancelling ctx stops the
// running attempt before its next collapse.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Size > g.maxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrSizeTooLarge, req.Size, g.maxSize)
	}

	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seed := req.Seed + uint64(attempt-1)
		solver := wfc.Solver{
			Rules:    g.tiles.Rules,
			Boundary: g.tiles.Boundary,
			Rand:     rand.New(rand.NewPCG(seed, stream)),
			MaxSteps: g.maxSteps,
			Log:      Log,
		}
		if req.Observer != nil {
			solver.Observer = func(e wfc.Event) {
				req.Observer(Progress{Attempt: attempt, Seed: seed, Event: e})
			}
		}

		layout, err := solver.SolveContext(ctx, req.Size)
		if err == nil {
			if err := layout.ValidateSolved(g.tiles.Rules); err != nil {
				return nil, fmt.Errorf("generator: solved layout is inconsistent: %w", err)
			}
			Log.Debug("layout generated",
				"size", req.Size, "seed", seed, "attempts", attempt)
			return &Result{Layout: layout, Seed: seed, Attempts: attempt}, nil
		}
		if !errors.Is(err, wfc.ErrContradiction) {
			return nil, err
		}
		Log.Debug("attempt failed", "attempt", attempt, "seed", seed, "err", err)
		lastErr = err
	}

	return nil, fmt.Errorf("generator: no layout after %d attempts: %w", g.attempts, lastErr)
}
