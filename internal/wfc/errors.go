package wfc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRuleTable indicates a tile used by the grid or named by a
	// neighbour list has no entry in the rule table.
	ErrInvalidRuleTable = errors.New("wfc: invalid rule table")
	// ErrContradiction indicates propagation emptied a cell's domain.
	ErrContradiction = errors.New("wfc: contradiction")
	// ErrStepBudget indicates the solver ran out of collapse steps.
	ErrStepBudget = errors.New("wfc: step budget exhausted")
	// ErrInvalidSize indicates a grid side length below 1.
	ErrInvalidSize = errors.New("wfc: grid size must be at least 1")
	// ErrNoRandomSource indicates a solve was attempted without a Rand.
	ErrNoRandomSource = errors.New("wfc: no random source")
)

// ContradictionError reports the cell whose domain became empty and the cell
// whose reduction started the propagation.
type ContradictionError struct {
	Row, Col             int
	OriginRow, OriginCol int
}

// [ContradictionError] implements [error]
func (e *ContradictionError) Error() string {
	return fmt.Sprintf(
		"wfc: contradiction: no valid tile for cell (%d,%d) after reducing (%d,%d)",
		e.Row, e.Col, e.OriginRow, e.OriginCol,
	)
}

func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}

func invalidRules(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidRuleTable}, args...)...)
}
