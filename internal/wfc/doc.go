// Package wfc generates tile layouts on a square grid with wave function
// collapse.
//
// A [Solver] seeds every cell of an n×n [Grid] from a [Boundary], then
// repeatedly collapses the undecided cell with the fewest candidates to a
// random tile and propagates the consequences to its neighbours using the
// adjacency rules of a [RuleTable]. A solve either collapses every cell and
// returns a [Layout], or stops at the first contradiction.
//
// The package does no I/O; rendering and rule files live elsewhere.
package wfc
