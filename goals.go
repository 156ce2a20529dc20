package foam

import (
	"fmt"
	"math"
)

// GoalProjector is the target-subspace projector P attached to one
// multi-index. P is expected to be a Hermitian projector (P = P†, P² = P);
// that is the caller's responsibility.
type GoalProjector struct {
	P *Matrix
}

// NewGoalProjector wraps a copy of p. p must be square.
func NewGoalProjector(p *Matrix) (GoalProjector, error) {
	if !p.IsSquare() {
		rows, cols := p.Dims()
		return GoalProjector{}, fmt.Errorf("%w: goal projector is %dx%d", ErrNotSquare, rows, cols)
	}
	return GoalProjector{P: p.Clone()}, nil
}

// Project returns P·v. The zero GoalProjector has no matrix and yields
// ErrDimensionMismatch.
func (g GoalProjector) Project(v []complex128) ([]complex128, error) {
	if g.P == nil {
		return nil, fmt.Errorf("%w: empty goal projector", ErrDimensionMismatch)
	}
	return g.P.MulVec(v)
}

// Dim returns the dimension of the space P acts on, 0 for the zero value.
func (g GoalProjector) Dim() int {
	if g.P == nil {
		return 0
	}
	n, _ := g.P.Dims()
	return n
}

// IsProjector reports whether P is Hermitian and idempotent within tol.
// Diagnostic only: the functional evaluator never calls it.
func (g GoalProjector) IsProjector(tol float64) bool {
	if g.P == nil || !g.P.IsSquare() {
		return false
	}
	if !g.P.ApproxEqual(g.P.H(), tol) {
		return false
	}
	pp, err := g.P.Mul(g.P)
	if err != nil {
		return false
	}
	return pp.ApproxEqual(g.P, tol)
}

// Rank returns trace(P) rounded to the nearest integer, which equals the
// dimension of the target subspace for a proper projector.
func (g GoalProjector) Rank() int {
	n := g.Dim()
	var tr float64
	for i := 0; i < n; i++ {
		tr += real(g.P.At(i, i))
	}
	return int(math.Round(tr))
}

// GoalHierarchy maps multi-indices to goal projectors.
//
// Lookup is two-tier: an entry registered for the exact index wins; otherwise
// the default registered for the index's level is used. The zero value is an
// empty hierarchy ready for Set and SetLevelDefault.
type GoalHierarchy struct {
	projectors map[Index]GoalProjector
	defaults   map[int]GoalProjector
}

// NewGoalHierarchy copies projectors into a new hierarchy.
func NewGoalHierarchy(projectors map[Index]GoalProjector) *GoalHierarchy {
	g := &GoalHierarchy{
		projectors: make(map[Index]GoalProjector, len(projectors)),
		defaults:   make(map[int]GoalProjector),
	}
	for idx, p := range projectors {
		g.projectors[idx] = p
	}
	return g
}

// Set registers the projector for one index, replacing any previous entry.
func (g *GoalHierarchy) Set(idx Index, p GoalProjector) error {
	if idx.IsZero() {
		return fmt.Errorf("%w: zero index", ErrInvalidIndex)
	}
	if p.P == nil {
		return fmt.Errorf("%w: empty goal projector for %s", ErrNotSquare, idx)
	}
	if g.projectors == nil {
		g.projectors = make(map[Index]GoalProjector)
	}
	g.projectors[idx] = p
	return nil
}

// SetLevelDefault registers the projector used for indices at level that
// have no entry of their own.
func (g *GoalHierarchy) SetLevelDefault(level int, p GoalProjector) {
	if g.defaults == nil {
		g.defaults = make(map[int]GoalProjector)
	}
	g.defaults[level] = p
}

// Get returns the projector for idx, or ErrMissingGoal.
func (g *GoalHierarchy) Get(idx Index) (GoalProjector, error) {
	if p, ok := g.projectors[idx]; ok {
		return p, nil
	}
	if p, ok := g.defaults[idx.Level()]; ok {
		return p, nil
	}
	return GoalProjector{}, fmt.Errorf("%w: %s", ErrMissingGoal, idx)
}

// Len returns the number of index-specific entries.
func (g *GoalHierarchy) Len() int { return len(g.projectors) }
