package foam

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// DefaultLevelWeight is the weight of a level absent from Weights.
const DefaultLevelWeight = 1.0

// Objective is a scalar functional over a hierarchy. The optimizer only needs
// this interface, so any functional expressible over the states can be
// minimized.
type Objective interface {
	Evaluate(h *Hierarchy) (float64, error)
}

// ObjectiveFunc adapts a function to Objective.
type ObjectiveFunc func(h *Hierarchy) (float64, error)

// Evaluate calls f(h).
func (f ObjectiveFunc) Evaluate(h *Hierarchy) (float64, error) { return f(h) }

// Weights holds the per-level weights Λ_l.
type Weights map[int]float64

// Weight returns Λ_level, or DefaultLevelWeight when the level is unlisted.
func (w Weights) Weight(level int) float64 {
	if v, ok := w[level]; ok {
		return v
	}
	return DefaultLevelWeight
}

// Validate rejects negative or non-finite weights.
func (w Weights) Validate() error {
	levels := make([]int, 0, len(w))
	for l := range w {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	for _, l := range levels {
		v := w[l]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight for level %d is %v", ErrInvalidConfig, l, v)
		}
	}
	return nil
}

// FoamLevel returns the interference ("foam") of one level:
//
//	Φ_l = Σ_{a≠b, level(a)=level(b)=l} |⟨ψ_a| P_l |ψ_b⟩|²
//
// Both orderings (a,b) and (b,a) are counted. P_l is the goal of the first
// index at the level; every index at a level is assumed to share it. A level
// with zero or one index contributes 0.
func FoamLevel(h *Hierarchy, goals *GoalHierarchy, level int) (float64, error) {
	indices := h.LevelIndices(level)
	if len(indices) == 0 {
		return 0, nil
	}

	goal, err := goals.Get(indices[0])
	if err != nil {
		return 0, fmt.Errorf("level %d: %w", level, err)
	}

	// P·ψ_b is reused for every a.
	projected := make([][]complex128, len(indices))
	states := make([][]complex128, len(indices))
	for i, idx := range indices {
		psi, err := h.view(idx)
		if err != nil {
			return 0, err
		}
		states[i] = psi
		projected[i], err = goal.Project(psi)
		if err != nil {
			return 0, fmt.Errorf("level %d, index %s: %w", level, idx, err)
		}
	}

	var phi float64
	for i := range indices {
		for j := range indices {
			if i == j {
				continue
			}
			v, err := Inner(states[i], projected[j])
			if err != nil {
				return 0, fmt.Errorf("level %d, pair %s/%s: %w", level, indices[i], indices[j], err)
			}
			m := cmplx.Abs(v)
			phi += m * m
		}
	}
	return phi, nil
}

// MultiverseFunctional returns J = Σ_l Λ_l · Φ_l over every level present.
// Negative or non-finite weights yield ErrInvalidConfig.
func MultiverseFunctional(h *Hierarchy, goals *GoalHierarchy, weights Weights) (float64, error) {
	if err := weights.Validate(); err != nil {
		return 0, err
	}
	var j float64
	for _, l := range h.Levels() {
		phi, err := FoamLevel(h, goals, l)
		if err != nil {
			return 0, err
		}
		j += weights.Weight(l) * phi
	}
	return j, nil
}

// AlignmentPenalty returns Σ_l Λ_l Σ_{level(a)=l} ‖(I − P_a)ψ_a‖², the weighted
// squared distance of every state from its goal subspace. Each index uses its
// own projector (two-tier lookup).
func AlignmentPenalty(h *Hierarchy, goals *GoalHierarchy, weights Weights) (float64, error) {
	if err := weights.Validate(); err != nil {
		return 0, err
	}
	var total float64
	for _, idx := range h.order {
		psi := h.states[idx]
		goal, err := goals.Get(idx)
		if err != nil {
			return 0, err
		}
		proj, err := goal.Project(psi)
		if err != nil {
			return 0, fmt.Errorf("index %s: %w", idx, err)
		}
		var d float64
		for k := range psi {
			r := cmplx.Abs(psi[k] - proj[k])
			d += r * r
		}
		total += weights.Weight(idx.Level()) * d
	}
	return total, nil
}

// Foam is the Objective minimized by the optimizer: the multiverse functional
// plus an optional goal-alignment term.
//
//	J = Σ_l Λ_l Φ_l + Alignment · AlignmentPenalty
//
// With Alignment == 0 (the default) J is exactly MultiverseFunctional.
type Foam struct {
	Goals     *GoalHierarchy
	Weights   Weights
	Alignment float64
}

// NewFoam returns a Foam objective without an alignment term.
func NewFoam(goals *GoalHierarchy, weights Weights) *Foam {
	return &Foam{Goals: goals, Weights: weights}
}

// Validate rejects a missing goal hierarchy, invalid weights and a negative
// or non-finite Alignment.
func (f *Foam) Validate() error {
	if f.Goals == nil {
		return fmt.Errorf("%w: no goal hierarchy", ErrInvalidConfig)
	}
	if err := f.Weights.Validate(); err != nil {
		return err
	}
	if f.Alignment < 0 || math.IsNaN(f.Alignment) || math.IsInf(f.Alignment, 0) {
		return fmt.Errorf("%w: alignment is %v", ErrInvalidConfig, f.Alignment)
	}
	return nil
}

// Evaluate implements Objective.
func (f *Foam) Evaluate(h *Hierarchy) (float64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	j, err := MultiverseFunctional(h, f.Goals, f.Weights)
	if err != nil {
		return 0, err
	}
	if f.Alignment == 0 {
		return j, nil
	}
	a, err := AlignmentPenalty(h, f.Goals, f.Weights)
	if err != nil {
		return 0, fmt.Errorf("alignment: %w", err)
	}
	return j + f.Alignment*a, nil
}
