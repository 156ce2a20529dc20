package foam

import (
	"fmt"
	"sort"
)

// Entry pairs a multi-index with its state vector.
type Entry struct {
	Index Index
	State []complex128
}

// Hierarchy is the multiverse hierarchy: an ordered mapping from multi-index
// to complex state vector.
//
// Iteration order is insertion order. A Hierarchy owns its vectors: the
// constructor and every accessor copy, so callers never alias internal state.
// Transformations (Copy, With, Step) return new hierarchies and leave the
// receiver untouched; only SetState mutates in place.
type Hierarchy struct {
	order  []Index
	states map[Index][]complex128
}

// NewHierarchy builds a hierarchy from entries, preserving their order.
func NewHierarchy(entries ...Entry) (*Hierarchy, error) {
	h := &Hierarchy{
		order:  make([]Index, 0, len(entries)),
		states: make(map[Index][]complex128, len(entries)),
	}
	for _, e := range entries {
		if e.Index.IsZero() {
			return nil, fmt.Errorf("%w: zero index", ErrInvalidIndex)
		}
		if _, dup := h.states[e.Index]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIndex, e.Index)
		}
		if len(e.State) == 0 {
			return nil, fmt.Errorf("%w: empty state at %s", ErrDimensionMismatch, e.Index)
		}
		h.order = append(h.order, e.Index)
		h.states[e.Index] = Clone(e.State)
	}
	return h, nil
}

// Len returns the number of multi-indices.
func (h *Hierarchy) Len() int { return len(h.order) }

// Indices returns all multi-indices in insertion order.
func (h *Hierarchy) Indices() []Index {
	out := make([]Index, len(h.order))
	copy(out, h.order)
	return out
}

// Has reports whether idx is present.
func (h *Hierarchy) Has(idx Index) bool {
	_, ok := h.states[idx]
	return ok
}

// Levels returns the distinct levels present, ascending.
func (h *Hierarchy) Levels() []int {
	seen := make(map[int]struct{})
	levels := make([]int, 0)
	for _, idx := range h.order {
		if _, ok := seen[idx.Level()]; ok {
			continue
		}
		seen[idx.Level()] = struct{}{}
		levels = append(levels, idx.Level())
	}
	sort.Ints(levels)
	return levels
}

// LevelIndices returns the indices at level, in insertion order.
func (h *Hierarchy) LevelIndices(level int) []Index {
	var out []Index
	for _, idx := range h.order {
		if idx.Level() == level {
			out = append(out, idx)
		}
	}
	return out
}

// State returns a copy of the state at idx, or ErrMissingState.
func (h *Hierarchy) State(idx Index) ([]complex128, error) {
	psi, ok := h.states[idx]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingState, idx)
	}
	return Clone(psi), nil
}

// view returns the internal slice without copying. Callers must not modify it.
func (h *Hierarchy) view(idx Index) ([]complex128, error) {
	psi, ok := h.states[idx]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingState, idx)
	}
	return psi, nil
}

// SetState replaces the state at an existing idx with a copy of psi.
// The dimension must not change.
func (h *Hierarchy) SetState(idx Index, psi []complex128) error {
	old, ok := h.states[idx]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingState, idx)
	}
	if len(psi) != len(old) {
		return fmt.Errorf("%w: state at %s has dimension %d, got %d",
			ErrDimensionMismatch, idx, len(old), len(psi))
	}
	h.states[idx] = Clone(psi)
	return nil
}

// Copy returns a deep copy.
func (h *Hierarchy) Copy() *Hierarchy {
	c := &Hierarchy{
		order:  make([]Index, len(h.order)),
		states: make(map[Index][]complex128, len(h.states)),
	}
	copy(c.order, h.order)
	for idx, psi := range h.states {
		c.states[idx] = Clone(psi)
	}
	return c
}

// With returns a deep copy with the state at idx replaced by psi.
func (h *Hierarchy) With(idx Index, psi []complex128) (*Hierarchy, error) {
	c := h.Copy()
	if err := c.SetState(idx, psi); err != nil {
		return nil, err
	}
	return c, nil
}

// probe returns a hierarchy that shares every vector with h except the one at
// idx, which is psi (not copied). Only for read-only evaluation.
func (h *Hierarchy) probe(idx Index, psi []complex128) *Hierarchy {
	p := &Hierarchy{
		order:  h.order,
		states: make(map[Index][]complex128, len(h.states)),
	}
	for k, v := range h.states {
		p.states[k] = v
	}
	p.states[idx] = psi
	return p
}

// Entries returns copies of all entries in insertion order.
func (h *Hierarchy) Entries() []Entry {
	out := make([]Entry, len(h.order))
	for i, idx := range h.order {
		out[i] = Entry{Index: idx, State: Clone(h.states[idx])}
	}
	return out
}
