package foam

import (
	"fmt"
	"strconv"
	"strings"
)

// Index is a hierarchical multi-index (a0, a1, ..., al). Its level is its
// length minus one.
//
// Index values are immutable and comparable: two indices built from the same
// components are == and may be used directly as map keys.
type Index struct {
	key   string // canonical "a0.a1...al"
	level int
}

// NewIndex builds a multi-index from its components.
// Components must be non-negative and there must be at least one.
func NewIndex(parts ...int) (Index, error) {
	if len(parts) == 0 {
		return Index{}, fmt.Errorf("%w: empty", ErrInvalidIndex)
	}

	var b strings.Builder
	for i, p := range parts {
		if p < 0 {
			return Index{}, fmt.Errorf("%w: component %d is %d", ErrInvalidIndex, i, p)
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(p))
	}

	return Index{key: b.String(), level: len(parts) - 1}, nil
}

// MustIndex is like NewIndex but panics on invalid input.
// Intended for literals in scenarios and tests.
func MustIndex(parts ...int) Index {
	idx, err := NewIndex(parts...)
	if err != nil {
		panic(err)
	}
	return idx
}

// ParseIndex parses the dotted form produced by Key, e.g. "0.2.1".
func ParseIndex(s string) (Index, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Index{}, fmt.Errorf("%w: empty", ErrInvalidIndex)
	}

	fields := strings.Split(s, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		p, err := strconv.Atoi(f)
		if err != nil {
			return Index{}, fmt.Errorf("%w: %q: %v", ErrInvalidIndex, s, err)
		}
		parts[i] = p
	}

	return NewIndex(parts...)
}

// Level returns len(index) - 1.
func (i Index) Level() int { return i.level }

// Len returns the number of components.
func (i Index) Len() int { return i.level + 1 }

// IsZero reports whether i is the zero Index (never a valid multi-index).
func (i Index) IsZero() bool { return i.key == "" }

// Key returns the canonical dotted form.
func (i Index) Key() string { return i.key }

// Parts returns a fresh copy of the components.
func (i Index) Parts() []int {
	if i.IsZero() {
		return nil
	}
	fields := strings.Split(i.key, ".")
	parts := make([]int, len(fields))
	for k, f := range fields {
		parts[k], _ = strconv.Atoi(f)
	}
	return parts
}

// Child returns the index extended by one component (one level deeper).
func (i Index) Child(part int) (Index, error) {
	return NewIndex(append(i.Parts(), part)...)
}

// String formats the index as a tuple, e.g. "(0, 1)". A single component
// keeps the trailing comma: "(0,)".
func (i Index) String() string {
	if i.IsZero() {
		return "()"
	}
	parts := strings.Split(i.key, ".")
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
