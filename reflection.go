package foam

import "fmt"

// DefaultCommuteTolerance is the absolute tolerance used by CommutesWith when
// a caller passes a non-positive tolerance.
const DefaultCommuteTolerance = 1e-8

// ReflectionOperator wraps a linear involution R (typically Hermitian,
// R·R = I) over the local space of a duality.
type ReflectionOperator struct {
	R *Matrix
}

// NewReflectionOperator wraps r. r must be square; involution is not checked
// (see IsInvolution).
func NewReflectionOperator(r *Matrix) (ReflectionOperator, error) {
	if !r.IsSquare() {
		rows, cols := r.Dims()
		return ReflectionOperator{}, fmt.Errorf("%w: reflection is %dx%d", ErrNotSquare, rows, cols)
	}
	return ReflectionOperator{R: r.Clone()}, nil
}

// Apply returns R·v.
func (o ReflectionOperator) Apply(v []complex128) ([]complex128, error) {
	if o.R == nil {
		return nil, fmt.Errorf("%w: empty reflection operator", ErrDimensionMismatch)
	}
	return o.R.MulVec(v)
}

// CommutesWith reports whether R·P and P·R agree element-wise within atol.
// A non-positive atol selects DefaultCommuteTolerance.
//
// This is a structural symmetry diagnostic for callers; the optimizer never
// consults it.
func (o ReflectionOperator) CommutesWith(p *Matrix, atol float64) (bool, error) {
	if atol <= 0 {
		atol = DefaultCommuteTolerance
	}
	rp, err := o.R.Mul(p)
	if err != nil {
		return false, fmt.Errorf("R·P: %w", err)
	}
	pr, err := p.Mul(o.R)
	if err != nil {
		return false, fmt.Errorf("P·R: %w", err)
	}
	return rp.ApproxEqual(pr, atol), nil
}

// IsInvolution reports whether R·R = I within atol.
func (o ReflectionOperator) IsInvolution(atol float64) bool {
	if !o.R.IsSquare() {
		return false
	}
	rr, err := o.R.Mul(o.R)
	if err != nil {
		return false
	}
	n, _ := o.R.Dims()
	return rr.ApproxEqual(Identity(n), atol)
}
