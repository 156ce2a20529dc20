package foam

import (
	"fmt"
	"math/cmplx"
)

// Duality is a designated pair of opposite base states |A⟩, |B⟩ in one local
// space. Plus and Minus are its symmetric and antisymmetric combinations.
//
// A and B should be linearly independent; this is not checked.
type Duality struct {
	A []complex128
	B []complex128
}

// NewDuality copies a and b into a Duality.
func NewDuality(a, b []complex128) (Duality, error) {
	if len(a) != len(b) {
		return Duality{}, fmt.Errorf("%w: duality bases have dimensions %d and %d",
			ErrDimensionMismatch, len(a), len(b))
	}
	return Duality{A: Clone(a), B: Clone(b)}, nil
}

// Dim returns the dimension of the local space.
func (d Duality) Dim() int { return len(d.A) }

// Plus returns normalize(A + B). Fails when A == -B.
func (d Duality) Plus() ([]complex128, error) {
	v, err := Combine(1, d.A, 1, d.B)
	if err != nil {
		return nil, err
	}
	out, err := Normalize(v)
	if err != nil {
		return nil, fmt.Errorf("duality plus: %w", err)
	}
	return out, nil
}

// Minus returns normalize(A - B). Fails when A == B.
func (d Duality) Minus() ([]complex128, error) {
	v, err := Combine(1, d.A, -1, d.B)
	if err != nil {
		return nil, err
	}
	out, err := Normalize(v)
	if err != nil {
		return nil, fmt.Errorf("duality minus: %w", err)
	}
	return out, nil
}

// Reflection returns the operator exchanging A and B and acting as the
// identity on their orthogonal complement:
//
//	R = |A⟩⟨B| + |B⟩⟨A| + (I − |A⟩⟨A| − |B⟩⟨B|)
//
// For orthonormal A, B this is a Hermitian involution; in the two-dimensional
// standard basis it is σx.
func (d Duality) Reflection() (ReflectionOperator, error) {
	n := d.Dim()
	if n == 0 || len(d.B) != n {
		return ReflectionOperator{}, fmt.Errorf("%w: duality bases have dimensions %d and %d",
			ErrDimensionMismatch, n, len(d.B))
	}

	r := Identity(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			ai, bi := d.A[i], d.B[i]
			aj, bj := cmplx.Conj(d.A[j]), cmplx.Conj(d.B[j])
			r.data[i*n+j] += ai*bj + bi*aj - ai*aj - bi*bj
		}
	}
	return ReflectionOperator{R: r}, nil
}
