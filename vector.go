package foam

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// Vector helpers. State vectors are plain []complex128; every helper here
// leaves its arguments untouched and returns freshly allocated results.

// Clone returns a copy of v.
func Clone(v []complex128) []complex128 {
	if v == nil {
		return nil
	}
	out := make([]complex128, len(v))
	copy(out, v)
	return out
}

// Norm returns the Euclidean norm of v.
func Norm(v []complex128) float64 {
	return cmplxs.Norm(v, 2)
}

// Inner returns ⟨a|b⟩, conjugate-linear in a.
func Inner(a, b []complex128) (complex128, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: inner product of %d and %d", ErrDimensionMismatch, len(a), len(b))
	}
	return cmplxs.Dot(a, b), nil
}

// Overlap returns |⟨ref|psi⟩|.
func Overlap(ref, psi []complex128) (float64, error) {
	ip, err := Inner(ref, psi)
	if err != nil {
		return 0, err
	}
	return cmplx.Abs(ip), nil
}

// Normalize returns v / ‖v‖.
// A zero vector yields ErrDegenerateNormalization.
func Normalize(v []complex128) ([]complex128, error) {
	out := Clone(v)
	if !normalizeInPlace(out) {
		return nil, ErrDegenerateNormalization
	}
	return out, nil
}

// normalizeInPlace scales v to unit norm. It reports false and leaves v
// unchanged when the norm is zero.
func normalizeInPlace(v []complex128) bool {
	n := Norm(v)
	if n <= 0 {
		return false
	}
	cmplxs.ScaleReal(1/n, v)
	return true
}

// Combine returns alpha·a + beta·b.
func Combine(alpha complex128, a []complex128, beta complex128, b []complex128) ([]complex128, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: combining %d and %d", ErrDimensionMismatch, len(a), len(b))
	}
	out := make([]complex128, len(a))
	cmplxs.AddScaled(out, alpha, a)
	cmplxs.AddScaled(out, beta, b)
	return out, nil
}

// ApproxEqual reports whether a and b have the same length and every pair of
// components differs by at most tol (absolute or relative).
func ApproxEqual(a, b []complex128, tol float64) bool {
	return cmplxs.EqualApprox(a, b, tol)
}
