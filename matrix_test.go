package foam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix_MulVec(t *testing.T) {
	m, err := MatrixFromRows([][]complex128{
		{1, 2i},
		{0, 3},
	})
	require.NoError(t, err)

	v, err := m.MulVec([]complex128{1, 1i})
	require.NoError(t, err)
	assert.Equal(t, []complex128{-1, 3i}, v)

	_, err = m.MulVec([]complex128{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMatrix_Mul(t *testing.T) {
	a, err := MatrixFromRows([][]complex128{{0, 1}, {1, 0}})
	require.NoError(t, err)
	b, err := MatrixFromRows([][]complex128{{1, 2}, {3, 4}})
	require.NoError(t, err)

	ab, err := a.Mul(b)
	require.NoError(t, err)
	want, _ := MatrixFromRows([][]complex128{{3, 4}, {1, 2}})
	assert.True(t, ab.ApproxEqual(want, 0), "got\n%s", ab)

	c, err := NewMatrix(3, 1, nil)
	require.NoError(t, err)
	_, err = a.Mul(c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMatrix_Shapes(t *testing.T) {
	_, err := NewMatrix(0, 2, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewMatrix(2, 2, []complex128{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = MatrixFromRows([][]complex128{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	m, err := NewMatrix(2, 3, nil)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.False(t, m.IsSquare())
	assert.Panics(t, func() { m.At(2, 0) })
}

func TestMatrix_OuterAndAdjoint(t *testing.T) {
	u := []complex128{1, 1i}
	o := Outer(u, u)

	assert.Equal(t, complex128(1), o.At(0, 0))
	assert.Equal(t, complex(0, -1), o.At(0, 1))
	assert.Equal(t, complex(0, 1), o.At(1, 0))
	assert.True(t, o.ApproxEqual(o.H(), 0), "|u⟩⟨u| must be Hermitian")

	p, err := ProjectorOnto(u)
	require.NoError(t, err)
	pp, err := p.Mul(p)
	require.NoError(t, err)
	assert.True(t, pp.ApproxEqual(p, 1e-12), "normalized outer product must be idempotent")

	_, err = ProjectorOnto([]complex128{0, 0})
	assert.ErrorIs(t, err, ErrDegenerateNormalization)
}

func TestMatrix_CloneIndependent(t *testing.T) {
	id := Identity(2)
	c := id.Clone()
	c.Set(0, 1, 5)
	assert.Equal(t, complex128(0), id.At(0, 1))
}

func TestIdentity_NonPositive(t *testing.T) {
	rows, cols := Identity(-3).Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)

	v, err := Identity(0).MulVec(nil)
	require.NoError(t, err)
	assert.Empty(t, v)
}
