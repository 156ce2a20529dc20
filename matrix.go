package foam

import (
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// Matrix is a dense, row-major complex matrix. Products are delegated to
// cblas128 (Zgemv / Zgemm).
type Matrix struct {
	rows, cols int
	data       []complex128
}

// NewMatrix returns a rows×cols matrix backed by a copy of data (row-major).
// A nil data slice allocates a zero matrix.
func NewMatrix(rows, cols int, data []complex128) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: shape %dx%d", ErrDimensionMismatch, rows, cols)
	}
	if data == nil {
		return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}, nil
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d elements for %dx%d matrix",
			ErrDimensionMismatch, len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: Clone(data)}, nil
}

// MatrixFromRows builds a matrix from a slice of equal-length rows.
func MatrixFromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrDimensionMismatch)
	}
	cols := len(rows[0])
	data := make([]complex128, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrDimensionMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return NewMatrix(len(rows), cols, data)
}

// Identity returns the n×n identity. A negative n gives the empty matrix.
func Identity(n int) *Matrix {
	n = max(n, 0)
	m := &Matrix{rows: n, cols: n, data: make([]complex128, n*n)}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Outer returns |u⟩⟨v|.
func Outer(u, v []complex128) *Matrix {
	m := &Matrix{rows: len(u), cols: len(v), data: make([]complex128, len(u)*len(v))}
	for i, ui := range u {
		for j, vj := range v {
			m.data[i*m.cols+j] = ui * cmplx.Conj(vj)
		}
	}
	return m
}

// ProjectorOnto returns the rank-one projector |v̂⟩⟨v̂| with v̂ = v/‖v‖.
func ProjectorOnto(v []complex128) (*Matrix, error) {
	u, err := Normalize(v)
	if err != nil {
		return nil, fmt.Errorf("projector: %w", err)
	}
	return Outer(u, u), nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// IsSquare reports whether rows == cols.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns element (i, j).
func (m *Matrix) At(i, j int) complex128 {
	m.checkBounds(i, j)
	return m.data[i*m.cols+j]
}

// Set sets element (i, j).
func (m *Matrix) Set(i, j int, v complex128) {
	m.checkBounds(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) checkBounds(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("foam: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: Clone(m.data)}
}

// H returns the conjugate transpose.
func (m *Matrix) H() *Matrix {
	h := &Matrix{rows: m.cols, cols: m.rows, data: make([]complex128, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			h.data[j*h.cols+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return h
}

// MulVec returns m·v.
func (m *Matrix) MulVec(v []complex128) ([]complex128, error) {
	if len(v) != m.cols {
		return nil, fmt.Errorf("%w: %dx%d matrix times vector of length %d",
			ErrDimensionMismatch, m.rows, m.cols, len(v))
	}
	out := make([]complex128, m.rows)
	cblas128.Gemv(blas.NoTrans, 1, m.general(),
		cblas128.Vector{N: len(v), Inc: 1, Data: v},
		0, cblas128.Vector{N: len(out), Inc: 1, Data: out})
	return out, nil
}

// Mul returns m·b.
func (m *Matrix) Mul(b *Matrix) (*Matrix, error) {
	if m.cols != b.rows {
		return nil, fmt.Errorf("%w: %dx%d times %dx%d",
			ErrDimensionMismatch, m.rows, m.cols, b.rows, b.cols)
	}
	c := &Matrix{rows: m.rows, cols: b.cols, data: make([]complex128, m.rows*b.cols)}
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, m.general(), b.general(), 0, c.general())
	return c, nil
}

// ApproxEqual reports whether m and b have the same shape and every element
// of m − b has modulus at most atol.
func (m *Matrix) ApproxEqual(b *Matrix, atol float64) bool {
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}
	for k, v := range m.data {
		if cmplx.Abs(v-b.data[k]) > atol {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.4g", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

func (m *Matrix) general() cblas128.General {
	return cblas128.General{Rows: m.rows, Cols: m.cols, Stride: max(m.cols, 1), Data: m.data}
}
