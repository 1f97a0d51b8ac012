package engine

// Matrix is a dense NxN matrix over cell pairs, stored row-major.
// Entry (i, j) describes the pair formed by cell i and cell j.
type Matrix struct {
	N    int
	Data []float64
}

func NewMatrix(n int) *Matrix {
	return &Matrix{N: n, Data: make([]float64, n*n)}
}

func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.N+j]
}

func (m *Matrix) Set(i, j int, v float64) {
	m.Data[i*m.N+j] = v
}

func (m *Matrix) Clone() *Matrix {
	c := NewMatrix(m.N)
	copy(c.Data, m.Data)
	return c
}

// BoolMatrix is a dense NxN boolean matrix, used as a pairwise
// interaction gate.
type BoolMatrix struct {
	N    int
	Data []bool
}

func NewBoolMatrix(n int) *BoolMatrix {
	return &BoolMatrix{N: n, Data: make([]bool, n*n)}
}

func (m *BoolMatrix) At(i, j int) bool {
	return m.Data[i*m.N+j]
}

func (m *BoolMatrix) Set(i, j int, v bool) {
	m.Data[i*m.N+j] = v
}
