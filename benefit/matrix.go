package benefit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrEmptyMatrix is returned when an input has no rows or no columns.
	ErrEmptyMatrix = errors.New("matrix has no rows or columns")

	// ErrShapeMismatch is returned when an input is ragged or differs in
	// shape from the other inputs.
	ErrShapeMismatch = errors.New("matrix shape mismatch")

	// ErrNonFinite is returned when a benefit value is NaN or infinite,
	// typically because finite inputs overflowed when multiplied.
	ErrNonFinite = errors.New("benefit value is not finite")
)

// Inputs holds the three m×n input matrices and the two weighting scalars.
type Inputs struct {
	Impact           [][]float64
	Capability       [][]float64
	Preference       [][]float64
	CapabilityScalar float64
	PreferenceScalar float64
}

// Matrix is a computed benefit matrix. It is immutable once built.
type Matrix struct {
	dense *mat.Dense
	min   float64
	max   float64
}

// Calculate builds the benefit matrix from inputs.
//
// Parameters:
//   - in: Input matrices and scalars
//
// Returns:
//   - *Matrix: Benefit matrix with its min and max
//   - error: ErrEmptyMatrix or ErrShapeMismatch for malformed input, or
//     ErrNonFinite when a product overflows
//
// Example:
//
//	b, err := benefit.Calculate(benefit.Inputs{
//	    Impact:           [][]float64{{1, 1}, {1, 1}},
//	    Capability:       [][]float64{{5, 1}, {1, 5}},
//	    Preference:       [][]float64{{0, 0}, {0, 0}},
//	    CapabilityScalar: 1,
//	    PreferenceScalar: 1,
//	})
//	fmt.Println(b.At(0, 0)) // 5
func Calculate(in Inputs) (*Matrix, error) {
	rows, cols, err := Shape(in.Impact)
	if err != nil {
		return nil, fmt.Errorf("impact: %w", err)
	}
	if err := checkShape(in.Capability, rows, cols); err != nil {
		return nil, fmt.Errorf("capability: %w", err)
	}
	if err := checkShape(in.Preference, rows, cols); err != nil {
		return nil, fmt.Errorf("preference: %w", err)
	}

	impact := toDense(in.Impact, rows, cols)
	capability := toDense(in.Capability, rows, cols)
	preference := toDense(in.Preference, rows, cols)

	var weighted, scaledPref mat.Dense
	weighted.Scale(in.CapabilityScalar, capability)
	scaledPref.Scale(in.PreferenceScalar, preference)
	weighted.Add(&weighted, &scaledPref)

	out := mat.NewDense(rows, cols, nil)
	out.MulElem(impact, &weighted)

	return newMatrix(out)
}

// FromRows wraps an already computed benefit matrix.
//
// Parameters:
//   - rows: m×n benefit values
//
// Returns:
//   - *Matrix: Matrix holding a copy of rows
//   - error: ErrEmptyMatrix, ErrShapeMismatch or ErrNonFinite
func FromRows(rows [][]float64) (*Matrix, error) {
	r, c, err := Shape(rows)
	if err != nil {
		return nil, err
	}

	return newMatrix(toDense(rows, r, c))
}

func newMatrix(dense *mat.Dense) (*Matrix, error) {
	data := dense.RawMatrix().Data
	if floats.HasNaN(data) {
		return nil, ErrNonFinite
	}
	lo, hi := floats.Min(data), floats.Max(data)
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: range [%v, %v]", ErrNonFinite, lo, hi)
	}

	return &Matrix{dense: dense, min: lo, max: hi}, nil
}

// Shape returns the dimensions of a rectangular matrix.
//
// Returns:
//   - int: Row count
//   - int: Column count
//   - error: ErrEmptyMatrix or ErrShapeMismatch
func Shape(rows [][]float64) (int, int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, 0, ErrEmptyMatrix
	}
	cols := len(rows[0])
	for i, row := range rows {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), cols)
		}
	}

	return len(rows), cols, nil
}

func checkShape(rows [][]float64, wantRows, wantCols int) error {
	r, c, err := Shape(rows)
	if err != nil {
		return err
	}
	if r != wantRows || c != wantCols {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrShapeMismatch, r, c, wantRows, wantCols)
	}

	return nil
}

func toDense(rows [][]float64, r, c int) *mat.Dense {
	data := make([]float64, 0, r*c)
	for _, row := range rows {
		data = append(data, row...)
	}

	return mat.NewDense(r, c, data)
}

// Rows returns the number of teams.
func (m *Matrix) Rows() int {
	r, _ := m.dense.Dims()
	return r
}

// Cols returns the number of projects.
func (m *Matrix) Cols() int {
	_, c := m.dense.Dims()
	return c
}

// At returns b[i][j] using 0-based indices.
func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Min returns the smallest benefit value.
func (m *Matrix) Min() float64 {
	return m.min
}

// Max returns the largest benefit value.
func (m *Matrix) Max() float64 {
	return m.max
}

// Raw returns a copy of the matrix as row slices.
func (m *Matrix) Raw() [][]float64 {
	r := m.Rows()
	out := make([][]float64, r)
	for i := range r {
		out[i] = mat.Row(nil, i, m.dense)
	}

	return out
}

// Normalized rescales every value to [0, 1] using the matrix min and max.
//
// When every value is equal the span is zero; positive values then map to 1
// and the rest to 0.
func (m *Matrix) Normalized() [][]float64 {
	return Normalize(m.Raw(), m.min, m.max)
}

// Normalize rescales rows to [0, 1] using lo and hi.
func Normalize(rows [][]float64, lo, hi float64) [][]float64 {
	span := hi - lo
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			switch {
			case span > 0:
				out[i][j] = (v - lo) / span
			case v > 0:
				out[i][j] = 1
			default:
				out[i][j] = 0
			}
		}
	}

	return out
}

// Sum returns Σ b[i][j] over 0-based index pairs.
func (m *Matrix) Sum(cells [][2]int) float64 {
	total := 0.0
	for _, c := range cells {
		total += m.dense.At(c[0], c[1])
	}

	return total
}
