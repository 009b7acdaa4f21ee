package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hungtranvg62/mlproject/apperr"
)

// StandardScaler rescales matrix columns to unit variance using
// statistics learned at fit time. WithMean additionally centers each
// column on zero; it stays off for one-hot output, where centering
// would densify the sparse indicators.
type StandardScaler struct {
	WithMean bool
	Means    []float64
	Stds     []float64
	Fitted   bool
}

func NewStandardScaler(withMean bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean}
}

// Fit learns the per-column mean and population standard deviation.
// Zero-variance columns scale by 1.
func (s *StandardScaler) Fit(m *mat.Dense) error {
	rows, cols := m.Dims()
	if rows == 0 {
		return apperr.New(apperr.KindTransform, "scaler: empty input matrix")
	}
	means := make([]float64, cols)
	stds := make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += m.At(i, j)
		}
		mean := sum / float64(rows)

		variance := 0.0
		for i := 0; i < rows; i++ {
			diff := m.At(i, j) - mean
			variance += diff * diff
		}
		variance /= float64(rows)

		means[j] = mean
		stds[j] = math.Sqrt(variance)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	s.Means = means
	s.Stds = stds
	s.Fitted = true
	return nil
}

// Scale applies the fitted statistics to m and returns a new matrix.
func (s *StandardScaler) Scale(m *mat.Dense) (*mat.Dense, error) {
	if !s.Fitted {
		return nil, apperr.New(apperr.KindTransform, "scaler used before fit")
	}
	rows, cols := m.Dims()
	if cols != len(s.Stds) {
		return nil, apperr.New(apperr.KindTransform, "scaler fitted on %d columns, got %d", len(s.Stds), cols)
	}
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if s.WithMean {
				v -= s.Means[j]
			}
			out.Set(i, j, v/s.Stds[j])
		}
	}
	return out, nil
}
