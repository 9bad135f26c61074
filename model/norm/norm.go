/*
Package norm fits and applies z-score feature normalization
*/
package norm

import (
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"math"
)

/*
Stats is a per-column normalization fit
*/
type Stats struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
	Min  []float64 `json:"min"`
	Max  []float64 `json:"max"`
}

/*
Fit computes mean, population standard deviation, min and max of every column
over the given rows only. Zero deviation is stored as 1 so constant columns
normalize to 0.
*/
func Fit(m mat.Matrix, rows []int) (*Stats, error) {
	if len(rows) == 0 {
		return nil, zorros.Errorf("no rows to fit normalization")
	}
	r, c := m.Dims()
	s := &Stats{
		Mean: make([]float64, c),
		Std:  make([]float64, c),
		Min:  make([]float64, c),
		Max:  make([]float64, c),
	}
	col := make([]float64, len(rows))
	for j := 0; j < c; j++ {
		for k, i := range rows {
			if i < 0 || i >= r {
				return nil, zorros.Errorf("row index %v is out of range [0,%v)", i, r)
			}
			col[k] = m.At(i, j)
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = math.Sqrt(stat.Moment(2, col, nil))
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
		s.Min[j] = floats.Min(col)
		s.Max[j] = floats.Max(col)
	}
	return s, nil
}

func (s *Stats) check(m mat.Matrix) error {
	if _, c := m.Dims(); c != len(s.Mean) {
		return zorros.Errorf("matrix has %v columns but normalization is fitted for %v", c, len(s.Mean))
	}
	return nil
}

/*
Apply rewrites m in place as (x - mean) / std
*/
func (s *Stats) Apply(m *mat.Dense) error {
	if err := s.check(m); err != nil {
		return err
	}
	m.Apply(func(_, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Std[j]
	}, m)
	return nil
}

/*
Invert restores original values of a matrix normalized by Apply
*/
func (s *Stats) Invert(m *mat.Dense) error {
	if err := s.check(m); err != nil {
		return err
	}
	m.Apply(func(_, j int, v float64) float64 {
		return v*s.Std[j] + s.Mean[j]
	}, m)
	return nil
}
