package norm

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gotest.tools/assert"
	"math"
	"testing"
)

const eps = 1e-9

func sample() *mat.Dense {
	return mat.NewDense(6, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 30, 5,
		4, 40, 5,
		5, 50, 5,
		1000, -1000, 5,
	})
}

func Test_FitApply(t *testing.T) {
	m := sample()
	rows := []int{0, 1, 2, 3, 4}
	s, err := Fit(m, rows)
	assert.NilError(t, err)
	assert.Assert(t, s.Mean[0] == 3 && s.Mean[1] == 30)
	assert.Assert(t, math.Abs(s.Std[0]-math.Sqrt(2)) < eps)
	assert.Assert(t, s.Std[2] == 1)
	assert.Assert(t, s.Min[1] == 10 && s.Max[1] == 50)
	assert.NilError(t, s.Apply(m))
	col := make([]float64, len(rows))
	for j := 0; j < 2; j++ {
		for k, i := range rows {
			col[k] = m.At(i, j)
		}
		assert.Assert(t, math.Abs(stat.Mean(col, nil)) < eps)
		assert.Assert(t, math.Abs(stat.Moment(2, col, nil)-1) < eps)
	}
	for i := 0; i < 6; i++ {
		assert.Assert(t, m.At(i, 2) == 0)
	}
	// the excluded row does not affect the fit
	assert.Assert(t, m.At(5, 0) > 100)
}

func Test_Invert(t *testing.T) {
	m := sample()
	s, err := Fit(m, []int{0, 2, 4, 5})
	assert.NilError(t, err)
	assert.NilError(t, s.Apply(m))
	assert.NilError(t, s.Invert(m))
	assert.Assert(t, mat.EqualApprox(m, sample(), 1e-9))
}

func Test_Errors(t *testing.T) {
	m := sample()
	_, err := Fit(m, nil)
	assert.ErrorContains(t, err, "no rows")
	_, err = Fit(m, []int{6})
	assert.ErrorContains(t, err, "out of range")
	s, err := Fit(m, []int{0})
	assert.NilError(t, err)
	assert.ErrorContains(t, s.Apply(mat.NewDense(1, 2, nil)), "columns")
}
