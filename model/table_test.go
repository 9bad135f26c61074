package model

import (
	"go-ml.dev/pkg/datasets/model/norm"
	"go-ml.dev/pkg/datasets/model/split"
	"gonum.org/v1/gonum/stat"
	"gotest.tools/assert"
	"math"
	"testing"
)

func table(t *testing.T, n int) *Table {
	rows := make([][]float64, n)
	labels := make([]int, n)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(i * i), float64(i % 3), 7}
		labels[i] = i % 2
	}
	tb := &Table{}
	assert.NilError(t, tb.SetRows(rows, labels, 2))
	return tb
}

func Test_TableNormalize(t *testing.T) {
	tb := table(t, 100)
	train, val, test, err := tb.ValidationIndices(split.Ratios{Train: 0.7, Val: 0.15, Seed: 3})
	assert.NilError(t, err)
	assert.Assert(t, len(train)+len(val)+len(test) == tb.Len())
	fit := append(append([]int{}, train...), val...)
	col := make([]float64, len(fit))
	for j := 0; j < tb.Width(); j++ {
		for k, i := range fit {
			col[k] = tb.Features.At(i, j)
		}
		assert.Assert(t, math.Abs(stat.Mean(col, nil)) < 1e-9)
		if j < 3 {
			assert.Assert(t, math.Abs(math.Sqrt(stat.Moment(2, col, nil))-1) < 1e-9)
		}
	}
	s, ok := tb.Options()[NormalizationOption].(*norm.Stats)
	assert.Assert(t, ok)
	assert.Assert(t, len(s.Mean) == 4 && s.Mean[3] == 7)
}

func Test_TableExamples(t *testing.T) {
	tb := table(t, 10)
	cols := tb.DefineColumns()
	assert.DeepEqual(t, cols, []NumericColumn{
		{"0", Float}, {"1", Float}, {"2", Float}, {"3", Float}, {"class", Int},
	})
	for i := 0; i < tb.Len(); i++ {
		exs, err := tb.BuildExamples(i)
		assert.NilError(t, err)
		assert.Assert(t, len(exs) == 1)
		e := exs[0]
		assert.Assert(t, len(e.Features) == tb.Width()+1)
		assert.Assert(t, e.Features["0"].Floats[0] == float32(i))
		assert.DeepEqual(t, e.Features[LabelColumn].Ints, []int64{int64(i % 2)})
	}
	_, err := tb.BuildExamples(10)
	assert.ErrorContains(t, err, "out of range")
}

func Test_TableErrors(t *testing.T) {
	tb := &Table{}
	_, _, _, err := tb.ValidationIndices(split.Ratios{Train: 0.5})
	assert.ErrorContains(t, err, "not read")
	assert.ErrorContains(t, tb.SetRows(nil, nil, 2), "empty")
	assert.ErrorContains(t, tb.SetRows([][]float64{{1}, {1, 2}}, []int{0, 0}, 2), "row 1 has 2")
	assert.ErrorContains(t, tb.SetRows([][]float64{{1}}, []int{2}, 2), "out of range")
	assert.ErrorContains(t, tb.SetRows([][]float64{{1}}, []int{0, 1}, 2), "labels")
}
