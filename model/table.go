package model

import (
	"go-ml.dev/pkg/datasets/fu"
	"go-ml.dev/pkg/datasets/model/norm"
	"go-ml.dev/pkg/datasets/model/split"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
	"strconv"
)

const (
	// LabelColumn is the name of the label feature in produced examples
	LabelColumn = "class"
	// NormalizationOption is the Options key of fitted normalization
	NormalizationOption = "feature_normalization"
)

/*
Table is a numeric dataset loaded into memory. Dataset adapters embed it and
implement Read filling Features and Labels.
*/
type Table struct {
	Features *mat.Dense
	Labels   []int
	Norm     *norm.Stats
}

/*
SetRows fills the table from rows of features and their labels
*/
func (t *Table) SetRows(rows [][]float64, labels []int, classes int) error {
	if len(rows) == 0 {
		return zorros.Errorf("dataset is empty")
	}
	if len(rows) != len(labels) {
		return zorros.Errorf("%v rows but %v labels", len(rows), len(labels))
	}
	width := len(rows[0])
	if width == 0 {
		return zorros.Errorf("dataset has no feature columns")
	}
	for i, r := range rows {
		if len(r) != width {
			return zorros.Errorf("row %v has %v features, expected %v", i, len(r), width)
		}
	}
	for i, l := range labels {
		if l < 0 || l >= classes {
			return zorros.Errorf("row %v label %v is out of range [0,%v)", i, l, classes)
		}
	}
	t.Features = mat.NewDense(len(rows), width, fu.Flatnr(rows))
	t.Labels = labels
	t.Norm = nil
	return nil
}

func (t *Table) Len() int {
	if t.Features == nil {
		return 0
	}
	r, _ := t.Features.Dims()
	return r
}

func (t *Table) Width() int {
	if t.Features == nil {
		return 0
	}
	_, c := t.Features.Dims()
	return c
}

/*
ValidationIndices separates rows into training, validation and test subsets and
normalizes the columns by z-scores fitted on training and validation rows
*/
func (t *Table) ValidationIndices(r split.Ratios) (train, val, test []int, err error) {
	if t.Features == nil {
		err = zorros.Errorf("dataset is not read")
		return
	}
	if train, val, test, err = split.Data(t.Len(), r); err != nil {
		return
	}
	fit := append(append(make([]int, 0, len(train)+len(val)), train...), val...)
	if t.Norm, err = norm.Fit(t.Features, fit); err != nil {
		err = zorros.Wrapf(err, "failed to fit normalization: %v", err.Error())
		return
	}
	err = t.Norm.Apply(t.Features)
	return
}

func (t *Table) Options() Params {
	return Params{NormalizationOption: t.Norm}
}

func (t *Table) DefineColumns() []NumericColumn {
	return FeatureColumns(t.Width(), LabelColumn)
}

/*
BuildExamples returns one example with a float feature per column and the label
*/
func (t *Table) BuildExamples(index int) ([]Example, error) {
	if index < 0 || index >= t.Len() {
		return nil, zorros.Errorf("row index %v is out of range [0,%v)", index, t.Len())
	}
	row := t.Features.RawRowView(index)
	f := make(map[string]Feature, len(row)+1)
	for i, v := range row {
		f[strconv.Itoa(i)] = FloatFeature(v)
	}
	f[LabelColumn] = IntFeature(int64(t.Labels[index]))
	return []Example{{Features: f}}, nil
}
