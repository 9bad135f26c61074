package model

import (
	"go-ml.dev/pkg/datasets/model/split"
	"go-ml.dev/pkg/iokit"
	"gotest.tools/assert"
	"path/filepath"
	"testing"
)

type fakeDataset struct {
	Table
	n int
}

func (f *fakeDataset) Read() error {
	rows := make([][]float64, f.n)
	labels := make([]int, f.n)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(2 * i)}
		labels[i] = i % 3
	}
	return f.SetRows(rows, labels, 3)
}

func Test_Serialization(t *testing.T) {
	dir := t.TempDir()
	st := MemStorage{}
	var log []string
	r, err := Serialization{
		TrainRatio:   0.6,
		ValRatio:     0.2,
		Tag:          "fake",
		Storage:      st,
		MetadataFile: iokit.File(filepath.Join(dir, MetadataFile)),
		Verbose:      func(s string) { log = append(log, s) },
	}.Run(&fakeDataset{n: 50})
	assert.NilError(t, err)
	assert.Assert(t, r.Counts[TrainSubset] == 30)
	assert.Assert(t, r.Counts[ValidSubset] == 10)
	assert.Assert(t, r.Counts[TestSubset] == 10)
	assert.Assert(t, len(log) == 3)
	total := 0
	for _, s := range Subsets {
		for _, e := range st[s] {
			assert.Assert(t, len(e.Features) == 3)
		}
		total += len(st[s])
	}
	assert.Assert(t, total == 50)

	md, err := ReadMetadata(filepath.Join(dir, MetadataFile))
	assert.NilError(t, err)
	assert.Assert(t, md.Tag == "fake")
	assert.DeepEqual(t, md.Columns, r.Columns)
	assert.Assert(t, md.Counts[TestSubset] == 10)
	_, ok := md.Options[NormalizationOption]
	assert.Assert(t, ok)

	ds := &DataSettings{Location: dir}
	assert.NilError(t, ds.Load())
	assert.DeepEqual(t, ds.Wide(LabelColumn), []NumericColumn{{"0", Float}, {"1", Float}})
	assert.Assert(t, ds.Dimensions() == DefaultEmbeddingDimensions)
}

func Test_SerializationDefaults(t *testing.T) {
	r := Serialization{}.ratios()
	assert.DeepEqual(t, r, split.Ratios{Train: DefaultTrainRatio, Val: DefaultValRatio})
	_, err := Serialization{}.Run(&fakeDataset{n: 5})
	assert.ErrorContains(t, err, "storage")
}

func Test_LuckyRunPanics(t *testing.T) {
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	Serialization{Storage: MemStorage{}, TrainRatio: 2}.LuckyRun(&fakeDataset{n: 5})
}

func Test_MissingMetadata(t *testing.T) {
	_, err := ReadMetadata(filepath.Join(t.TempDir(), MetadataFile))
	assert.ErrorContains(t, err, "does not exist")
}
