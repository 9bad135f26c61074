package main

import (
	"bytes"
	"fmt"
	"github.com/klauspost/compress/gzip"
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/datasets/sqlite"
	"gotest.tools/assert"
	"os"
	"path/filepath"
	"testing"
)

func Test_ConfigMerge(t *testing.T) {
	p := filepath.Join(t.TempDir(), "job.yaml")
	assert.NilError(t, os.WriteFile(p, []byte("dataset: titanic\ntrain: 0.6\nval: 0.2\nseed: 3\n"), 0644))
	c, err := LoadConfig(p)
	assert.NilError(t, err)
	assert.DeepEqual(t, *c, Config{Dataset: "titanic", Train: 0.6, Val: 0.2, Seed: 3})
	Merge(c, &Config{Dataset: "covertype", Train: 0.5, Out: "/x"}, map[string]bool{"train": true, "out": true})
	assert.DeepEqual(t, *c, Config{Dataset: "titanic", Train: 0.5, Val: 0.2, Seed: 3, Out: "/x"})
}

func Test_UnknownDataset(t *testing.T) {
	_, err := Run(&Config{Dataset: "iris"})
	assert.ErrorContains(t, err, "covertype, titanic")
}

func Test_RunSqlite(t *testing.T) {
	var csv bytes.Buffer
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&csv, "%d,%d,%d\n", i, i*i%11, i%7+1)
	}
	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	_, err := z.Write(csv.Bytes())
	assert.NilError(t, err)
	assert.NilError(t, z.Close())
	dir := t.TempDir()
	src := filepath.Join(dir, "covtype.data.gz")
	assert.NilError(t, os.WriteFile(src, buf.Bytes(), 0644))

	db := filepath.Join(dir, "covertype.db")
	r, err := Run(&Config{
		Dataset: "covertype",
		Data:    filepath.Join(dir, "covertype"),
		URL:     src,
		Sqlite:  db,
	})
	assert.NilError(t, err)
	assert.Assert(t, r.Counts[model.TrainSubset] == 24)

	md, err := model.ReadMetadata(filepath.Join(dir, "covertype.json"))
	assert.NilError(t, err)
	assert.Assert(t, len(md.Columns) == 3)

	s, err := sqlite.Open(db)
	assert.NilError(t, err)
	defer s.Close()
	n, err := s.Count(model.TestSubset)
	assert.NilError(t, err)
	assert.Assert(t, n == r.Counts[model.TestSubset])
}

func Test_Job(t *testing.T) {
	j := (&Config{Dataset: "titanic", Train: 0.7, Val: 0.2, Seed: 9}).job()
	assert.Assert(t, j.Verbose == nil)
	assert.Assert(t, j.Tag == "titanic" && j.TrainRatio == 0.7 && j.ValRatio == 0.2 && j.Seed == 9)
}
