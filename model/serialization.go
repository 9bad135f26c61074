package model

import (
	"encoding/json"
	"fmt"
	"go-ml.dev/pkg/datasets/model/split"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
)

const (
	DefaultTrainRatio = 0.8
	DefaultValRatio   = 0.1
)

/*
Serialization is the default driver turning a dataset adapter into stored examples
*/
type Serialization struct {
	TrainRatio   float64      // share of training rows, both ratios zero means defaults
	ValRatio     float64      // share of validation rows
	Seed         int64        // random seed of the split
	Tag          string       // dataset tag written to metadata
	Storage      Storage      // where examples go
	MetadataFile iokit.Output // optional file to store metadata
	Verbose      func(string) // optional progress function
}

/*
Report is a serialization report
*/
type Report struct {
	Columns []NumericColumn
	Options Params
	Counts  map[Subset]int
}

func (s Serialization) ratios() split.Ratios {
	r := split.Ratios{Train: s.TrainRatio, Val: s.ValRatio, Seed: s.Seed}
	if r.Train == 0 && r.Val == 0 {
		r.Train, r.Val = DefaultTrainRatio, DefaultValRatio
	}
	return r
}

func (s Serialization) verbose(f string, a ...interface{}) {
	if s.Verbose != nil {
		s.Verbose(fmt.Sprintf(f, a...))
	}
}

/*
Run reads the dataset, splits and normalizes it and writes examples of every subset
*/
func (s Serialization) Run(ds Serializer) (report *Report, err error) {
	if s.Storage == nil {
		return nil, zorros.Errorf("serialization storage is not specified")
	}
	if err = ds.Read(); err != nil {
		return nil, zorros.Wrapf(err, "failed to read dataset: %v", err.Error())
	}
	train, val, test, err := ds.ValidationIndices(s.ratios())
	if err != nil {
		return nil, err
	}
	report = &Report{
		Columns: ds.DefineColumns(),
		Options: ds.Options(),
		Counts:  map[Subset]int{},
	}
	for i, rows := range [][]int{train, val, test} {
		subset := Subsets[i]
		n, e := s.write(ds, subset, rows)
		if e != nil {
			return nil, zorros.Wrapf(e, "failed to serialize %v subset: %v", subset, e.Error())
		}
		report.Counts[subset] = n
		s.verbose("[%v] %d examples", subset, n)
	}
	zlog.Info(fmt.Sprintf("serialized %v: train %d, validation %d, test %d",
		s.Tag, report.Counts[TrainSubset], report.Counts[ValidSubset], report.Counts[TestSubset]))
	if s.MetadataFile != nil {
		if err = s.writeMetadata(report); err != nil {
			return nil, err
		}
	}
	return
}

/*
LuckyRun runs serialization and trows any occurred errors as a panic
*/
func (s Serialization) LuckyRun(ds Serializer) *Report {
	r, err := s.Run(ds)
	if err != nil {
		panic(zorros.Panic(err))
	}
	return r
}

func (s Serialization) write(ds Serializer, subset Subset, rows []int) (n int, err error) {
	sink, err := s.Storage.Create(subset)
	if err != nil {
		return
	}
	defer sink.End()
	for _, i := range rows {
		exs, e := ds.BuildExamples(i)
		if e != nil {
			return 0, e
		}
		for _, x := range exs {
			if err = sink.Write(x); err != nil {
				return 0, err
			}
			n++
		}
	}
	err = sink.Commit()
	return
}

func (s Serialization) writeMetadata(report *Report) error {
	wh, err := s.MetadataFile.Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	enc := json.NewEncoder(wh)
	enc.SetIndent("", "  ")
	md := Metadata{Tag: s.Tag, Columns: report.Columns, Options: report.Options, Counts: report.Counts}
	if err = enc.Encode(md); err != nil {
		return zorros.Wrapf(err, "failed to encode metadata: %v", err.Error())
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}
