/*
Package covertype serializes UCI Covertype dataset
https://archive.ics.uci.edu/ml/datasets/covertype
*/
package covertype

import (
	"encoding/csv"
	"go-ml.dev/pkg/datasets/fetch"
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/zorros"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	DataFileName = "covtype.dat"
	DataURL      = "https://archive.ics.uci.edu/ml/machine-learning-databases/covtype/covtype.data.gz"
	NumClasses   = 7
)

/*
Serialize is the Covertype dataset adapter
*/
type Serialize struct {
	model.Table
	DataPath string
}

/*
New downloads the dataset into dataPath on demand
*/
func New(dataPath string) (*Serialize, error) {
	return NewFrom(DataURL, dataPath)
}

/*
NewFrom downloads the dataset from url (a mirror or a local file), the file can
be gzipped, xz compressed or plain csv
*/
func NewFrom(url, dataPath string) (*Serialize, error) {
	if _, err := fetch.Ensure(dataPath, DataFileName, url, fetch.ByExt(url, fetch.Gunzip)); err != nil {
		return nil, err
	}
	return &Serialize{DataPath: dataPath}, nil
}

func IsDownloaded(folder string) bool {
	return fetch.IsDownloaded(folder, DataFileName)
}

func (s *Serialize) Read() error {
	f, err := os.Open(fetch.DataPath(s.DataPath, DataFileName))
	if err != nil {
		return zorros.Trace(err)
	}
	defer f.Close()
	rows, raw, err := readCsv(f)
	if err != nil {
		return err
	}
	labels, err := categories(raw, NumClasses)
	if err != nil {
		return err
	}
	return s.SetRows(rows, labels, NumClasses)
}

func readCsv(r io.Reader) (rows [][]float64, labels []int, err error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	for line := 1; ; line++ {
		rec, e := cr.Read()
		if e == io.EOF {
			return
		}
		if e != nil {
			return nil, nil, zorros.Wrapf(e, "bad csv: %v", e.Error())
		}
		if len(rec) < 2 {
			return nil, nil, zorros.Errorf("line %v has no features", line)
		}
		row := make([]float64, len(rec)-1)
		for i, v := range rec[:len(rec)-1] {
			if row[i], e = strconv.ParseFloat(strings.TrimSpace(v), 64); e != nil {
				return nil, nil, zorros.Errorf("line %v column %v: bad number `%v`", line, i, v)
			}
		}
		l, e := strconv.Atoi(strings.TrimSpace(rec[len(rec)-1]))
		if e != nil {
			return nil, nil, zorros.Errorf("line %v: bad label `%v`", line, rec[len(rec)-1])
		}
		rows = append(rows, row)
		labels = append(labels, l)
	}
}

/*
categories maps sorted distinct label values onto 0..k-1
*/
func categories(raw []int, max int) ([]int, error) {
	index := map[int]int{}
	for _, v := range raw {
		index[v] = 0
	}
	if len(index) > max {
		return nil, zorros.Errorf("dataset has %v distinct labels, at most %v expected", len(index), max)
	}
	values := make([]int, 0, len(index))
	for v := range index {
		values = append(values, v)
	}
	sort.Ints(values)
	for i, v := range values {
		index[v] = i
	}
	labels := make([]int, len(raw))
	for i, v := range raw {
		labels[i] = index[v]
	}
	return labels, nil
}

/*
Settings is static metadata of serialized Covertype dataset
*/
type Settings struct {
	model.DataSettings
}

func NewSettings(location string) *Settings {
	return &Settings{model.DataSettings{Location: location}}
}

func (*Settings) Tag() string { return "covertype" }
func (*Settings) SizePerInstance() float64 { return 0.5 }
func (*Settings) TargetClass() string { return model.LabelColumn }
func (*Settings) TargetType() model.Type { return model.Int32 }
func (*Settings) NumClasses() int { return NumClasses }

func (s *Settings) WideCols() []model.NumericColumn {
	return s.Wide(s.TargetClass())
}

func (*Settings) DeepCols() ([]model.NumericColumn, error) {
	return nil, model.ErrNoEmbeddings
}
