/*
Package titanic serializes Titanic dataset of the DELVE collection
*/
package titanic

import (
	"bufio"
	"go-ml.dev/pkg/datasets/fetch"
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/zorros"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	DataFileName = "titanic.dat"
	DataURL      = "ftp://ftp.cs.toronto.edu/pub/neuron/delve/data/tarfiles/titanic.tar.gz"
	NumClasses   = 2
	// ArchiveMember is the data file inside the DELVE tarball
	ArchiveMember = "titanic/Source/titanic.dat"
)

/*
Serialize is the Titanic dataset adapter
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
NewFrom downloads the DELVE tarball from url (a mirror or a local file), xz
compressed or plain mirrors hold titanic.dat itself
*/
func NewFrom(url, dataPath string) (*Serialize, error) {
	if _, err := fetch.Ensure(dataPath, DataFileName, url, fetch.ByExt(url, fetch.TarGzMember(ArchiveMember))); err != nil {
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
	rows, labels, err := readTable(f)
	if err != nil {
		return err
	}
	return s.SetRows(rows, labels, NumClasses)
}

// readTable reads whitespace separated integers, the last column is label
func readTable(r io.Reader) (rows [][]float64, labels []int, err error) {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		fs := strings.Fields(sc.Text())
		if len(fs) == 0 || strings.HasPrefix(fs[0], "#") {
			continue
		}
		if len(fs) < 2 {
			return nil, nil, zorros.Errorf("line %v has no features", line)
		}
		v := make([]int, len(fs))
		for i, x := range fs {
			if v[i], err = strconv.Atoi(x); err != nil {
				return nil, nil, zorros.Errorf("line %v column %v: bad integer `%v`", line, i, x)
			}
		}
		row := make([]float64, len(v)-1)
		for i, x := range v[:len(v)-1] {
			row[i] = float64(x)
		}
		rows = append(rows, row)
		labels = append(labels, v[len(v)-1])
	}
	if err = sc.Err(); err != nil {
		err = zorros.Trace(err)
	}
	return
}

/*
Settings is static metadata of serialized Titanic dataset
*/
type Settings struct {
	model.DataSettings
}

func NewSettings(location string) *Settings {
	return &Settings{model.DataSettings{Location: location}}
}

func (*Settings) Tag() string { return "titanic" }
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
