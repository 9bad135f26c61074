package model

import (
	"go-ml.dev/pkg/datasets/model/split"
	"golang.org/x/xerrors"
)

/*
ErrNoEmbeddings is returned by datasets without embedding (deep) columns
*/
var ErrNoEmbeddings = xerrors.New("no embeddings in this dataset")

/*
Serializer is a dataset adapter turning a raw dataset into training examples
*/
type Serializer interface {
	// Read loads the raw data file into features and labels
	Read() error
	// ValidationIndices splits rows into train/validation/test subsets and
	// normalizes features with statistics of train and validation rows
	ValidationIndices(split.Ratios) (train, val, test []int, err error)
	// Options returns the fitted state downstream consumers need
	Options() Params
	// DefineColumns returns the schema of produced examples
	DefineColumns() []NumericColumn
	// BuildExamples serializes one row
	BuildExamples(index int) ([]Example, error)
}

/*
Settings is static metadata of a dataset used when reading serialized examples
*/
type Settings interface {
	Tag() string
	SizePerInstance() float64
	TargetClass() string
	TargetType() Type
	NumClasses() int
	// WideCols returns raw numeric columns
	WideCols() []NumericColumn
	// DeepCols returns embedding columns or ErrNoEmbeddings
	DeepCols() ([]NumericColumn, error)
}

/*
Params is a set of named values produced by an adapter
*/
type Params map[string]interface{}

/*
Get value of the parameter by name if exists and dflt value otherwise
*/
func (p Params) Get(name string, dflt interface{}) interface{} {
	if v, ok := p[name]; ok {
		return v
	}
	return dflt
}
