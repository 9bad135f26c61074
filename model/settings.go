package model

import (
	"encoding/json"
	"go-ml.dev/pkg/zorros"
	"os"
	"path/filepath"
)

const (
	// DefaultEmbeddingDimensions is used when DataSettings has no dimensions
	DefaultEmbeddingDimensions = 32
	// MetadataFile is the name of metadata written next to serialized subsets
	MetadataFile = "metadata.json"
)

/*
DataSettings is a common part of dataset settings
*/
type DataSettings struct {
	Location            string      // directory with serialized dataset
	ImageSpecs          interface{} // unused by numeric datasets
	EmbeddingDimensions int
	Quantizer           interface{} // unused by numeric datasets

	Columns []NumericColumn // schema of serialized examples
}

/*
Dimensions returns embeddings size
*/
func (d *DataSettings) Dimensions() int {
	if d.EmbeddingDimensions > 0 {
		return d.EmbeddingDimensions
	}
	return DefaultEmbeddingDimensions
}

/*
Load reads columns from the metadata stored at Location
*/
func (d *DataSettings) Load() error {
	md, err := ReadMetadata(filepath.Join(d.Location, MetadataFile))
	if err != nil {
		return err
	}
	d.Columns = md.Columns
	return nil
}

/*
Wide returns all columns except the target one
*/
func (d *DataSettings) Wide(target string) []NumericColumn {
	r := make([]NumericColumn, 0, len(d.Columns))
	for _, c := range d.Columns {
		if c.Name != target {
			r = append(r, c)
		}
	}
	return r
}

/*
Metadata describes a serialized dataset
*/
type Metadata struct {
	Tag     string          `json:"tag,omitempty"`
	Columns []NumericColumn `json:"columns"`
	Options Params          `json:"options,omitempty"`
	Counts  map[Subset]int  `json:"counts"`
}

func ReadMetadata(path string) (*Metadata, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zorros.Errorf("dataset metadata `%v` does not exist", path)
		}
		return nil, zorros.Trace(err)
	}
	md := &Metadata{}
	if err = json.Unmarshal(b, md); err != nil {
		return nil, zorros.Wrapf(err, "failed to decode metadata `%v`: %v", path, err.Error())
	}
	return md, nil
}
