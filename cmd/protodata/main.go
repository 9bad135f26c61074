/*
Command protodata downloads a dataset and serializes it into TFRecord files or
an SQLite database

	protodata -dataset covertype -out /tmp/covertype
	protodata -config covertype.yaml -sqlite /tmp/covertype.db
*/
package main

import (
	"flag"
	"fmt"
	"go-ml.dev/pkg/datasets/datasets/covertype"
	"go-ml.dev/pkg/datasets/datasets/titanic"
	"go-ml.dev/pkg/datasets/fu"
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/datasets/sqlite"
	"go-ml.dev/pkg/datasets/tfrecord"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

/*
Config is a serialization job, it can be read from YAML file
*/
type Config struct {
	Dataset string  `yaml:"dataset"`
	Data    string  `yaml:"data"`   // dataset directory, relative names go to the go-ml cache
	URL     string  `yaml:"url"`    // mirror of the dataset archive
	Out     string  `yaml:"out"`    // TFRecord output directory
	Sqlite  string  `yaml:"sqlite"` // SQLite output file, used instead of Out
	Train   float64 `yaml:"train"`
	Val     float64 `yaml:"val"`
	Seed    int64   `yaml:"seed"`
}

type dataset struct {
	url string
	new func(url, dataPath string) (model.Serializer, error)
}

var datasets = map[string]dataset{
	"covertype": {covertype.DataURL, func(url, p string) (model.Serializer, error) { return covertype.NewFrom(url, p) }},
	"titanic":   {titanic.DataURL, func(url, p string) (model.Serializer, error) { return titanic.NewFrom(url, p) }},
}

func names() string {
	r := make([]string, 0, len(datasets))
	for k := range datasets {
		r = append(r, k)
	}
	sort.Strings(r)
	return strings.Join(r, ", ")
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	c := &Config{}
	if err = yaml.Unmarshal(b, c); err != nil {
		return nil, zorros.Wrapf(err, "bad config `%v`: %v", path, err.Error())
	}
	return c, nil
}

// job has no Verbose hook, Serialization.Run logs the subset counts itself
func (c *Config) job() model.Serialization {
	return model.Serialization{
		TrainRatio: c.Train,
		ValRatio:   c.Val,
		Seed:       c.Seed,
		Tag:        c.Dataset,
	}
}

/*
Run fetches the dataset and serializes it
*/
func Run(c *Config) (*model.Report, error) {
	ds, ok := datasets[c.Dataset]
	if !ok {
		return nil, zorros.Errorf("unknown dataset `%v`, one of %v expected", c.Dataset, names())
	}
	dataPath := fu.DataPath(fu.Fnzs(c.Data, c.Dataset))
	s, err := ds.new(fu.Fnzs(c.URL, ds.url), dataPath)
	if err != nil {
		return nil, err
	}
	job := c.job()
	if c.Sqlite != "" {
		db, err := sqlite.Open(c.Sqlite)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		job.Storage = db
		job.MetadataFile = iokit.File(strings.TrimSuffix(c.Sqlite, filepath.Ext(c.Sqlite)) + ".json")
	} else {
		out := fu.Fnzs(c.Out, filepath.Join(dataPath, "serialized"))
		job.Storage = tfrecord.Directory(out)
		if err = os.MkdirAll(out, 0755); err != nil {
			return nil, zorros.Trace(err)
		}
		job.MetadataFile = iokit.File(filepath.Join(out, model.MetadataFile))
	}
	return job.Run(s)
}

func main() {
	c := &Config{}
	config := flag.String("config", "", "YAML config file, flags override its values")
	flag.StringVar(&c.Dataset, "dataset", "", "dataset to serialize: "+names())
	flag.StringVar(&c.Data, "data", "", "dataset directory")
	flag.StringVar(&c.URL, "url", "", "dataset archive mirror")
	flag.StringVar(&c.Out, "out", "", "TFRecord output directory")
	flag.StringVar(&c.Sqlite, "sqlite", "", "SQLite output file")
	flag.Float64Var(&c.Train, "train", 0, "training ratio")
	flag.Float64Var(&c.Val, "val", 0, "validation ratio")
	flag.Int64Var(&c.Seed, "seed", 0, "split seed")
	flag.Parse()

	if *config != "" {
		fc, err := LoadConfig(*config)
		if err != nil {
			fatal(err)
		}
		Merge(fc, c, setFlags())
		c = fc
	}
	r, err := Run(c)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%v: train %d, validation %d, test %d\n", c.Dataset,
		r.Counts[model.TrainSubset], r.Counts[model.ValidSubset], r.Counts[model.TestSubset])
}

func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

/*
Merge overrides config values with explicitly set flags
*/
func Merge(c, flags *Config, set map[string]bool) {
	if set["dataset"] {
		c.Dataset = flags.Dataset
	}
	if set["data"] {
		c.Data = flags.Data
	}
	if set["url"] {
		c.URL = flags.URL
	}
	if set["out"] {
		c.Out = flags.Out
	}
	if set["sqlite"] {
		c.Sqlite = flags.Sqlite
	}
	if set["train"] {
		c.Train = flags.Train
	}
	if set["val"] {
		c.Val = flags.Val
	}
	if set["seed"] {
		c.Seed = flags.Seed
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "protodata:", err)
	os.Exit(1)
}
