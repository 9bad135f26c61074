package model

import "sort"

/*
Feature is a list of values of one example column, either Floats or Ints
*/
type Feature struct {
	Floats []float32
	Ints   []int64
}

func FloatFeature(v ...float64) Feature {
	f := Feature{Floats: make([]float32, len(v))}
	for i, x := range v {
		f.Floats[i] = float32(x)
	}
	return f
}

func IntFeature(v ...int64) Feature {
	return Feature{Ints: append([]int64{}, v...)}
}

/*
Example is a training example, the Go side of tf.train.Example
*/
type Example struct {
	Features map[string]Feature
}

// Names returns feature names sorted
func (e Example) Names() []string {
	r := make([]string, 0, len(e.Features))
	for k := range e.Features {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
