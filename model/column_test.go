package model

import (
	"encoding/json"
	"gotest.tools/assert"
	"reflect"
	"testing"
)

func Test_MapFeatureType(t *testing.T) {
	for k, x := range map[reflect.Kind]Type{
		reflect.Float64: Float,
		reflect.Float32: Float,
		reflect.Int:     Int,
		reflect.Int64:   Int,
		reflect.Int32:   Int32,
	} {
		y, err := MapFeatureType(k)
		assert.NilError(t, err)
		assert.Assert(t, x == y, "%v", k)
	}
	_, err := MapFeatureType(reflect.String)
	assert.ErrorContains(t, err, "unsupported")
}

func Test_ColumnJson(t *testing.T) {
	b, err := json.Marshal(NumericColumn{"class", Int})
	assert.NilError(t, err)
	assert.Assert(t, string(b) == `{"name":"class","type":"int"}`)
	var c NumericColumn
	assert.NilError(t, json.Unmarshal([]byte(`{"name":"3","type":"float"}`), &c))
	assert.DeepEqual(t, c, NumericColumn{"3", Float})
	assert.Assert(t, json.Unmarshal([]byte(`{"type":"text"}`), &c) != nil)
}

func Test_ExampleNames(t *testing.T) {
	e := Example{Features: map[string]Feature{"1": FloatFeature(1), "0": FloatFeature(0), "class": IntFeature(1)}}
	assert.DeepEqual(t, e.Names(), []string{"0", "1", "class"})
}

func Test_FeatureColumns(t *testing.T) {
	cols := FeatureColumns(2, LabelColumn)
	assert.DeepEqual(t, cols, []NumericColumn{{"0", Float}, {"1", Float}, {LabelColumn, Int}})
	assert.DeepEqual(t, FeatureColumns(0, "y"), []NumericColumn{{"y", Int}})
}
