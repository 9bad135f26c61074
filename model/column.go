package model

import (
	"go-ml.dev/pkg/zorros"
	"reflect"
	"strconv"
)

/*
Type is a value type of a numeric column
*/
type Type int

const (
	Float Type = iota
	Int
	Int32
)

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Int32:
		return "int32"
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	switch string(b) {
	case "float":
		*t = Float
	case "int":
		*t = Int
	case "int32":
		*t = Int32
	default:
		return zorros.Errorf("unknown column type `%v`", string(b))
	}
	return nil
}

/*
MapFeatureType maps a Go kind to the column type used to store it
*/
func MapFeatureType(k reflect.Kind) (Type, error) {
	switch k {
	case reflect.Float32, reflect.Float64:
		return Float, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Bool:
		return Int, nil
	case reflect.Int32:
		return Int32, nil
	}
	return 0, zorros.Errorf("unsupported feature kind %v", k)
}

/*
NumericColumn is a column holding a single number per example
*/
type NumericColumn struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

/*
FeatureColumns returns names of float columns "0".."n-1" followed by the label
*/
func FeatureColumns(n int, label string) []NumericColumn {
	ft, _ := MapFeatureType(reflect.Float64)
	lt, _ := MapFeatureType(reflect.Int)
	cols := make([]NumericColumn, 0, n+1)
	for i := 0; i < n; i++ {
		cols = append(cols, NumericColumn{Name: strconv.Itoa(i), Type: ft})
	}
	return append(cols, NumericColumn{Name: label, Type: lt})
}
