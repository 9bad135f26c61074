/*
Package tfrecord writes and reads tf.train.Example records in TFRecord files
*/
package tfrecord

import (
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/zorros"
	"google.golang.org/protobuf/encoding/protowire"
	"math"
)

// field numbers of tensorflow/core/example/{example,feature}.proto
const (
	exampleFeatures  protowire.Number = 1 // Example.features
	featuresFeature  protowire.Number = 1 // Features.feature, a map
	mapKey           protowire.Number = 1
	mapValue         protowire.Number = 2
	featureBytesList protowire.Number = 1
	featureFloatList protowire.Number = 2
	featureInt64List protowire.Number = 3
	listValue        protowire.Number = 1
)

/*
MarshalExample encodes an example as tf.train.Example protobuf, feature keys are
written sorted so equal examples give equal bytes
*/
func MarshalExample(e model.Example) []byte {
	var features []byte
	for _, name := range e.Names() {
		f := e.Features[name]
		var entry []byte
		entry = protowire.AppendTag(entry, mapKey, protowire.BytesType)
		entry = protowire.AppendString(entry, name)
		entry = protowire.AppendTag(entry, mapValue, protowire.BytesType)
		entry = protowire.AppendBytes(entry, marshalFeature(f))
		features = protowire.AppendTag(features, featuresFeature, protowire.BytesType)
		features = protowire.AppendBytes(features, entry)
	}
	var b []byte
	b = protowire.AppendTag(b, exampleFeatures, protowire.BytesType)
	return protowire.AppendBytes(b, features)
}

func marshalFeature(f model.Feature) []byte {
	kind := featureFloatList
	var packed []byte
	if f.Ints != nil {
		kind = featureInt64List
		for _, v := range f.Ints {
			packed = protowire.AppendVarint(packed, uint64(v))
		}
	} else {
		for _, v := range f.Floats {
			packed = protowire.AppendFixed32(packed, math.Float32bits(v))
		}
	}
	var list []byte
	if len(packed) > 0 {
		list = protowire.AppendTag(list, listValue, protowire.BytesType)
		list = protowire.AppendBytes(list, packed)
	}
	var b []byte
	b = protowire.AppendTag(b, kind, protowire.BytesType)
	return protowire.AppendBytes(b, list)
}

// fields calls f for every field of the message
func fields(b []byte, f func(protowire.Number, protowire.Type, []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return protowire.ParseError(m)
		}
		if err := f(num, typ, b[:m]); err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

func bytesValue(typ protowire.Type, b []byte) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, zorros.Errorf("unexpected wire type %v", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	return v, nil
}

/*
UnmarshalExample decodes a tf.train.Example with float and int64 features
*/
func UnmarshalExample(b []byte) (e model.Example, err error) {
	e.Features = map[string]model.Feature{}
	err = fields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		if num != exampleFeatures {
			return nil
		}
		features, err := bytesValue(typ, v)
		if err != nil {
			return err
		}
		return fields(features, func(num protowire.Number, typ protowire.Type, v []byte) error {
			if num != featuresFeature {
				return nil
			}
			entry, err := bytesValue(typ, v)
			if err != nil {
				return err
			}
			name, f, err := unmarshalEntry(entry)
			if err != nil {
				return err
			}
			e.Features[name] = f
			return nil
		})
	})
	if err != nil {
		err = zorros.Wrapf(err, "malformed example: %v", err.Error())
	}
	return
}

func unmarshalEntry(b []byte) (name string, f model.Feature, err error) {
	err = fields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		x, err := bytesValue(typ, v)
		if err != nil {
			return err
		}
		switch num {
		case mapKey:
			name = string(x)
		case mapValue:
			f, err = unmarshalFeature(x)
		}
		return err
	})
	return
}

func unmarshalFeature(b []byte) (f model.Feature, err error) {
	err = fields(b, func(num protowire.Number, typ protowire.Type, v []byte) error {
		list, err := bytesValue(typ, v)
		if err != nil {
			return err
		}
		switch num {
		case featureFloatList:
			f.Floats = []float32{}
			return fields(list, func(_ protowire.Number, typ protowire.Type, v []byte) error {
				return appendFloats(&f, typ, v)
			})
		case featureInt64List:
			f.Ints = []int64{}
			return fields(list, func(_ protowire.Number, typ protowire.Type, v []byte) error {
				return appendInts(&f, typ, v)
			})
		case featureBytesList:
			return zorros.Errorf("bytes features are not supported")
		}
		return nil
	})
	return
}

func appendFloats(f *model.Feature, typ protowire.Type, v []byte) error {
	switch typ {
	case protowire.Fixed32Type:
		x, _ := protowire.ConsumeFixed32(v)
		f.Floats = append(f.Floats, math.Float32frombits(x))
	case protowire.BytesType:
		packed, err := bytesValue(typ, v)
		if err != nil {
			return err
		}
		for len(packed) > 0 {
			x, n := protowire.ConsumeFixed32(packed)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.Floats = append(f.Floats, math.Float32frombits(x))
			packed = packed[n:]
		}
	default:
		return zorros.Errorf("unexpected wire type %v of float list", typ)
	}
	return nil
}

func appendInts(f *model.Feature, typ protowire.Type, v []byte) error {
	switch typ {
	case protowire.VarintType:
		x, _ := protowire.ConsumeVarint(v)
		f.Ints = append(f.Ints, int64(x))
	case protowire.BytesType:
		packed, err := bytesValue(typ, v)
		if err != nil {
			return err
		}
		for len(packed) > 0 {
			x, n := protowire.ConsumeVarint(packed)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.Ints = append(f.Ints, int64(x))
			packed = packed[n:]
		}
	default:
		return zorros.Errorf("unexpected wire type %v of int64 list", typ)
	}
	return nil
}
