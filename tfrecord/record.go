package tfrecord

import (
	"bufio"
	"encoding/binary"
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/zorros"
	"hash/crc32"
	"io"
	"math"
)

var crc32c = crc32.MakeTable(crc32.Castagnoli)

const maskDelta = 0xa282ead8

// MaxRecordLen bounds the length a record header may declare
const MaxRecordLen = math.MaxInt32

func maskedCrc(b []byte) uint32 {
	c := crc32.Checksum(b, crc32c)
	return ((c >> 15) | (c << 17)) + maskDelta
}

/*
Writer frames records as TFRecord:
uint64 length, uint32 masked crc of length, data, uint32 masked crc of data
*/
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

func (w *Writer) Write(data []byte) error {
	var hdr [12]byte
	binary.LittleEndian.PutUint64(hdr[:8], uint64(len(data)))
	binary.LittleEndian.PutUint32(hdr[8:], maskedCrc(hdr[:8]))
	var ftr [4]byte
	binary.LittleEndian.PutUint32(ftr[:], maskedCrc(data))
	for _, b := range [][]byte{hdr[:], data, ftr[:]} {
		if _, err := w.w.Write(b); err != nil {
			return zorros.Trace(err)
		}
	}
	return nil
}

func (w *Writer) Flush() error {
	if err := w.w.Flush(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
Reader reads TFRecord framed records verifying checksums
*/
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{bufio.NewReader(r)}
}

/*
Next returns the next record or io.EOF at the end of stream
*/
func (r *Reader) Next() ([]byte, error) {
	var hdr [12]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, zorros.Wrapf(err, "truncated record header: %v", err.Error())
	}
	if binary.LittleEndian.Uint32(hdr[8:]) != maskedCrc(hdr[:8]) {
		return nil, zorros.Errorf("corrupted record length")
	}
	length := binary.LittleEndian.Uint64(hdr[:8])
	if length > MaxRecordLen {
		return nil, zorros.Errorf("record length %v is too large", length)
	}
	data := make([]byte, length+4)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, zorros.Wrapf(err, "truncated record: %v", err.Error())
	}
	n := len(data) - 4
	if binary.LittleEndian.Uint32(data[n:]) != maskedCrc(data[:n]) {
		return nil, zorros.Errorf("corrupted record data")
	}
	return data[:n], nil
}

/*
ReadExamples decodes all examples of the stream
*/
func ReadExamples(rd io.Reader) ([]model.Example, error) {
	r := NewReader(rd)
	var exs []model.Example
	for {
		b, err := r.Next()
		if err == io.EOF {
			return exs, nil
		}
		if err != nil {
			return nil, err
		}
		e, err := UnmarshalExample(b)
		if err != nil {
			return nil, err
		}
		exs = append(exs, e)
	}
}
