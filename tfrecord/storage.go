package tfrecord

import (
	"go-ml.dev/pkg/datasets/model"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"io"
	"os"
	"path/filepath"
)

// Ext is an extension of subset files
const Ext = ".tfrecord"

/*
Directory is a storage keeping every subset in dir/<subset>.tfrecord
*/
type Directory string

func (d Directory) Path(s model.Subset) string {
	return filepath.Join(string(d), string(s)+Ext)
}

func (d Directory) Create(s model.Subset) (model.Sink, error) {
	if err := os.MkdirAll(string(d), 0755); err != nil {
		return nil, zorros.Trace(err)
	}
	wh, err := iokit.File(d.Path(s)).Create()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return &sink{wh: wh, w: NewWriter(wh)}, nil
}

/*
Open returns reader of the subset records
*/
func (d Directory) Open(s model.Subset) (*os.File, error) {
	f, err := os.Open(d.Path(s))
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return f, nil
}

// whole is a file being written by iokit, it appears on Commit only
type whole interface {
	io.Writer
	Commit() error
	End()
}

type sink struct {
	wh whole
	w  *Writer
}

func (s *sink) Write(e model.Example) error {
	return s.w.Write(MarshalExample(e))
}

func (s *sink) Commit() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	if err := s.wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func (s *sink) End() {
	s.wh.End()
}
