package fetch

import (
	"archive/tar"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/zorros"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

/*
Extractor writes the dataset file contained in a downloaded archive
*/
type Extractor func(archive string, w io.Writer) error

/*
ByExt chooses the extractor by the url suffix: .xz is Unxz, .gz and .tgz use
the given gzip extractor, anything else is copied as is
*/
func ByExt(rawurl string, gz Extractor) Extractor {
	p := rawurl
	if u, err := url.Parse(rawurl); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".xz":
		return Unxz
	case ".gz", ".tgz":
		return gz
	}
	return Plain
}

func withFile(path string, f func(io.Reader) error) error {
	r, err := os.Open(path)
	if err != nil {
		return zorros.Trace(err)
	}
	defer r.Close()
	return f(r)
}

func copyAll(w io.Writer, r io.Reader) error {
	if _, err := io.Copy(w, r); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

// Plain copies an uncompressed payload
func Plain(archive string, w io.Writer) error {
	return withFile(archive, func(r io.Reader) error {
		return copyAll(w, r)
	})
}

// Gunzip decompresses a gzip payload
func Gunzip(archive string, w io.Writer) error {
	return withFile(archive, func(r io.Reader) error {
		z, err := gzip.NewReader(r)
		if err != nil {
			return zorros.Wrapf(err, "bad gzip archive: %v", err.Error())
		}
		defer z.Close()
		return copyAll(w, z)
	})
}

// Unxz decompresses an xz payload
func Unxz(archive string, w io.Writer) error {
	return withFile(archive, func(r io.Reader) error {
		z, err := xz.NewReader(r)
		if err != nil {
			return zorros.Wrapf(err, "bad xz archive: %v", err.Error())
		}
		return copyAll(w, z)
	})
}

/*
TarGzMember extracts a gzipped tarball into a temporary directory and copies
the member file out of it
*/
func TarGzMember(member string) Extractor {
	return func(archive string, w io.Writer) error {
		dir, err := os.MkdirTemp("", "dataset-unzipped-*")
		if err != nil {
			return zorros.Trace(err)
		}
		defer os.RemoveAll(dir)
		if err = withFile(archive, func(r io.Reader) error { return untar(r, dir) }); err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.FromSlash(member))
		if err = withFile(path, func(r io.Reader) error { return copyAll(w, r) }); err != nil {
			return zorros.Wrapf(err, "archive does not contain `%v`: %v", member, err.Error())
		}
		return nil
	}
}

func untar(r io.Reader, dir string) error {
	z, err := gzip.NewReader(r)
	if err != nil {
		return zorros.Wrapf(err, "bad gzip archive: %v", err.Error())
	}
	defer z.Close()
	tr := tar.NewReader(z)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zorros.Wrapf(err, "bad tar archive: %v", err.Error())
		}
		path := filepath.Join(dir, filepath.FromSlash(h.Name))
		if path != dir && !strings.HasPrefix(path, dir+string(os.PathSeparator)) {
			return zorros.Errorf("tar entry `%v` is outside of extraction dir", h.Name)
		}
		switch h.Typeflag {
		case tar.TypeDir:
			if err = os.MkdirAll(path, 0755); err != nil {
				return zorros.Trace(err)
			}
		case tar.TypeReg:
			if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return zorros.Trace(err)
			}
			if err = writeFile(path, tr); err != nil {
				return err
			}
		}
	}
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return zorros.Trace(err)
	}
	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		return zorros.Trace(err)
	}
	if err = f.Close(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}
