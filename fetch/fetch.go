package fetch

import (
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// datasetName is the data file name without extension
func datasetName(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

func DataPath(folder, name string) string {
	return filepath.Join(folder, name)
}

/*
IsDownloaded returns whether data file has been downloaded
*/
func IsDownloaded(folder, name string) bool {
	st, err := os.Stat(DataPath(folder, name))
	return err == nil && st.Mode().IsRegular()
}

/*
Download copies the source into a temporary file and extracts it into dst,
dst appears only when extraction succeeds
*/
func Download(src Source, dst string, extract Extractor) error {
	tmp, err := os.CreateTemp("", "dataset-*")
	if err != nil {
		return zorros.Trace(err)
	}
	defer os.Remove(tmp.Name())
	err = func() error {
		defer tmp.Close()
		rd, err := src.Open()
		if err != nil {
			return err
		}
		defer rd.Close()
		if _, err = io.Copy(tmp, rd); err != nil {
			return zorros.Wrapf(err, "download failed: %v", err.Error())
		}
		return nil
	}()
	if err != nil {
		return err
	}
	wh, err := iokit.File(dst).Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if err = extract(tmp.Name(), wh); err != nil {
		return err
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
Ensure makes sure folder/name exists downloading it from url on demand,
returns the data file path
*/
func Ensure(folder, name, url string, extract Extractor) (string, error) {
	path := DataPath(folder, name)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return path, zorros.Trace(err)
	}
	if IsDownloaded(folder, name) {
		return path, nil
	}
	zlog.Info("Downloading " + datasetName(name) + " dataset ...")
	src, err := Remote(url)
	if err != nil {
		return path, err
	}
	if err = Download(src, path, extract); err != nil {
		return path, zorros.Wrapf(err, "failed to download %v: %v", url, err.Error())
	}
	return path, nil
}
