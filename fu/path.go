package fu

import (
	"go-ml.dev/pkg/iokit"
	"path/filepath"
)

/*
DataPath resolves a dataset directory, relative names go to the go-ml cache
*/
func DataPath(s string) string {
	if filepath.IsAbs(s) {
		return s
	}
	return iokit.CacheFile(filepath.Join("go-ml", "Datasets", s))
}
