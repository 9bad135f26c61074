package fu

import (
	"gotest.tools/assert"
	"path/filepath"
	"testing"
)

func Test_Flatnr(t *testing.T) {
	r := Flatnr([][]float64{{1, 2}, {3}, {}, {4, 5}})
	assert.DeepEqual(t, r, []float64{1, 2, 3, 4, 5})
}

func Test_Fnzs(t *testing.T) {
	assert.Assert(t, Fnzs("", "x", "y") == "x")
	assert.Assert(t, Fnzs() == "")
}

func Test_DataPathAbs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "covertype")
	assert.Assert(t, DataPath(p) == p)
}
