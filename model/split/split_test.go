package split

import (
	"gotest.tools/assert"
	"testing"
)

func Test_Partition(t *testing.T) {
	for _, r := range []Ratios{
		{0.8, 0.1, 0},
		{0.5, 0.5, 1},
		{1, 0, 2},
		{0, 0, 3},
		{0.33, 0.33, 42},
	} {
		for _, n := range []int{0, 1, 7, 100, 1001} {
			train, val, test, err := Data(n, r)
			assert.NilError(t, err)
			assert.Assert(t, len(train) == int(float64(n)*r.Train))
			seen := make([]int, n)
			for _, s := range [][]int{train, val, test} {
				for _, i := range s {
					assert.Assert(t, i >= 0 && i < n)
					seen[i]++
				}
			}
			for i, c := range seen {
				assert.Assert(t, c == 1, "index %v seen %v times", i, c)
			}
		}
	}
}

func Test_SameSeed(t *testing.T) {
	a, _, _, err := Data(50, Ratios{0.6, 0.2, 7})
	assert.NilError(t, err)
	b, _, _, err := Data(50, Ratios{0.6, 0.2, 7})
	assert.NilError(t, err)
	assert.DeepEqual(t, a, b)
}

func Test_BadRatios(t *testing.T) {
	_, _, _, err := Data(10, Ratios{Train: 0.9, Val: 0.2})
	assert.ErrorContains(t, err, "invalid split ratios")
	_, _, _, err = Data(10, Ratios{Train: -0.1})
	assert.ErrorContains(t, err, "invalid split ratios")
}
