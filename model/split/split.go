/*
Package split partitions row indices into train, validation and test subsets
*/
package split

import (
	"go-ml.dev/pkg/zorros"
	"math/rand"
	"sort"
)

/*
Ratios is a share of the rows given to the training and validation subsets,
the test subset gets the rest
*/
type Ratios struct {
	Train float64
	Val   float64
	Seed  int64 // seed of the shuffle, the same seed gives the same partition
}

/*
Data shuffles indices 0..n-1 and cuts them into three disjoint subsets
*/
func Data(n int, r Ratios) (train, val, test []int, err error) {
	if n < 0 {
		err = zorros.Errorf("negative number of rows %v", n)
		return
	}
	if r.Train < 0 || r.Val < 0 || r.Train+r.Val > 1 {
		err = zorros.Errorf("invalid split ratios train=%v val=%v", r.Train, r.Val)
		return
	}
	perm := rand.New(rand.NewSource(r.Seed)).Perm(n)
	nt := int(float64(n) * r.Train)
	nv := int(float64(n) * r.Val)
	if nt+nv > n {
		nv = n - nt
	}
	train = sorted(perm[:nt])
	val = sorted(perm[nt : nt+nv])
	test = sorted(perm[nt+nv:])
	return
}

func sorted(a []int) []int {
	r := append([]int{}, a...)
	sort.Ints(r)
	return r
}
