package perm

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat/combin"
)

// MaxTableSize is the largest n for which Sn is materialised.
const MaxTableSize = 7

// MaxProductTableSize is the largest n with a precomputed product table.
const MaxProductTableSize = 5

var (
	snOnce  [MaxTableSize + 1]sync.Once
	snTable [MaxTableSize + 1][]Perm

	prodOnce  [MaxProductTableSize + 1]sync.Once
	prodTable [MaxProductTableSize + 1][][]int32
)

// Sn returns every permutation of n elements in lexicographic order, so that
// Sn(n)[i].Index() == i. The slice is shared and must not be modified.
func Sn(n int) ([]Perm, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	if n > MaxTableSize {
		return nil, fmt.Errorf("%w: Sn table limited to n <= %d", ErrSize, MaxTableSize)
	}
	snOnce[n].Do(func() {
		all := combin.Permutations(n, n)
		out := make([]Perm, len(all))
		for i, imgs := range all {
			out[i] = Of(imgs...)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
		snTable[n] = out
	})
	return snTable[n], nil
}

// MustSn is Sn for sizes known to be in range.
func MustSn(n int) []Perm {
	s, err := Sn(n)
	if err != nil {
		panic(err)
	}
	return s
}

// ComposeIndex returns the index of Sn[i]∘Sn[j] from a precomputed table.
func ComposeIndex(n, i, j int) (int, error) {
	if err := checkSize(n); err != nil {
		return 0, err
	}
	if n > MaxProductTableSize {
		return 0, fmt.Errorf("%w: product table limited to n <= %d", ErrSize, MaxProductTableSize)
	}
	size := int(factorials[n])
	if i < 0 || j < 0 || i >= size || j >= size {
		return 0, ErrIndex
	}
	prodOnce[n].Do(func() {
		sn := MustSn(n)
		tab := make([][]int32, size)
		for a := range sn {
			tab[a] = make([]int32, size)
			for b := range sn {
				tab[a][b] = int32(sn[a].Compose(sn[b]).Index())
			}
		}
		prodTable[n] = tab
	})
	return int(prodTable[n][i][j]), nil
}
