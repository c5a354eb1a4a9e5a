package link

import "math/bits"

// maxBracketCrossings bounds the state sum, which visits 2ⁿ states.
const maxBracketCrossings = 24

// loopValue is δ = −A² − A⁻², the bracket of an extra circle.
var loopValue = NewLaurent(-2, -1, 0, 0, 0, -1)

// Bracket returns the Kauffman bracket in A, summed over all 2ⁿ
// smoothings. The zero-crossing unknot has bracket 1 and the empty link 0.
//
// At a crossing with PD tuple (a, b, c, d) the A-smoothing joins strands a
// with b and c with d; the B-smoothing joins a with d and b with c.
func (l *Link) Bracket() (Laurent, error) {
	n := l.Size()
	if n > maxBracketCrossings {
		return Laurent{}, linkErrorf("Bracket", ErrTooLarge, "%d crossings, at most %d", n, maxBracketCrossings)
	}
	if l.IsEmpty() {
		return Laurent{}, nil
	}
	// Strands are numbered by the passage they leave. ends[c] holds the
	// strands at positions a, b, c, d of crossing c.
	ends := make([][4]int, n)
	for c := 0; c < n; c++ {
		under, over := 2*c, 2*c+1
		ends[c][posUnderIn], ends[c][posUnderOut] = l.prev[under], under
		if l.sign[c] > 0 {
			ends[c][posB], ends[c][posD] = over, l.prev[over]
		} else {
			ends[c][posB], ends[c][posD] = l.prev[over], over
		}
	}

	// byLoops[k] counts the states with k+1 loops, as a polynomial in A.
	byLoops := make([]Laurent, n+l.Components())
	uf := make(unionFind, 2*n)
	for mask := uint64(0); mask < 1<<n; mask++ {
		uf.reset()
		for c := 0; c < n; c++ {
			e := ends[c]
			if mask&(1<<c) == 0 {
				uf.union(e[posUnderIn], e[posB])
				uf.union(e[posUnderOut], e[posD])
			} else {
				uf.union(e[posUnderIn], e[posD])
				uf.union(e[posB], e[posUnderOut])
			}
		}
		loops := uf.count() + l.unknots
		shift := n - 2*bits.OnesCount64(mask)
		byLoops[loops-1] = byLoops[loops-1].Add(NewLaurent(shift, 1))
	}

	var ans Laurent
	pow := NewLaurent(0, 1)
	for _, p := range byLoops {
		ans = ans.Add(p.Mul(pow))
		pow = pow.Mul(loopValue)
	}
	return ans, nil
}

// Jones returns the Jones polynomial as a Laurent polynomial in √t. It is
// (−A³)^(−w)·⟨L⟩ with A = t^(−1/4).
func (l *Link) Jones() (Laurent, error) {
	br, err := l.Bracket()
	if err != nil {
		return Laurent{}, err
	}
	w := l.Writhe()
	norm := NewLaurent(-3*w, 1)
	if w%2 != 0 {
		norm = NewLaurent(-3*w, -1)
	}
	v := br.Mul(norm)
	if v.IsZero() {
		return v, nil
	}
	// A^k becomes (√t)^(−k/2); every exponent here is even.
	c := make([]int64, 0, len(v.coeff))
	for e := v.MaxExp(); e >= v.MinExp(); e -= 2 {
		x, _ := v.Coeff(e).Int64()
		c = append(c, x)
	}
	return NewLaurent(-v.MaxExp()/2, c...), nil
}

// unionFind is a disjoint-set forest over strands.
type unionFind []int

func (uf unionFind) reset() {
	for i := range uf {
		uf[i] = i
	}
}

func (uf unionFind) find(x int) int {
	for uf[x] != x {
		uf[x] = uf[uf[x]]
		x = uf[x]
	}
	return x
}

func (uf unionFind) union(a, b int) {
	if ra, rb := uf.find(a), uf.find(b); ra != rb {
		uf[ra] = rb
	}
}

func (uf unionFind) count() int {
	k := 0
	for i := range uf {
		if uf[i] == i {
			k++
		}
	}
	return k
}
