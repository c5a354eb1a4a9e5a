package link

// Positions within a PD tuple.
const (
	posUnderIn = iota
	posB
	posUnderOut
	posD
)

// role of a strand end at a crossing.
type role int8

const (
	roleUnknown role = iota
	roleIn
	roleOut
)

// Link is an oriented link diagram. Crossing c has two passages: 2c is
// the lower strand and 2c+1 the upper. Following the orientation, leaving
// passage p leads into passage next[p]. Components without crossings are
// only counted.
type Link struct {
	next    []int
	prev    []int
	sign    []int
	unknots int
}

// Unlink returns the diagram of k disjoint circles with no crossings.
func Unlink(k int) *Link { return &Link{unknots: max(k, 0)} }

// FromPD builds a link from a planar diagram code. Every label must occur
// exactly twice and the two ends of every strand must be consistently
// oriented. The orientation of a component that only ever passes over is
// taken from its label order.
func FromPD(code [][4]int) (*Link, error) {
	n := len(code)
	type end struct{ c, pos int }
	occ := make(map[int][]end, 2*n)
	for c, x := range code {
		for pos, label := range x {
			occ[label] = append(occ[label], end{c, pos})
		}
	}
	for label, ends := range occ {
		if len(ends) != 2 {
			return nil, linkErrorf("FromPD", ErrInvalidArgument, "label %d occurs %d times", label, len(ends))
		}
	}

	roles := make([][4]role, n)
	other := func(e end) end {
		ends := occ[code[e.c][e.pos]]
		if ends[0] == e {
			return ends[1]
		}
		return ends[0]
	}
	var queue []end
	set := func(e end, r role) error {
		switch roles[e.c][e.pos] {
		case roleUnknown:
			roles[e.c][e.pos] = r
			queue = append(queue, e)
			return nil
		case r:
			return nil
		}
		return linkErrorf("FromPD", ErrInvalidArgument, "strand %d is inconsistently oriented", code[e.c][e.pos])
	}
	flip := func(r role) role { return 3 - r }
	propagate := func() error {
		for len(queue) > 0 {
			e := queue[0]
			queue = queue[1:]
			r := roles[e.c][e.pos]
			if err := set(other(e), flip(r)); err != nil {
				return err
			}
			if e.pos == posB || e.pos == posD {
				if err := set(end{e.c, posB + posD - e.pos}, flip(r)); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for c := range code {
		if err := set(end{c, posUnderIn}, roleIn); err != nil {
			return nil, err
		}
		if err := set(end{c, posUnderOut}, roleOut); err != nil {
			return nil, err
		}
	}
	if err := propagate(); err != nil {
		return nil, err
	}
	for c, x := range code {
		if roles[c][posD] != roleUnknown {
			continue
		}
		b, d := x[posB], x[posD]
		r := roleOut
		if b == d+1 || (d != b+1 && d > b) {
			r = roleIn
		}
		if err := set(end{c, posD}, r); err != nil {
			return nil, err
		}
		if err := propagate(); err != nil {
			return nil, err
		}
	}

	l := &Link{next: make([]int, 2*n), prev: make([]int, 2*n), sign: make([]int, n)}
	passage := func(e end) int {
		if e.pos == posUnderIn || e.pos == posUnderOut {
			return 2 * e.c
		}
		return 2*e.c + 1
	}
	for c := range code {
		l.sign[c] = -1
		if roles[c][posD] == roleIn {
			l.sign[c] = 1
		}
		for pos := range code[c] {
			e := end{c, pos}
			if roles[c][pos] != roleOut {
				continue
			}
			to := passage(other(e))
			l.next[passage(e)] = to
			l.prev[to] = passage(e)
		}
	}
	return l, nil
}

// Size returns the number of crossings.
func (l *Link) Size() int { return len(l.sign) }

// Sign returns +1 for a positive (right-handed) crossing and −1 otherwise.
func (l *Link) Sign(c int) int { return l.sign[c] }

// Writhe returns the sum of the crossing signs.
func (l *Link) Writhe() int {
	w := 0
	for _, s := range l.sign {
		w += s
	}
	return w
}

// Components returns the number of link components, including those
// without crossings.
func (l *Link) Components() int { return len(l.cycles()) + l.unknots }

// IsEmpty reports whether the link has no components at all.
func (l *Link) IsEmpty() bool { return l.Components() == 0 }

// cycles returns the components with crossings as passage sequences. Each
// starts at its first lower passage, or at its first passage if it never
// passes under.
func (l *Link) cycles() [][]int {
	seen := make([]bool, len(l.next))
	var out [][]int
	for p := range l.next {
		if seen[p] {
			continue
		}
		start := p
		for q := l.next[p]; q != p; q = l.next[q] {
			if q%2 == 0 && (start%2 == 1 || q < start) {
				start = q
			}
		}
		var cyc []int
		for q := start; !seen[q]; q = l.next[q] {
			seen[q] = true
			cyc = append(cyc, q)
		}
		out = append(out, cyc)
	}
	return out
}

// PD returns a planar diagram code for the link. Strands are numbered
// from 1 along each component in turn, and crossings are listed in the
// order their lower strands are entered. Components without crossings are
// dropped.
func (l *Link) PD() [][4]int {
	out := make([]int, len(l.next)) // label of the strand leaving each passage
	order := make([]int, 0, l.Size())
	base := 1
	for _, cyc := range l.cycles() {
		for i, p := range cyc {
			out[p] = base + (i+1)%len(cyc)
			if p%2 == 0 {
				order = append(order, p/2)
			}
		}
		base += len(cyc)
	}
	code := make([][4]int, 0, len(order))
	for _, c := range order {
		under, over := 2*c, 2*c+1
		a, d := out[l.prev[under]], out[under]
		in, outOver := out[l.prev[over]], out[over]
		if l.sign[c] > 0 {
			code = append(code, [4]int{a, outOver, d, in})
		} else {
			code = append(code, [4]int{a, in, d, outOver})
		}
	}
	return code
}
