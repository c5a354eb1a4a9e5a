package triangulation

import (
	"sort"
	"strings"
	"unicode"

	"github.com/katalvlaran/trimanifold/perm"
)

// Isomorphism signatures.
//
// A signature is a printable string that identifies a triangulation up to
// combinatorial isomorphism. Each component is encoded separately from the
// labelling that gives the lexicographically smallest string, and the
// component strings are sorted and concatenated. Values are written in a
// base-64 alphabet (a–z, A–Z, 0–9, '+', '-'), least significant digit
// first.
//
// One component is encoded as:
//
//	size            one char, or char 63, a width w, then size in w chars
//	facet actions   trits packed three per char, low bits first:
//	                0 boundary, 1 glue to a new simplex, 2 glue to a seen one
//	destinations    one w-char value per action 2
//	gluings         one value per action 2: lexicographic index in S(dim+1)
//	locks           optional: '.' then one mask char per simplex

const sigEmpty = "a"

func sigChar(v int) byte {
	switch {
	case v < 26:
		return byte('a' + v)
	case v < 52:
		return byte('A' + v - 26)
	case v < 62:
		return byte('0' + v - 52)
	case v == 62:
		return '+'
	}
	return '-'
}

func sigValue(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	case c >= '0' && c <= '9':
		return int(c-'0') + 52, true
	case c == '+':
		return 62, true
	case c == '-':
		return 63, true
	}
	return 0, false
}

func appendSigInt(b []byte, v, width int) []byte {
	for i := 0; i < width; i++ {
		b = append(b, sigChar(v&63))
		v >>= 6
	}
	return b
}

// permChars is the number of characters needed for an index into S(dim+1).
func permChars(dim int) int {
	n, c := int(perm.Factorial(dim+1)), 0
	for m := 1; m < n; m <<= 6 {
		c++
	}
	return max(c, 1)
}

// sigLabel is the result of encoding one component from one starting
// labelling.
type sigLabel struct {
	sig   string
	order []*Simplex
	perms []perm.Perm
}

// sigHeader encodes the size of an n-simplex component and returns the width
// of simplex indices.
func sigHeader(n int) ([]byte, int) {
	if n < 63 {
		return []byte{sigChar(n)}, 1
	}
	width := 0
	for m := n; m > 0; m >>= 6 {
		width++
	}
	return appendSigInt([]byte{sigChar(63), sigChar(width)}, n, width), width
}

// encodeFrom encodes the n-simplex component of start, giving start image 0
// with vertex map p. If best is non-empty the walk stops as soon as the
// facet actions written so far exceed the matching bytes of best; all
// candidates of one component have the same length, so the first differing
// byte decides. It reports whether the result is smaller than best.
func encodeFrom(start *Simplex, p perm.Perm, n int, withLocks bool, best string) (sigLabel, bool) {
	d := start.tri.dim
	image := map[*Simplex]int{start: 0}
	l := sigLabel{order: []*Simplex{start}, perms: []perm.Perm{p}}
	b, width := sigHeader(n)
	less := best == ""
	var dests, gluings []int
	pending, queued := 0, 0
	flush := func() bool {
		c := sigChar(pending)
		pending, queued = 0, 0
		if !less {
			switch pos := len(b); {
			case c > best[pos]:
				return false
			case c < best[pos]:
				less = true
			}
		}
		b = append(b, c)
		return true
	}
	act := func(a int) bool {
		pending |= a << (2 * queued)
		queued++
		return queued < 3 || flush()
	}

	for k := 0; k < len(l.order); k++ {
		src, vs := l.order[k], l.perms[k]
		for fi := 0; fi <= d; fi++ {
			f := vs.Pre(fi)
			dest := src.adj[f]
			if dest == nil {
				if !act(0) {
					return l, false
				}
				continue
			}
			g := src.gluing[f]
			j, seen := image[dest]
			if seen && (j < k || (j == k && vs.Image(g.Image(f)) < fi)) {
				continue
			}
			if !seen {
				image[dest] = len(l.order)
				l.order = append(l.order, dest)
				l.perms = append(l.perms, vs.Compose(g.Inverse()))
				if !act(1) {
					return l, false
				}
				continue
			}
			if !act(2) {
				return l, false
			}
			dests = append(dests, j)
			gluings = append(gluings, l.perms[j].Compose(g).Compose(vs.Inverse()).Index())
		}
	}
	if queued > 0 && !flush() {
		return l, false
	}

	for _, x := range dests {
		b = appendSigInt(b, x, width)
	}
	pc := permChars(d)
	for _, x := range gluings {
		b = appendSigInt(b, x, pc)
	}
	if withLocks {
		b = append(b, '.')
		for k, s := range l.order {
			mask := int(s.locks & 1)
			for f := 0; f <= d; f++ {
				if s.IsFacetLocked(f) {
					mask |= 1 << (l.perms[k].Image(f) + 1)
				}
			}
			b = append(b, sigChar(mask))
		}
	}
	l.sig = string(b)
	return l, less || l.sig < best
}

// minimalEncoding returns the smallest encoding of the component made of
// simps over every starting simplex and vertex map.
func minimalEncoding(simps []*Simplex) sigLabel {
	withLocks := false
	for _, s := range simps {
		if s.locks != 0 {
			withLocks = true
		}
	}
	sn := perm.MustSn(simps[0].tri.dim + 1)
	var best sigLabel
	for _, s := range simps {
		for _, p := range sn {
			if cand, better := encodeFrom(s, p, len(simps), withLocks, best.sig); better {
				best = cand
			}
		}
	}
	return best
}

// IsoSig returns the isomorphism signature of t. Two triangulations have the
// same signature exactly when they are combinatorially isomorphic (with
// matching locks). The empty triangulation has signature "a".
func (t *Triangulation) IsoSig() string {
	sig, _ := t.IsoSigDetail()
	return sig
}

// IsoSigDetail returns the signature together with the isomorphism that
// carries t onto the triangulation FromIsoSig rebuilds from it.
func (t *Triangulation) IsoSigDetail() (string, Isomorphism) {
	n := len(t.simplices)
	iso := Isomorphism{SimpImage: make([]int, n), FacetPerm: make([]perm.Perm, n)}
	if n == 0 {
		return sigEmpty, iso
	}
	var comps []sigLabel
	for _, c := range t.Components() {
		comps = append(comps, minimalEncoding(c.simplices))
	}
	sort.SliceStable(comps, func(i, j int) bool { return comps[i].sig < comps[j].sig })
	var sb strings.Builder
	off := 0
	for _, c := range comps {
		sb.WriteString(c.sig)
		for k, s := range c.order {
			iso.SimpImage[s.index] = off + k
			iso.FacetPerm[s.index] = c.perms[k]
		}
		off += len(c.order)
	}
	return sb.String(), iso
}

// maxSigBits bounds the bits of a decoded integer so that it stays a
// non-negative int.
const maxSigBits = 62

// sigReader walks a signature during decoding.
type sigReader struct {
	s   string
	pos int
}

func (r *sigReader) done() bool { return r.pos >= len(r.s) }

func (r *sigReader) next() (int, error) {
	if r.done() {
		return 0, triErrorf(opIsoSig, ErrInvalidArgument, "incomplete signature")
	}
	v, ok := sigValue(r.s[r.pos])
	if !ok {
		return 0, triErrorf(opIsoSig, ErrInvalidArgument, "invalid character %q", r.s[r.pos])
	}
	r.pos++
	return v, nil
}

func (r *sigReader) int(width int) (int, error) {
	v := 0
	for i := 0; i < width; i++ {
		c, err := r.next()
		if err != nil {
			return 0, err
		}
		v |= c << (6 * i)
	}
	return v, nil
}

// header reads the size of the next component and the width of simplex
// indices.
func (r *sigReader) header() (n, width int, err error) {
	c, err := r.next()
	if err != nil {
		return 0, 0, err
	}
	if c < 63 {
		return c, 1, nil
	}
	if width, err = r.next(); err != nil {
		return 0, 0, err
	}
	if width == 0 || 6*width > maxSigBits {
		return 0, 0, triErrorf(opIsoSig, ErrInvalidArgument, "invalid size width %d", width)
	}
	n, err = r.int(width)
	return n, width, err
}

func cleanSig(sig string) (string, error) {
	s := strings.TrimLeftFunc(sig, unicode.IsSpace)
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			return "", triErrorf(opIsoSig, ErrInvalidArgument, "internal whitespace at position %d", i)
		}
		if _, ok := sigValue(c); !ok && c != '.' {
			return "", triErrorf(opIsoSig, ErrInvalidArgument, "invalid character %q", c)
		}
	}
	if s == "" {
		return "", triErrorf(opIsoSig, ErrInvalidArgument, "incomplete signature")
	}
	return s, nil
}

// IsoSigComponentSize returns the number of simplices in the first
// component encoded by sig.
func IsoSigComponentSize(sig string) (int, error) {
	s, err := cleanSig(sig)
	if err != nil {
		return 0, err
	}
	r := &sigReader{s: s}
	n, _, err := r.header()
	return n, err
}

// FromIsoSig rebuilds a triangulation of the given dimension from its
// isomorphism signature. All errors wrap ErrInvalidArgument.
func FromIsoSig(dim int, sig string) (*Triangulation, error) {
	t, err := New(dim)
	if err != nil {
		return nil, err
	}
	s, err := cleanSig(sig)
	if err != nil {
		return nil, err
	}
	r := &sigReader{s: s}
	for !r.done() {
		if err := r.component(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (r *sigReader) component(t *Triangulation) error {
	d := t.dim
	n, width, err := r.header()
	if err != nil || n == 0 {
		return err
	}
	// Each remaining character carries at most three actions of two facets.
	if rest := len(r.s) - r.pos; n > 6*rest || n*(d+1) > 6*rest {
		return triErrorf(opIsoSig, ErrInvalidArgument, "incomplete signature: %d simplices in %d characters", n, rest)
	}
	total := n * (d + 1)
	var actions []int
	facets, joins := 0, 0
	for facets < total {
		c, err := r.next()
		if err != nil {
			return err
		}
		for j := 0; j < 3; j++ {
			trit := (c >> (2 * j)) & 3
			if facets == total {
				if trit != 0 {
					return triErrorf(opIsoSig, ErrInvalidArgument, "extraneous facet actions")
				}
				continue
			}
			switch trit {
			case 0:
				facets++
			case 1:
				facets += 2
			case 2:
				facets += 2
				joins++
			default:
				return triErrorf(opIsoSig, ErrInvalidArgument, "invalid facet action")
			}
			actions = append(actions, trit)
			if facets > total {
				return triErrorf(opIsoSig, ErrInvalidArgument, "facet actions do not match triangulation size")
			}
		}
	}
	dests := make([]int, joins)
	for i := range dests {
		if dests[i], err = r.int(width); err != nil {
			return err
		}
		if dests[i] >= n {
			return triErrorf(opIsoSig, ErrInvalidArgument, "gluing to non-existent simplex %d", dests[i])
		}
	}
	gluings := make([]perm.Perm, joins)
	pc := permChars(d)
	for i := range gluings {
		idx, err := r.int(pc)
		if err != nil {
			return err
		}
		if gluings[i], err = perm.FromIndex(d+1, idx); err != nil {
			return triErrorf(opIsoSig, ErrInvalidArgument, "invalid gluing permutation %d", idx)
		}
	}

	defer t.BeginChange(AllCleared).End()
	simp := make([]*Simplex, n)
	for i := range simp {
		simp[i] = t.newSimplex()
	}
	id := perm.Identity(d + 1)
	pos, next, join := 0, 1, 0
	for p := 0; p < n; p++ {
		for f := 0; f <= d; f++ {
			if simp[p].adj[f] != nil {
				continue
			}
			if pos >= len(actions) {
				return triErrorf(opIsoSig, ErrInvalidArgument, "facet actions do not match triangulation size")
			}
			action := actions[pos]
			pos++
			switch action {
			case 1:
				if next >= n {
					return triErrorf(opIsoSig, ErrInvalidArgument, "invalid facet action")
				}
				simp[p].join(f, simp[next], id)
				next++
			case 2:
				dest, g := dests[join], gluings[join]
				join++
				df := g.Image(f)
				processed := dest < p || (dest == p && df < f)
				if dest >= next || processed || simp[dest].adj[df] != nil || (dest == p && df == f) {
					return triErrorf(opIsoSig, ErrInvalidArgument, "invalid gluing destination")
				}
				simp[p].join(f, simp[dest], g)
			}
		}
	}
	if pos != len(actions) || join != joins {
		return triErrorf(opIsoSig, ErrInvalidArgument, "facet actions do not match triangulation size")
	}

	if !r.done() && r.s[r.pos] == '.' {
		r.pos++
		for _, sp := range simp {
			mask, err := r.next()
			if err != nil {
				return err
			}
			if mask >= 1<<(d+2) {
				return triErrorf(opIsoSig, ErrInvalidArgument, "invalid lock mask %d", mask)
			}
			sp.locks = uint8(mask)
		}
	}
	return nil
}
