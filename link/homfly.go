package link

// maxHomflyCrossings bounds the skein recursion, which is exponential in
// the number of crossings.
const maxHomflyCrossings = 12

type crossingState int8

const (
	unvisited crossingState = iota
	overFirst
	switched
	spliced
)

// delta is (α − α⁻¹)/z, the HOMFLY-PT polynomial of a two-component unlink.
var delta = Monomial2(1, -1, 1).Add(Monomial2(-1, -1, -1))

// skein walks the diagram from base points, making it descending. A
// crossing first reached along its lower strand is resolved two ways by
// the skein relation: switched, so the walk passes over it, or spliced
// along the orientation. A fully descending diagram is an unlink.
type skein struct {
	l     *Link
	state []crossingState
	seen  []bool
	// coeff[k] collects the weights of states with k+1 components.
	coeff     []Laurent2
	splices   int
	negSplice int
	alphaExp  int
}

func (k *skein) record(comps int) {
	term := Monomial2(k.alphaExp, k.splices, 1)
	if k.negSplice%2 != 0 {
		term = Monomial2(k.alphaExp, k.splices, -1)
	}
	k.coeff[comps-1] = k.coeff[comps-1].Add(term)
}

func (k *skein) firstUnseen() int {
	for p, s := range k.seen {
		if !s {
			return p
		}
	}
	return -1
}

// enter continues the walk into passage p with comps components closed.
func (k *skein) enter(p, comps int) {
	if k.seen[p] {
		comps++
		next := k.firstUnseen()
		if next < 0 {
			k.record(comps)
			return
		}
		k.enter(next, comps)
		return
	}
	c := p / 2
	other := p ^ 1
	k.seen[p] = true
	defer func() { k.seen[p] = false }()

	switch k.state[c] {
	case unvisited:
		if p%2 == 1 {
			k.state[c] = overFirst
			k.enter(k.l.next[p], comps)
			k.state[c] = unvisited
			return
		}
		sign := k.l.sign[c]

		// P(L±) = α^(∓2)·P(L∓) ± α^(∓1)·z·P(L₀)
		k.state[c] = switched
		k.alphaExp -= 2 * sign
		k.enter(k.l.next[p], comps)
		k.alphaExp += 2 * sign

		k.state[c] = spliced
		k.alphaExp -= sign
		k.splices++
		if sign < 0 {
			k.negSplice++
		}
		k.enter(k.l.next[other], comps)
		if sign < 0 {
			k.negSplice--
		}
		k.splices--
		k.alphaExp += sign
		k.state[c] = unvisited
	case spliced:
		k.enter(k.l.next[other], comps)
	default:
		k.enter(k.l.next[p], comps)
	}
}

// HOMFLY returns the HOMFLY-PT polynomial in (α, z), with x = α and
// y = z in the Laurent2 result. The empty link gives 0.
func (l *Link) HOMFLY() (Laurent2, error) {
	n := l.Size()
	if n > maxHomflyCrossings {
		return Laurent2{}, linkErrorf("HOMFLY", ErrTooLarge, "%d crossings, at most %d", n, maxHomflyCrossings)
	}
	if l.IsEmpty() {
		return Laurent2{}, nil
	}
	pow := func(e int) Laurent2 {
		out := Monomial2(0, 0, 1)
		for i := 0; i < e; i++ {
			out = out.Mul(delta)
		}
		return out
	}
	if n == 0 {
		return pow(l.unknots - 1), nil
	}

	k := &skein{
		l:     l,
		state: make([]crossingState, n),
		seen:  make([]bool, 2*n),
		coeff: make([]Laurent2, n+l.Components()),
	}
	k.enter(0, 0)

	var ans Laurent2
	for i, c := range k.coeff {
		if !c.IsZero() {
			ans = ans.Add(c.Mul(pow(i + l.unknots)))
		}
	}
	return ans, nil
}
