package link_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/link"
)

var (
	rightTrefoil = [][4]int{{1, 5, 2, 4}, {3, 1, 4, 6}, {5, 3, 6, 2}}
	leftTrefoil  = [][4]int{{1, 4, 2, 5}, {3, 6, 4, 1}, {5, 2, 6, 3}}
	figureEight  = [][4]int{{4, 2, 5, 1}, {8, 6, 1, 5}, {6, 3, 7, 4}, {2, 7, 3, 8}}
	hopf         = [][4]int{{4, 1, 3, 2}, {2, 3, 1, 4}}
	kink         = [][4]int{{1, 1, 2, 2}}
)

func mustPD(t *testing.T, code [][4]int) *link.Link {
	t.Helper()
	l, err := link.FromPD(code)
	require.NoError(t, err)
	return l
}

// kinks returns k split unknots, each drawn with one kink.
func kinks(k int) [][4]int {
	code := make([][4]int, k)
	for i := range code {
		code[i] = [4]int{2*i + 1, 2*i + 1, 2*i + 2, 2*i + 2}
	}
	return code
}

func sum(ps ...link.Laurent2) link.Laurent2 {
	var out link.Laurent2
	for _, p := range ps {
		out = out.Add(p)
	}
	return out
}

func TestInvariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		code       [][4]int
		writhe     int
		components int
		jones      link.Laurent
		homfly     link.Laurent2
	}{
		{
			name: "right trefoil", code: rightTrefoil, writhe: 3, components: 1,
			jones:  link.NewLaurent(2, 1, 0, 0, 0, 1, 0, -1),
			homfly: sum(link.Monomial2(-2, 0, 2), link.Monomial2(-4, 0, -1), link.Monomial2(-2, 2, 1)),
		},
		{
			name: "left trefoil", code: leftTrefoil, writhe: -3, components: 1,
			jones:  link.NewLaurent(-8, -1, 0, 1, 0, 0, 0, 1),
			homfly: sum(link.Monomial2(2, 0, 2), link.Monomial2(4, 0, -1), link.Monomial2(2, 2, 1)),
		},
		{
			name: "figure eight", code: figureEight, writhe: 0, components: 1,
			jones: link.NewLaurent(-4, 1, 0, -1, 0, 1, 0, -1, 0, 1),
			homfly: sum(link.Monomial2(2, 0, 1), link.Monomial2(0, 0, -1),
				link.Monomial2(-2, 0, 1), link.Monomial2(0, 2, -1)),
		},
		{
			name: "negative hopf", code: hopf, writhe: -2, components: 2,
			jones: link.NewLaurent(-5, -1, 0, 0, 0, -1),
			homfly: sum(link.Monomial2(3, -1, 1), link.Monomial2(1, -1, -1),
				link.Monomial2(1, 1, -1)),
		},
		{
			name: "kinked unknot", code: kink, writhe: 1, components: 1,
			jones:  link.NewLaurent(0, 1),
			homfly: link.Monomial2(0, 0, 1),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := mustPD(t, tc.code)
			assert.Equal(t, len(tc.code), l.Size())
			assert.Equal(t, tc.writhe, l.Writhe())
			assert.Equal(t, tc.components, l.Components())

			jones, err := l.Jones()
			require.NoError(t, err)
			assert.True(t, tc.jones.Equal(jones), "jones %s, want %s", jones, tc.jones)

			homfly, err := l.HOMFLY()
			require.NoError(t, err)
			assert.True(t, tc.homfly.Equal(homfly), "homfly %s, want %s", homfly, tc.homfly)
		})
	}
}

func TestBracket(t *testing.T) {
	t.Parallel()

	br, err := mustPD(t, rightTrefoil).Bracket()
	require.NoError(t, err)
	assert.Equal(t, "-x^5 - x^-3 + x^-7", br.String())

	br, err = mustPD(t, hopf).Bracket()
	require.NoError(t, err)
	assert.Equal(t, "-x^4 - x^-4", br.String())

	br, err = mustPD(t, kink).Bracket()
	require.NoError(t, err)
	assert.Equal(t, "-x^3", br.String())

	br, err = link.Unlink(1).Bracket()
	require.NoError(t, err)
	assert.Equal(t, "1", br.String())

	br, err = link.Unlink(0).Bracket()
	require.NoError(t, err)
	assert.True(t, br.IsZero())
}

func TestSigns(t *testing.T) {
	t.Parallel()

	l := mustPD(t, figureEight)
	got := make([]int, l.Size())
	for c := range got {
		got[c] = l.Sign(c)
	}
	assert.Empty(t, cmp.Diff([]int{1, 1, -1, -1}, got))
}

func TestUnlinks(t *testing.T) {
	t.Parallel()

	for k := 1; k <= 3; k++ {
		plain := link.Unlink(k)
		kinked := mustPD(t, kinks(k))
		assert.Equal(t, k, plain.Components())
		assert.Equal(t, k, kinked.Components())

		pj, err := plain.Jones()
		require.NoError(t, err)
		kj, err := kinked.Jones()
		require.NoError(t, err)
		assert.True(t, pj.Equal(kj), "k=%d: %s vs %s", k, pj, kj)

		ph, err := plain.HOMFLY()
		require.NoError(t, err)
		kh, err := kinked.HOMFLY()
		require.NoError(t, err)
		assert.True(t, ph.Equal(kh), "k=%d: %s vs %s", k, ph, kh)
	}

	j, err := link.Unlink(2).Jones()
	require.NoError(t, err)
	assert.Equal(t, "-x - x^-1", j.String())

	h, err := link.Unlink(2).HOMFLY()
	require.NoError(t, err)
	assert.Equal(t, "α z^-1 - α^-1 z^-1", h.Format("α", "z"))

	empty := link.Unlink(0)
	assert.True(t, empty.IsEmpty())
	h, err = empty.HOMFLY()
	require.NoError(t, err)
	assert.True(t, h.IsZero())
}

func TestPDRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Empty(t, cmp.Diff(rightTrefoil, mustPD(t, rightTrefoil).PD()))

	for _, code := range [][][4]int{leftTrefoil, figureEight, hopf, kink} {
		l := mustPD(t, code)
		back := mustPD(t, l.PD())
		assert.Equal(t, l.Writhe(), back.Writhe())
		assert.Equal(t, l.Components(), back.Components())

		j1, err := l.Jones()
		require.NoError(t, err)
		j2, err := back.Jones()
		require.NoError(t, err)
		assert.True(t, j1.Equal(j2))
	}
}

func TestFromPDRejects(t *testing.T) {
	t.Parallel()

	for name, code := range map[string][][4]int{
		"label once":        {{1, 2, 3, 4}},
		"label three times": {{1, 1, 2, 2}, {1, 3, 3, 4}},
		"two heads":         {{1, 2, 3, 4}, {1, 4, 3, 2}},
	} {
		_, err := link.FromPD(code)
		assert.ErrorIs(t, err, link.ErrInvalidArgument, name)
	}

	l, err := link.FromPD(nil)
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
}

func TestTooLarge(t *testing.T) {
	t.Parallel()

	_, err := mustPD(t, kinks(13)).HOMFLY()
	assert.ErrorIs(t, err, link.ErrTooLarge)
	_, err = mustPD(t, kinks(25)).Bracket()
	assert.ErrorIs(t, err, link.ErrTooLarge)
}

func TestLaurent(t *testing.T) {
	t.Parallel()

	p := link.NewLaurent(-1, 0, 1, 2, 0)
	assert.Equal(t, 0, p.MinExp())
	assert.Equal(t, 1, p.MaxExp())
	assert.Equal(t, "2 x + 1", p.String())
	assert.True(t, p.Coeff(5).IsZero())

	q := p.Mul(p)
	assert.Equal(t, "4 x^2 + 4 x + 1", q.String())
	assert.True(t, q.Sub(q).IsZero())
	assert.True(t, p.Shift(-3).Equal(link.NewLaurent(-3, 1, 2)))
	assert.Equal(t, "-6 t^-2 - 3 t^-3", p.Shift(-3).Scale(integer.New(-3)).Format("t"))
	assert.True(t, link.NewLaurent(4).Equal(link.Laurent{}))

	a := link.Monomial2(1, 0, 1).Add(link.Monomial2(0, 1, -2))
	b := a.Mul(a)
	assert.Equal(t, "x^2 - 4 x y + 4 y^2", b.String())
	assert.Equal(t, 3, b.Len())
	assert.True(t, b.Sub(b).IsZero())
	assert.True(t, a.Shift(1, 1).Equal(link.Monomial2(2, 1, 1).Add(link.Monomial2(1, 2, -2))))
	assert.Equal(t, "-8", link.Monomial2(0, 0, 4).Scale(integer.New(-2)).String())
}
