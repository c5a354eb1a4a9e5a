package triangulation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/triangulation"
)

func TestIsoSigRoundTrip(t *testing.T) {
	t.Parallel()
	tri := mustFromSig(t, 3, figureEightSig)
	assert.Equal(t, figureEightSig, tri.IsoSig())

	n, err := triangulation.IsoSigComponentSize(figureEightSig)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sig, iso := tri.IsoSigDetail()
	img, err := iso.Apply(tri)
	require.NoError(t, err)
	assert.True(t, img.IsIdenticalTo(mustFromSig(t, 3, sig)))
}

func TestIsoSigInvariantUnderRelabelling(t *testing.T) {
	t.Parallel()
	for _, build := range []func() *triangulation.Triangulation{
		func() *triangulation.Triangulation { return mustFromSig(t, 3, figureEightSig) },
		func() *triangulation.Triangulation { return doubleSimplex(t, 3) },
		func() *triangulation.Triangulation { return doubleSimplex(t, 4) },
		func() *triangulation.Triangulation { return doubleSimplex(t, 2) },
	} {
		tri := build()
		want := tri.IsoSig()
		for i := 0; i < 5; i++ {
			tri.RandomRelabel(false)
			assert.Equal(t, want, tri.IsoSig())
		}
		back := mustFromSig(t, tri.Dim(), want)
		assert.Equal(t, want, back.IsoSig())
		assert.True(t, triangulation.IsIsomorphic(tri, back))
	}
}

func TestIsoSigEmptyAndDisconnected(t *testing.T) {
	t.Parallel()
	empty := triangulation.MustNew(3)
	assert.Equal(t, "a", empty.IsoSig())
	back := mustFromSig(t, 3, "a")
	assert.True(t, back.IsEmpty())

	tri := doubleSimplex(t, 3)
	require.NoError(t, tri.InsertTriangulation(mustFromSig(t, 3, figureEightSig)))
	parts := []string{doubleSimplex(t, 3).IsoSig(), figureEightSig}
	if parts[1] < parts[0] {
		parts[0], parts[1] = parts[1], parts[0]
	}
	assert.Equal(t, parts[0]+parts[1], tri.IsoSig())

	again := mustFromSig(t, 3, tri.IsoSig())
	assert.Equal(t, 2, again.CountComponents())
	assert.Equal(t, 4, again.Size())
}

func TestIsoSigLocks(t *testing.T) {
	t.Parallel()
	tri := mustFromSig(t, 3, figureEightSig)
	tri.Simplex(1).Lock()
	sig := tri.IsoSig()
	assert.Contains(t, sig, ".")
	assert.NotEqual(t, figureEightSig, sig)

	back := mustFromSig(t, 3, sig)
	locked := 0
	for _, s := range back.Simplices() {
		if s.IsLocked() {
			locked++
		}
	}
	assert.Equal(t, 1, locked)
	assert.Equal(t, sig, back.IsoSig())
}

func TestIsoSigWhitespace(t *testing.T) {
	t.Parallel()
	tri, err := triangulation.FromIsoSig(3, "  "+figureEightSig+"\n")
	require.NoError(t, err)
	assert.Equal(t, 2, tri.Size())
}

func TestIsoSigDecodeErrors(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"empty":               "",
		"internal space":      "cPc bbbiht",
		"bad character":       "cPc*bbiht",
		"truncated actions":   "cP",
		"truncated gluings":   "cPcbbbih",
		"no actions":          "b",
		"invalid permutation": "cPcbbbii-",
		"bad destination":     "cPcbbcabc",
		"oversized width":     "-laaaaaaaaaa-",
		"size past the end":   "-kaaaaaaaaab",
		"largest width":       "-k----------",
	}
	for name, sig := range cases {
		_, err := triangulation.FromIsoSig(3, sig)
		assert.ErrorIs(t, err, triangulation.ErrInvalidArgument, name)
	}
	_, err := triangulation.FromIsoSig(5, figureEightSig)
	assert.ErrorIs(t, err, triangulation.ErrInvalidDimension)

	_, err = triangulation.IsoSigComponentSize("-laaaaaaaaaa-")
	assert.ErrorIs(t, err, triangulation.ErrInvalidArgument)
}

func TestIsoSigMinimalOverAllLabellings(t *testing.T) {
	t.Parallel()
	for _, sig := range []string{figureEightSig, "gLALQbccefffemkbemi"} {
		tri := mustFromSig(t, 3, sig)
		assert.Equal(t, sig, tri.IsoSig())
		for i := 0; i < 4; i++ {
			tri.RandomRelabel(true)
			assert.Equal(t, sig, tri.IsoSig(), sig)
		}
	}
}

func TestMakeCanonical(t *testing.T) {
	t.Parallel()
	a := mustFromSig(t, 3, figureEightSig)
	b := a.Clone()
	b.RandomRelabel(false)
	a.MakeCanonical()
	b.MakeCanonical()
	assert.True(t, a.IsIdenticalTo(b))
	assert.False(t, a.MakeCanonical(), "canonical form is a fixed point")
}

func TestFindIsomorphism(t *testing.T) {
	t.Parallel()
	a := mustFromSig(t, 3, figureEightSig)
	b := a.Clone()
	b.RandomRelabel(true)

	iso, ok := triangulation.FindIsomorphism(a, b)
	require.True(t, ok)
	img, err := iso.Apply(a)
	require.NoError(t, err)
	assert.True(t, img.IsIdenticalTo(b))

	inv, err := iso.Inverse().Apply(b)
	require.NoError(t, err)
	assert.True(t, inv.IsIdenticalTo(a))
	assert.True(t, iso.Inverse().Compose(iso).IsIdentity())

	all := triangulation.FindAllIsomorphisms(a, a)
	assert.NotEmpty(t, all)
	for _, x := range all {
		img, err := x.Apply(a)
		require.NoError(t, err)
		assert.True(t, img.IsIdenticalTo(a))
	}

	assert.False(t, triangulation.IsIsomorphic(a, doubleSimplex(t, 3)))
	assert.True(t, strings.Contains(iso.String(), "->"))
}
