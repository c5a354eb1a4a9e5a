package triangulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/perm"
	"github.com/katalvlaran/trimanifold/triangulation"
)

const (
	cp2Sig        = "uLvAwPPAMMQLAPPQPkcfffgggjjkllllmnnpooqqrsrrsttttaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	cp2ReflectSig = "yLvAvLQALMMQPMwzQQQMQcffilgjjloopnnnmqmnmsmuwwwwttvuutxxxxaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	s2xs2Sig      = "GLvAvPPALvzzQPwAvQMMQQQQQQPkcffiigjjlorrnmmwssyyxBBzAAEECAzzCBBDDDEAEDCCxFFFFaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	s2xs2TwistSig = "KLvAvLPALLMLMAzQLwLQPMPQQQQAQMQcfflgjjmprrrtsnonswvvAAzDDBFFFGCCGECEEzBBEDDHHHIIIIJJJJaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func TestIntersectionForm(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		tri       func(t *testing.T) *triangulation.Triangulation
		rank      int
		signature int
		even      bool
	}{
		{"S^4", func(t *testing.T) *triangulation.Triangulation { return doubleSimplex(t, 4) }, 0, 0, true},
		{"CP^2", func(t *testing.T) *triangulation.Triangulation { return mustFromSig(t, 4, cp2Sig) }, 1, 1, false},
		{"reflected CP^2", func(t *testing.T) *triangulation.Triangulation { return mustFromSig(t, 4, cp2ReflectSig) }, 1, -1, false},
		{"S^2 x S^2", func(t *testing.T) *triangulation.Triangulation { return mustFromSig(t, 4, s2xs2Sig) }, 2, 0, true},
		{"twisted S^2 x S^2", func(t *testing.T) *triangulation.Triangulation { return mustFromSig(t, 4, s2xs2TwistSig) }, 2, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			tri := c.tri(t)
			f, err := tri.IntersectionForm()
			require.NoError(t, err)
			assert.Equal(t, c.rank, f.Size())
			assert.True(t, f.IsNonDegenerate())
			sig, err := f.Signature()
			require.NoError(t, err)
			assert.Equal(t, c.signature, sig)
			assert.Equal(t, c.even, f.IsEven())

			// Turning over every second pentachoron keeps the orientation
			// of pentachoron 0 and so the form.
			iso := triangulation.IdentityIsomorphism(4, tri.Size())
			for i := 1; i < tri.Size(); i += 2 {
				iso.FacetPerm[i] = perm.Transposition(5, 1, 3)
			}
			flipped, err := iso.Apply(tri)
			require.NoError(t, err)
			g, err := flipped.IntersectionForm()
			require.NoError(t, err)
			assert.Equal(t, f.Size(), g.Size())
			gsig, err := g.Signature()
			require.NoError(t, err)
			assert.Equal(t, sig, gsig)
			assert.Equal(t, f.IsEven(), g.IsEven())
		})
	}
}

func TestIntersectionFormReflection(t *testing.T) {
	t.Parallel()
	tri := mustFromSig(t, 4, cp2Sig)
	iso := triangulation.IdentityIsomorphism(4, tri.Size())
	for i := range iso.FacetPerm {
		iso.FacetPerm[i] = perm.Transposition(5, 0, 1)
	}
	refl, err := iso.Apply(tri)
	require.NoError(t, err)
	f, err := refl.IntersectionForm()
	require.NoError(t, err)
	sig, err := f.Signature()
	require.NoError(t, err)
	assert.Equal(t, -1, sig)
}

func TestIntersectionFormPreconditions(t *testing.T) {
	t.Parallel()
	_, err := doubleSimplex(t, 3).IntersectionForm()
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)

	ball := triangulation.MustNew(4)
	ball.NewSimplex()
	_, err = ball.IntersectionForm()
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)

	_, err = triangulation.MustNew(4).IntersectionForm()
	assert.ErrorIs(t, err, triangulation.ErrNotApplicable)
}
