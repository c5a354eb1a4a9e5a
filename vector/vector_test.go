package vector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/integer"
	"github.com/katalvlaran/trimanifold/vector"
)

func TestScaleDown(t *testing.T) {
	t.Parallel()
	v := vector.Of(4, 0, -6, 10)
	g := v.ScaleDown()
	assert.Equal(t, "2", g.String())
	assert.True(t, v.Equal(vector.Of(2, 0, -3, 5)))

	w := vector.Vector{integer.New(6), integer.Infinity(), integer.New(9)}
	w.ScaleDown()
	assert.Equal(t, "(2, inf, 3)", w.String())

	z := vector.New(3)
	assert.True(t, z.ScaleDown().IsZero())
}

func TestNormalise(t *testing.T) {
	t.Parallel()
	v := vector.Of(0, -3, 6)
	v.Normalise()
	assert.True(t, v.Equal(vector.Of(0, 1, -2)))
}

func TestIntersect(t *testing.T) {
	t.Parallel()
	h := vector.Of(1, -1, 0)
	u := vector.Of(1, 0, 0) // h·u = 1
	v := vector.Of(0, 2, 1) // h·v = -2
	r, err := vector.Intersect(u, v, h)
	require.NoError(t, err)
	d, err := h.Dot(r)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
	assert.True(t, r.IsNonNegative())
	assert.True(t, r.Equal(vector.Of(2, 2, 1)))

	r2, err := vector.Intersect(v, u, h)
	require.NoError(t, err)
	assert.True(t, r2.Equal(r))

	_, err = vector.Intersect(u, v, vector.Of(1))
	assert.ErrorIs(t, err, vector.ErrLength)
}

func TestCompareAndDominates(t *testing.T) {
	t.Parallel()
	a, b := vector.Of(1, 2, 3), vector.Of(1, 3, 0)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a.Clone()))
	assert.True(t, vector.Of(2, 2, 3).Dominates(a))
	assert.False(t, b.Dominates(a))
	assert.Equal(t, []int{0, 1}, b.Support())

	c := a.Clone()
	c.SubtractCopies(vector.Of(1, 1, 1), integer.New(2))
	assert.True(t, c.Equal(vector.Of(-1, 0, 1)))
}
