package forms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/forms"
	"github.com/katalvlaran/trimanifold/matrix"
)

func mustForm(t *testing.T, m *matrix.Dense) *forms.Form {
	t.Helper()
	f, err := forms.New(m)
	require.NoError(t, err)
	return f
}

// e8 is the Gram matrix of the E8 lattice: the Cartan matrix of the tree
// with arms of lengths 1, 2 and 4 meeting at node 4.
func e8(sign int64) *matrix.Dense {
	m := matrix.Zeros(8, 8)
	for i := 0; i < 8; i++ {
		m.SetInt64(i, i, 2*sign)
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {4, 7}} {
		m.SetInt64(e[0], e[1], -sign)
		m.SetInt64(e[1], e[0], -sign)
	}
	return m
}

var hyperbolic = matrix.MustFromRows([][]int64{{0, 1}, {1, 0}})

func k3() *matrix.Dense {
	m := matrix.BlockDiagonal(e8(-1), e8(-1))
	for i := 0; i < 3; i++ {
		m = matrix.BlockDiagonal(m, hyperbolic)
	}
	return m
}

func TestKnownForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    *matrix.Dense
		rank int
		sig  int
		even bool
	}{
		{"S4", matrix.MustFromRows(nil), 0, 0, true},
		{"CP2", matrix.MustFromRows([][]int64{{1}}), 1, 1, false},
		{"CP2bar", matrix.MustFromRows([][]int64{{-1}}), 1, -1, false},
		{"S2xS2", hyperbolic, 2, 0, true},
		{"S2~xS2", matrix.MustFromRows([][]int64{{1, 0}, {0, -1}}), 2, 0, false},
		{"E8", e8(1), 8, 8, true},
		{"-E8", e8(-1), 8, -8, true},
		{"K3", k3(), 22, -16, true},
		{"A2", matrix.MustFromRows([][]int64{{2, 1}, {1, 2}}), 2, 2, true},
		{"indefinite", matrix.MustFromRows([][]int64{{2, 3}, {3, 2}}), 2, 0, true},
		{"scaled hyperbolic", matrix.MustFromRows([][]int64{{0, 2}, {2, 0}}), 2, 0, true},
		{"zero diagonal", matrix.MustFromRows([][]int64{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}}), 3, -1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := mustForm(t, tc.m)
			assert.Equal(t, tc.rank, f.Rank())
			assert.True(t, f.IsNonDegenerate())

			sig, err := f.Signature()
			require.NoError(t, err)
			assert.Equal(t, tc.sig, sig)

			fsig, err := f.SignatureFloat()
			require.NoError(t, err)
			assert.Equal(t, sig, fsig)

			assert.Equal(t, tc.even, f.IsEven())
			assert.Equal(t, !tc.even, f.IsOdd())
		})
	}
}

func TestSingular(t *testing.T) {
	t.Parallel()

	f := mustForm(t, matrix.MustFromRows([][]int64{{1, 1}, {1, 1}}))
	assert.Equal(t, 1, f.Rank())
	assert.False(t, f.IsNonDegenerate())

	_, err := f.Signature()
	require.ErrorIs(t, err, forms.ErrArithmetic)
	_, err = f.SignatureFloat()
	require.ErrorIs(t, err, forms.ErrArithmetic)
	assert.Equal(t, "rank 1, signature singular, odd", f.String())

	zero := mustForm(t, matrix.Zeros(3, 3))
	assert.Equal(t, 0, zero.Rank())
	_, err = zero.Signature()
	require.ErrorIs(t, err, forms.ErrArithmetic)
	assert.True(t, zero.IsEven())
}

func TestNewRejects(t *testing.T) {
	t.Parallel()

	for name, m := range map[string]*matrix.Dense{
		"nil":           nil,
		"non-square":    matrix.Zeros(2, 3),
		"non-symmetric": matrix.MustFromRows([][]int64{{1, 2}, {3, 4}}),
	} {
		_, err := forms.New(m)
		assert.ErrorIs(t, err, forms.ErrInvalidArgument, name)
	}
}

func TestFormCopiesMatrix(t *testing.T) {
	t.Parallel()

	m := matrix.MustFromRows([][]int64{{1}})
	f := mustForm(t, m)
	m.SetInt64(0, 0, 2)
	assert.True(t, f.IsOdd())
	assert.Equal(t, "rank 1, signature 1, odd", f.String())

	g := f.Matrix()
	g.SetInt64(0, 0, 4)
	assert.Equal(t, "odd", f.Type())
}
