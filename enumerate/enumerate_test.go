package enumerate_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/enumerate"
	"github.com/katalvlaran/trimanifold/matrix"
	"github.com/katalvlaran/trimanifold/progress"
	"github.com/katalvlaran/trimanifold/vector"
)

type algorithm func(context.Context, enumerate.Cone, enumerate.Constraints, ...enumerate.Option) (enumerate.Result, error)

var (
	rayAlgorithms = map[string]algorithm{
		"DoubleDescription": enumerate.DoubleDescription,
		"TreeTraversal":     enumerate.TreeTraversal,
	}
	hilbertAlgorithms = map[string]algorithm{
		"HilbertDual":   enumerate.HilbertDual,
		"HilbertCD":     enumerate.HilbertCD,
		"HilbertPrimal": enumerate.HilbertPrimal,
	}
)

func mustCone(t *testing.T, rows [][]int64, cols int) enumerate.Cone {
	t.Helper()
	var m *matrix.Dense
	if len(rows) == 0 {
		m = matrix.Zeros(0, cols)
	} else {
		m = matrix.MustFromRows(rows)
	}
	c, err := enumerate.NewCone(m)
	require.NoError(t, err)
	return c
}

func texts(vs []vector.Vector) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func sorted(vs ...vector.Vector) []string { return texts(vs) }

func TestExtremeRays(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		rows [][]int64
		cols int
		cons enumerate.Constraints
		want []string
	}{
		{
			name: "Square",
			rows: [][]int64{{1, 1, -1, -1}},
			want: sorted(vector.Of(0, 1, 0, 1), vector.Of(0, 1, 1, 0), vector.Of(1, 0, 0, 1), vector.Of(1, 0, 1, 0)),
		},
		{
			name: "Wedge",
			rows: [][]int64{{1, 1, -2}},
			want: sorted(vector.Of(0, 2, 1), vector.Of(2, 0, 1)),
		},
		{
			name: "Line",
			rows: [][]int64{{1, -1, 0}, {0, 1, -1}},
			want: sorted(vector.Of(1, 1, 1)),
		},
		{
			name: "Orthant",
			cols: 3,
			want: sorted(vector.Of(0, 0, 1), vector.Of(0, 1, 0), vector.Of(1, 0, 0)),
		},
		{
			name: "SquareConstrained",
			rows: [][]int64{{1, 1, -1, -1}},
			cons: enumerate.Constraints{{0, 1}},
			want: sorted(vector.Of(0, 1, 0, 1), vector.Of(0, 1, 1, 0), vector.Of(1, 0, 0, 1), vector.Of(1, 0, 1, 0)),
		},
		{
			name: "SquareForbidden",
			rows: [][]int64{{1, 1, -1, -1}},
			cons: enumerate.Constraints{{0, 2}},
			want: sorted(vector.Of(0, 1, 0, 1), vector.Of(0, 1, 1, 0), vector.Of(1, 0, 0, 1)),
		},
		{
			name: "Empty",
			rows: [][]int64{{1, 1}},
			want: []string{},
		},
	}
	for _, tc := range cases {
		for name, alg := range rayAlgorithms {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				t.Parallel()
				c := mustCone(t, tc.rows, tc.cols)
				res, err := alg(context.Background(), c, tc.cons)
				require.NoError(t, err)
				assert.False(t, res.Cancelled)
				got := texts(res.Vectors)
				if name == "TreeTraversal" {
					got = texts(sortVectors(res.Vectors))
				}
				if diff := cmp.Diff(tc.want, got); diff != "" {
					t.Errorf("rays mismatch (-want +got):\n%s", diff)
				}
				for _, v := range res.Vectors {
					assert.True(t, c.Contains(v), "ray %s outside cone", v)
					assert.True(t, tc.cons.AdmitsVector(v))
				}
			})
		}
	}
}

func sortVectors(vs []vector.Vector) []vector.Vector {
	out := append([]vector.Vector(nil), vs...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Compare(out[j-1]) < 0; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func TestTreeTraversalOrder(t *testing.T) {
	t.Parallel()
	var streamed []string
	res, err := enumerate.TreeTraversal(context.Background(), mustCone(t, [][]int64{{1, 1, -2}}, 0), nil,
		enumerate.WithEmit(func(v vector.Vector) { streamed = append(streamed, v.String()) }))
	require.NoError(t, err)
	want := sorted(vector.Of(0, 2, 1), vector.Of(2, 0, 1))
	assert.Equal(t, want, texts(res.Vectors))
	assert.Equal(t, want, streamed)
}

func TestHilbertBasis(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		rows [][]int64
		cols int
		cons enumerate.Constraints
		want []string
	}{
		{
			name: "Square",
			rows: [][]int64{{1, 1, -1, -1}},
			want: sorted(vector.Of(0, 1, 0, 1), vector.Of(0, 1, 1, 0), vector.Of(1, 0, 0, 1), vector.Of(1, 0, 1, 0)),
		},
		{
			name: "Wedge",
			rows: [][]int64{{1, 1, -2}},
			want: sorted(vector.Of(0, 2, 1), vector.Of(1, 1, 1), vector.Of(2, 0, 1)),
		},
		{
			name: "WedgeConstrained",
			rows: [][]int64{{1, 1, -2}},
			cons: enumerate.Constraints{{0, 1}},
			want: sorted(vector.Of(0, 2, 1), vector.Of(2, 0, 1)),
		},
		{
			name: "Line",
			rows: [][]int64{{1, -1, 0}, {0, 1, -1}},
			want: sorted(vector.Of(1, 1, 1)),
		},
		{
			name: "Skewed",
			rows: [][]int64{{3, -2, -1}},
			want: sorted(vector.Of(1, 0, 3), vector.Of(1, 1, 1), vector.Of(2, 3, 0)),
		},
		{
			name: "TwoBlocks",
			rows: [][]int64{{1, -1, 0, 0}, {0, 0, 1, -2}},
			want: sorted(vector.Of(0, 0, 2, 1), vector.Of(1, 1, 0, 0)),
		},
		{
			name: "Orthant",
			cols: 2,
			want: sorted(vector.Of(0, 1), vector.Of(1, 0)),
		},
	}
	for _, tc := range cases {
		for name, alg := range hilbertAlgorithms {
			t.Run(tc.name+"/"+name, func(t *testing.T) {
				t.Parallel()
				c := mustCone(t, tc.rows, tc.cols)
				res, err := alg(context.Background(), c, tc.cons)
				require.NoError(t, err)
				assert.False(t, res.Cancelled)
				if diff := cmp.Diff(tc.want, texts(res.Vectors)); diff != "" {
					t.Errorf("basis mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestEmitMatchesResult(t *testing.T) {
	t.Parallel()
	for name, alg := range hilbertAlgorithms {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var n int
			res, err := alg(context.Background(), mustCone(t, [][]int64{{1, 1, -2}}, 0), nil,
				enumerate.WithEmit(func(vector.Vector) { n++ }))
			require.NoError(t, err)
			assert.Equal(t, len(res.Vectors), n)
		})
	}
}

func TestCancelled(t *testing.T) {
	t.Parallel()
	all := map[string]algorithm{}
	for k, v := range rayAlgorithms {
		all[k] = v
	}
	for k, v := range hilbertAlgorithms {
		all[k] = v
	}
	for name, alg := range all {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tr := progress.NewTracker()
			tr.Cancel()
			res, err := alg(context.Background(), mustCone(t, [][]int64{{1, 1, -2}}, 0), nil, enumerate.WithTracker(tr))
			require.NoError(t, err)
			assert.True(t, res.Cancelled)
			assert.Empty(t, res.Vectors)
			assert.False(t, tr.IsFinished())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res, err = alg(ctx, mustCone(t, [][]int64{{1, 1, -2}}, 0), nil)
			require.NoError(t, err)
			assert.True(t, res.Cancelled)
		})
	}
}

func TestHilbertCDKeepsPartialBasis(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var streamed []string
	res, err := enumerate.HilbertCD(ctx, mustCone(t, [][]int64{{3, -2, -1}}, 0), nil,
		enumerate.WithEmit(func(v vector.Vector) {
			streamed = append(streamed, v.String())
			cancel()
		}))
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Equal(t, sorted(vector.Of(1, 1, 1)), texts(res.Vectors))
	assert.Equal(t, texts(res.Vectors), streamed)
}

func TestHilbertCDStreamsByDepth(t *testing.T) {
	t.Parallel()
	var streamed []string
	res, err := enumerate.HilbertCD(context.Background(), mustCone(t, [][]int64{{3, -2, -1}}, 0), nil,
		enumerate.WithEmit(func(v vector.Vector) { streamed = append(streamed, v.String()) }))
	require.NoError(t, err)
	assert.False(t, res.Cancelled)
	assert.Equal(t, sorted(vector.Of(1, 1, 1), vector.Of(1, 0, 3), vector.Of(2, 3, 0)), streamed)
	assert.Equal(t, sorted(vector.Of(1, 0, 3), vector.Of(1, 1, 1), vector.Of(2, 3, 0)), texts(res.Vectors))
}

func TestTrackerFinished(t *testing.T) {
	t.Parallel()
	tr := progress.NewTracker()
	_, err := enumerate.DoubleDescription(context.Background(), mustCone(t, [][]int64{{1, 1, -2}}, 0), nil,
		enumerate.WithTracker(tr))
	require.NoError(t, err)
	assert.True(t, tr.IsFinished())
	assert.InDelta(t, 100, tr.Percent(), 1e-9)
}

func TestInvalidArguments(t *testing.T) {
	t.Parallel()
	_, err := enumerate.NewCone(nil)
	assert.ErrorIs(t, err, enumerate.ErrInvalidArgument)
	_, err = enumerate.NewCone(matrix.Zeros(1, 0))
	assert.ErrorIs(t, err, enumerate.ErrInvalidArgument)

	c := mustCone(t, [][]int64{{1, -1}}, 0)
	_, err = enumerate.DoubleDescription(context.Background(), c, enumerate.Constraints{{0, 5}})
	assert.ErrorIs(t, err, enumerate.ErrInvalidArgument)

	//nolint:staticcheck // a nil context is the point of the test
	_, err = enumerate.HilbertDual(context.Background(), c, nil, enumerate.WithContext(nil))
	assert.ErrorIs(t, err, enumerate.ErrOptionViolation)
}

func TestConstraintsAdmit(t *testing.T) {
	t.Parallel()
	cons := enumerate.Constraints{{0, 1, 2}, {3, 4}}
	assert.True(t, cons.Admits([]bool{true, false, false, true, false}))
	assert.False(t, cons.Admits([]bool{true, true, false, false, false}))
	assert.False(t, cons.AdmitsVector(vector.Of(0, 0, 0, 2, 1)))
	assert.True(t, enumerate.Constraints(nil).AdmitsVector(vector.Of(1, 1)))
}

func TestTypeTrie(t *testing.T) {
	t.Parallel()
	tr := enumerate.NewTypeTrie()
	assert.False(t, tr.Dominates([]int{1, 2, 3}))

	tr.Insert([]int{0, 2, 0, 0})
	tr.Insert([]int{1, 0, 3})
	tr.Insert([]int{0, 2})
	assert.Equal(t, 2, tr.Len())

	assert.True(t, tr.Dominates([]int{0, 2}))
	assert.True(t, tr.Dominates([]int{3, 2, 1}))
	assert.True(t, tr.Dominates([]int{1, 1, 3, 4}))
	assert.False(t, tr.Dominates([]int{1, 1, 2}))
	assert.False(t, tr.Dominates([]int{0, 1, 3}))
	assert.False(t, tr.Dominates(nil))

	tr.Reset()
	assert.Equal(t, 0, tr.Len())
	assert.False(t, tr.Dominates([]int{0, 2}))
}
