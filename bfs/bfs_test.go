package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/trimanifold/bfs"
)

// adj is a port graph where the port of an arc is its position in the list.
type adj [][]int

func (g adj) Order() int { return len(g) }

func (g adj) Arcs(v int) []bfs.Arc {
	out := make([]bfs.Arc, len(g[v]))
	for p, to := range g[v] {
		out[p] = bfs.Arc{To: to, Port: p}
	}
	return out
}

// cycle returns the undirected n-cycle with ports 0 (forward) and 1 (back).
func cycle(n int) adj {
	g := make(adj, n)
	for v := range g {
		g[v] = []int{(v + 1) % n, (v + n - 1) % n}
	}
	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	if _, err := bfs.BFS(nil, 0); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	if _, err := bfs.BFS(cycle(3), 3); !errors.Is(err, bfs.ErrStartVertexNotFound) {
		t.Errorf("missing start: want ErrStartVertexNotFound, got %v", err)
	}
	if _, err := bfs.BFS(cycle(3), 0, bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestCycleAndDepths covers a simple cycle and checks depths and ports.
func TestCycleAndDepths(t *testing.T) {
	res, err := bfs.BFS(cycle(4), 0)
	require.NoError(t, err)
	if want := []int{0, 1, 3, 2}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	assert.Equal(t, []int{0, 1, 2, 1}, res.Depth)
	assert.Equal(t, []int{-1, 0, 1, 0}, res.Parent)
	assert.Equal(t, []int{-1, 0, 0, 1}, res.ParentPort)
	assert.True(t, res.IsTreeArc(0, bfs.Arc{To: 1, Port: 0}))
	assert.False(t, res.IsTreeArc(3, bfs.Arc{To: 2, Port: 1}))

	path, err := res.PathTo(2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, path)
}

func TestMaxDepthAndFilter(t *testing.T) {
	res, err := bfs.BFS(cycle(6), 0, bfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 5}, res.Order)
	assert.False(t, res.Reached(3))
	_, err = res.PathTo(3)
	assert.Error(t, err)

	// forward arcs only
	res, err = bfs.BFS(cycle(4), 0, bfs.WithFilterArc(func(_ int, a bfs.Arc) bool { return a.Port == 0 }))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, res.Order)
}

func TestHooksAndCancellation(t *testing.T) {
	var enq, deq []int
	stop := errors.New("stop")
	_, err := bfs.BFS(cycle(5), 0,
		bfs.WithOnEnqueue(func(v, _ int) { enq = append(enq, v) }),
		bfs.WithOnDequeue(func(v, _ int) { deq = append(deq, v) }),
		bfs.WithOnVisit(func(v, _ int) error {
			if v == 4 {
				return stop
			}
			return nil
		}),
	)
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{0, 1, 4, 2}, enq)
	assert.Equal(t, []int{0, 1, 4}, deq)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(cycle(3), 0, bfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestComponents(t *testing.T) {
	g := adj{{1}, {0}, {}, {4}, {3}}
	labels, count, res, err := bfs.Components(g)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []int{0, 0, 1, 2, 2}, labels)
	assert.Equal(t, []int{-1, 0, -1, -1, 3}, res.Parent)
}
