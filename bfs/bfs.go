// Package bfs provides breadth-first search over port graphs, returning
// unweighted distances, parent links and visit order.
package bfs

import (
	"context"
	"fmt"
)

// queueItem pairs a vertex with its BFS depth.
type queueItem struct {
	v     int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph Graph
	opts  BFSOptions
	ctx   context.Context
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from start.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, or any user-supplied hook error.
func BFS(g Graph, start int, opts ...Option) (*BFSResult, error) {
	w, err := newWalker(g, opts)
	if err != nil {
		return nil, err
	}
	if start < 0 || start >= g.Order() {
		return nil, fmt.Errorf("%w: %d", ErrStartVertexNotFound, start)
	}
	w.enqueue(start, 0, -1, -1)
	return w.res, w.loop()
}

// Components labels each vertex with the index of its connected component.
// Components are numbered in order of their smallest vertex, and each is
// explored by BFS from that vertex. The returned result holds the combined
// forest.
func Components(g Graph, opts ...Option) (labels []int, count int, res *BFSResult, err error) {
	w, err := newWalker(g, opts)
	if err != nil {
		return nil, 0, nil, err
	}
	labels = make([]int, g.Order())
	for v := range labels {
		labels[v] = -1
	}
	for v := 0; v < g.Order(); v++ {
		if w.res.Depth[v] >= 0 {
			continue
		}
		first := len(w.res.Order)
		w.enqueue(v, 0, -1, -1)
		if err := w.loop(); err != nil {
			return nil, 0, nil, err
		}
		for _, u := range w.res.Order[first:] {
			labels[u] = count
		}
		count++
	}
	return labels, count, w.res, nil
}

func newWalker(g Graph, opts []Option) (*walker, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.Order()
	w := &walker{
		graph: g,
		opts:  o,
		ctx:   o.Ctx,
		queue: make([]queueItem, 0, n),
		res: &BFSResult{
			Order:      make([]int, 0, n),
			Depth:      make([]int, n),
			Parent:     make([]int, n),
			ParentPort: make([]int, n),
		},
	}
	for v := 0; v < n; v++ {
		w.res.Depth[v], w.res.Parent[v], w.res.ParentPort[v] = -1, -1, -1
	}
	return w, nil
}

// enqueue marks v visited at depth d, records its parent link, calls
// OnEnqueue and adds it to the queue.
func (w *walker) enqueue(v, d, parent, port int) {
	w.res.Depth[v] = d
	w.res.Parent[v] = parent
	w.res.ParentPort[v] = port
	w.opts.OnEnqueue(v, d)
	w.queue = append(w.queue, queueItem{v: v, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.v, item.depth)
	return item
}

// visit records the vertex in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.v)
	if err := w.opts.OnVisit(item.v, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %d: %w", item.v, err)
	}
	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each unseen
// neighbour.
func (w *walker) enqueueNeighbors(item queueItem) {
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return
	}
	for _, a := range w.graph.Arcs(item.v) {
		if !w.opts.FilterArc(item.v, a) {
			continue
		}
		if w.res.Depth[a.To] < 0 {
			w.enqueue(a.To, next, item.v, a.Port)
		}
	}
}
