package triangulation

// ChangeMode says which cached data a change invalidates.
type ChangeMode int

const (
	// Unchanged marks edits that touch neither the gluings nor the labels
	// of vertices, such as renaming or locking.
	Unchanged ChangeMode = iota

	// TopologyPreserved marks edits that change the combinatorics but not
	// the underlying manifold: moves and relabellings. While such a span is
	// open the topological invariants are locked and survive inner spans.
	TopologyPreserved

	// AllCleared marks arbitrary edits.
	AllCleared
)

// ChangeSpan brackets one logical edit. Spans nest; cached data is dropped
// when the outermost span ends.
type ChangeSpan struct {
	tri   *Triangulation
	mode  ChangeMode
	ended bool
}

type spanState struct {
	depth      int
	topoLock   int
	dirtySkel  bool
	dirtyTopo  bool
	generation uint64
}

// BeginChange opens a change span. Callers must End it, typically with
// defer.
func (t *Triangulation) BeginChange(mode ChangeMode) *ChangeSpan {
	t.span.depth++
	if mode == TopologyPreserved {
		t.span.topoLock++
	}
	return &ChangeSpan{tri: t, mode: mode}
}

// End closes the span. Calling End twice is a no-op.
func (c *ChangeSpan) End() {
	if c.ended {
		return
	}
	c.ended = true
	t := c.tri
	switch c.mode {
	case TopologyPreserved:
		t.span.dirtySkel = true
		t.span.topoLock--
	case AllCleared:
		t.span.dirtySkel = true
		if t.span.topoLock == 0 {
			t.span.dirtyTopo = true
		}
	}
	t.span.depth--
	if t.span.depth > 0 {
		return
	}
	if t.span.dirtySkel {
		t.skelMu.Lock()
		t.skel = nil
		t.skelMu.Unlock()
		t.span.generation++
	}
	if t.span.dirtyTopo {
		t.topoMu.Lock()
		t.topo = topoCache{}
		t.topoMu.Unlock()
	}
	t.span.dirtySkel, t.span.dirtyTopo = false, false
}

// Generation counts completed changes that invalidated the skeleton. It
// lets callers detect that a triangulation was modified.
func (t *Triangulation) Generation() uint64 { return t.span.generation }
