package census

import (
	"context"
	"sync"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/trimanifold/triangulation"
)

// Entry is one census record. Blob holds optional JSON metadata.
type Entry struct {
	Sig  string          `json:"sig"`
	Name string          `json:"name"`
	Blob json.RawMessage `json:"blob,omitempty"`
}

// Meta decodes the metadata blob into v. An entry without a blob leaves v
// untouched.
func (e Entry) Meta(v any) error {
	if len(e.Blob) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Blob, v); err != nil {
		return censusErrorf("Meta", ErrInvalidArgument, "entry %q: %v", e.Name, err)
	}
	return nil
}

// Source answers signature lookups.
type Source interface {
	Lookup(ctx context.Context, sig string) ([]Entry, error)
}

// MemorySource is an in-memory Source. The zero value is empty and ready
// to use; it is safe for concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// NewMemorySource returns a source holding entries, in order.
func NewMemorySource(entries ...Entry) *MemorySource {
	m := &MemorySource{}
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

// Add appends e after any entries already stored under e.Sig.
func (m *MemorySource) Add(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]Entry)
	}
	m.entries[e.Sig] = append(m.entries[e.Sig], e)
}

// Len returns the number of stored entries.
func (m *MemorySource) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, es := range m.entries {
		n += len(es)
	}
	return n
}

func (m *MemorySource) Lookup(ctx context.Context, sig string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Entry{}, m.entries[sig]...), nil
}

// Multi searches each source in turn and concatenates the hits.
type Multi []Source

func (ms Multi) Lookup(ctx context.Context, sig string) ([]Entry, error) {
	out := []Entry{}
	for _, s := range ms {
		hits, err := s.Lookup(ctx, sig)
		if err != nil {
			return nil, err
		}
		out = append(out, hits...)
	}
	return out, nil
}

// LookupTriangulation looks up the isomorphism signature of t.
func LookupTriangulation(ctx context.Context, src Source, t *triangulation.Triangulation) ([]Entry, error) {
	if t == nil {
		return nil, censusErrorf("LookupTriangulation", ErrInvalidArgument, "nil triangulation")
	}
	return src.Lookup(ctx, t.IsoSig())
}
