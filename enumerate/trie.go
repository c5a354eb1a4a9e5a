package enumerate

// TypeTrie stores type vectors, sequences of small non-negative integers
// where 0 means "absent", and answers dominance queries against them.
// Trailing zeros are not stored, so vectors of different lengths mix
// freely.
type TypeTrie struct {
	root trieNode
	n    int
}

type trieNode struct {
	child []*trieNode
	end   bool
}

// NewTypeTrie returns an empty trie.
func NewTypeTrie() *TypeTrie { return &TypeTrie{} }

func (nd *trieNode) at(v int) *trieNode {
	if v < len(nd.child) {
		return nd.child[v]
	}
	return nil
}

// Insert adds types to the trie.
func (t *TypeTrie) Insert(types []int) {
	last := len(types)
	for last > 0 && types[last-1] == 0 {
		last--
	}
	nd := &t.root
	for _, v := range types[:last] {
		if v >= len(nd.child) {
			grown := make([]*trieNode, v+1)
			copy(grown, nd.child)
			nd.child = grown
		}
		if nd.child[v] == nil {
			nd.child[v] = &trieNode{}
		}
		nd = nd.child[v]
	}
	if !nd.end {
		nd.end = true
		t.n++
	}
}

// Dominates reports whether some stored vector τ' satisfies
// τ'[i] ∈ {types[i], 0} for every i, that is, whether a stored vector is a
// sub-vector of types.
func (t *TypeTrie) Dominates(types []int) bool {
	return t.root.dominates(types, 0)
}

func (nd *trieNode) dominates(types []int, i int) bool {
	if nd.end {
		return true
	}
	if i == len(types) {
		return false
	}
	if c := nd.at(0); c != nil && c.dominates(types, i+1) {
		return true
	}
	if v := types[i]; v != 0 {
		if c := nd.at(v); c != nil && c.dominates(types, i+1) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct vectors stored.
func (t *TypeTrie) Len() int { return t.n }

// Reset empties the trie.
func (t *TypeTrie) Reset() {
	t.root = trieNode{}
	t.n = 0
}
