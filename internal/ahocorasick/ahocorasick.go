// Package ahocorasick implements a byte-level Aho–Corasick automaton
// specialized for WordPiece longest-prefix matching.
//
// Build inserts keywords into a growable node pool, folds failure links
// into the transition table with a breadth-first pass, then freezes the
// result into flat parallel arrays for cache-dense traversal. Search
// deliberately follows only edges created by insertion (explicit edges):
// WordPiece must fail a word outright when no vocabulary token continues
// the current prefix, so failure-link pivots to mid-keyword states are
// never taken.
package ahocorasick

// buildNode is the mutable representation used while inserting keywords.
type buildNode struct {
	next     [256]int32
	explicit [4]uint64
	fail     int32
	vocabID  int32
	length   int32
}

// Automaton is the frozen matcher. Immutable and safe for concurrent use.
type Automaton struct {
	// goto_ holds states*256 transitions; every entry is defined.
	goto_ []int32
	// explicit holds states*4 words of the explicit-edge bitset.
	explicit []uint64
	// vocabID is -1 for non-accepting states.
	vocabID []int32
	// length is the keyword byte length at accepting states.
	length []int32
}

// Builder accumulates keywords before Build.
type Builder struct {
	nodes []buildNode
}

// NewBuilder returns a Builder holding only the root state.
func NewBuilder() *Builder {
	b := &Builder{}
	b.nodes = append(b.nodes, newBuildNode())
	return b
}

func newBuildNode() buildNode {
	n := buildNode{vocabID: -1}
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

// Insert adds keyword with the given vocabulary id. Inserting the same
// keyword twice keeps the first id.
func (b *Builder) Insert(keyword []byte, id int32) {
	s := int32(0)
	for _, c := range keyword {
		t := b.nodes[s].next[c]
		if t < 0 {
			t = int32(len(b.nodes))
			b.nodes = append(b.nodes, newBuildNode())
			b.nodes[s].next[c] = t
			b.nodes[s].explicit[c>>6] |= 1 << (c & 63)
		}
		s = t
	}

	if b.nodes[s].vocabID < 0 {
		b.nodes[s].vocabID = id
		b.nodes[s].length = int32(len(keyword))
	}
}

// Build computes failure links, folds them into the transition table so
// traversal needs no fallback loop, and freezes the flat arrays.
func (b *Builder) Build() *Automaton {
	nodes := b.nodes

	// Depth 1: missing root edges loop back to the root; present edges
	// fail to the root.
	queue := make([]int32, 0, len(nodes))
	for c := 0; c < 256; c++ {
		t := nodes[0].next[c]
		if t < 0 {
			nodes[0].next[c] = 0
			continue
		}
		nodes[t].fail = 0
		queue = append(queue, t)
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for c := 0; c < 256; c++ {
			t := nodes[s].next[c]
			if t < 0 {
				// Fold the failure transition in place.
				nodes[s].next[c] = nodes[nodes[s].fail].next[c]
				continue
			}
			nodes[t].fail = nodes[nodes[s].fail].next[c]
			queue = append(queue, t)
		}
	}

	a := &Automaton{
		goto_:    make([]int32, len(nodes)*256),
		explicit: make([]uint64, len(nodes)*4),
		vocabID:  make([]int32, len(nodes)),
		length:   make([]int32, len(nodes)),
	}
	for i := range nodes {
		copy(a.goto_[i*256:], nodes[i].next[:])
		copy(a.explicit[i*4:], nodes[i].explicit[:])
		a.vocabID[i] = nodes[i].vocabID
		a.length[i] = nodes[i].length
	}
	return a
}

// States returns the number of states.
func (a *Automaton) States() int {
	return len(a.vocabID)
}

// Search scans bytes[start:] from the root and returns the byte length
// and vocabulary id of the longest inserted keyword that prefixes it.
// Only explicit edges are followed; the walk stops at the first byte with
// no explicit continuation. Returns (0, -1) when no keyword matches.
func (a *Automaton) Search(bytes []byte, start int) (matchedLen int, matchedID int32) {
	matchedID = -1

	s := int32(0)
	for i := start; i < len(bytes); i++ {
		c := bytes[i]
		if a.explicit[int(s)*4+int(c>>6)]&(1<<(c&63)) == 0 {
			break
		}
		s = a.goto_[int(s)*256+int(c)]
		if id := a.vocabID[s]; id >= 0 {
			matchedLen = i + 1 - start
			matchedID = id
		}
	}

	return matchedLen, matchedID
}
