// Package bpe implements a GPT-2 style byte-level byte-pair-encoding
// tokenizer: regex pre-tokenization, the printable byte alphabet, and a
// rank-ordered merge loop over a priority queue.
package bpe

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/v2/trees/binaryheap"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/example/go-flashtok/internal/vocab"
)

// DefaultCacheSize bounds the per-engine pre-token result cache.
const DefaultCacheSize = 8192

// Options configures an Engine.
type Options struct {
	// CacheSize bounds the pre-token cache (0 selects the default).
	CacheSize int
}

// Engine is an immutable byte-level BPE tokenizer, safe for concurrent
// use. Identical pre-tokens resolve through an LRU cache, which pays off
// on natural text where a small set of words dominates.
type Engine struct {
	vocab  *vocab.BPEVocabulary
	merges *vocab.Merges
	cache  *lru.Cache[string, []int32]
}

// New builds an Engine from a vocab.json and a merges.txt file.
func New(vocabPath, mergesPath string, opts Options) (*Engine, error) {
	v, err := vocab.LoadBPE(vocabPath)
	if err != nil {
		return nil, err
	}
	m, err := vocab.LoadMerges(mergesPath)
	if err != nil {
		return nil, err
	}
	return NewFromTables(v, m, opts)
}

// NewFromTables builds an Engine over already-loaded tables.
func NewFromTables(v *vocab.BPEVocabulary, m *vocab.Merges, opts Options) (*Engine, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []int32](size)
	if err != nil {
		return nil, fmt.Errorf("build bpe cache: %w", err)
	}

	return &Engine{vocab: v, merges: m, cache: cache}, nil
}

// Encode tokenizes s: the text is split into pre-tokens, each pre-token
// is mapped through the byte alphabet and merged by rank, and the
// resulting symbols are looked up in the vocabulary. Symbols without a
// vocabulary entry are dropped.
func (e *Engine) Encode(s string) ([]int32, error) {
	pieces, err := pretokenize(s)
	if err != nil {
		return nil, fmt.Errorf("pretokenize: %w", err)
	}

	ids := make([]int32, 0, len(pieces)*2)
	for _, piece := range pieces {
		if cached, ok := e.cache.Get(piece); ok {
			ids = append(ids, cached...)
			continue
		}

		pieceIDs := e.encodePiece(piece)
		e.cache.Add(piece, pieceIDs)
		ids = append(ids, pieceIDs...)
	}
	return ids, nil
}

// symbol is a node of the in-place merge list. A merged-away node keeps
// its slot with empty runes so heap entries can detect staleness.
type symbol struct {
	prev, next int
	runes      []rune
}

// pairing is a heap entry: merge the symbols at left and right if they
// are still adjacent and still spell value.
type pairing struct {
	left, right int
	rank        int
	value       string
}

// encodePiece runs the merge loop for one pre-token and resolves the
// surviving symbols to ids.
func (e *Engine) encodePiece(piece string) []int32 {
	encoded := encodeBytes(piece)

	symbols := make([]symbol, len(encoded))
	for i, r := range encoded {
		symbols[i] = symbol{prev: i - 1, next: i + 1, runes: []rune{r}}
	}

	queue := binaryheap.NewWith(func(a, b *pairing) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		return a.left - b.left
	})

	pairAt := func(left, right int) *pairing {
		if left < 0 || right >= len(symbols) {
			return nil
		}
		l, r := string(symbols[left].runes), string(symbols[right].runes)
		rank := e.merges.Rank(l, r)
		if rank < 0 {
			return nil
		}
		return &pairing{left: left, right: right, rank: rank, value: l + r}
	}

	for i := 0; i+1 < len(symbols); i++ {
		if p := pairAt(i, i+1); p != nil {
			queue.Push(p)
		}
	}

	for !queue.Empty() {
		p, _ := queue.Pop()

		left, right := symbols[p.left], symbols[p.right]
		if len(left.runes) == 0 || len(right.runes) == 0 ||
			string(left.runes)+string(right.runes) != p.value {
			continue // stale entry, one side already merged
		}

		symbols[p.left].runes = append(left.runes, right.runes...)
		symbols[p.right].runes = nil
		symbols[p.left].next = right.next
		if right.next < len(symbols) {
			symbols[right.next].prev = p.left
		}

		if np := pairAt(left.prev, p.left); np != nil {
			queue.Push(np)
		}
		if np := pairAt(p.left, right.next); np != nil {
			queue.Push(np)
		}
	}

	var ids []int32
	for _, sym := range symbols {
		if len(sym.runes) == 0 {
			continue
		}
		if id, ok := e.vocab.IDOf(string(sym.runes)); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Tokenize returns the merged symbol strings for s, before vocabulary
// lookup.
func (e *Engine) Tokenize(s string) ([]string, error) {
	ids, err := e.Encode(s)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = e.vocab.TokenOf(id)
	}
	return tokens, nil
}

// Decode reconstructs text from ids: tokens are concatenated and mapped
// back through the byte alphabet. Unknown ids and runes outside the
// alphabet are skipped.
func (e *Engine) Decode(ids []int32) string {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(e.vocab.TokenOf(id))
	}
	return string(decodeRunes(sb.String()))
}
