// Package wordpiece implements greedy WordPiece subword segmentation over
// a pair of Aho–Corasick automata: one for word-initial tokens and one
// for "##" suffix tokens.
package wordpiece

import (
	"strings"

	"github.com/example/go-flashtok/internal/ahocorasick"
	"github.com/example/go-flashtok/internal/vocab"
)

// SuffixPrefix marks continuation tokens in a WordPiece vocabulary. The
// prefix is structural: the automata index suffix tokens by the bytes
// after it.
const SuffixPrefix = "##"

// DefaultMaxWordBytes caps the byte length of a single word; longer words
// segment to [UNK] without being scanned.
const DefaultMaxWordBytes = 100

// Segmenter splits single words into vocabulary ids. Immutable after
// construction and safe for concurrent use.
type Segmenter struct {
	initial *ahocorasick.Automaton
	suffix  *ahocorasick.Automaton

	unkID        int32
	maxWordBytes int
}

// NewSegmenter indexes every non-special vocabulary entry into the
// initial or suffix automaton. maxWordBytes <= 0 selects
// DefaultMaxWordBytes.
func NewSegmenter(v *vocab.Vocabulary, maxWordBytes int) *Segmenter {
	if maxWordBytes <= 0 {
		maxWordBytes = DefaultMaxWordBytes
	}

	initial := ahocorasick.NewBuilder()
	suffix := ahocorasick.NewBuilder()

	for id, token := range v.Tokens() {
		switch token {
		case vocab.PadToken, vocab.UnkToken, vocab.ClsToken, vocab.SepToken:
			continue
		}

		if rest, ok := strings.CutPrefix(token, SuffixPrefix); ok {
			if rest != "" {
				suffix.Insert([]byte(rest), int32(id))
			}
			continue
		}
		initial.Insert([]byte(token), int32(id))
	}

	return &Segmenter{
		initial:      initial.Build(),
		suffix:       suffix.Build(),
		unkID:        v.Specials().Unk,
		maxWordBytes: maxWordBytes,
	}
}

// UnkID returns the id emitted for unsegmentable words.
func (s *Segmenter) UnkID() int32 {
	return s.unkID
}

// appendCapped appends id to dst unless the cap is reached. maxLen <= 0
// means unbounded.
func appendCapped(dst []int32, id int32, maxLen int) []int32 {
	if maxLen > 0 && len(dst) >= maxLen {
		return dst
	}
	return append(dst, id)
}

// Forward segments word left to right by greedy longest match and appends
// the resulting ids to dst, which is returned. If any position has no
// matching token the whole word rolls back to a single [UNK]. dst never
// grows beyond maxLen ids (maxLen <= 0 means unbounded); matches found
// after the cap is hit are consumed without being appended.
func (s *Segmenter) Forward(dst []int32, word []byte, maxLen int) []int32 {
	if len(word) > s.maxWordBytes {
		return appendCapped(dst, s.unkID, maxLen)
	}

	rollback := len(dst)

	for start := 0; start < len(word); {
		au := s.initial
		if start > 0 {
			au = s.suffix
		}

		matchedLen, matchedID := au.Search(word, start)
		if matchedID < 0 {
			dst = dst[:rollback]
			return appendCapped(dst, s.unkID, maxLen)
		}

		dst = appendCapped(dst, matchedID, maxLen)
		start += matchedLen
	}

	return dst
}

// Backward segments word right to left: at each position it takes the
// longest span ending there that a whole token matches exactly, pushing
// ids onto a stack that is emitted in left-to-right order. Falls back to
// [UNK] when any position cannot be covered.
func (s *Segmenter) Backward(dst []int32, word []byte, maxLen int) []int32 {
	if len(word) > s.maxWordBytes {
		return appendCapped(dst, s.unkID, maxLen)
	}

	var stack []int32

	for pos := len(word); pos > 0; {
		matched := false
		for i := 0; i < pos; i++ {
			au := s.initial
			if i > 0 {
				au = s.suffix
			}

			matchedLen, matchedID := au.Search(word[:pos], i)
			if matchedID >= 0 && matchedLen == pos-i {
				stack = append(stack, matchedID)
				pos = i
				matched = true
				break
			}
		}

		if !matched {
			return appendCapped(dst, s.unkID, maxLen)
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		dst = appendCapped(dst, stack[i], maxLen)
	}
	return dst
}
