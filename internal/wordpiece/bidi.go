package wordpiece

import "slices"

// structuralIDCount is the number of leading structural ids ([PAD],
// [UNK], [CLS], [SEP] in the canonical ordering) filtered out before the
// lexicographic comparison in Prefer.
const structuralIDCount = 4

// Prefer reports whether the forward segmentation f should win over the
// backward segmentation b for the same word, given the [UNK] id. Equal
// segmentations prefer forward. A segmentation that resorted to [UNK]
// loses to one that covered the word with real tokens. Otherwise the
// segmentation containing the smallest id wins; on a tie, the ids >= 4
// of each side are sorted ascending and compared lexicographically,
// smaller sequence first, with a proper prefix beating the longer
// sequence. The predicate is a total order: it favors known,
// low-frequency tokens over unknown-heavy segmentations.
func Prefer(f, b []int32, unkID int32) bool {
	if slices.Equal(f, b) {
		return true
	}

	fUnk, bUnk := slices.Contains(f, unkID), slices.Contains(b, unkID)
	if fUnk != bUnk {
		return bUnk
	}

	minF, minB := slices.Min(f), slices.Min(b)
	if minF != minB {
		return minF < minB
	}

	sf := filterSorted(f)
	sb := filterSorted(b)
	if c := slices.Compare(sf, sb); c != 0 {
		return c < 0
	}
	return true
}

func filterSorted(ids []int32) []int32 {
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		if id >= structuralIDCount {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// Bidirectional segments word both ways and appends the preferred
// segmentation to dst. Identical results short-circuit to the forward
// ids.
func (s *Segmenter) Bidirectional(dst []int32, word []byte, maxLen int) []int32 {
	fwd := s.Forward(nil, word, 0)
	bwd := s.Backward(nil, word, 0)

	winner := fwd
	if !Prefer(fwd, bwd, s.unkID) {
		winner = bwd
	}

	for _, id := range winner {
		dst = appendCapped(dst, id, maxLen)
	}
	return dst
}
