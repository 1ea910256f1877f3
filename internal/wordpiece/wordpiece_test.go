package wordpiece

import (
	"reflect"
	"strings"
	"testing"

	"github.com/example/go-flashtok/internal/vocab"
)

// newTestSegmenter builds a segmenter over the canonical specials at ids
// 0-3 followed by the given tokens at ids 4, 5, ...
func newTestSegmenter(t *testing.T, maxWordBytes int, tokens ...string) *Segmenter {
	t.Helper()

	all := append([]string{"[PAD]", "[UNK]", "[CLS]", "[SEP]"}, tokens...)
	v, err := vocab.Read(strings.NewReader(strings.Join(all, "\n") + "\n"))
	if err != nil {
		t.Fatalf("vocab.Read: %v", err)
	}
	return NewSegmenter(v, maxWordBytes)
}

func TestForward(t *testing.T) {
	s := newTestSegmenter(t, 0,
		"hello",  // 4
		"un",     // 5
		"##aff",  // 6
		"##able", // 7
		"##lo",   // 8
	)

	tests := []struct {
		name string
		word string
		want []int32
	}{
		{"whole word in vocab", "hello", []int32{4}},
		{"three piece split", "unaffable", []int32{5, 6, 7}},
		{"unknown word", "zzz", []int32{1}},
		{"rollback after partial match", "unaffz", []int32{1}},
		{"initial only at offset zero", "affable", []int32{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Forward(nil, []byte(tt.word), 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Forward(%q) = %v; want %v", tt.word, got, tt.want)
			}
		})
	}
}

// Every vocabulary word without the suffix prefix and within the cap
// segments to exactly its own id.
func TestForwardVocabWordsAreSingleIDs(t *testing.T) {
	words := []string{"hello", "world", "tokenizer", "a"}
	s := newTestSegmenter(t, 0, words...)

	for i, w := range words {
		got := s.Forward(nil, []byte(w), 0)
		want := []int32{int32(4 + i)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Forward(%q) = %v; want %v", w, got, want)
		}
	}
}

func TestForwardWordOverByteCap(t *testing.T) {
	s := newTestSegmenter(t, 4, "hello")

	got := s.Forward(nil, []byte("hello"), 0)
	if !reflect.DeepEqual(got, []int32{1}) {
		t.Errorf("Forward over cap = %v; want [1]", got)
	}
}

func TestForwardRespectsOutputCap(t *testing.T) {
	s := newTestSegmenter(t, 0, "un", "##aff", "##able")

	dst := s.Forward([]int32{99}, []byte("unaffable"), 3)
	if want := []int32{99, 4, 5}; !reflect.DeepEqual(dst, want) {
		t.Errorf("Forward capped = %v; want %v", dst, want)
	}
}

func TestBackward(t *testing.T) {
	s := newTestSegmenter(t, 0,
		"a",     // 4
		"##bc",  // 5
		"un",    // 6
		"##aff", // 7
		"ab",    // 8
		"##c",   // 9
	)

	tests := []struct {
		name string
		word string
		want []int32
	}{
		// Backward takes the longest span ending at the right edge:
		// "bc" beats "c", then "a" finishes the word.
		{"prefers longer right span", "abc", []int32{4, 5}},
		{"single token", "a", []int32{4}},
		{"unknown", "zz", []int32{1}},
		{"no initial cover fails", "bc", []int32{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Backward(nil, []byte(tt.word), 0)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Backward(%q) = %v; want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestBackwardWordOverByteCap(t *testing.T) {
	s := newTestSegmenter(t, 2, "abc")

	got := s.Backward(nil, []byte("abc"), 0)
	if !reflect.DeepEqual(got, []int32{1}) {
		t.Errorf("Backward over cap = %v; want [1]", got)
	}
}

func TestBidirectional(t *testing.T) {
	s := newTestSegmenter(t, 0,
		"a",     // 4
		"##bc",  // 5
		"un",    // 6
		"##aff", // 7
		"ab",    // 8
		"##c",   // 9
	)

	// Forward greedily takes "ab"+"##c" = [8 9]; backward finds the
	// right-anchored "a"+"##bc" = [4 5]. The backward split carries the
	// smaller minimum id and wins.
	got := s.Bidirectional(nil, []byte("abc"), 0)
	if want := []int32{4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("Bidirectional(abc) = %v; want %v", got, want)
	}

	// Identical segmentations short-circuit to forward.
	got = s.Bidirectional(nil, []byte("a"), 0)
	if want := []int32{4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Bidirectional(a) = %v; want %v", got, want)
	}
}

// When forward greedy dead-ends and rolls back to [UNK], the backward
// split that covers the word must win the arbitration.
func TestBidirectionalPrefersSplitOverUnknown(t *testing.T) {
	s := newTestSegmenter(t, 0,
		"a",    // 4
		"ab",   // 5
		"##bc", // 6
	)

	// Forward takes "ab" and finds no suffix for "c".
	if got := s.Forward(nil, []byte("abc"), 0); !reflect.DeepEqual(got, []int32{1}) {
		t.Fatalf("Forward(abc) = %v; want [1]", got)
	}

	got := s.Bidirectional(nil, []byte("abc"), 0)
	if want := []int32{4, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("Bidirectional(abc) = %v; want %v", got, want)
	}
}

func TestPrefer(t *testing.T) {
	tests := []struct {
		name string
		f, b []int32
		want bool
	}{
		{"equal prefers forward", []int32{4, 5}, []int32{4, 5}, true},
		{"unknown loses to split", []int32{1}, []int32{4, 5}, false},
		{"split beats unknown", []int32{4, 5}, []int32{1}, true},
		{"smaller min forward", []int32{4, 9}, []int32{5, 6}, true},
		{"smaller min backward", []int32{8, 9}, []int32{4, 5}, false},
		{"tie broken by filtered sequence", []int32{4, 9}, []int32{4, 7}, false},
		{"proper prefix wins", []int32{4}, []int32{4, 7}, true},
		{"specials filtered before compare", []int32{1, 5}, []int32{1, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prefer(tt.f, tt.b, 1); got != tt.want {
				t.Errorf("Prefer(%v, %v) = %v; want %v", tt.f, tt.b, got, tt.want)
			}
		})
	}
}

// The preference must be anti-symmetric on pairs with distinct sort keys.
func TestPreferAntiSymmetric(t *testing.T) {
	pairs := [][2][]int32{
		{{1}, {4, 5}},
		{{4, 9}, {5, 6}},
		{{4, 9}, {4, 7}},
		{{4}, {4, 7}},
		{{1, 5}, {1, 4}},
	}

	for _, p := range pairs {
		if Prefer(p[0], p[1], 1) == Prefer(p[1], p[0], 1) {
			t.Errorf("Prefer not anti-symmetric for %v vs %v", p[0], p[1])
		}
	}
}
