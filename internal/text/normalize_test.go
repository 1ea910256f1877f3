package text

import (
	"reflect"
	"testing"
)

func newTestNormalizer(t *testing.T, lower, cjk bool) *Normalizer {
	t.Helper()

	n, err := NewNormalizer(lower, cjk)
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	return n
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		cjk  bool
		in   string
		want string
	}{
		{"plain", true, "hello", "hello"},
		{"whitespace collapses", true, "a \t\n b", "a b"},
		{"control dropped", true, "a\x01b\x7Fc", "abc"},
		{"nul dropped", true, "a\x00b", "ab"},
		{"replacement char dropped", true, "a�b", "ab"},
		{"line separator dropped", true, "a b c", "abc"},
		{"cjk isolated", true, "ab世界cd", "ab 世 界 cd"},
		{"cjk off", false, "ab世界cd", "ab世界cd"},
		{"nbsp is whitespace", true, "a b", "a b"},
		{"malformed utf8 dropped", true, "a\xC0\x80b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNormalizer(t, true, tt.cjk)

			got := string(n.Clean(nil, []byte(tt.in)))
			if got != tt.want {
				t.Errorf("Clean(%q) = %q; want %q", tt.in, got, tt.want)
			}

			// Cleaning must be idempotent.
			again := string(n.Clean(nil, []byte(got)))
			if again != got {
				t.Errorf("Clean not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestEachWord(t *testing.T) {
	var words []string
	EachWord([]byte("  one two\tthree\r\n four "), func(w []byte) bool {
		words = append(words, string(w))
		return true
	})

	want := []string{"one", "two", "three", "four"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("EachWord = %v; want %v", words, want)
	}
}

func TestEachWordEarlyStop(t *testing.T) {
	var words []string
	EachWord([]byte("one two three"), func(w []byte) bool {
		words = append(words, string(w))
		return len(words) < 2
	})

	if len(words) != 2 {
		t.Errorf("EachWord emitted %d words after stop; want 2", len(words))
	}
}

func TestLowerWord(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "HeLLo", "hello"},
		{"latin1 accent", "Café", "cafe"},
		{"latin1 umlaut", "Über", "uber"},
		{"beyond latin1", "ĆaФé", "caфe"},
		{"cjk untouched", "世界", "世界"},
	}

	n := newTestNormalizer(t, true, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(n.LowerWord(nil, []byte(tt.in)))
			if got != tt.want {
				t.Errorf("LowerWord(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitPunct(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"no punct", "hello", []string{"hello"}},
		{"trailing punct", "world!", []string{"world", "!"}},
		{"interior punct", "a,b", []string{"a", ",", "b"}},
		{"consecutive punct", "a!?b", []string{"a", "!", "?", "b"}},
		{"only punct", "!!", []string{"!", "!"}},
		{"unicode quote", "he“said", []string{"he", "“", "said"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			SplitPunct([]byte(tt.in), func(sub []byte) bool {
				got = append(got, string(sub))
				return true
			})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitPunct(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEachSubWord(t *testing.T) {
	n := newTestNormalizer(t, true, true)

	var got []string
	n.EachSubWord([]byte("Hello, 世界!"), func(sub []byte) bool {
		got = append(got, string(sub))
		return true
	})

	want := []string{"hello", ",", "世", "界", "!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EachSubWord = %v; want %v", got, want)
	}
}

func TestEachSubWordBudget(t *testing.T) {
	n := newTestNormalizer(t, true, true)

	var got []string
	n.EachSubWord([]byte("one two three four"), func(sub []byte) bool {
		got = append(got, string(sub))
		return len(got) < 3
	})

	if len(got) != 3 {
		t.Errorf("emitted %d sub-words after budget; want 3", len(got))
	}
}
