package text

import "testing"

func TestDecodeCodePoint(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		cp   rune
		size int
	}{
		{"ascii", []byte("A"), 'A', 1},
		{"two byte", []byte("é"), 0xE9, 2},
		{"three byte", []byte("世"), 0x4E16, 3},
		{"four byte", []byte("𐍈"), 0x10348, 4},
		{"nul byte", []byte{0x00}, 0, 1},
		{"overlong two byte", []byte{0xC0, 0x80}, 0, 1},
		{"overlong three byte", []byte{0xE0, 0x80, 0x80}, 0, 1},
		{"overlong four byte", []byte{0xF0, 0x80, 0x80, 0x80}, 0, 1},
		{"surrogate low bound", []byte{0xED, 0xA0, 0x80}, 0, 1},
		{"surrogate high bound", []byte{0xED, 0xBF, 0xBF}, 0, 1},
		{"above max code point", []byte{0xF4, 0x90, 0x80, 0x80}, 0, 1},
		{"bare continuation", []byte{0x80}, 0, 1},
		{"bad continuation", []byte{0xC3, 0x28}, 0, 1},
		{"truncated two byte", []byte{0xC3}, 0, 1},
		{"truncated three byte", []byte{0xE4, 0xB8}, 0, 1},
		{"invalid leader F5", []byte{0xF5, 0x80, 0x80, 0x80}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, size := DecodeCodePoint(tt.in, 0)
			if cp != tt.cp || size != tt.size {
				t.Errorf("DecodeCodePoint(% X) = (%#x, %d); want (%#x, %d)",
					tt.in, cp, size, tt.cp, tt.size)
			}
		})
	}
}

func TestDecodeCodePointMidBuffer(t *testing.T) {
	b := []byte("a世b")

	cp, size := DecodeCodePoint(b, 1)
	if cp != 0x4E16 || size != 3 {
		t.Fatalf("DecodeCodePoint(b, 1) = (%#x, %d); want (0x4e16, 3)", cp, size)
	}

	cp, size = DecodeCodePoint(b, 4)
	if cp != 'b' || size != 1 {
		t.Fatalf("DecodeCodePoint(b, 4) = (%#x, %d); want ('b', 1)", cp, size)
	}
}
