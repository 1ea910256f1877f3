package bpe

// Byte-level alphabet: every byte maps to a printable rune so that BPE
// merge tables can be stored as plain text. Printable Latin-1 bytes map
// to themselves; the rest shift into the U+0100 plane in byte order
// (0x20 becomes U+0120 'Ġ', 0x0A becomes U+010A 'Ċ').
var (
	byteToRune [256]rune
	runeToByte map[rune]byte
)

func init() {
	printable := func(b int) bool {
		return (b >= 0x21 && b <= 0x7E) || (b >= 0xA1 && b <= 0xAC) || (b >= 0xAE && b <= 0xFF)
	}

	runeToByte = make(map[rune]byte, 256)
	next := rune(0x100)
	for b := 0; b < 256; b++ {
		r := rune(b)
		if !printable(b) {
			r = next
			next++
		}
		byteToRune[b] = r
		runeToByte[r] = byte(b)
	}
}

// encodeBytes maps each byte of s to its alphabet rune.
func encodeBytes(s string) []rune {
	out := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = byteToRune[s[i]]
	}
	return out
}

// decodeRunes inverts the byte alphabet. Runes outside the alphabet are
// skipped.
func decodeRunes(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := runeToByte[r]; ok {
			out = append(out, b)
		}
	}
	return out
}
