// Package text implements the Unicode plumbing shared by the tokenizer
// engines: a validating UTF-8 code point iterator, the BERT character-class
// tables, accent/case folding and the basic text normalizer.
package text

// leaderLen maps a UTF-8 leading byte to its expected sequence length.
// Bytes that cannot start a sequence (continuations, 0xC0/0xC1, 0xF5+) map
// to 1 and are treated as invalid leaders during decode.
var leaderLen = func() [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = 1
	}
	for i := 0xC2; i <= 0xDF; i++ {
		t[i] = 2
	}
	for i := 0xE0; i <= 0xEF; i++ {
		t[i] = 3
	}
	for i := 0xF0; i <= 0xF4; i++ {
		t[i] = 4
	}
	return t
}()

// DecodeCodePoint reads one code point from b starting at offset i.
// It returns the code point and the number of bytes consumed.
//
// Malformed input (invalid leader, bad continuation byte, overlong
// encoding, surrogate, code point above U+10FFFF, or a sequence truncated
// by the end of b) yields code point 0 with size 1 so that callers skip a
// single byte and resynchronize.
func DecodeCodePoint(b []byte, i int) (cp rune, size int) {
	c := b[i]
	n := int(leaderLen[c])

	if n == 1 {
		if c < 0x80 {
			return rune(c), 1
		}
		return 0, 1 // invalid leader
	}

	if i+n > len(b) {
		return 0, 1 // truncated sequence
	}

	cp = rune(c & (0x7F >> uint(n)))
	for k := 1; k < n; k++ {
		cc := b[i+k]
		if cc&0xC0 != 0x80 {
			return 0, 1
		}
		cp = cp<<6 | rune(cc&0x3F)
	}

	switch n {
	case 2:
		if cp < 0x80 {
			return 0, 1
		}
	case 3:
		if cp < 0x800 {
			return 0, 1
		}
	case 4:
		if cp < 0x10000 || cp > 0x10FFFF {
			return 0, 1
		}
	}

	if cp >= 0xD800 && cp <= 0xDFFF {
		return 0, 1 // surrogate
	}

	return cp, n
}
