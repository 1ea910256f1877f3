package text

import "fmt"

// Normalizer turns raw UTF-8 into the cleaned, whitespace-split,
// punctuation-split stream of candidate words that the WordPiece engine
// consumes. It is immutable after construction and safe to share.
type Normalizer struct {
	lowerCase   bool
	tokenizeCJK bool

	folder *Folder
	latin1 *[256]string
}

// NewNormalizer builds a Normalizer. lowerCase enables per-word
// lowercasing and accent stripping; tokenizeCJK isolates each CJK
// ideograph into its own word.
func NewNormalizer(lowerCase, tokenizeCJK bool) (*Normalizer, error) {
	folder, err := NewFolder()
	if err != nil {
		return nil, fmt.Errorf("build folder: %w", err)
	}

	return &Normalizer{
		lowerCase:   lowerCase,
		tokenizeCJK: tokenizeCJK,
		folder:      folder,
		latin1:      folder.Latin1(),
	}, nil
}

// Clean appends the cleaned form of src to dst and returns it. Cleaning
// drops NUL, U+FFFD, the line/paragraph separators and control characters,
// maps whitespace runs to a single space, and (when CJK tokenization is
// on) surrounds each CJK ideograph with spaces. Malformed UTF-8 decodes
// to code point 0 and is dropped byte by byte. Cleaning is idempotent:
// cleaning a cleaned buffer leaves it unchanged.
func (n *Normalizer) Clean(dst, src []byte) []byte {
	spaceEnded := func() bool {
		return len(dst) > 0 && dst[len(dst)-1] == ' '
	}

	for i := 0; i < len(src); {
		cp, size := DecodeCodePoint(src, i)

		switch {
		case cp == 0 || cp == 0xFFFD || cp == 0x2028 || cp == 0x2029 || IsControl(cp):
			// dropped
		case IsWhitespace(cp):
			if !spaceEnded() {
				dst = append(dst, ' ')
			}
		case n.tokenizeCJK && IsCJK(cp):
			if !spaceEnded() {
				dst = append(dst, ' ')
			}
			dst = append(dst, src[i:i+size]...)
			dst = append(dst, ' ')
		default:
			dst = append(dst, src[i:i+size]...)
		}

		i += size
	}
	return dst
}

// EachWord calls emit for every whitespace-separated word span of the
// cleaned buffer. Iteration stops when emit returns false.
func EachWord(cleaned []byte, emit func(word []byte) bool) {
	start := -1
	for i := 0; i <= len(cleaned); i++ {
		atSep := i == len(cleaned)
		if !atSep {
			switch cleaned[i] {
			case ' ', '\t', '\n', '\r':
				atSep = true
			}
		}

		if atSep {
			if start >= 0 && !emit(cleaned[start:i]) {
				return
			}
			start = -1
		} else if start < 0 {
			start = i
		}
	}
}

// LowerWord appends the lowercased, accent-stripped form of word to buf.
// ASCII words are lowered byte-wise, pure Latin-1 words go through a
// 256-entry table, and everything else is folded code point by code point.
func (n *Normalizer) LowerWord(buf, word []byte) []byte {
	ascii := true
	for _, b := range word {
		if b >= 0x80 {
			ascii = false
			break
		}
	}

	if ascii {
		for _, b := range word {
			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}
			buf = append(buf, b)
		}
		return buf
	}

	if cps, ok := decodeLatin1(word); ok {
		for _, cp := range cps {
			buf = append(buf, n.latin1[cp]...)
		}
		return buf
	}

	for i := 0; i < len(word); {
		cp, size := DecodeCodePoint(word, i)
		if cp != 0 {
			buf = append(buf, n.folder.Fold(cp)...)
		}
		i += size
	}
	return buf
}

// decodeLatin1 decodes word and reports whether every code point is below
// 256. On success it returns the decoded code points.
func decodeLatin1(word []byte) ([]rune, bool) {
	cps := make([]rune, 0, len(word))
	for i := 0; i < len(word); {
		cp, size := DecodeCodePoint(word, i)
		if cp >= 256 {
			return nil, false
		}
		cps = append(cps, cp)
		i += size
	}
	return cps, true
}

// SplitPunct calls emit for each sub-word of word: maximal runs of
// non-punctuation code points, and each punctuation code point on its own.
// A word without punctuation is emitted unchanged. Returns false if emit
// stopped the iteration.
func SplitPunct(word []byte, emit func(sub []byte) bool) bool {
	runStart := -1
	for i := 0; i < len(word); {
		cp, size := DecodeCodePoint(word, i)

		if IsPunct(cp) {
			if runStart >= 0 {
				if !emit(word[runStart:i]) {
					return false
				}
				runStart = -1
			}
			if !emit(word[i : i+size]) {
				return false
			}
		} else if runStart < 0 {
			runStart = i
		}

		i += size
	}

	if runStart >= 0 {
		return emit(word[runStart:])
	}
	return true
}

// EachSubWord runs the full normalization pipeline over text and calls
// emit for every candidate sub-word, in input order. emit returns false
// to stop early, typically when an output budget is reached. Scratch
// buffers are reused across words; emitted slices are only valid for the
// duration of the callback.
func (n *Normalizer) EachSubWord(text []byte, emit func(sub []byte) bool) {
	cleaned := n.Clean(make([]byte, 0, len(text)+16), text)

	var lowerBuf []byte
	EachWord(cleaned, func(word []byte) bool {
		if n.lowerCase {
			lowerBuf = n.LowerWord(lowerBuf[:0], word)
			word = lowerBuf
		}
		return SplitPunct(word, emit)
	})
}
