package text

import (
	"bufio"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// accentMapData is the compiled code-point replacement table, one
// "0xHHHH 0xHHHH" pair per line (source → lowercased, accent-stripped
// replacement). It covers the Latin accent blocks; anything outside it
// falls back to NFKD decomposition at runtime.
//
//go:embed accentmap.txt
var accentMapData string

// Folder lowercases and accent-strips single code points. Build one with
// NewFolder at engine construction and share it; Fold is safe for
// concurrent use.
type Folder struct {
	repl map[rune]string
}

// NewFolder parses the embedded replacement table.
func NewFolder() (*Folder, error) {
	f := &Folder{repl: make(map[rune]string, 600)}

	sc := bufio.NewScanner(strings.NewReader(accentMapData))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("accent map: malformed line %q", line)
		}

		from, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("accent map: bad source in %q: %w", line, err)
		}
		to, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("accent map: bad target in %q: %w", line, err)
		}

		f.repl[rune(from)] = string(rune(to))
	}

	return f, sc.Err()
}

// Fold returns the lowercased, accent-stripped replacement for cp as a
// UTF-8 string. ASCII letters shortcut to their lowercase form; mapped
// code points use the compiled table; everything else is NFKD-decomposed,
// stripped of combining marks and lowercased scalar by scalar.
func (f *Folder) Fold(cp rune) string {
	if cp < 0x80 {
		if cp >= 'A' && cp <= 'Z' {
			return string(cp + ('a' - 'A'))
		}
		return string(cp)
	}

	if r, ok := f.repl[cp]; ok {
		return r
	}

	decomposed := norm.NFKD.String(string(cp))
	var sb strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// Latin1 returns a 256-entry replacement table for the normalizer's pure
// Latin-1 fast path: entry i is Fold(i).
func (f *Folder) Latin1() *[256]string {
	var t [256]string
	for i := range t {
		t[i] = f.Fold(rune(i))
	}
	return &t
}
