package bpe

import "github.com/dlclark/regexp2"

// pretokenPattern is the GPT-2 split pattern: contractions, letter runs
// and digit runs with an optional leading space, punctuation runs, and
// whitespace with a negative lookahead so that inter-word spaces attach
// to the following word.
const pretokenPattern = `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`

var pretokenRE = regexp2.MustCompile(pretokenPattern, regexp2.Unicode|regexp2.RE2)

// pretokenize splits raw text into BPE pre-tokens. The pattern covers
// every byte of its input, so the concatenation of the returned pieces
// equals s.
func pretokenize(s string) ([]string, error) {
	var pieces []string

	m, err := pretokenRE.FindStringMatch(s)
	if err != nil {
		return nil, err
	}
	for m != nil {
		pieces = append(pieces, m.String())
		m, err = pretokenRE.FindNextMatch(m)
		if err != nil {
			return nil, err
		}
	}
	return pieces, nil
}
