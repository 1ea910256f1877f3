// Package vocab loads and serves the token tables the engines are built
// from: the WordPiece vocabulary, the BPE merges table and the BPE
// vocabulary. All types are immutable after construction and safe for
// concurrent use.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptyVocabulary is returned when a vocabulary source contains no
// tokens.
var ErrEmptyVocabulary = errors.New("vocabulary is empty")

// Canonical BERT special token strings. The ids are resolved from the
// vocabulary; these defaults apply when a token is absent.
const (
	PadToken = "[PAD]"
	UnkToken = "[UNK]"
	ClsToken = "[CLS]"
	SepToken = "[SEP]"
)

// Vocabulary is an ordered token table with O(1) lookup in both
// directions. Ids are assigned by line order in the source file.
type Vocabulary struct {
	tokens []string
	ids    map[string]int32
}

// Load reads a WordPiece vocabulary file: one token per line, trailing
// whitespace stripped, blank lines skipped, ids assigned by the running
// counter of non-blank lines.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocab file: %w", err)
	}
	defer func() { _ = f.Close() }()

	v, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read vocab file %q: %w", path, err)
	}
	return v, nil
}

// Read parses a vocabulary from r. See Load for the format.
func Read(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{ids: make(map[string]int32, 32768)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		token := strings.TrimRight(sc.Text(), " \t\r\n")
		if token == "" {
			continue
		}

		if _, dup := v.ids[token]; !dup {
			v.ids[token] = int32(len(v.tokens))
		}
		v.tokens = append(v.tokens, token)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan vocab: %w", err)
	}
	if len(v.tokens) == 0 {
		return nil, ErrEmptyVocabulary
	}

	return v, nil
}

// Size returns the number of tokens.
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// IDOf returns the id of token, or def when the token is absent.
func (v *Vocabulary) IDOf(token string, def int32) int32 {
	if id, ok := v.ids[token]; ok {
		return id
	}
	return def
}

// TokenOf returns the token at id. id must be a valid index.
func (v *Vocabulary) TokenOf(id int32) string {
	return v.tokens[id]
}

// Tokens returns the ordered token list. Callers must not modify it.
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}

// SpecialIDs holds the resolved ids of the structural BERT tokens.
type SpecialIDs struct {
	Pad, Unk, Cls, Sep int32
}

// Specials resolves the structural token ids from the vocabulary,
// falling back to the canonical BERT-base layout (0/100/101/102) for
// any token the file does not define.
func (v *Vocabulary) Specials() SpecialIDs {
	return SpecialIDs{
		Pad: v.IDOf(PadToken, 0),
		Unk: v.IDOf(UnkToken, 100),
		Cls: v.IDOf(ClsToken, 101),
		Sep: v.IDOf(SepToken, 102),
	}
}
