// Package testutil provides shared fixture helpers for tokenizer tests.
//
// Each helper writes a small, well-formed model file into a per-test
// temporary directory and returns its path, so engine tests can exercise
// the real file loaders without committing binary fixtures.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteVocabFile writes a WordPiece vocab file (one token per line) and
// returns its path.
func WriteVocabFile(tb testing.TB, tokens []string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "vocab.txt")
	data := strings.Join(tokens, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		tb.Fatalf("write vocab fixture: %v", err)
	}
	return path
}

// WriteMergesFile writes a BPE merges file with a comment header and
// returns its path. Each entry is an "A B" pair; rank follows slice order.
func WriteMergesFile(tb testing.TB, pairs []string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "merges.txt")
	data := "#version: 0.2\n" + strings.Join(pairs, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		tb.Fatalf("write merges fixture: %v", err)
	}
	return path
}

// WriteBPEVocabFile writes a vocab.json object mapping token to id and
// returns its path.
func WriteBPEVocabFile(tb testing.TB, vocab map[string]int32) string {
	tb.Helper()

	data, err := json.Marshal(vocab)
	if err != nil {
		tb.Fatalf("marshal bpe vocab fixture: %v", err)
	}

	path := filepath.Join(tb.TempDir(), "vocab.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("write bpe vocab fixture: %v", err)
	}
	return path
}

// BertVocab returns a small BERT-style vocabulary with the canonical
// special tokens at ids 0-3 followed by the given tokens.
func BertVocab(tokens ...string) []string {
	return append([]string{"[PAD]", "[UNK]", "[CLS]", "[SEP]"}, tokens...)
}
