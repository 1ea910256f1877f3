package vocab

import (
	"encoding/json"
	"fmt"
	"os"
)

// BPEVocabulary maps BPE token strings to ids and back. Loaded from the
// GPT-2 style vocab.json object.
type BPEVocabulary struct {
	ids    map[string]int32
	tokens map[int32]string
}

// LoadBPE reads a JSON object mapping token string to integer id. Ids
// must be non-negative and unique; the inverse map is the decoder table.
func LoadBPE(path string) (*BPEVocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bpe vocab file: %w", err)
	}

	var raw map[string]int32
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse bpe vocab %q: %w", path, err)
	}

	v := &BPEVocabulary{
		ids:    make(map[string]int32, len(raw)),
		tokens: make(map[int32]string, len(raw)),
	}
	for token, id := range raw {
		if id < 0 {
			return nil, fmt.Errorf("bpe vocab %q: negative id %d for token %q", path, id, token)
		}
		if prev, dup := v.tokens[id]; dup {
			return nil, fmt.Errorf("bpe vocab %q: id %d assigned to both %q and %q", path, id, prev, token)
		}
		v.ids[token] = id
		v.tokens[id] = token
	}

	return v, nil
}

// Size returns the number of tokens.
func (v *BPEVocabulary) Size() int {
	return len(v.ids)
}

// IDOf returns the id of token and whether it exists.
func (v *BPEVocabulary) IDOf(token string) (int32, bool) {
	id, ok := v.ids[token]
	return id, ok
}

// TokenOf returns the token for id, or the empty string when unknown.
func (v *BPEVocabulary) TokenOf(id int32) string {
	return v.tokens[id]
}
