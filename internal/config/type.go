package config

import (
	"fmt"
	"strings"
)

const (
	TypeBert = "bert"
	TypeBPE  = "bpe"
)

// NormalizeType maps user-facing engine names onto the canonical
// constants. Empty input selects the default engine.
func NormalizeType(raw string) (string, error) {
	typ := strings.ToLower(strings.TrimSpace(raw))
	if typ == "" {
		typ = TypeBert
	}
	switch typ {
	case TypeBert, TypeBPE:
		return typ, nil
	case "wordpiece":
		return TypeBert, nil
	case "gpt2", "byte-level":
		return TypeBPE, nil
	default:
		return "", fmt.Errorf("invalid tokenizer type %q (expected %s|%s|wordpiece|gpt2)", raw, TypeBert, TypeBPE)
	}
}
