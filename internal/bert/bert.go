// Package bert implements the WordPiece tokenizer engine: BERT-style
// encode/decode with special-token handling, optional bidirectional
// arbitration, and chunked/streaming executors for large inputs.
package bert

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-flashtok/internal/text"
	"github.com/example/go-flashtok/internal/vocab"
	"github.com/example/go-flashtok/internal/wordpiece"
)

// Padding selects how Encode pads its result.
type Padding string

const (
	// PadToMax pads the result with [PAD] up to the effective max length.
	PadToMax Padding = "max_length"
	// PadLongest leaves the result unpadded. Any unrecognized padding
	// value behaves the same way.
	PadLongest Padding = "longest"
)

// Options configures an Engine.
type Options struct {
	// LowerCase enables lowercasing and accent stripping.
	LowerCase bool
	// TokenizeCJK isolates CJK ideographs into single-character words.
	TokenizeCJK bool
	// ModelMaxLength is the default encode cap; 0 means unbounded.
	ModelMaxLength int
	// Bidirectional arbitrates between forward and backward WordPiece.
	Bidirectional bool
	// MaxWordBytes caps single-word byte length (0 selects the default).
	MaxWordBytes int
	// MaxParallelism caps batch/chunked workers (0 selects NumCPU).
	MaxParallelism int
}

// Engine is an immutable WordPiece tokenizer, safe for concurrent use.
// Per-call state lives on the stack of each Encode.
type Engine struct {
	vocab     *vocab.Vocabulary
	norm      *text.Normalizer
	seg       *wordpiece.Segmenter
	specials  vocab.SpecialIDs
	maxLen    int
	bidi      bool
	parallels int
}

// New builds an Engine over the vocabulary at vocabPath.
func New(vocabPath string, opts Options) (*Engine, error) {
	v, err := vocab.Load(vocabPath)
	if err != nil {
		return nil, err
	}
	return NewFromVocabulary(v, opts)
}

// NewFromVocabulary builds an Engine over an already-loaded vocabulary.
func NewFromVocabulary(v *vocab.Vocabulary, opts Options) (*Engine, error) {
	norm, err := text.NewNormalizer(opts.LowerCase, opts.TokenizeCJK)
	if err != nil {
		return nil, fmt.Errorf("build normalizer: %w", err)
	}

	parallels := opts.MaxParallelism
	if parallels <= 0 {
		parallels = runtime.NumCPU()
	}

	return &Engine{
		vocab:     v,
		norm:      norm,
		seg:       wordpiece.NewSegmenter(v, opts.MaxWordBytes),
		specials:  v.Specials(),
		maxLen:    opts.ModelMaxLength,
		bidi:      opts.Bidirectional,
		parallels: parallels,
	}, nil
}

// Specials returns the engine's structural token ids.
func (e *Engine) Specials() vocab.SpecialIDs {
	return e.specials
}

// effectiveMaxLen resolves the per-call cap: the call argument when
// positive, UnboundedLength for no cap, otherwise the engine default.
// 0 means unbounded in the returned value.
func (e *Engine) effectiveMaxLen(maxLength int) int {
	switch {
	case maxLength > 0:
		return maxLength
	case maxLength == UnboundedLength:
		return 0
	default:
		return e.maxLen
	}
}

// UnboundedLength requests an uncapped encode regardless of the engine's
// default max length.
const UnboundedLength = -1

// Encode tokenizes using the engine defaults: no padding, default max
// length.
func (e *Engine) Encode(s string) []int32 {
	return e.EncodeWithOptions(s, PadLongest, 0)
}

// EncodeWithOptions tokenizes s into [CLS] + sub-word ids + [SEP],
// truncated to maxLength and padded with [PAD] when padding is PadToMax
// and a finite cap is in effect. maxLength 0 uses the engine default;
// UnboundedLength disables the cap. Encode is total: malformed bytes are
// cleaned away and unknown words collapse to [UNK].
func (e *Engine) EncodeWithOptions(s string, padding Padding, maxLength int) []int32 {
	maxLen := e.effectiveMaxLen(maxLength)

	ids := make([]int32, 0, initialCapacity(len(s), maxLen))
	ids = append(ids, e.specials.Cls)
	ids = e.appendBody(ids, []byte(s), bodyBudget(maxLen))
	ids = append(ids, e.specials.Sep)

	// maxLen 1 leaves no room for [SEP] after [CLS].
	if maxLen > 0 && len(ids) > maxLen {
		ids = ids[:maxLen]
	}

	if padding == PadToMax && maxLen > 0 {
		for len(ids) < maxLen {
			ids = append(ids, e.specials.Pad)
		}
	}
	return ids
}

// bodyBudget converts an effective max length into the id budget for
// [CLS] plus the body: max_length - 1 leaves room for [SEP]. Unbounded
// is the negative sentinel, so a budget of zero ids stays a real cap.
func bodyBudget(maxLen int) int {
	if maxLen <= 0 {
		return -1
	}
	return maxLen - 1
}

func initialCapacity(textLen, maxLen int) int {
	est := textLen/4 + 2
	if maxLen > 0 && maxLen < est {
		return maxLen
	}
	return est
}

// appendBody normalizes text and appends sub-word ids to dst, stopping
// once budget ids are present (a negative budget means unbounded).
// Specials are not emitted.
func (e *Engine) appendBody(dst []int32, textBytes []byte, budget int) []int32 {
	if budget >= 0 && len(dst) >= budget {
		return dst
	}
	e.norm.EachSubWord(textBytes, func(sub []byte) bool {
		if e.bidi {
			dst = e.seg.Bidirectional(dst, sub, budget)
		} else {
			dst = e.seg.Forward(dst, sub, budget)
		}
		return budget < 0 || len(dst) < budget
	})
	return dst
}

// Tokenize returns the piece strings for s, without special tokens.
func (e *Engine) Tokenize(s string) []string {
	ids := e.appendBody(nil, []byte(s), -1)

	pieces := make([]string, len(ids))
	for i, id := range ids {
		pieces[i] = e.vocab.TokenOf(id)
	}
	return pieces
}

// Decode reconstructs text from ids. [PAD], [CLS] and [SEP] are skipped;
// "##" pieces join the previous token without a space; other tokens are
// space-separated.
func (e *Engine) Decode(ids []int32) string {
	var sb strings.Builder

	for _, id := range ids {
		if id == e.specials.Pad || id == e.specials.Cls || id == e.specials.Sep {
			continue
		}
		if id < 0 || int(id) >= e.vocab.Size() {
			continue
		}

		token := e.vocab.TokenOf(id)
		if rest, ok := strings.CutPrefix(token, wordpiece.SuffixPrefix); ok {
			sb.WriteString(rest)
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(token)
	}
	return sb.String()
}

// BatchEncode encodes each text independently and returns the results in
// input order. When parallel is true the encodes fan out over the
// engine's worker cap.
func (e *Engine) BatchEncode(texts []string, padding Padding, maxLength int, parallel bool) [][]int32 {
	out := make([][]int32, len(texts))

	if !parallel || len(texts) < 2 {
		for i, s := range texts {
			out[i] = e.EncodeWithOptions(s, padding, maxLength)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.parallels)
	for i, s := range texts {
		i, s := i, s
		g.Go(func() error {
			out[i] = e.EncodeWithOptions(s, padding, maxLength)
			return nil
		})
	}
	_ = g.Wait() // workers never fail; encode is total
	return out
}
