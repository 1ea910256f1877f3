// Package tokenizer is the public entry point: a Tokenizer wraps either
// the BERT WordPiece engine or the GPT-2 byte-level BPE engine behind
// one encode/decode surface, selected by configuration.
package tokenizer

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-flashtok/internal/bert"
	"github.com/example/go-flashtok/internal/bpe"
	"github.com/example/go-flashtok/internal/config"
)

// Padding selects how encode pads its result.
type Padding = bert.Padding

const (
	// PadToMax pads with [PAD] up to the effective max length.
	PadToMax = bert.PadToMax
	// PadLongest leaves the result unpadded.
	PadLongest = bert.PadLongest
)

// UnboundedLength requests an uncapped encode regardless of the
// configured default max length.
const UnboundedLength = bert.UnboundedLength

// Tokenizer is an immutable tokenizer, safe for concurrent use. Exactly
// one of the engines is set.
type Tokenizer struct {
	bert *bert.Engine
	bpe  *bpe.Engine

	parallels int
	chunkSize int
}

// New validates cfg, loads the model files it names and builds the
// configured engine. All file and format errors surface here; the
// returned Tokenizer does not touch the filesystem again.
func New(cfg config.Config) (*Tokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tokenizer config: %w", err)
	}

	parallels := cfg.Runtime.MaxParallelism
	if parallels <= 0 {
		parallels = runtime.NumCPU()
	}
	t := &Tokenizer{
		parallels: parallels,
		chunkSize: cfg.Runtime.ChunkSize,
	}

	switch cfg.Tokenizer.Type {
	case config.TypeBert:
		engine, err := bert.New(cfg.Tokenizer.VocabPath, bert.Options{
			LowerCase:      cfg.Tokenizer.DoLowerCase,
			TokenizeCJK:    cfg.Tokenizer.TokenizeCJK,
			ModelMaxLength: cfg.Tokenizer.ModelMaxLength,
			Bidirectional:  cfg.Tokenizer.EnableBidirectional,
			MaxWordBytes:   cfg.Tokenizer.MaxWordBytes,
			MaxParallelism: cfg.Runtime.MaxParallelism,
		})
		if err != nil {
			return nil, fmt.Errorf("build bert engine: %w", err)
		}
		t.bert = engine
	case config.TypeBPE:
		engine, err := bpe.New(cfg.Tokenizer.BPEVocabPath, cfg.Tokenizer.BPEMergesPath, bpe.Options{})
		if err != nil {
			return nil, fmt.Errorf("build bpe engine: %w", err)
		}
		t.bpe = engine
	}

	return t, nil
}

// Encode tokenizes text with the configured defaults.
func (t *Tokenizer) Encode(text string) ([]int32, error) {
	return t.EncodeWithOptions(text, PadLongest, 0)
}

// EncodeWithOptions tokenizes text. Padding and maxLength apply to the
// BERT engine; the BPE engine emits the unpadded merge sequence.
func (t *Tokenizer) EncodeWithOptions(text string, padding Padding, maxLength int) ([]int32, error) {
	if t.bert != nil {
		return t.bert.EncodeWithOptions(text, padding, maxLength), nil
	}
	return t.bpe.Encode(text)
}

// Tokenize returns the piece strings for text, without special tokens.
func (t *Tokenizer) Tokenize(text string) ([]string, error) {
	if t.bert != nil {
		return t.bert.Tokenize(text), nil
	}
	return t.bpe.Tokenize(text)
}

// Decode reconstructs text from ids. The BERT engine skips structural
// tokens and joins "##" pieces; the BPE engine inverts the byte
// alphabet.
func (t *Tokenizer) Decode(ids []int32) string {
	if t.bert != nil {
		return t.bert.Decode(ids)
	}
	return t.bpe.Decode(ids)
}

// BatchEncode encodes each text independently, in input order. When
// parallel is true the encodes fan out over the configured worker cap.
func (t *Tokenizer) BatchEncode(texts []string, padding Padding, maxLength int, parallel bool) ([][]int32, error) {
	if t.bert != nil {
		return t.bert.BatchEncode(texts, padding, maxLength, parallel), nil
	}

	out := make([][]int32, len(texts))
	if !parallel || len(texts) < 2 {
		for i, s := range texts {
			ids, err := t.bpe.Encode(s)
			if err != nil {
				return nil, fmt.Errorf("encode text %d: %w", i, err)
			}
			out[i] = ids
		}
		return out, nil
	}

	var g errgroup.Group
	g.SetLimit(t.parallels)
	for i, s := range texts {
		i, s := i, s
		g.Go(func() error {
			ids, err := t.bpe.Encode(s)
			if err != nil {
				return fmt.Errorf("encode text %d: %w", i, err)
			}
			out[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessFile encodes the file at path. The BERT engine streams the file
// through the chunked pipeline; the BPE engine reads it whole.
func (t *Tokenizer) ProcessFile(ctx context.Context, path string, padding Padding, maxLength int) ([]int32, error) {
	if t.bert != nil {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input file: %w", err)
		}
		defer func() { _ = f.Close() }()

		return t.bert.EncodeStream(ctx, f, padding, maxLength, bert.ChunkedOptions{ChunkSize: t.chunkSize})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return t.bpe.Encode(string(data))
}
