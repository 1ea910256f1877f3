package bert

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-flashtok/internal/text"
)

// DefaultChunkSize is the chunk target for the parallel executors.
const DefaultChunkSize = 128 * 1024

// ChunkedOptions tunes the chunked and streaming executors.
type ChunkedOptions struct {
	// ChunkSize is the target chunk length in bytes (0 selects the
	// default).
	ChunkSize int
	// QueueDepth bounds the streaming pipeline channels (0 selects
	// twice the worker count).
	QueueDepth int
}

func (o ChunkedOptions) chunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// EncodeChunked splits data at safe boundaries, encodes the chunks on a
// worker pool with special tokens suppressed, and reassembles the ids in
// input order as [CLS] + body + [SEP], truncated and padded like
// EncodeWithOptions.
//
// Chunk boundaries prefer paragraph and sentence breaks; when a boundary
// still lands inside a word the chunked segmentation can differ from the
// sequential one around that word.
func (e *Engine) EncodeChunked(ctx context.Context, data []byte, padding Padding, maxLength int, opts ChunkedOptions) ([]int32, error) {
	chunks := text.SplitChunks(data, opts.chunkSize())
	slog.Debug("chunked encode", "chunks", len(chunks), "bytes", len(data))

	results := make([][]int32, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallels)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.appendBody(nil, chunk, -1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.assemble(results, padding, maxLength), nil
}

// assemble joins per-chunk bodies in input order and applies the special
// tokens, truncation and padding of a sequential encode.
func (e *Engine) assemble(bodies [][]int32, padding Padding, maxLength int) []int32 {
	maxLen := e.effectiveMaxLen(maxLength)
	budget := bodyBudget(maxLen)

	total := 1
	for _, b := range bodies {
		total += len(b)
	}

	ids := make([]int32, 0, total+1)
	ids = append(ids, e.specials.Cls)
	for _, body := range bodies {
		for _, id := range body {
			if budget >= 0 && len(ids) >= budget {
				break
			}
			ids = append(ids, id)
		}
	}
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
