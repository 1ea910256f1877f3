package bert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-flashtok/internal/text"
)

// streamChunk travels the pipeline: raw bytes from the producer, encoded
// ids from the workers, keyed by input order.
type streamChunk struct {
	index int
	data  []byte
	ids   []int32
}

// EncodeStream reads r chunk by chunk, encodes the chunks on a worker
// pool and reassembles the ids in input order, producing the same shape
// as EncodeChunked. The pipeline is a chain of bounded channels; a
// cancelled ctx halts the producer, workers and collector promptly and
// no partial result is returned.
func (e *Engine) EncodeStream(ctx context.Context, r io.Reader, padding Padding, maxLength int, opts ChunkedOptions) ([]int32, error) {
	workers := e.parallels
	depth := opts.QueueDepth
	if depth <= 0 {
		depth = 2 * workers
	}

	jobs := make(chan streamChunk, depth)
	results := make(chan streamChunk, depth)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		return produceChunks(gctx, r, opts.chunkSize(), jobs)
	})

	var workerWG sync.WaitGroup
	workerWG.Add(workers)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			defer workerWG.Done()
			return e.encodeChunks(gctx, jobs, results)
		})
	}
	go func() {
		workerWG.Wait()
		close(results)
	}()

	// Collect by index; the results channel closes once every worker
	// has exited.
	var bodies [][]int32
	for res := range results {
		for len(bodies) <= res.index {
			bodies = append(bodies, nil)
		}
		bodies[res.index] = res.ids
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.assemble(bodies, padding, maxLength), nil
}

// produceChunks reads windows of chunkSize bytes and publishes them at
// safe boundaries, carrying the tail of each window into the next.
func produceChunks(ctx context.Context, r io.Reader, chunkSize int, jobs chan<- streamChunk) error {
	buf := make([]byte, 0, chunkSize)
	index := 0

	send := func(data []byte) error {
		chunk := streamChunk{index: index, data: data}
		index++
		select {
		case jobs <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		n, err := io.ReadFull(r, buf[len(buf):chunkSize])
		buf = buf[:len(buf)+n]

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if len(buf) > 0 {
					return send(buf)
				}
				return nil
			}
			return fmt.Errorf("read chunk %d: %w", index, err)
		}

		cut := text.Boundary(buf)
		data := make([]byte, cut)
		copy(data, buf[:cut])
		if err := send(data); err != nil {
			return err
		}

		rest := copy(buf, buf[cut:])
		buf = buf[:rest]
	}
}

// encodeChunks drains jobs, encodes each chunk without special tokens
// and publishes the ids. Cancellation is observed between chunks.
func (e *Engine) encodeChunks(ctx context.Context, jobs <-chan streamChunk, results chan<- streamChunk) error {
	for {
		select {
		case chunk, ok := <-jobs:
			if !ok {
				return nil
			}
			chunk.ids = e.appendBody(nil, chunk.data, -1)
			chunk.data = nil
			select {
			case results <- chunk:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
