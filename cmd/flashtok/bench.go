package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/go-flashtok/internal/bench"
	"github.com/example/go-flashtok/tokenizer"
)

func newBenchCmd() *cobra.Command {
	var (
		text          string
		file          string
		runs          int
		format        string
		mbpsThreshold float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark encode throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := buildTokenizer()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" && file == "" {
				return fmt.Errorf("--text or --file is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			results, err := runBench(cmd.Context(), tok, benchOptions{
				Text: text,
				File: file,
				Runs: runs,
			})
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, os.Stdout)
			default:
				bench.FormatTable(results, stats, os.Stdout)
			}

			var totalMBps float64
			for _, r := range results {
				totalMBps += r.MBPerSec()
			}
			meanMBps := totalMBps / float64(len(results))

			return bench.CheckThroughputThreshold(meanMBps, mbpsThreshold)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode for each run")
	cmd.Flags().StringVar(&file, "file", "", "File to encode for each run (overrides --text)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of encode runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&mbpsThreshold, "throughput-threshold", 0, "Exit non-zero if mean throughput falls below this MB/s (0 = disabled)")

	return cmd
}

type benchOptions struct {
	Text string
	File string
	Runs int
}

func runBench(ctx context.Context, tok *tokenizer.Tokenizer, opts benchOptions) ([]bench.RunResult, error) {
	inputBytes := len(opts.Text)
	if opts.File != "" {
		info, err := os.Stat(opts.File)
		if err != nil {
			return nil, fmt.Errorf("stat bench input: %w", err)
		}
		inputBytes = int(info.Size())
	}

	results := make([]bench.RunResult, 0, opts.Runs)
	for i := 0; i < opts.Runs; i++ {
		start := time.Now()

		var ids []int32
		var err error
		if opts.File != "" {
			ids, err = tok.ProcessFile(ctx, opts.File, tokenizer.PadLongest, tokenizer.UnboundedLength)
		} else {
			ids, err = tok.EncodeWithOptions(opts.Text, tokenizer.PadLongest, tokenizer.UnboundedLength)
		}
		if err != nil {
			return nil, fmt.Errorf("bench run %d: %w", i+1, err)
		}

		results = append(results, bench.RunResult{
			Index:    i,
			Cold:     i == 0,
			Duration: time.Since(start),
			Bytes:    inputBytes,
			Tokens:   len(ids),
		})
	}
	return results, nil
}
