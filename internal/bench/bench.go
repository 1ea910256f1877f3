// Package bench provides benchmarking primitives for the flashtok bench
// command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// RunResult holds the timing and volume counters for a single encode run.
type RunResult struct {
	Index    int
	Cold     bool // true for the first run (cold-start)
	Duration time.Duration
	Bytes    int
	Tokens   int
}

// MBPerSec returns the input throughput of the run in MB/s.
func (r RunResult) MBPerSec() float64 {
	return MBPerSec(r.Bytes, r.Duration)
}

// TokensPerSec returns the output rate of the run in tokens/s.
func (r RunResult) TokensPerSec() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Tokens) / r.Duration.Seconds()
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// The slice must be non-empty.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// MBPerSec returns bytes/duration in MB/s. Returns 0 for a zero duration
// to avoid division by zero.
func MBPerSec(bytes int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(bytes) / 1e6 / d.Seconds()
}

// CheckThroughputThreshold returns an error if meanMBps falls below
// threshold. A threshold of 0 disables the gate.
func CheckThroughputThreshold(meanMBps, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if meanMBps < threshold {
		return fmt.Errorf("mean throughput %.2f MB/s below threshold %.2f MB/s", meanMBps, threshold)
	}
	return nil
}

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %10s  %10s  %12s\n", "Run", "Cold", "MS", "Tokens", "MB/s", "Tokens/s")
	fmt.Fprintln(sb, strings.Repeat("-", 62))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.1f  %10d  %10.2f  %12.0f\n",
			r.Index+1,
			cold,
			float64(r.Duration.Milliseconds()),
			r.Tokens,
			r.MBPerSec(),
			r.TokensPerSec(),
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 62))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  (min)\n", "", "", float64(stats.Min.Milliseconds()))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  (mean)\n", "", "", float64(stats.Mean.Milliseconds()))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  (max)\n", "", "", float64(stats.Max.Milliseconds()))

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index        int     `json:"index"`
	Cold         bool    `json:"cold"`
	DurationMS   float64 `json:"duration_ms"`
	Bytes        int     `json:"bytes"`
	Tokens       int     `json:"tokens"`
	MBPerSec     float64 `json:"mb_per_sec"`
	TokensPerSec float64 `json:"tokens_per_sec"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  float64(stats.Min.Milliseconds()),
			MeanMS: float64(stats.Mean.Milliseconds()),
			MaxMS:  float64(stats.Max.Milliseconds()),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:        r.Index,
			Cold:         r.Cold,
			DurationMS:   float64(r.Duration.Milliseconds()),
			Bytes:        r.Bytes,
			Tokens:       r.Tokens,
			MBPerSec:     r.MBPerSec(),
			TokensPerSec: r.TokensPerSec(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
