package main

import (
	"bytes"
	"context"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/example/go-flashtok/internal/config"
	"github.com/example/go-flashtok/internal/testutil"
	"github.com/example/go-flashtok/tokenizer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLogLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLogLevel(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseLogLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePadding(t *testing.T) {
	if p, err := parsePadding("longest"); err != nil || p != tokenizer.PadLongest {
		t.Errorf("longest = (%v, %v)", p, err)
	}
	if p, err := parsePadding("max_length"); err != nil || p != tokenizer.PadToMax {
		t.Errorf("max_length = (%v, %v)", p, err)
	}
	if _, err := parsePadding("left"); err == nil {
		t.Error("expected error for unknown padding")
	}
}

func TestParseIDs(t *testing.T) {
	got, err := parseIDs("2, 4 6\n5")
	if err != nil {
		t.Fatalf("parseIDs: %v", err)
	}
	want := []int32{2, 4, 6, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseIDs = %v; want %v", got, want)
	}

	if _, err := parseIDs("1 two 3"); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if _, err := parseIDs("  "); err == nil {
		t.Error("expected error for empty id list")
	}
}

func TestWriteIDs(t *testing.T) {
	var buf bytes.Buffer
	if err := writeIDs(&buf, []int32{2, 4, 3}, false); err != nil {
		t.Fatalf("writeIDs: %v", err)
	}
	if got := buf.String(); got != "2 4 3\n" {
		t.Errorf("plain output = %q", got)
	}

	buf.Reset()
	if err := writeIDs(&buf, []int32{2, 4, 3}, true); err != nil {
		t.Fatalf("writeIDs json: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[2,4,3]" {
		t.Errorf("json output = %q", got)
	}
}

func TestReadInputText(t *testing.T) {
	got, err := readInputText("given", strings.NewReader("ignored"))
	if err != nil || got != "given" {
		t.Errorf("explicit text = (%q, %v)", got, err)
	}

	got, err = readInputText("", strings.NewReader("piped"))
	if err != nil || got != "piped" {
		t.Errorf("stdin text = (%q, %v)", got, err)
	}

	if _, err := readInputText("", strings.NewReader("")); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestRunBench(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tokenizer.VocabPath = testutil.WriteVocabFile(t, testutil.BertVocab("hello", "world"))

	tok, err := tokenizer.New(cfg)
	if err != nil {
		t.Fatalf("tokenizer.New: %v", err)
	}

	results, err := runBench(context.Background(), tok, benchOptions{Text: "hello world", Runs: 3})
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results; want 3", len(results))
	}
	if !results[0].Cold || results[1].Cold {
		t.Error("only the first run should be cold")
	}
	for _, r := range results {
		if r.Tokens != 4 {
			t.Errorf("run %d tokens = %d; want 4", r.Index, r.Tokens)
		}
		if r.Bytes != len("hello world") {
			t.Errorf("run %d bytes = %d", r.Index, r.Bytes)
		}
	}
}
