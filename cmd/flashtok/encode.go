package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/go-flashtok/tokenizer"
)

func newEncodeCmd() *cobra.Command {
	var (
		text      string
		file      string
		padding   string
		maxLength int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode text into token ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := buildTokenizer()
			if err != nil {
				return err
			}
			pad, err := parsePadding(padding)
			if err != nil {
				return err
			}

			var ids []int32
			switch {
			case file != "":
				if text != "" {
					return fmt.Errorf("--text and --file are mutually exclusive")
				}
				ids, err = tok.ProcessFile(cmd.Context(), file, pad, maxLength)
			default:
				input, readErr := readInputText(text, os.Stdin)
				if readErr != nil {
					return readErr
				}
				ids, err = tok.EncodeWithOptions(input, pad, maxLength)
			}
			if err != nil {
				return err
			}

			return writeIDs(os.Stdout, ids, asJSON)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to encode (reads stdin when omitted)")
	cmd.Flags().StringVar(&file, "file", "", "File to encode via the streaming pipeline")
	cmd.Flags().StringVar(&padding, "padding", "longest", "Padding strategy: longest|max_length")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Sequence length cap (0 = config default, -1 = unbounded)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit a JSON array instead of space-separated ids")

	return cmd
}

// readInputText returns text when given, otherwise the whole of in.
func readInputText(text string, in io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no input: pass --text, --file or pipe text on stdin")
	}
	return string(data), nil
}

func parsePadding(s string) (tokenizer.Padding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "longest":
		return tokenizer.PadLongest, nil
	case "max_length", "max-length":
		return tokenizer.PadToMax, nil
	default:
		return "", fmt.Errorf("invalid padding %q (expected longest|max_length)", s)
	}
}

func writeIDs(w io.Writer, ids []int32, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(ids)
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func buildTokenizer() (*tokenizer.Tokenizer, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return tokenizer.New(cfg)
}
