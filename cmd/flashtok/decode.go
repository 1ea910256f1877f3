package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [ids...]",
		Short: "Decode token ids back into text",
		Long:  "Decode token ids back into text. Ids are given as arguments or as one whitespace/comma-separated list on stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := buildTokenizer()
			if err != nil {
				return err
			}

			raw := strings.Join(args, " ")
			if strings.TrimSpace(raw) == "" {
				raw, err = readInputText("", os.Stdin)
				if err != nil {
					return err
				}
			}

			ids, err := parseIDs(raw)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(os.Stdout, tok.Decode(ids))
			return err
		},
	}

	return cmd
}

func parseIDs(raw string) ([]int32, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})

	ids := make([]int32, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseInt(f, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", f, err)
		}
		ids = append(ids, int32(n))
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no token ids given")
	}
	return ids, nil
}
