package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var (
		text   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Print the token pieces for a text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tok, err := buildTokenizer()
			if err != nil {
				return err
			}

			input, err := readInputText(text, os.Stdin)
			if err != nil {
				return err
			}

			pieces, err := tok.Tokenize(input)
			if err != nil {
				return err
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(pieces)
			}
			for _, p := range pieces {
				if _, err := fmt.Fprintln(os.Stdout, p); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize (reads stdin when omitted)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit a JSON array instead of one piece per line")

	return cmd
}
