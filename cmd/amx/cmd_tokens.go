package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/amx/lexer"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the fragment sequence the parser would consume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			for i, fragment := range lexer.Split(string(data)) {
				fmt.Printf("%4d %q\n", i, fragment)
			}
			return nil
		},
	}
}
