package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/amx/lexer"
	"github.com/dhamidi/amx/parser"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var jsx bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Parse templates and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, filename := range args {
				data, err := os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read template: %w", err)
				}

				opts := []parser.Option{parser.WithFile(filename)}
				if jsx {
					opts = append(opts, parser.WithJSX())
				}
				if _, err := parser.Parse(lexer.Split(string(data)), opts...); err != nil {
					fmt.Fprintf(os.Stderr, "%s: %s\n", filename, err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d templates failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsx, "jsx", false, "use the JSX-like brace grammar")

	return cmd
}
