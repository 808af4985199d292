package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/amx/format"
	"github.com/dhamidi/amx/lexer"
	"github.com/dhamidi/amx/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var jsx bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse an .amx template and dump the tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}

			opts := []parser.Option{parser.WithFile(filename)}
			if jsx {
				opts = append(opts, parser.WithJSX())
			}
			doc, err := parser.Parse(lexer.Split(string(data)), opts...)
			if err != nil {
				return fmt.Errorf("parse template: %w", err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "tree":
				encoder = format.NewTreeEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&jsx, "jsx", false, "use the JSX-like brace grammar")

	return cmd
}
