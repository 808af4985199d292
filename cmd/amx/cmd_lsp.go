package main

import (
	"github.com/dhamidi/amx/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newLSPCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			server := lsp.NewServer(version)
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 1, "log verbosity")

	return cmd
}
