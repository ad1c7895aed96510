package main

import (
	"github.com/spf13/cobra"

	"github.com/openscad-lang/scadast/internal/lspserver"
)

func lspCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the scadast language server (LSP, stdio)",
		Long:  `Start a language server (LSP) publishing parse diagnostics and hover info for OpenSCAD files (stdio mode).`,
		RunE: func(_ *cobra.Command, _ []string) error {
			lspserver.NewServer(nil).Run()

			return nil
		},
	}

	return cmd
}
