package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/openscad-lang/scadast/internal/mcpserver"
	"github.com/openscad-lang/scadast/internal/observability"
)

func mcpCmd() *cobra.Command {
	var otlpEndpoint string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the scadast MCP server (stdio)",
		Long:  `Start a Model Context Protocol server exposing the scadast_parse tool over stdio.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMCP(cmd, otlpEndpoint)
		},
	}

	cmd.Flags().StringVar(&otlpEndpoint, "otlp-endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		"OTLP gRPC collector address; empty disables tracing/metrics export")

	return cmd
}

func runMCP(cmd *cobra.Command, otlpEndpoint string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := observability.DefaultConfig()
	cfg.Mode = observability.ModeMCP
	cfg.OTLPEndpoint = otlpEndpoint
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))

	providers, err := observability.Init(cfg)
	if err != nil {
		return fmt.Errorf("observability init failed: %w", err)
	}

	defer func() {
		if shutdownErr := providers.Shutdown(cmd.Context()); shutdownErr != nil {
			logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	redMetrics, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	srv := mcpserver.NewServer(mcpserver.ServerDeps{
		Logger:  logger,
		Metrics: redMetrics,
		Tracer:  providers.Tracer,
	})

	if err := srv.Run(cmd.Context()); err != nil {
		return fmt.Errorf("mcp server exited: %w", err)
	}

	return nil
}
