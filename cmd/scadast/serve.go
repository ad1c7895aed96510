package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/openscad-lang/scadast/internal/observability"
	"github.com/openscad-lang/scadast/pkg/scadast"
)

// Server timeout constants for the development HTTP server.
const (
	serverReadTimeout  = 30 * time.Second
	serverWriteTimeout = 60 * time.Second
	serverIdleTimeout  = 120 * time.Second
)

// ParseRequest holds the request body for the /api/parse endpoint.
type ParseRequest struct {
	Source string `json:"source"`
}

// ParseResponse holds the response body for the /api/parse endpoint.
type ParseResponse struct {
	File  *scadast.File `json:"file,omitempty"`
	Error string        `json:"error,omitempty"`
}

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scadast development HTTP server",
		Long:  `Start a web server exposing OpenSCAD parsing via an HTTP API (POST /api/parse).`,
		Run: func(_ *cobra.Command, _ []string) {
			startServer(port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "port to listen on")

	return cmd
}

// newServerMux creates the HTTP mux with all API routes wrapped in tracing middleware.
func newServerMux(tracer trace.Tracer, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", handleParse)
	mux.Handle("/healthz", observability.HealthHandler())

	return observability.HTTPMiddleware(tracer, logger, mux)
}

func startServer(port string) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := observability.DefaultConfig()
	cfg.Mode = observability.ModeServe
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))

	providers, initErr := observability.Init(cfg)
	if initErr != nil {
		logger.Error("observability init failed", "error", initErr)

		return
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	handler := newServerMux(providers.Tracer, logger)

	logger.Info("scadast development server starting", "addr", "http://localhost:"+port)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
	}
}

// writeJSON encodes value as JSON and writes it to the response writer.
func writeJSON(ctx context.Context, responseWriter http.ResponseWriter, value any) {
	responseWriter.Header().Set("Content-Type", "application/json")

	encodeErr := json.NewEncoder(responseWriter).Encode(value)
	if encodeErr != nil {
		slog.Default().ErrorContext(ctx, "failed to encode JSON response", "error", encodeErr)
	}
}

func handleParse(responseWriter http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		http.Error(responseWriter, "Method not allowed", http.StatusMethodNotAllowed)

		return
	}

	var req ParseRequest

	if err := json.NewDecoder(request.Body).Decode(&req); err != nil {
		http.Error(responseWriter, "Invalid request body", http.StatusBadRequest)

		return
	}

	response := ParseResponse{}

	parser, err := scadast.NewParser()
	if err != nil {
		response.Error = fmt.Sprintf("Failed to initialize parser: %v", err)
		writeJSON(request.Context(), responseWriter, response)

		return
	}
	defer parser.Close()

	file, parseErr := parser.Parse([]byte(req.Source))
	if parseErr != nil {
		response.Error = fmt.Sprintf("Parse error: %v", parseErr)
		writeJSON(request.Context(), responseWriter, response)

		return
	}

	response.File = file
	writeJSON(request.Context(), responseWriter, response)
}
