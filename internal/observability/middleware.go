package observability

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Error classification attribute values recorded on spans via RecordSpanError.
const (
	ErrTypeValidation            = "validation"
	ErrTypeDependencyUnavailable = "dependency_unavailable"
	ErrTypeInternal              = "internal"
	ErrTypePanic                 = "panic"

	ErrSourceDependency = "dependency"
	ErrSourceClient     = "client"
)

const (
	errorTypeKey   = "error.type"
	errorSourceKey = "error.source"
)

// statusRecorder wraps http.ResponseWriter to capture the status code written
// by the handler, since net/http does not expose it after the fact.
type statusRecorder struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
}

func (sr *statusRecorder) WriteHeader(status int) {
	if !sr.wroteHeader {
		sr.status = status
		sr.wroteHeader = true
	}

	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(data []byte) (int, error) {
	if !sr.wroteHeader {
		sr.WriteHeader(http.StatusOK)
	}

	n, err := sr.ResponseWriter.Write(data)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}

	return n, nil
}

// HTTPMiddleware wraps next with span creation, traceparent propagation, a
// structured access log line, and panic recovery. A panicking handler is
// turned into a 500 response with the panic recorded on the span rather than
// crashing the server.
func HTTPMiddleware(tracer trace.Tracer, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagationCarrier{r})

		spanName := r.Method + " " + r.URL.Path

		ctx, span := tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
			),
		)
		defer span.End()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()

		defer func() {
			if rv := recover(); rv != nil {
				span.SetAttributes(attribute.String(errorTypeKey, ErrTypePanic))
				span.AddEvent("panic.stack", trace.WithAttributes(
					attribute.String("stack", string(debug.Stack())),
				))
				span.SetStatus(codes.Error, "panic recovered")

				if !rec.wroteHeader {
					rec.WriteHeader(http.StatusInternalServerError)
				}

				if logger != nil {
					logger.Error("http handler panicked", "panic", rv, "method", r.Method, "path", r.URL.Path)
				}
			}

			duration := time.Since(start)

			span.SetAttributes(attribute.Int("http.status_code", rec.status))

			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, "")
			}

			if logger != nil {
				logger.Info("http.request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"duration_ms", duration.Milliseconds(),
				)
			}
		}()

		next.ServeHTTP(rec, r.WithContext(ctx))
	})
}

// propagationCarrier adapts an *http.Request's headers to propagation.TextMapCarrier.
type propagationCarrier struct {
	req *http.Request
}

func (c propagationCarrier) Get(key string) string {
	return c.req.Header.Get(key)
}

func (c propagationCarrier) Set(key, value string) {
	c.req.Header.Set(key, value)
}

func (c propagationCarrier) Keys() []string {
	keys := make([]string, 0, len(c.req.Header))
	for k := range c.req.Header {
		keys = append(keys, k)
	}

	return keys
}

// RecordSpanError marks span as failed, attaching errType/errSource as
// attributes for dashboards to slice error rates by cause. errSource may be
// empty when the error did not originate from an external dependency.
func RecordSpanError(span trace.Span, err error, errType, errSource string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(errorTypeKey, errType))

	if errSource != "" {
		span.SetAttributes(attribute.String(errorSourceKey, errSource))
	}
}
