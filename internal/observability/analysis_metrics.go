package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricStatementsTotal = "scadast.parse.statements.total"
	metricFilesTotal      = "scadast.parse.files.total"
	metricFileDuration    = "scadast.parse.file.duration.seconds"
	metricDiagnosticsTotal = "scadast.parse.diagnostics.total"
	metricCacheHitsTotal   = "scadast.cache.hits.total"
	metricCacheMissesTotal = "scadast.cache.misses.total"

	attrLevel = "level"
)

// ParseMetrics holds OTel instruments for scadast-specific parse metrics,
// adapted from the teacher's AnalysisMetrics (per-commit/per-chunk
// counters) to per-file/per-statement counters.
type ParseMetrics struct {
	statementsTotal  metric.Int64Counter
	filesTotal       metric.Int64Counter
	fileDuration     metric.Float64Histogram
	diagnosticsTotal metric.Int64Counter
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
}

// FileParseStats holds the statistics for a single file's parse, decoupled
// from the scadast package to avoid an observability->scadast import.
type FileParseStats struct {
	Statements int64
	Duration   time.Duration
	Warnings   int64
	Errors     int64
}

// NewParseMetrics creates parse metric instruments from the given meter.
func NewParseMetrics(mt metric.Meter) (*ParseMetrics, error) {
	b := newMetricBuilder(mt)

	pm := &ParseMetrics{
		statementsTotal:  b.counter(metricStatementsTotal, "Total top-level statements parsed", "{statement}"),
		filesTotal:       b.counter(metricFilesTotal, "Total files parsed", "{file}"),
		fileDuration:     b.histogram(metricFileDuration, "Per-file parse duration in seconds", "s", durationBucketBoundaries...),
		diagnosticsTotal: b.counter(metricDiagnosticsTotal, "Diagnostics emitted by level", "{diagnostic}"),
		cacheHits:        b.counter(metricCacheHitsTotal, "Result cache hits", "{hit}"),
		cacheMisses:      b.counter(metricCacheMissesTotal, "Result cache misses", "{miss}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return pm, nil
}

// RecordFile records statistics for a single completed file parse. Safe to
// call on a nil receiver (no-op).
func (pm *ParseMetrics) RecordFile(ctx context.Context, stats FileParseStats) {
	if pm == nil {
		return
	}

	pm.filesTotal.Add(ctx, 1)
	pm.statementsTotal.Add(ctx, stats.Statements)
	pm.fileDuration.Record(ctx, stats.Duration.Seconds())

	if stats.Warnings > 0 {
		pm.diagnosticsTotal.Add(ctx, stats.Warnings, metric.WithAttributes(attribute.String(attrLevel, "warning")))
	}

	if stats.Errors > 0 {
		pm.diagnosticsTotal.Add(ctx, stats.Errors, metric.WithAttributes(attribute.String(attrLevel, "error")))
	}
}

// RecordCacheHit records a result-cache hit. Safe to call on a nil receiver.
func (pm *ParseMetrics) RecordCacheHit(ctx context.Context) {
	if pm == nil {
		return
	}

	pm.cacheHits.Add(ctx, 1)
}

// RecordCacheMiss records a result-cache miss. Safe to call on a nil receiver.
func (pm *ParseMetrics) RecordCacheMiss(ctx context.Context) {
	if pm == nil {
		return
	}

	pm.cacheMisses.Add(ctx, 1)
}
