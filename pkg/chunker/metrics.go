package chunker

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics contains all the metrics emitted by the chunker.
type Metrics struct {
	operationsTotal  metric.Int64Counter
	chunksCreated    metric.Int64Counter
	slicesProcessed  metric.Int64Counter
	chunkDuration    metric.Float64Histogram
	chunkTokenCount  metric.Int64Histogram
	chunksPerRun     metric.Int64Histogram
}

// NewMetrics creates a new Metrics instance bound to the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.operationsTotal, err = meter.Int64Counter(
		"chunker_operations_total",
		metric.WithDescription("Total number of chunking operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operations_total counter: %w", err)
	}

	m.chunksCreated, err = meter.Int64Counter(
		"chunker_chunks_created",
		metric.WithDescription("Total number of chunks created"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunks_created counter: %w", err)
	}

	m.slicesProcessed, err = meter.Int64Counter(
		"chunker_slices_processed",
		metric.WithDescription("Total number of input slices processed"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slices_processed counter: %w", err)
	}

	m.chunkDuration, err = meter.Float64Histogram(
		"chunker_split_duration_seconds",
		metric.WithDescription("Duration of Chunk() calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create split_duration histogram: %w", err)
	}

	m.chunkTokenCount, err = meter.Int64Histogram(
		"chunker_chunk_token_count",
		metric.WithDescription("Token count of emitted chunks"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk_token_count histogram: %w", err)
	}

	m.chunksPerRun, err = meter.Int64Histogram(
		"chunker_chunks_per_run",
		metric.WithDescription("Number of chunks produced per Chunk() call"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunks_per_run histogram: %w", err)
	}

	return m, nil
}

// RecordOperation records a Chunk() invocation.
func (m *Metrics) RecordOperation(ctx context.Context, status string, duration time.Duration) {
	attrs := attribute.NewSet(attribute.String("status", status))
	m.operationsTotal.Add(ctx, 1, metric.WithAttributeSet(attrs))
	m.chunkDuration.Record(ctx, duration.Seconds(), metric.WithAttributeSet(attrs))
}

// RecordChunksCreated records the number of chunks produced by a run.
func (m *Metrics) RecordChunksCreated(ctx context.Context, count int64) {
	m.chunksCreated.Add(ctx, count)
	m.chunksPerRun.Record(ctx, count)
}

// RecordSlicesProcessed records the number of input slices consumed.
func (m *Metrics) RecordSlicesProcessed(ctx context.Context, count int64) {
	m.slicesProcessed.Add(ctx, count)
}

// RecordChunkTokenCount records the token count of a single emitted chunk.
func (m *Metrics) RecordChunkTokenCount(ctx context.Context, tokens int64) {
	m.chunkTokenCount.Record(ctx, tokens)
}
