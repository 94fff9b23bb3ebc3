// Package chunker implements a token-budgeted Markdown chunker: given one
// or more labeled text slices and a ChunkingConfig, it segments the
// concatenated text into chunks that respect a target token budget,
// preferentially breaking at the strongest available Markdown structural
// boundary, carrying a configured overlap between consecutive chunks, and
// folding any chunk after the first that opens on a bare image reference
// into the chunk before it.
package chunker

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this package's tracer and meter.
const instrumentationName = "github.com/lookatitude/mdchunk/pkg/chunker"

// Chunk is a contiguous region of the normalized input, possibly prefixed
// with an overlap tail from the chunk before it, whose token count fits the
// configured budget.
type Chunk struct {
	Text        string
	TokenCount  int
	DocumentIDs []string
}

// Chunker packs ChunkSlices into Chunks under a fixed ChunkingConfig. It
// holds no mutable state beyond its config and instrumentation handles, so
// a single instance is safe for concurrent use across independent Chunk
// calls; packing within one call is inherently sequential.
type Chunker struct {
	config   *ChunkingConfig
	registry *TokenizerRegistry
	tracer   trace.Tracer
	meter    metric.Meter
	metrics  *Metrics
}

// New builds a Chunker from DefaultChunkingConfig plus the given options,
// validating before any chunking work can begin.
func New(opts ...Option) (*Chunker, error) {
	cfg, err := NewChunkingConfig(opts...)
	if err != nil {
		return nil, err
	}

	meter := otel.Meter(instrumentationName)
	metrics, err := NewMetrics(meter)
	if err != nil {
		return nil, NewChunkerError("New", ErrCodeInvalidConfig, "failed to initialize metrics", err)
	}

	return &Chunker{
		config:   cfg,
		registry: GetRegistry(),
		tracer:   otel.Tracer(instrumentationName),
		meter:    meter,
		metrics:  metrics,
	}, nil
}

// Chunk splits and packs slices according to the Chunker's configuration.
// Empty input (no slices, or slices that are all empty) returns an empty,
// non-error result. Everything else funnels through buildStream (normalize
// + provenance), the explicit-level split, the recursive packer, and the
// postprocessor (image merge, overlap prefix, finalize), in that order.
func (c *Chunker) Chunk(ctx context.Context, slices []ChunkSlice) ([]Chunk, error) {
	ctx, span := c.tracer.Start(ctx, "chunker.Chunk",
		trace.WithAttributes(
			attribute.Int("chunker.size", c.config.Size),
			attribute.Int("chunker.overlap", c.config.Overlap),
			attribute.String("chunker.encoding_model", c.config.EncodingModel),
			attribute.Int("chunker.input_slices", len(slices)),
		))
	defer span.End()

	start := time.Now()
	c.metrics.RecordSlicesProcessed(ctx, int64(len(slices)))

	stream, prov := buildStream(slices)
	if stream == "" {
		logWithOTELContext(ctx, slog.LevelInfo, "no non-empty input slices, returning no chunks",
			"input_slices", len(slices))
		span.SetAttributes(attribute.Int("chunker.output_chunks", 0))
		span.SetStatus(codes.Ok, "")
		c.metrics.RecordOperation(ctx, "ok", time.Since(start))
		c.metrics.RecordChunksCreated(ctx, 0)
		return nil, nil
	}

	tok := c.registry.Get(c.config.EncodingModel)

	topFrags := SplitToFragments(stream, Ladder[0])
	p := &packer{tok: tok, size: c.config.Size, prov: prov}
	chunks := p.pack(topFrags, 0, 1)

	chunks = mergeImageChunks(chunks)
	chunks = applyOverlap(chunks, tok, c.config.Overlap)
	chunks = finalize(chunks, tok)

	for _, ch := range chunks {
		c.metrics.RecordChunkTokenCount(ctx, int64(ch.TokenCount))
	}

	span.SetAttributes(attribute.Int("chunker.output_chunks", len(chunks)))
	span.SetStatus(codes.Ok, "")
	c.metrics.RecordOperation(ctx, "ok", time.Since(start))
	c.metrics.RecordChunksCreated(ctx, int64(len(chunks)))

	return chunks, nil
}
