package chunker

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// logWithOTELContext attaches the active span's trace/span ids (if any) to
// a structured log line before delegating to slog.Default().
func logWithOTELContext(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		otelAttrs := []any{
			"trace_id", spanCtx.TraceID().String(),
			"span_id", spanCtx.SpanID().String(),
		}
		attrs = append(otelAttrs, attrs...)
	}
	slog.Default().Log(ctx, level, msg, attrs...)
}
