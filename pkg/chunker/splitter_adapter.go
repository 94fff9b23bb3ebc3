package chunker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Document is the minimal document shape SplitDocuments/CreateDocuments
// operate on: enough to carry chunk provenance metadata without pulling in
// a downstream schema package, since embedding/indexing stay out of scope.
type Document struct {
	PageContent string
	Metadata    map[string]string
}

// SplitText splits a single raw string into chunk texts, in order. It is a
// thin reshaping of Chunk onto the single-string-in/out shape older
// callers expect; the chunking algorithm itself is unchanged.
func (c *Chunker) SplitText(ctx context.Context, text string) ([]string, error) {
	ctx, span := c.tracer.Start(ctx, "chunker.SplitText",
		trace.WithAttributes(attribute.Int("chunker.input_length", len(text))))
	defer span.End()

	chunks, err := c.Chunk(ctx, []ChunkSlice{{Text: text}})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	span.SetAttributes(attribute.Int("chunker.output_count", len(texts)))
	span.SetStatus(codes.Ok, "")
	return texts, nil
}

// SplitDocuments splits each document's PageContent independently and
// returns the resulting chunk documents, in input order. Each output
// document inherits the source document's metadata plus chunk_index and
// chunk_total.
func (c *Chunker) SplitDocuments(ctx context.Context, documents []Document) ([]Document, error) {
	ctx, span := c.tracer.Start(ctx, "chunker.SplitDocuments",
		trace.WithAttributes(attribute.Int("chunker.input_count", len(documents))))
	defer span.End()

	start := time.Now()
	var out []Document

	for _, doc := range documents {
		texts, err := c.SplitText(ctx, doc.PageContent)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		for i, text := range texts {
			chunkDoc := Document{
				PageContent: text,
				Metadata:    make(map[string]string, len(doc.Metadata)+2),
			}
			for k, v := range doc.Metadata {
				chunkDoc.Metadata[k] = v
			}
			chunkDoc.Metadata["chunk_index"] = strconv.Itoa(i)
			chunkDoc.Metadata["chunk_total"] = strconv.Itoa(len(texts))
			out = append(out, chunkDoc)
		}
	}

	span.SetAttributes(
		attribute.Int("chunker.output_count", len(out)),
		attribute.Int64("chunker.duration_ms", time.Since(start).Milliseconds()),
	)
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// CreateDocuments builds Documents from parallel texts/metadatas slices and
// splits them, the document-construction counterpart to SplitDocuments.
// metadatas may be shorter than texts or contain nil entries.
func (c *Chunker) CreateDocuments(ctx context.Context, texts []string, metadatas []map[string]any) ([]Document, error) {
	ctx, span := c.tracer.Start(ctx, "chunker.CreateDocuments",
		trace.WithAttributes(attribute.Int("chunker.input_count", len(texts))))
	defer span.End()

	documents := make([]Document, len(texts))
	for i, text := range texts {
		doc := Document{PageContent: text, Metadata: make(map[string]string)}
		if i < len(metadatas) {
			for k, v := range metadatas[i] {
				doc.Metadata[k] = fmt.Sprintf("%v", v)
			}
		}
		documents[i] = doc
	}

	return c.SplitDocuments(ctx, documents)
}
