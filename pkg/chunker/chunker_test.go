package chunker

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/lookatitude/mdchunk/pkg/chunker/iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestChunker builds a Chunker the same way New does, but with a
// registry wired to the dependency-free fallback tokenizer so these tests
// never need network access to resolve a real tiktoken encoding.
func newTestChunker(t *testing.T, opts ...Option) *Chunker {
	t.Helper()
	cfg, err := NewChunkingConfig(opts...)
	require.NoError(t, err)

	registry := newTestRegistry(func(name string) (iface.Tokenizer, error) {
		return newFallbackTokenizer(), nil
	})

	meter := otel.Meter(instrumentationName)
	metrics, err := NewMetrics(meter)
	require.NoError(t, err)

	return &Chunker{
		config:   cfg,
		registry: registry,
		tracer:   otel.Tracer(instrumentationName),
		meter:    meter,
		metrics:  metrics,
	}
}

// Scenario A.
func TestChunkShortTextSingleChunk(t *testing.T) {
	c := newTestChunker(t, WithSize(100), WithOverlap(20))
	chunks, err := c.Chunk(context.Background(), []ChunkSlice{{DocumentID: "d1", Text: "Short text"}})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Short text", chunks[0].Text)
	assert.Equal(t, []string{"d1"}, chunks[0].DocumentIDs)
}

func TestChunkEmptyInputReturnsEmptyNotError(t *testing.T) {
	c := newTestChunker(t, WithSize(100), WithOverlap(0))
	chunks, err := c.Chunk(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, chunks)

	chunks, err = c.Chunk(context.Background(), []ChunkSlice{{DocumentID: "d1", Text: ""}})
	assert.NoError(t, err)
	assert.Nil(t, chunks)
}

// Scenario D.
func TestChunkNoChunkStartsWithBareImage(t *testing.T) {
	long := strings.Repeat("This paragraph provides enough content for chunking. ", 4)
	text := "# Title\n\nAlice met Bob.\n\n![image](path)\n\n" + long
	c := newTestChunker(t, WithSize(60), WithOverlap(10))

	chunks, err := c.Chunk(context.Background(), []ChunkSlice{{DocumentID: "d1", Text: text}})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)

	foundImage := false
	for i, ch := range chunks {
		if i > 0 {
			assert.False(t, strings.HasPrefix(strings.TrimLeft(ch.Text, " \t\n"), "!["))
		}
		if strings.Contains(ch.Text, "![image](path)") {
			foundImage = true
		}
	}
	assert.True(t, foundImage)
}

// Scenario E.
func TestChunkImageMergedIntoPreceding(t *testing.T) {
	para := strings.Repeat("This paragraph provides enough content for chunking.\n\n", 6)
	text := para + "![diagram](diagram.png)\nImage description here."
	c := newTestChunker(t, WithSize(60), WithOverlap(0))

	chunks, err := c.Chunk(context.Background(), []ChunkSlice{{DocumentID: "d1", Text: text}})
	require.NoError(t, err)
	for i, ch := range chunks {
		if i == 0 {
			continue
		}
		assert.False(t, strings.HasPrefix(strings.TrimLeft(ch.Text, " \t\n"), "!["))
	}

	joined := ""
	for _, ch := range chunks {
		joined += ch.Text
	}
	assert.Contains(t, joined, "![diagram](diagram.png)")
}

// Scenario F.
func TestChunkOverlapPrefixMatchesPreviousTail(t *testing.T) {
	text := strings.Repeat("Token overlap ensures continuity across generated segments. ", 20)
	c := newTestChunker(t, WithSize(80), WithOverlap(20))

	chunks, err := c.Chunk(context.Background(), []ChunkSlice{{DocumentID: "d1", Text: text}})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)

	tok := newFallbackTokenizer()
	// chunks[0] has no overlap prefix, so its text is exactly its original
	// packed content; reconstruct the expected prefix from it directly.
	prevIDs := tok.EncodeToIDs(chunks[0].Text)
	n := 20
	if n > len(prevIDs) {
		n = len(prevIDs)
	}
	want := strings.TrimLeft(tok.Decode(prevIDs[len(prevIDs)-n:]), " \t\n")
	got := strings.TrimLeft(chunks[1].Text, " \t\n")
	assert.True(t, strings.HasPrefix(got, want))
}

func TestChunkDeterministic(t *testing.T) {
	c := newTestChunker(t, WithSize(60), WithOverlap(10))
	slices := []ChunkSlice{{DocumentID: "d1", Text: strings.Repeat("Repeatable content here. ", 10)}}

	first, err := c.Chunk(context.Background(), slices)
	require.NoError(t, err)
	second, err := c.Chunk(context.Background(), slices)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestChunkProvenanceCoversAllContributingSlices(t *testing.T) {
	c := newTestChunker(t, WithSize(40), WithOverlap(0))
	slices := []ChunkSlice{
		{DocumentID: "doc-1", Text: "First document content here, quite a bit of it actually."},
		{DocumentID: "doc-2", Text: "Second document content, also fairly long for this test."},
		{DocumentID: "doc-3", Text: ""},
	}
	chunks, err := c.Chunk(context.Background(), slices)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, ch := range chunks {
		require.NotEmpty(t, ch.DocumentIDs)
		for _, id := range ch.DocumentIDs {
			seen[id] = true
		}
	}
	assert.True(t, seen["doc-1"])
	assert.True(t, seen["doc-2"])
	assert.False(t, seen["doc-3"], "an empty slice contributes no text and should not appear in provenance")
}

// Budget property: every emitted chunk stays within 1.5x the configured
// size, even with recursive re-splitting in play.
func TestChunkRespectsTokenBudgetSlack(t *testing.T) {
	c := newTestChunker(t, WithSize(30), WithOverlap(5))
	text := strings.Repeat("alpha beta gamma delta epsilon zeta eta theta. ", 15)
	chunks, err := c.Chunk(context.Background(), []ChunkSlice{{DocumentID: "d1", Text: text}})
	require.NoError(t, err)
	for _, ch := range chunks {
		assert.LessOrEqual(t, ch.TokenCount, int(30*1.5))
	}
}

func TestSplitTextReshapesChunkOutput(t *testing.T) {
	c := newTestChunker(t, WithSize(100), WithOverlap(0))
	texts, err := c.SplitText(context.Background(), "Short text")
	require.NoError(t, err)
	assert.Equal(t, []string{"Short text"}, texts)
}

func TestSplitDocumentsAttachesChunkMetadata(t *testing.T) {
	c := newTestChunker(t, WithSize(100), WithOverlap(0))
	docs := []Document{{PageContent: "Short text", Metadata: map[string]string{"source": "a.md"}}}
	out, err := c.SplitDocuments(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a.md", out[0].Metadata["source"])
	assert.Equal(t, "0", out[0].Metadata["chunk_index"])
	assert.Equal(t, "1", out[0].Metadata["chunk_total"])
}

func TestCreateDocumentsBuildsThenSplits(t *testing.T) {
	c := newTestChunker(t, WithSize(100), WithOverlap(0))
	out, err := c.CreateDocuments(
		context.Background(),
		[]string{"Short text"},
		[]map[string]any{{"source": "a.md"}},
	)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a.md", out[0].Metadata["source"])
}
