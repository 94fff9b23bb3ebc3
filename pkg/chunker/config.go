package chunker

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultEncodingModel is the fallback tokenizer key used whenever a caller
// leaves EncodingModel empty or requests an unknown model/encoding name.
const DefaultEncodingModel = "cl100k_base"

// ChunkSlice is a caller-owned, labeled text input. Slices are never
// mutated by the chunker.
type ChunkSlice struct {
	DocumentID string
	Text       string
}

// ChunkingConfig configures a single Chunk() call. It is a value parameter:
// immutable once passed in, never customized mid-run.
type ChunkingConfig struct {
	// Size is the target token budget per chunk, under EncodingModel's
	// tokenizer.
	Size int `validate:"required,min=1"`

	// Overlap is the number of trailing tokens of a chunk that are
	// re-emitted as the prefix of the next chunk. Must be < Size.
	Overlap int `validate:"min=0,ltfield=Size"`

	// EncodingModel selects the tokenizer via TokenizerRegistry.Get.
	EncodingModel string `validate:"required"`
}

// DefaultChunkingConfig returns a ChunkingConfig with sensible defaults.
func DefaultChunkingConfig() *ChunkingConfig {
	return &ChunkingConfig{
		Size:          1000,
		Overlap:       200,
		EncodingModel: DefaultEncodingModel,
	}
}

// Validate checks the configuration before any chunking work begins.
// size = 0, overlap >= size, or an empty encoding model are rejected here;
// Chunk never partially produces chunks for an invalid config.
func (c *ChunkingConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return NewChunkerError("Validate", ErrCodeInvalidConfig, fmt.Sprintf("invalid chunking config: %v", err), err)
	}
	return nil
}

// Option configures a ChunkingConfig.
type Option func(*ChunkingConfig)

// WithSize sets the target token budget per chunk.
func WithSize(size int) Option {
	return func(c *ChunkingConfig) { c.Size = size }
}

// WithOverlap sets the number of overlapping trailing tokens between
// consecutive chunks.
func WithOverlap(overlap int) Option {
	return func(c *ChunkingConfig) { c.Overlap = overlap }
}

// WithEncodingModel sets the tokenizer selector.
func WithEncodingModel(model string) Option {
	return func(c *ChunkingConfig) { c.EncodingModel = model }
}

// NewChunkingConfig builds a ChunkingConfig from DefaultChunkingConfig plus
// the given options, then validates it.
func NewChunkingConfig(opts ...Option) (*ChunkingConfig, error) {
	cfg := DefaultChunkingConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
