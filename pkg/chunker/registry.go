package chunker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lookatitude/mdchunk/pkg/chunker/iface"
	"github.com/lookatitude/mdchunk/pkg/chunker/providers/tiktoken"
)

// TokenizerBuilder constructs a Tokenizer for a given encoding or model
// name, or reports that the name isn't one it knows how to build.
type TokenizerBuilder func(name string) (iface.Tokenizer, error)

// TokenizerRegistry is a process-wide, read-mostly lookup from
// encoding_model to Tokenizer. Unknown or unbuildable names fall back to
// DefaultEncodingModel rather than erroring: the chunker never errors on
// tokenizer selection.
type TokenizerRegistry struct {
	mu      sync.RWMutex
	aliases map[string]string
	cache   map[string]iface.Tokenizer
	builder TokenizerBuilder
}

var (
	globalRegistry *TokenizerRegistry
	registryOnce   sync.Once
)

// GetRegistry returns the global TokenizerRegistry instance.
func GetRegistry() *TokenizerRegistry {
	registryOnce.Do(func() {
		globalRegistry = &TokenizerRegistry{
			aliases: make(map[string]string),
			cache:   make(map[string]iface.Tokenizer),
			builder: tiktoken.New,
		}
	})
	return globalRegistry
}

// RegisterAlias maps a friendly name to the canonical encoding/model key the
// builder should be asked for. Panics if alias is already registered (call
// during init only), matching the registration discipline of a
// process-wide registry.
func (r *TokenizerRegistry) RegisterAlias(alias, canonical string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.aliases[alias]; exists {
		panic("chunker: tokenizer alias '" + alias + "' is already registered")
	}
	r.aliases[alias] = canonical
}

// Get returns the Tokenizer for encoding_model, building and caching it on
// first use. An empty name, an unknown alias, or a build failure all fall
// back to DefaultEncodingModel; if even that fails to build, Get returns a
// minimal built-in tokenizer so the call is always total.
func (r *TokenizerRegistry) Get(name string) iface.Tokenizer {
	key := name
	if key == "" {
		key = DefaultEncodingModel
	}

	r.mu.RLock()
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	if tok, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return tok
	}
	r.mu.RUnlock()

	tok, err := r.builder(key)
	if err != nil && key != DefaultEncodingModel {
		logWithOTELContext(context.Background(), slog.LevelWarn,
			"tokenizer build failed, falling back to default encoding",
			"requested", key, "default", DefaultEncodingModel, "error", err)
		key = DefaultEncodingModel
		tok, err = r.builder(key)
	}
	if err != nil {
		logWithOTELContext(context.Background(), slog.LevelWarn,
			"default encoding also failed to build, falling back to the built-in rune tokenizer",
			"error", err)
		tok = newFallbackTokenizer()
	}

	r.mu.Lock()
	r.cache[key] = tok
	r.mu.Unlock()
	return tok
}

// List returns all tokenizer keys known to the registry, either via alias
// or already built and cached.
func (r *TokenizerRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.aliases)+len(r.cache))
	for name := range r.aliases {
		names = append(names, name)
	}
	for name := range r.cache {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether name is a known alias or an already-built
// tokenizer key.
func (r *TokenizerRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.aliases[name]; ok {
		return true
	}
	_, ok := r.cache[name]
	return ok
}
