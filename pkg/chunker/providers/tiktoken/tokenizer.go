// Package tiktoken wraps github.com/pkoukk/tiktoken-go behind the
// chunker's iface.Tokenizer contract.
package tiktoken

import (
	"fmt"

	gotiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/lookatitude/mdchunk/pkg/chunker/iface"
)

// Tokenizer adapts a *gotiktoken.Tiktoken encoding to iface.Tokenizer.
type Tokenizer struct {
	enc *gotiktoken.Tiktoken
}

// New builds a Tokenizer for name, trying it first as a tiktoken encoding
// name (e.g. "cl100k_base") and, failing that, as a model name (e.g.
// "gpt-4") that resolves to one.
func New(name string) (iface.Tokenizer, error) {
	enc, err := gotiktoken.GetEncoding(name)
	if err != nil {
		enc, err = gotiktoken.EncodingForModel(name)
	}
	if err != nil {
		return nil, fmt.Errorf("tiktoken: no encoding for %q: %w", name, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// EncodeToIDs implements iface.Tokenizer.
func (t *Tokenizer) EncodeToIDs(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode implements iface.Tokenizer.
func (t *Tokenizer) Decode(ids []int) string {
	return t.enc.Decode(ids)
}

// CountTokens implements iface.Tokenizer.
func (t *Tokenizer) CountTokens(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}
