package chunker

import "github.com/lookatitude/mdchunk/pkg/chunker/iface"

// fallbackTokenizer is the registry's emergency tokenizer: it treats every
// rune as its own token, using the rune's code point as the token id. It
// has no external dependency and can always be constructed, so it
// guarantees TokenizerRegistry.Get is total even if the tiktoken provider
// cannot build either the requested or the default encoding.
type fallbackTokenizer struct{}

func newFallbackTokenizer() iface.Tokenizer {
	return fallbackTokenizer{}
}

func (fallbackTokenizer) EncodeToIDs(text string) []int {
	ids := make([]int, 0, len(text))
	for _, r := range text {
		ids = append(ids, int(r))
	}
	return ids
}

func (fallbackTokenizer) Decode(ids []int) string {
	runes := make([]rune, len(ids))
	for i, id := range ids {
		runes[i] = rune(id)
	}
	return string(runes)
}

func (fallbackTokenizer) CountTokens(text string) int {
	n := 0
	for range text {
		n++
	}
	return n
}
