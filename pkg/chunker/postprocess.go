package chunker

import (
	"strings"

	"github.com/lookatitude/mdchunk/pkg/chunker/iface"
)

// isImageChunk reports whether text's left-trimmed form opens with a bare
// Markdown image reference.
func isImageChunk(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "![")
}

// mergeImageChunks folds any chunk (other than the first) whose left-trimmed
// text starts with "![" into its immediately preceding chunk. Chunks are
// already contiguous slices of the normalized stream, so the merge is a
// plain concatenation: nothing was inserted between them by the packer,
// and nothing needs to be inserted here. Runs full passes until one makes
// no change; because appending to a chunk never changes how it starts, the
// first pass already folds a run of consecutive image-only chunks into the
// same preceding chunk, and the next pass finds nothing left to merge.
func mergeImageChunks(chunks []Chunk) []Chunk {
	for {
		changed := false
		out := make([]Chunk, 0, len(chunks))
		for _, c := range chunks {
			if len(out) > 0 && isImageChunk(c.Text) {
				prev := &out[len(out)-1]
				prev.Text += c.Text
				prev.DocumentIDs = unionDocIDs(prev.DocumentIDs, c.DocumentIDs)
				changed = true
				continue
			}
			out = append(out, c)
		}
		chunks = out
		if !changed {
			return chunks
		}
	}
}

// unionDocIDs merges b into a, preserving a's order and appending any new
// ids from b in b's order.
func unionDocIDs(a, b []string) []string {
	for _, id := range b {
		found := false
		for _, have := range a {
			if have == id {
				found = true
				break
			}
		}
		if !found {
			a = append(a, id)
		}
	}
	return a
}

// applyOverlap prepends, to every chunk but the first, a decoded tail of up
// to overlap tokens taken from the *original* (pre-overlap) text of the
// chunk before it. Overlap prefixes are computed against the image-merged
// chunks but before any chunk has had its own prefix attached, so overlap
// never compounds across a chain of chunks.
func applyOverlap(chunks []Chunk, tok iface.Tokenizer, overlap int) []Chunk {
	if overlap <= 0 || len(chunks) < 2 {
		return chunks
	}

	out := make([]Chunk, len(chunks))
	copy(out, chunks)

	for i := 1; i < len(out); i++ {
		prevIDs := tok.EncodeToIDs(chunks[i-1].Text)
		n := overlap
		if n > len(prevIDs) {
			n = len(prevIDs)
		}
		if n == 0 {
			continue
		}
		prefix := tok.Decode(prevIDs[len(prevIDs)-n:])
		out[i].Text = joinWithOverlap(prefix, out[i].Text)
	}
	return out
}

// joinWithOverlap concatenates prefix and text, inserting a single space at
// the join only if neither side already has whitespace there.
func joinWithOverlap(prefix, text string) string {
	if prefix == "" {
		return text
	}
	if endsWithSpace(prefix) || startsWithSpace(text) {
		return prefix + text
	}
	return prefix + " " + text
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	last := r[len(r)-1]
	return last == ' ' || last == '\t' || last == '\n' || last == '\r'
}

func startsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// finalize recomputes each chunk's token count against the chosen
// tokenizer. document_ids were already attached by the packer and carried
// through mergeImageChunks.
func finalize(chunks []Chunk, tok iface.Tokenizer) []Chunk {
	for i := range chunks {
		chunks[i].TokenCount = tok.CountTokens(chunks[i].Text)
	}
	return chunks
}
