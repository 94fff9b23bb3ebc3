package chunker

import (
	"strings"

	"github.com/lookatitude/mdchunk/pkg/chunker/iface"
)

// docRange is one entry in the range-to-document-id provenance table: a
// sorted-by-start, non-overlapping span of the concatenated normalized
// stream owned by a single input slice.
type docRange struct {
	start, end int
	docID      string
}

// buildStream concatenates the normalized text of every non-empty slice and
// records the provenance table used to tag emitted chunks with
// document_ids.
func buildStream(slices []ChunkSlice) (string, []docRange) {
	var sb strings.Builder
	var prov []docRange
	offset := 0
	for _, s := range slices {
		normalized := NormalizeNewlines(s.Text)
		if normalized == "" {
			continue
		}
		start := offset
		sb.WriteString(normalized)
		offset += len(normalized)
		prov = append(prov, docRange{start: start, end: offset, docID: s.DocumentID})
	}
	return sb.String(), prov
}

// docIDsFor returns, in provenance order, every document id whose range
// overlaps [start, end).
func docIDsFor(prov []docRange, start, end int) []string {
	var ids []string
	for _, r := range prov {
		if r.start >= end {
			break
		}
		if r.end > start {
			ids = append(ids, r.docID)
		}
	}
	return ids
}

// ladderLevel resolves the separator set for the given recursion depth.
// level < len(Ladder) uses that ladder level; level == len(Ladder) is the
// absent-separators (per-character) terminal fallback; level >
// len(Ladder) means the per-character fallback has already been applied
// once and nothing further can be split (terminal=true).
func ladderLevel(level int) (seps []string, terminal bool) {
	switch {
	case level < len(Ladder):
		return Ladder[level], false
	case level == len(Ladder):
		return nil, false
	default:
		return nil, true
	}
}

// chunkBuf accumulates fragments into a growing chunk before it is flushed.
type chunkBuf struct {
	text   strings.Builder
	tokens int
	docIDs []string
}

func (b *chunkBuf) addDocIDs(ids []string) {
	for _, id := range ids {
		found := false
		for _, have := range b.docIDs {
			if have == id {
				found = true
				break
			}
		}
		if !found {
			b.docIDs = append(b.docIDs, id)
		}
	}
}

func (b *chunkBuf) reset() {
	b.text.Reset()
	b.tokens = 0
	b.docIDs = nil
}

// packer implements spec.md §4.4's recursive token-budgeted packer.
type packer struct {
	tok  iface.Tokenizer
	size int
	prov []docRange
}

// pack greedily accumulates fragments into chunks. frags were produced by
// SplitToFragments against Ladder[nextLevel-1] (or the absent fallback, if
// nextLevel-1 == len(Ladder)); base is frags' absolute byte offset into the
// top-level stream, used to resolve document_ids and as the base offset
// for any further recursive split.
func (p *packer) pack(frags []Fragment, base int, nextLevel int) []Chunk {
	var out []Chunk
	var buf chunkBuf

	flush := func() {
		if buf.text.Len() == 0 {
			return
		}
		out = append(out, Chunk{
			Text:        buf.text.String(),
			TokenCount:  buf.tokens,
			DocumentIDs: buf.docIDs,
		})
		buf.reset()
	}

	for _, f := range frags {
		if f.Content == "" {
			continue
		}
		ftoks := p.tok.CountTokens(f.Content)
		absStart, absEnd := base+f.Start, base+f.End
		ids := docIDsFor(p.prov, absStart, absEnd)

		switch {
		case buf.tokens+ftoks <= p.size:
			buf.text.WriteString(f.Content)
			buf.tokens += ftoks
			buf.addDocIDs(ids)

		case ftoks > p.size:
			flush()
			subSeps, terminal := ladderLevel(nextLevel)
			if terminal {
				out = append(out, Chunk{Text: f.Content, TokenCount: ftoks, DocumentIDs: ids})
				continue
			}
			subFrags := SplitToFragments(f.Content, subSeps)
			out = append(out, p.pack(subFrags, absStart, nextLevel+1)...)

		default:
			flush()
			buf.text.WriteString(f.Content)
			buf.tokens = ftoks
			buf.addDocIDs(ids)
		}
	}

	flush()
	return out
}
