package chunker

import "unicode/utf8"

// Fragment is a maximal contiguous run of input characters tagged as either
// a matched separator or non-separator content. Start/End are byte offsets
// into the string passed to SplitToFragments, not necessarily into the
// top-level normalized stream — callers that need absolute provenance carry
// a base offset alongside the fragment (see packer.go).
type Fragment struct {
	Content     string
	IsSeparator bool
	Start       int
	End         int
}

// SplitToFragments scans text left-to-right and returns fragments with
// longest-match, non-overlapping semantics: at each position it picks the
// longest separator literal that matches there (ties go to the earlier
// entry in separators), emits any pending content before it, then emits the
// separator. separators == nil is the terminal fallback used once the
// ladder is exhausted: every fragment is a single character, tagged as a
// separator. A non-nil empty slice is distinct from nil and simply never
// matches, producing one content fragment for the whole input.
func SplitToFragments(text string, separators []string) []Fragment {
	if text == "" {
		return nil
	}
	if separators == nil {
		return splitToCharacters(text)
	}

	var frags []Fragment
	i := 0
	contentStart := 0
	for i < len(text) {
		sep, ok := longestMatchAt(text, i, separators)
		if !ok {
			_, width := utf8.DecodeRuneInString(text[i:])
			if width == 0 {
				width = 1
			}
			i += width
			continue
		}
		if i > contentStart {
			frags = append(frags, Fragment{Content: text[contentStart:i], IsSeparator: false, Start: contentStart, End: i})
		}
		frags = append(frags, Fragment{Content: sep, IsSeparator: true, Start: i, End: i + len(sep)})
		i += len(sep)
		contentStart = i
	}
	if contentStart < len(text) {
		frags = append(frags, Fragment{Content: text[contentStart:], IsSeparator: false, Start: contentStart, End: len(text)})
	}
	return frags
}

// longestMatchAt returns the longest separator literal matching text at
// byte offset i, breaking ties by position in separators.
func longestMatchAt(text string, i int, separators []string) (string, bool) {
	bestLen := -1
	best := ""
	for _, sep := range separators {
		if sep == "" || len(sep) <= bestLen {
			continue
		}
		if i+len(sep) > len(text) {
			continue
		}
		if text[i:i+len(sep)] == sep {
			best = sep
			bestLen = len(sep)
		}
	}
	return best, bestLen >= 0
}

// splitToCharacters implements the absent-separators contract: one
// Fragment per rune, tagged as a separator.
func splitToCharacters(text string) []Fragment {
	frags := make([]Fragment, 0, len(text))
	i := 0
	for _, r := range text {
		w := utf8.RuneLen(r)
		if w <= 0 {
			w = 1
		}
		frags = append(frags, Fragment{Content: string(r), IsSeparator: true, Start: i, End: i + w})
		i += w
	}
	return frags
}
