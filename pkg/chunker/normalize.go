package chunker

import "strings"

// NormalizeNewlines maps CRLF and lone CR to LF so downstream separator
// literals (which are written in terms of "\n") match uniformly regardless
// of the input's original line-ending convention. Idempotent.
func NormalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}
