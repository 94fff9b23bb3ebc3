package chunker

import "fmt"

// Ladder holds the five fixed, ordered separator sets applied by the packer
// from strongest structural boundary to weakest clause-level punctuation.
// It is a fixed constant; ChunkingConfig does not customize it.
var Ladder = [][]string{
	explicitSeparators(),
	potentialSeparators(),
	weakInlineSeparators(),
	weakSentenceSeparators(),
	weakClauseSeparators(),
}

// explicitSeparators are structural block boundaries: paragraph breaks,
// terminal-punctuation-before-blank-line, horizontal rules, and headers.
func explicitSeparators() []string {
	return []string{
		".\n\n", "!\n\n", "!!\n\n", "!!!\n\n",
		"?\n\n", "??\n\n", "???\n\n",
		"\n\n",
		"\n---",
		"\n#####", "\n####", "\n###", "\n##", "\n#",
	}
}

// potentialSeparators are other block structures: blockquotes, fenced code,
// and ordered-list item markers.
func potentialSeparators() []string {
	seps := []string{"\n> ", "\n>- ", "\n>* ", "\n```"}
	for i := 1; i <= 99; i++ {
		seps = append(seps, fmt.Sprintf("\n%d. ", i))
	}
	return seps
}

// weakInlineSeparators are inline structural markers: table rows, links,
// images, and definition-list markers.
func weakInlineSeparators() []string {
	return []string{"| ", " |\n", "-|\n", "[", "![", "\n: "}
}

// weakSentenceSeparators are sentence-terminal punctuation runs (including
// unicode interrobangs/ellipsis), each with optional trailing-whitespace
// variants. Longest-match precedence matters here: "???" must win over "??"
// at the same position.
func weakSentenceSeparators() []string {
	bases := []string{
		".", "..", "...", "....",
		"?", "??", "???", "????",
		"!", "!!", "!!!", "!!!!",
		"?!", "!?", "?!?", "!?!",
	}
	seps := make([]string, 0, len(bases)*4+4)
	for _, b := range bases {
		seps = append(seps, b, b+" ", b+"\t", b+"\n")
	}
	seps = append(seps, "⁉ ", "⁈ ", "⁇ ", "… ")
	return seps
}

// weakClauseSeparators are clause-level punctuation, each with optional
// trailing-whitespace variants, plus a bare newline as the last resort
// before per-character splitting.
func weakClauseSeparators() []string {
	chars := []string{";", "}", ")", "]", ":", ","}
	seps := make([]string, 0, len(chars)*4+1)
	for _, c := range chars {
		seps = append(seps, c, c+" ", c+"\t", c+"\n")
	}
	seps = append(seps, "\n")
	return seps
}
