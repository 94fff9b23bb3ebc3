package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNewlines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no carriage returns", "a\nb\nc", "a\nb\nc"},
		{"crlf only", "a\r\nb\r\nc", "a\nb\nc"},
		{"lone cr only", "a\rb\rc", "a\nb\nc"},
		{"mixed", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeNewlines(tt.in))
		})
	}
}

func TestNormalizeNewlinesIdempotent(t *testing.T) {
	inputs := []string{"a\r\nb\rc\nd", "plain text\nwith\nlines", "\r\r\n\n\r"}
	for _, in := range inputs {
		once := NormalizeNewlines(in)
		twice := NormalizeNewlines(once)
		assert.Equal(t, once, twice, "normalize should be idempotent for %q", in)
	}
}
