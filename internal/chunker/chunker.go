// Package chunker splits extracted text into provider-safe segments.
package chunker

import (
	"errors"
	"strings"
)

// ErrInvalidChunkSize is returned when an invalid chunk size is specified.
var ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")

// Split divides text into an ordered sequence of chunks, each at most size
// long. Length is measured in Unicode code points, so multi-byte text is
// never cut mid-character.
//
// Paragraphs (separated by two consecutive newlines) are accumulated into a
// buffer while the next one still fits under size; a paragraph that would
// reach the limit flushes the buffer as a trimmed chunk first. A single
// paragraph longer than size is force-sliced into size-long pieces.
// Concatenating the chunks reproduces the input up to whitespace trimming at
// paragraph boundaries.
func Split(text string, size int) ([]string, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if text == "" {
		return []string{}, nil
	}

	// Normalize line endings
	text = strings.ReplaceAll(text, "\r\n", "\n")

	paragraphs := strings.Split(text, "\n\n")

	chunks := []string{}
	var current []rune

	flush := func() {
		content := strings.TrimSpace(string(current))
		if content != "" {
			chunks = append(chunks, content)
		}
		current = current[:0]
	}

	for _, para := range paragraphs {
		runes := []rune(para)

		if len(current)+len(runes) < size {
			current = append(current, runes...)
			current = append(current, '\n', '\n')
			continue
		}

		flush()
		current = append(current, runes...)
		current = append(current, '\n', '\n')

		// A single oversized paragraph is sliced into size-long pieces,
		// leaving the remainder as the new buffer.
		for len(current) > size {
			chunks = append(chunks, string(current[:size]))
			n := copy(current, current[size:])
			current = current[:n]
		}
	}
	flush()

	return chunks, nil
}
