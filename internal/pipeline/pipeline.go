// Package pipeline drives one PDF → audiobook conversion.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/papertone/papertone/internal/chunker"
	"github.com/papertone/papertone/internal/display"
	"github.com/papertone/papertone/internal/extractor"
	"github.com/papertone/papertone/internal/sanitizer"
	"github.com/papertone/papertone/internal/tts"
)

// ExtractionError reports a document that produced no usable text. It is a
// user-correctable failure, not a server fault.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return e.Reason
}

// Result describes a completed conversion.
type Result struct {
	// Filename is the audiobook file name inside the audio directory.
	Filename string
	// Chunks is the number of text chunks the document was split into.
	Chunks int
	// Bytes is the total audio size written.
	Bytes int64
}

// Pipeline converts an uploaded PDF into a single concatenated audio file:
// extract, chunk, then sanitize + synthesize each chunk in order, appending
// the returned bytes to the output as they arrive.
type Pipeline struct {
	extractor extractor.TextExtractor
	synth     tts.Synthesizer
	sanitizer *sanitizer.Sanitizer
	chunkSize int
	audioDir  string
}

// New creates a Pipeline writing audiobooks into audioDir.
func New(ex extractor.TextExtractor, synth tts.Synthesizer, san *sanitizer.Sanitizer, chunkSize int, audioDir string) *Pipeline {
	return &Pipeline{
		extractor: ex,
		synth:     synth,
		sanitizer: san,
		chunkSize: chunkSize,
		audioDir:  audioDir,
	}
}

// Convert runs one conversion. Chunks are processed strictly sequentially;
// the first synthesis failure aborts the conversion, leaving any partially
// written output file on disk for inspection. The uploaded file at
// uploadPath is removed as soon as extraction has run, on every path.
func (p *Pipeline) Convert(ctx context.Context, uploadPath, voiceID string) (*Result, error) {
	display.Step(1, 4, "Extracting text from PDF...")
	text, err := p.extractor.Extract(uploadPath)

	if rmErr := os.Remove(uploadPath); rmErr != nil && !os.IsNotExist(rmErr) {
		display.Warn(fmt.Sprintf("remove upload %q: %v", uploadPath, rmErr))
	}

	if err != nil {
		return nil, &ExtractionError{Reason: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ExtractionError{Reason: "no text extracted from PDF"}
	}

	display.Step(2, 4, "Chunking text...")
	chunks, err := chunker.Split(text, p.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("chunk text: %w", err)
	}
	display.StepDetail(fmt.Sprintf("text split into %d chunk(s)", len(chunks)))

	display.Step(3, 4, "Synthesizing audio...")
	outName := fmt.Sprintf("audiobook_%s.mp3", uuid.New().String())
	outPath := filepath.Join(p.audioDir, outName)

	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create output file %q: %w", outPath, err)
	}
	defer out.Close()

	var written int64
	for i, chunk := range chunks {
		// Whitespace-only chunks are never sent to the provider.
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		clean := p.sanitizer.Apply(chunk)

		display.StepDetail(fmt.Sprintf("chunk %d/%d", i+1, len(chunks)))
		audio, err := p.synth.Synthesize(ctx, clean, voiceID)
		if err != nil {
			// Partial output stays on disk as-is.
			return nil, fmt.Errorf("synthesize chunk %d: %w", i, err)
		}

		n, err := out.Write(audio)
		if err != nil {
			return nil, fmt.Errorf("append audio for chunk %d: %w", i, err)
		}
		written += int64(n)
	}

	display.Step(4, 4, "Audiobook complete")
	display.StepDetail(fmt.Sprintf("%s (%d bytes)", outName, written))

	return &Result{Filename: outName, Chunks: len(chunks), Bytes: written}, nil
}
