package extractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeMinimalPDF hand-builds a valid multi-page PDF with one content stream
// per entry of pageTexts; an empty entry produces a page with an empty
// content stream.
func writeMinimalPDF(t *testing.T, path string, pageTexts []string) {
	t.Helper()

	n := len(pageTexts)
	fontObj := 3 + n
	contentObj := func(i int) int { return fontObj + 1 + i }

	kids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}

	bodies := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	}
	for i := 0; i < n; i++ {
		bodies = append(bodies, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentObj(i)))
	}
	bodies = append(bodies, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	for _, text := range pageTexts {
		stream := ""
		if text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		bodies = append(bodies, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	// Objects are written in object-number order so the xref table can be
	// emitted straight from the collected offsets.
	offsets := make([]int, 0, len(bodies))
	for i, body := range bodies {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xrefOff := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOff)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestExtract_SkipsEmptyPageKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "three-pages.pdf")
	writeMinimalPDF(t, path, []string{"PageOne", "", "PageThree"})

	text, err := NewPDF().Extract(path)
	require.NoError(t, err)

	first := strings.Index(text, "PageOne")
	third := strings.Index(text, "PageThree")
	require.GreaterOrEqual(t, first, 0, "page 1 text missing: %q", text)
	require.GreaterOrEqual(t, third, 0, "page 3 text missing: %q", text)
	assert.Less(t, first, third, "page text must stay in page order")
}

func TestExtract_SinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one-page.pdf")
	writeMinimalPDF(t, path, []string{"OnlyPage"})

	text, err := NewPDF().Extract(path)
	require.NoError(t, err)
	assert.Contains(t, text, "OnlyPage")
}

func TestExtract_MissingFile(t *testing.T) {
	text, err := NewPDF().Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	text, err := NewPDF().Extract(path)
	require.NoError(t, err)
	assert.Empty(t, text)
}
