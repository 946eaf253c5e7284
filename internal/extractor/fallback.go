package extractor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractWithPdfcpu pulls raw page content from a PDF using pdfcpu with
// relaxed validation. Used when the primary parser cannot open the file.
// Returns an empty string when nothing can be extracted.
func extractWithPdfcpu(path string) string {
	tmpDir, err := os.MkdirTemp("", "papertone-pdf-*")
	if err != nil {
		return ""
	}
	defer os.RemoveAll(tmpDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ExtractContentFile(path, tmpDir, nil, conf); err != nil {
		return ""
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(tmpDir, entry.Name()))
		if err != nil {
			continue
		}
		sb.Write(data)
		sb.WriteString("\n")
	}
	return sb.String()
}
