// Package document turns uploaded resume and job description files into
// plain text. Extraction is best effort.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is a supported document kind.
type Format string

const (
	FormatUnknown Format = ""
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatHTML    Format = "html"
)

var extensions = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// DetectFormat infers the format from the file extension.
func DetectFormat(name string) Format {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// ExtractFile reads path and returns its text.
func ExtractFile(path string) (string, error) {
	if DetectFormat(path) == FormatUnknown {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return ExtractBytes(path, data)
}

// ExtractBytes returns the text of data, using name to pick the format. An
// unsupported format yields empty text and no error so that callers can carry
// on with whatever input they have.
func ExtractBytes(name string, data []byte) (string, error) {
	var (
		text string
		err  error
	)

	switch DetectFormat(name) {
	case FormatText:
		text = string(data)
	case FormatPDF:
		text, err = extractPDF(bytes.NewReader(data), int64(len(data)))
	case FormatDOCX:
		text, err = extractDOCX(bytes.NewReader(data), int64(len(data)))
	case FormatHTML:
		text, err = extractHTML(bytes.NewReader(data))
	default:
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(name), err)
	}

	return normalize(text), nil
}

// normalize trims every line and collapses runs of blank lines.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		out   []string
		blank bool
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
