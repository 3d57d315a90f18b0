package document

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	xmlTagRe = regexp.MustCompile(`<[^>]*>`)

	wordMarkup = strings.NewReplacer(
		"</w:p>", "\n",
		"<w:br/>", "\n",
		"<w:cr/>", "\n",
		"<w:tab/>", "\t",
	)
)

func extractDOCX(r io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(r, size)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	return wordXMLToText(doc.Editable().GetContent()), nil
}

// wordXMLToText keeps paragraph and line breaks from document.xml and drops
// every other tag.
func wordXMLToText(content string) string {
	text := wordMarkup.Replace(content)
	text = xmlTagRe.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}
