package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	noiseSelector = "script, style, noscript, iframe, nav, header, footer"
	blockSelector = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, pre"
)

// extractHTML returns one line per block element. List items are prefixed
// with a bullet so requirement extraction still recognises them.
func extractHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			text = "- " + text
		}
		lines = append(lines, text)
	})

	if len(lines) > 0 {
		return strings.Join(lines, "\n"), nil
	}

	return strings.Join(strings.Fields(doc.Find("body").Text()), " "), nil
}
