// Package goquery implements HTML post extractors using goquery.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/repurpose"
)

// parseDocument parses a fetched HTML body.
func parseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, repurpose.Errorf(repurpose.EMALFORMED, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// firstText returns the trimmed text of the first node matching selector,
// or "" when nothing matches.
func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

// metaContent returns the trimmed content attribute of the first
// <meta property="..."> tag with the given property.
func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	return strings.TrimSpace(content)
}
