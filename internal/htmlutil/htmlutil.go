// Package htmlutil strips residual markup from provider-supplied text so
// the classifier and the summary prompt see plain words.
package htmlutil

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripMarkup removes HTML tags and collapses whitespace. Text without
// markup passes through with only whitespace normalization.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsRune(s, '<') {
		return collapse(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}

	// Scripts and styles contribute no readable text
	doc.Find("script, style").Remove()

	return collapse(doc.Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
