package ingest

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	spaceRe     = regexp.MustCompile(`\s+`)
)

// CleanText strips any markup out of a scraped free-text field and
// collapses whitespace. Scraper output occasionally carries HTML
// fragments lifted straight from tender portals.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	if strings.ContainsAny(text, "<>") {
		text = htmlToText(text)
	}
	text = stripPolicy.Sanitize(text)
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}

// TruncateText cuts a string to max length, appending ellipsis if truncated.
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen > 3 {
		return text[:maxLen-3] + "..."
	}
	return text[:maxLen]
}
