// Package scrape extracts the readable article from raw HTML.
package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"github.com/fedisum/summarybot/internal/bot"
)

// Readability implements bot.Scraper on top of go-readability, with a
// goquery pass for the published date, which readability does not surface.
type Readability struct{}

// New returns a Readability scraper.
func New() Readability {
	return Readability{}
}

// Scrape parses html and returns the article title, published date, and
// plain body text. It errors on pages with no extractable article text so
// callers can mark the post processed and move on.
func (Readability) Scrape(pageURL, html string) (bot.Article, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return bot.Article{}, fmt.Errorf("parse page url: %w", err)
	}

	art, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return bot.Article{}, fmt.Errorf("extract article: %w", err)
	}

	body := strings.TrimSpace(art.TextContent)
	if body == "" {
		return bot.Article{}, fmt.Errorf("page %s has no article text", pageURL)
	}

	return bot.Article{
		Title:     strings.TrimSpace(art.Title),
		Published: publishedDate(html),
		Body:      body,
	}, nil
}

// publishedDate looks for the usual metadata carriers of the publication
// date. A zero time means no date was found.
func publishedDate(html string) time.Time {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return time.Time{}
	}

	selectors := []struct {
		query string
		attr  string
	}{
		{`meta[property="article:published_time"]`, "content"},
		{`meta[itemprop="datePublished"]`, "content"},
		{`meta[name="date"]`, "content"},
		{`time[datetime]`, "datetime"},
	}

	for _, sel := range selectors {
		value, ok := doc.Find(sel.query).First().Attr(sel.attr)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if ts, err := dateparse.ParseAny(strings.TrimSpace(value)); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// FormatDate renders a published date for the comment template, falling
// back to "unknown" when the scraper found none.
func FormatDate(ts time.Time) string {
	if ts.IsZero() {
		return "unknown"
	}
	return ts.Format("2006-01-02")
}
