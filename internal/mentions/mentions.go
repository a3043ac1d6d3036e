// Package mentions pulls recent news coverage of a business from the Google
// News RSS search feed.
package mentions

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// Mention is one news item referencing the queried business.
type Mention struct {
	Title     string
	Source    string
	Link      string
	Published time.Time
}

type Fetcher struct {
	parser  *gofeed.Parser
	baseURL string
	limit   int
}

func New(limit int) *Fetcher {
	return &Fetcher{parser: gofeed.NewParser(), baseURL: defaultBaseURL, limit: limit}
}

// Fetch returns up to the configured number of news mentions for the query.
// Callers treat a failure as an empty panel, not a fatal error.
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]Mention, error) {
	feedURL := f.baseURL + "?q=" + url.QueryEscape(query)
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching mentions for %q: %w", query, err)
	}

	now := time.Now()
	limit := f.limit
	if limit <= 0 {
		limit = 5
	}

	found := make([]Mention, 0, limit)
	for _, item := range feed.Items {
		if len(found) >= limit {
			break
		}

		title, source := splitTitle(stripHTML(item.Title))
		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		}

		found = append(found, Mention{
			Title:     truncate(title, 140),
			Source:    source,
			Link:      item.Link,
			Published: pub,
		})
	}
	return found, nil
}

// splitTitle separates the publisher suffix Google News appends to headlines
// ("Headline - Publisher").
func splitTitle(raw string) (title, source string) {
	if idx := strings.LastIndex(raw, " - "); idx > 0 {
		return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+3:])
	}
	return raw, "Google News"
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
