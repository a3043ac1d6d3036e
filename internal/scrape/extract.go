package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

var decimalRegex = regexp.MustCompile(`\d+\.\d+`)

// parseCards extracts review rows from the rendered place page, capped at max.
func parseCards(pageHTML string, max int) []review.Review {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil
	}

	cards := doc.Find(reviewCardSelectors[0])
	for _, sel := range reviewCardSelectors[1:] {
		if cards.Length() > 0 {
			break
		}
		cards = doc.Find(sel)
	}

	rows := make([]review.Review, 0, cards.Length())
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		rows = append(rows, parseCard(card))
		return max <= 0 || len(rows) < max
	})
	return rows
}

// parseCard reads one review card. Every field degrades to a placeholder so a
// partial DOM change never drops the whole row.
func parseCard(card *goquery.Selection) review.Review {
	r := review.Review{Author: "Unknown", Text: review.NoTextSentinel, Date: "Recent"}

	if label, ok := card.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
		r.Author = strings.TrimSpace(label)
	}
	if text := strings.TrimSpace(card.Find(".wiI7pd").First().Text()); text != "" {
		r.Text = text
	}
	if label, ok := card.Find(`span[role="img"]`).First().Attr("aria-label"); ok {
		if fields := strings.Fields(label); len(fields) > 0 {
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				r.Rating = v
			}
		}
	}
	if date := strings.TrimSpace(card.Find(".rsqaWe").First().Text()); date != "" {
		r.Date = date
	}
	return r
}

// aggregateRating pulls the place's overall star rating out of the page: the
// aria-label on the star widget first, the big rating number second. Zero
// means neither was found.
func aggregateRating(pageHTML string) float64 {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return 0
	}

	var rating float64
	doc.Find(`[role="img"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		label, ok := sel.Attr("aria-label")
		if !ok || !strings.Contains(label, "stars") {
			return true
		}
		m := decimalRegex.FindString(label)
		if m == "" {
			return true
		}
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			rating = v
			return false
		}
		return true
	})
	if rating > 0 {
		return rating
	}

	text := strings.TrimSpace(doc.Find(".MW4etd").First().Text())
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return v
	}
	return 0
}
