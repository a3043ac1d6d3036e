// Package report aggregates analyzed reviews into the figures shown on the
// dashboard.
package report

import (
	"math"
	"strings"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/aspect"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

// Recommendations shorter than this are treated as filler ("N/A" and friends)
// and never surface as insights.
const minRecommendationRunes = 10

// Metrics summarizes one analyzed dataset.
type Metrics struct {
	Total           int
	AverageRating   float64
	PositivePercent float64
	Sentiments      map[review.Sentiment]int
	// Histogram counts reviews by star, index 0 holding unrated rows.
	Histogram [6]int
	Aspects   []AspectTally
}

// AspectTally pairs a business aspect with its review count and sentiment
// leaning.
type AspectTally struct {
	Aspect   aspect.Aspect
	Count    int
	Positive int
	Negative int
}

// Aggregate computes dashboard metrics over analyzed rows. An empty input
// yields zero metrics, which the caller renders as a warning state.
func Aggregate(rows []review.Analyzed) Metrics {
	m := Metrics{
		Total:      len(rows),
		Sentiments: make(map[review.Sentiment]int),
	}
	if len(rows) == 0 {
		return m
	}

	var ratingSum float64
	positive := 0
	byAspect := make(map[aspect.Aspect]*AspectTally)

	for _, row := range rows {
		ratingSum += row.Rating
		m.Sentiments[row.Sentiment]++
		if strings.Contains(strings.ToLower(string(row.Sentiment)), "positive") {
			positive++
		}
		m.Histogram[starBucket(row.Rating)]++

		asp := aspect.Classify(row.Text)
		tally, ok := byAspect[asp]
		if !ok {
			tally = &AspectTally{Aspect: asp}
			byAspect[asp] = tally
		}
		tally.Count++
		switch row.Sentiment {
		case review.Positive:
			tally.Positive++
		case review.Negative:
			tally.Negative++
		}
	}

	m.AverageRating = ratingSum / float64(len(rows))
	m.PositivePercent = float64(positive) / float64(len(rows)) * 100

	for _, asp := range aspect.AllAspects() {
		if tally, ok := byAspect[asp]; ok {
			m.Aspects = append(m.Aspects, *tally)
		}
	}
	return m
}

func starBucket(rating float64) int {
	star := int(math.Round(rating))
	if star < 0 {
		return 0
	}
	if star > 5 {
		return 5
	}
	return star
}

// TopRecommendations returns the first n unique substantive recommendations
// in row order.
func TopRecommendations(rows []review.Analyzed, n int) []string {
	if n <= 0 {
		n = 5
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, n)
	for _, row := range rows {
		rec := strings.TrimSpace(row.Recommendation)
		if len([]rune(rec)) <= minRecommendationRunes {
			continue
		}
		if _, dup := seen[rec]; dup {
			continue
		}
		seen[rec] = struct{}{}
		out = append(out, rec)
		if len(out) >= n {
			break
		}
	}
	return out
}
