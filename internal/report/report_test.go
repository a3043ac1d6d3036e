package report

import (
	"math"
	"testing"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/aspect"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

func sampleAnalyzed() []review.Analyzed {
	return []review.Analyzed{
		{
			Review:         review.Review{Author: "A", Rating: 5.0, Text: "Delicious food and fresh ingredients"},
			Sentiment:      review.Positive,
			Summary:        "Loved the food",
			Recommendation: "Keep the menu seasonal and fresh",
		},
		{
			Review:         review.Review{Author: "B", Rating: 4.0, Text: "Friendly staff, the waiter was great"},
			Sentiment:      review.Positive,
			Summary:        "Good staff",
			Recommendation: "Keep the menu seasonal and fresh",
		},
		{
			Review:         review.Review{Author: "C", Rating: 2.0, Text: "Too expensive and overpriced for the portion"},
			Sentiment:      review.Negative,
			Summary:        "Overpriced",
			Recommendation: "Revisit pricing against nearby competitors",
		},
		{
			Review:         review.Review{Author: "D", Rating: 3.0, Text: "It was fine overall"},
			Sentiment:      review.Neutral,
			Summary:        "Average visit",
			Recommendation: "N/A",
		},
	}
}

func TestAggregate(t *testing.T) {
	m := Aggregate(sampleAnalyzed())

	if m.Total != 4 {
		t.Errorf("Total = %d, want 4", m.Total)
	}
	if math.Abs(m.AverageRating-3.5) > 1e-9 {
		t.Errorf("AverageRating = %v, want 3.5", m.AverageRating)
	}
	if math.Abs(m.PositivePercent-50.0) > 1e-9 {
		t.Errorf("PositivePercent = %v, want 50", m.PositivePercent)
	}
	if m.Sentiments[review.Positive] != 2 || m.Sentiments[review.Negative] != 1 || m.Sentiments[review.Neutral] != 1 {
		t.Errorf("unexpected sentiment counts: %v", m.Sentiments)
	}
	if m.Histogram[5] != 1 || m.Histogram[4] != 1 || m.Histogram[3] != 1 || m.Histogram[2] != 1 {
		t.Errorf("unexpected histogram: %v", m.Histogram)
	}
}

func TestAggregateAspects(t *testing.T) {
	m := Aggregate(sampleAnalyzed())

	tallies := make(map[aspect.Aspect]AspectTally)
	for _, at := range m.Aspects {
		tallies[at.Aspect] = at
	}

	quality, ok := tallies[aspect.Quality]
	if !ok {
		t.Fatal("expected a Quality tally")
	}
	if quality.Count != 1 || quality.Positive != 1 {
		t.Errorf("Quality tally = %+v", quality)
	}

	price, ok := tallies[aspect.Price]
	if !ok {
		t.Fatal("expected a Price tally")
	}
	if price.Count != 1 || price.Negative != 1 {
		t.Errorf("Price tally = %+v", price)
	}

	total := 0
	for _, at := range m.Aspects {
		total += at.Count
	}
	if total != 4 {
		t.Errorf("aspect counts should cover every row, got %d", total)
	}
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil)
	if m.Total != 0 || m.AverageRating != 0 || m.PositivePercent != 0 {
		t.Errorf("empty input should yield zero metrics, got %+v", m)
	}
	if len(m.Aspects) != 0 {
		t.Errorf("expected no aspect tallies, got %v", m.Aspects)
	}
}

func TestAggregateRoundsStars(t *testing.T) {
	rows := []review.Analyzed{
		{Review: review.Review{Rating: 4.6}},
		{Review: review.Review{Rating: 4.4}},
		{Review: review.Review{Rating: 0}},
	}
	m := Aggregate(rows)
	if m.Histogram[5] != 1 {
		t.Errorf("4.6 should land in the 5-star bucket: %v", m.Histogram)
	}
	if m.Histogram[4] != 1 {
		t.Errorf("4.4 should land in the 4-star bucket: %v", m.Histogram)
	}
	if m.Histogram[0] != 1 {
		t.Errorf("unrated rows should land in bucket 0: %v", m.Histogram)
	}
}

func TestTopRecommendations(t *testing.T) {
	recs := TopRecommendations(sampleAnalyzed(), 5)
	want := []string{
		"Keep the menu seasonal and fresh",
		"Revisit pricing against nearby competitors",
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d recommendations, want %d: %v", len(recs), len(want), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("recs[%d] = %q, want %q", i, recs[i], want[i])
		}
	}
}

func TestTopRecommendationsSkipsShort(t *testing.T) {
	rows := []review.Analyzed{
		{Recommendation: "exactly10!"},            // 10 runes, excluded
		{Recommendation: "eleven runes"},          // 12 runes, kept
		{Recommendation: "N/A"},
	}
	recs := TopRecommendations(rows, 5)
	if len(recs) != 1 || recs[0] != "eleven runes" {
		t.Errorf("unexpected recommendations: %v", recs)
	}
}

func TestTopRecommendationsCap(t *testing.T) {
	var rows []review.Analyzed
	for _, rec := range []string{
		"first actionable recommendation",
		"second actionable recommendation",
		"third actionable recommendation",
	} {
		rows = append(rows, review.Analyzed{Recommendation: rec})
	}
	recs := TopRecommendations(rows, 2)
	if len(recs) != 2 {
		t.Errorf("expected cap of 2, got %d", len(recs))
	}
}
