package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/aspect"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/mentions"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/report"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

func sampleMetrics() report.Metrics {
	m := report.Metrics{
		Total:           20,
		AverageRating:   4.25,
		PositivePercent: 75,
		Sentiments: map[review.Sentiment]int{
			review.Positive: 15,
			review.Neutral:  3,
			review.Negative: 2,
		},
	}
	m.Histogram[5] = 10
	m.Histogram[4] = 6
	m.Histogram[2] = 2
	m.Histogram[1] = 2
	return m
}

func TestRenderMetricCells(t *testing.T) {
	got := renderMetricCells(sampleMetrics(), 90)
	for _, want := range []string{"20", "Total Reviews Analyzed", "4.25", "Average Rating ★", "75.0%", "Customer Satisfaction %"} {
		if !strings.Contains(got, want) {
			t.Errorf("metric cells missing %q:\n%s", want, got)
		}
	}
}

func TestRenderSentimentSplitOrderAndCounts(t *testing.T) {
	got := renderSentimentSplit(sampleMetrics())
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title plus three bars, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Positive") || !strings.HasSuffix(lines[1], "15") {
		t.Errorf("positive bar wrong: %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "Negative") || !strings.HasSuffix(lines[3], "2") {
		t.Errorf("negative bar wrong: %q", lines[3])
	}
}

func TestBarLineScaling(t *testing.T) {
	full := barLine("Positive", 10, 10, positiveStyle)
	if !strings.Contains(full, strings.Repeat("█", chartBarWidth)) {
		t.Errorf("max count should fill the bar: %q", full)
	}

	tiny := barLine("Negative", 1, 100, negativeStyle)
	if !strings.Contains(tiny, "█") {
		t.Errorf("nonzero count should draw at least one block: %q", tiny)
	}

	empty := barLine("Neutral", 0, 10, neutralStyle)
	if strings.Contains(empty, "█") {
		t.Errorf("zero count should draw no blocks: %q", empty)
	}
}

func TestRenderHistogram(t *testing.T) {
	got := renderHistogram(sampleMetrics())
	if !strings.Contains(got, "Rating Distribution") {
		t.Errorf("histogram missing title:\n%s", got)
	}
	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[1], "5★") || !strings.HasSuffix(lines[1], "10") {
		t.Errorf("five-star row wrong: %q", lines[1])
	}
	if strings.Contains(got, "unrated") {
		t.Errorf("no unrated rows expected:\n%s", got)
	}
}

func TestRenderHistogramUnrated(t *testing.T) {
	m := sampleMetrics()
	m.Histogram[0] = 3
	got := renderHistogram(m)
	if !strings.Contains(got, "unrated: 3") {
		t.Errorf("unrated note missing:\n%s", got)
	}
}

func TestRenderAspectsLeaning(t *testing.T) {
	m := report.Metrics{Aspects: []report.AspectTally{
		{Aspect: aspect.Service, Count: 4, Positive: 3, Negative: 1},
		{Aspect: aspect.Price, Count: 2, Negative: 2},
		{Aspect: aspect.General, Count: 1},
	}}
	got := renderAspects(m, 60)
	for _, want := range []string{"Talked About", "Service 4↑", "Price 2↓", "General 1"} {
		if !strings.Contains(got, want) {
			t.Errorf("aspects line missing %q:\n%s", want, got)
		}
	}
}

func TestRenderAspectsEmpty(t *testing.T) {
	if got := renderAspects(report.Metrics{}, 60); got != "" {
		t.Errorf("no aspects should render nothing, got %q", got)
	}
}

func TestRenderRecommendations(t *testing.T) {
	recs := []string{"Hire more staff for peak hours", "Fix the billing delays"}
	got := renderRecommendations(recs, 60)
	if !strings.Contains(got, "1. Hire more staff for peak hours") {
		t.Errorf("first recommendation missing:\n%s", got)
	}
	if !strings.Contains(got, "2. Fix the billing delays") {
		t.Errorf("second recommendation missing:\n%s", got)
	}
}

func TestRenderRecommendationsEmpty(t *testing.T) {
	got := renderRecommendations(nil, 60)
	if !strings.Contains(got, "No actionable suggestions") {
		t.Errorf("empty recommendations missing placeholder:\n%s", got)
	}
}

func TestRenderMentions(t *testing.T) {
	items := []mentions.Mention{
		{Title: "TCS opens new campus", Source: "The Hindu", Published: time.Now().Add(-2 * time.Hour)},
		{Title: "Quarterly results beat estimates", Source: "Mint", Published: time.Now().Add(-26 * time.Hour)},
	}
	got := renderMentions(items, 60)
	for _, want := range []string{"[1] TCS opens new campus", "The Hindu", "2h", "[2]", "Mint", "1d"} {
		if !strings.Contains(got, want) {
			t.Errorf("mentions panel missing %q:\n%s", want, got)
		}
	}
}

func TestRenderEmptyWarning(t *testing.T) {
	got := renderEmptyWarning("Ghost Cafe", 80, 20)
	if !strings.Contains(got, "No reviews found") || !strings.Contains(got, "Ghost Cafe") {
		t.Errorf("warning state wrong:\n%s", got)
	}
}

func TestSentimentFilterCycle(t *testing.T) {
	var f sentimentFilter
	want := []string{"Positive", "Neutral", "Negative", "All"}
	for _, label := range want {
		f.cycle()
		if f.label() != label {
			t.Fatalf("cycle landed on %q, want %q", f.label(), label)
		}
	}
}

func TestSentimentFilterApply(t *testing.T) {
	rows := sampleAnalyzedRows()
	f := sentimentFilter{active: review.Negative}
	got := f.apply(rows)
	if len(got) != 1 || got[0].Author != "Arun" {
		t.Fatalf("filter returned %+v, want only Arun", got)
	}

	all := sentimentFilter{}
	if n := len(all.apply(rows)); n != len(rows) {
		t.Fatalf("unfiltered returned %d rows, want %d", n, len(rows))
	}
}
