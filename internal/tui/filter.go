package tui

import (
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

// sentimentFilter narrows the review table to one sentiment. The zero value
// shows everything.
type sentimentFilter struct {
	active review.Sentiment // "" means all
}

var filterCycle = []review.Sentiment{"", review.Positive, review.Neutral, review.Negative}

func (f *sentimentFilter) cycle() {
	for i, s := range filterCycle {
		if s == f.active {
			f.active = filterCycle[(i+1)%len(filterCycle)]
			return
		}
	}
	f.active = ""
}

func (f *sentimentFilter) label() string {
	if f.active == "" {
		return "All"
	}
	return string(f.active)
}

func (f *sentimentFilter) apply(rows []review.Analyzed) []review.Analyzed {
	if f.active == "" {
		return rows
	}
	var out []review.Analyzed
	for _, r := range rows {
		if r.Sentiment == f.active {
			out = append(out, r)
		}
	}
	return out
}
