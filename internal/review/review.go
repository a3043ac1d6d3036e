package review

import (
	"strings"
	"unicode/utf8"
)

// Sentiment is the three-value label assigned to a review.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// NoTextSentinel is stored as the text of rating-only reviews so downstream
// stages can tell "no text" apart from an empty scrape.
const NoTextSentinel = "[No Text - Rating Only]"

type Review struct {
	Author string
	Rating float64
	Text   string
	Date   string
}

// Analyzed is a review plus the model's verdict on it.
type Analyzed struct {
	Review
	Sentiment      Sentiment
	Summary        string
	Recommendation string
}

// ParseSentiment normalizes a raw model label into the three-value set.
// Anything unrecognized collapses to Neutral.
func ParseSentiment(raw string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive":
		return Positive
	case "negative":
		return Negative
	default:
		return Neutral
	}
}

// FromRating derives a sentiment from the star rating alone, used when the
// model call fails: 4+ stars positive, 2 or fewer negative.
func FromRating(rating float64) Sentiment {
	switch {
	case rating >= 4:
		return Positive
	case rating <= 2:
		return Negative
	default:
		return Neutral
	}
}

// Verdict buckets an aggregate listing rating into a human-readable call.
func Verdict(rating float64) string {
	switch {
	case rating >= 4.5:
		return "Excellent / Highly Recommended"
	case rating >= 4.0:
		return "Good / Positive"
	case rating >= 3.0:
		return "Average / Okay"
	case rating >= 2.0:
		return "Poor / Below Average"
	default:
		return "Bad / Not Recommended"
	}
}

// HasText reports whether the review carries text worth sending to the model.
// Rating-only sentinels and sub-5-rune fragments don't qualify.
func (r Review) HasText() bool {
	t := strings.TrimSpace(r.Text)
	if utf8.RuneCountInString(t) < 5 {
		return false
	}
	return !strings.Contains(t, "No Text")
}
