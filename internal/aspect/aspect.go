package aspect

import (
	"strings"
	"unicode"
)

// Aspect represents the facet of the business a review is mostly about.
type Aspect string

const (
	Service  Aspect = "Service"
	Staff    Aspect = "Staff"
	Quality  Aspect = "Quality"
	Price    Aspect = "Price"
	Ambience Aspect = "Ambience"
	Location Aspect = "Location"
	WaitTime Aspect = "Wait Time"
	General  Aspect = "General"
)

// AllAspects returns all aspects in canonical order.
func AllAspects() []Aspect {
	return []Aspect{Service, Staff, Quality, Price, Ambience, Location, WaitTime, General}
}

var aspectKeywords = map[Aspect][]string{
	Service: {
		"service", "customer service", "delivery", "order", "support",
		"attentive", "responsive", "helpful", "booking", "appointment",
		"refund", "complaint",
	},
	Staff: {
		"staff", "employee", "manager", "waiter", "waitress", "receptionist",
		"rude", "friendly", "polite", "courteous", "team", "owner",
	},
	Quality: {
		"quality", "food", "taste", "tasty", "delicious", "fresh", "stale",
		"product", "clean", "cleanliness", "hygiene", "portion", "authentic",
	},
	Price: {
		"price", "pricing", "expensive", "cheap", "cost", "costly", "value",
		"affordable", "overpriced", "worth", "billing", "charge", "money",
	},
	Ambience: {
		"ambience", "ambiance", "atmosphere", "decor", "interior", "music",
		"vibe", "cozy", "noisy", "crowded", "seating", "spacious", "lighting",
	},
	Location: {
		"location", "parking", "accessible", "reach", "nearby", "directions",
		"traffic", "area", "neighborhood", "central",
	},
	WaitTime: {
		"wait", "waiting", "queue", "slow", "quick", "fast", "delay",
		"prompt", "line", "minutes", "hours",
	},
	General: {
		"experience", "place", "overall", "recommend", "visit", "amazing",
		"terrible", "best", "worst",
	},
}

// Classify determines the dominant aspect of a review text. Exact token
// matches count double over substring hits. Returns General when nothing
// matches.
func Classify(text string) Aspect {
	tokens := tokenize(text)
	textLower := strings.ToLower(text)

	var bestAspect Aspect
	bestScore := 0

	for i, asp := range AllAspects() {
		score := 0
		for _, kw := range aspectKeywords[asp] {
			if !strings.Contains(kw, " ") {
				for _, t := range tokens {
					if t == kw {
						score += 2
					} else if strings.Contains(t, kw) {
						score++
					}
				}
			} else if strings.Contains(textLower, kw) {
				score += 2
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && i < aspectIndex(bestAspect)) {
			bestScore = score
			bestAspect = asp
		}
	}

	if bestScore == 0 {
		return General
	}
	return bestAspect
}

func aspectIndex(asp Aspect) int {
	for i, a := range AllAspects() {
		if a == asp {
			return i
		}
	}
	return len(AllAspects())
}

func tokenize(s string) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(s)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if word != "" {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
