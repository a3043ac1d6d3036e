// Package scrape drives a headless Chrome session against Google Maps and
// pulls the review cards for a business.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/config"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

// Stall thresholds for the scroll loop. Ten consecutive polls with zero cards
// abandons the panel for the aggregate rating; once cards exist, five polls
// past that window without growth declare the end of the list.
const (
	maxIdlePolls = 10
	stallGrace   = 5
)

// Snapshot is what one live fetch produced.
type Snapshot struct {
	Rows     []review.Review
	PlaceURL string
}

// Scraper fetches reviews for one business query at a time. Each Fetch call
// owns its own browser; nothing is shared between calls.
type Scraper struct {
	headless   bool
	userAgent  string
	maxReviews int
	navTimeout time.Duration
	poll       time.Duration
	log        *zap.Logger
}

func New(cfg *config.Config, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{
		headless:   cfg.Scrape.Headless,
		userAgent:  cfg.Scrape.UserAgent,
		maxReviews: cfg.MaxReviews(),
		navTimeout: cfg.NavTimeout(),
		poll:       cfg.PollInterval(),
		log:        log,
	}
}

// SearchURL returns the Maps search URL for a query.
func SearchURL(query string) string {
	return "https://www.google.com/maps/search/" + url.QueryEscape(query)
}

// Fetch searches Maps for the query, opens the top result and scrolls its
// reviews panel until the target count is reached or the list ends. When no
// text reviews exist the place's aggregate rating is synthesized into a
// single summary row; an empty snapshot with a nil error means even that was
// missing.
func (s *Scraper) Fetch(ctx context.Context, query string) (Snapshot, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if s.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	searchURL := SearchURL(query)
	s.log.Info("launching scraper", zap.String("query", query), zap.String("url", searchURL))

	navCtx, cancelNav := context.WithTimeout(browserCtx, s.navTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return Snapshot{}, fmt.Errorf("opening maps search: %w", err)
	}

	s.dismissConsent(browserCtx)

	if err := s.openTopResult(browserCtx); err != nil {
		return Snapshot{}, err
	}

	var placeURL string
	_ = chromedp.Run(browserCtx, chromedp.Location(&placeURL))

	s.clickReviewsTab(browserCtx)

	count, err := s.scrollReviews(browserCtx)
	if err != nil {
		return Snapshot{}, err
	}
	if count == 0 {
		return Snapshot{Rows: s.aggregateFallback(browserCtx), PlaceURL: placeURL}, nil
	}

	var pageHTML string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery)); err != nil {
		return Snapshot{}, fmt.Errorf("reading reviews panel: %w", err)
	}

	rows := parseCards(pageHTML, s.maxReviews)
	if len(rows) == 0 {
		rows = s.aggregateFallback(browserCtx)
	}
	s.log.Info("reviews fetched", zap.Int("count", len(rows)))
	return Snapshot{Rows: rows, PlaceURL: placeURL}, nil
}

// dismissConsent clicks through a consent interstitial when one appears.
func (s *Scraper) dismissConsent(ctx context.Context) {
	if err := chromedp.Run(ctx, chromedp.Evaluate(consentScript, nil)); err != nil {
		s.log.Debug("consent dismiss skipped", zap.Error(err))
	}
}

// openTopResult waits for the search to settle on either a direct place page
// or a result list, clicking the top card in the latter case. Maps redirects
// single-hit queries to the place page on its own.
func (s *Scraper) openTopResult(ctx context.Context) error {
	deadline := time.Now().Add(s.navTimeout)
	for {
		var loc string
		if err := chromedp.Run(ctx, chromedp.Location(&loc)); err != nil {
			return fmt.Errorf("reading location: %w", err)
		}
		if strings.Contains(loc, "/maps/place/") {
			s.log.Info("direct place page detected")
			return nil
		}

		for _, sel := range resultLinkSelectors {
			var n int
			countScript := fmt.Sprintf(`document.querySelectorAll(%q).length`, sel)
			if err := chromedp.Run(ctx, chromedp.Evaluate(countScript, &n)); err != nil || n == 0 {
				continue
			}
			s.log.Info("search list detected, opening top result", zap.String("selector", sel))
			return s.clickFirst(ctx, sel)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("no place page or result list within %s, the search may have returned nothing", s.navTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.poll):
		}
	}
}

func (s *Scraper) clickFirst(ctx context.Context, sel string) error {
	var clicked bool
	script := fmt.Sprintf(clickFirstScript, sel)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return fmt.Errorf("clicking top result: %w", err)
	}
	if !clicked {
		return fmt.Errorf("top result %q vanished before click", sel)
	}
	s.waitForPlace(ctx)
	return nil
}

// waitForPlace polls until the URL switches to a place page. Best effort: the
// scroll loop's stall handling covers pages that never switch.
func (s *Scraper) waitForPlace(ctx context.Context) {
	deadline := time.Now().Add(s.navTimeout)
	for {
		var loc string
		if err := chromedp.Run(ctx, chromedp.Location(&loc)); err == nil && strings.Contains(loc, "/maps/place/") {
			return
		}
		if time.Now().After(deadline) {
			s.log.Warn("place panel did not settle, continuing anyway")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.poll):
		}
	}
}

// clickReviewsTab opens the Reviews tab on the place page. Best effort: some
// layouts show reviews inline without a tab.
func (s *Scraper) clickReviewsTab(ctx context.Context) {
	for _, st := range reviewTabStrategies {
		attempt, cancel := context.WithTimeout(ctx, 2*s.poll)
		err := chromedp.Run(attempt, chromedp.Click(st.xpath, chromedp.BySearch, chromedp.NodeVisible))
		cancel()
		if err == nil {
			s.log.Info("reviews tab opened", zap.String("strategy", st.name))
			return
		}
	}

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(scanButtonsScript, &clicked)); err == nil && clicked {
		s.log.Info("reviews tab opened", zap.String("strategy", "button scan"))
		return
	}
	s.log.Warn("reviews tab not found, scraping whatever the page shows")
}

// scrollReviews drives the panel until the target count is reached, the list
// stops growing, or no cards ever materialize. Returns the final card count.
func (s *Scraper) scrollReviews(ctx context.Context) (int, error) {
	s.log.Info("scrolling for reviews", zap.Int("target", s.maxReviews))

	seen := 0
	polls := 0
	for seen < s.maxReviews {
		polls++

		var count int
		if err := chromedp.Run(ctx, chromedp.Evaluate(scrollScript, &count)); err != nil {
			return seen, fmt.Errorf("scrolling reviews panel: %w", err)
		}

		switch {
		case count == 0:
			s.log.Debug("no review cards yet", zap.Int("poll", polls))
			if polls >= maxIdlePolls {
				return 0, nil
			}
		case count >= s.maxReviews:
			return count, nil
		case count == seen:
			if polls > maxIdlePolls+stallGrace {
				s.log.Info("end of reviews list reached", zap.Int("count", count))
				return count, nil
			}
		case count > seen:
			seen = count
			polls = 0
		}

		select {
		case <-ctx.Done():
			return seen, ctx.Err()
		case <-time.After(s.poll):
		}
	}
	return seen, nil
}

// aggregateFallback reads the place's overall star rating when the reviews
// panel stayed empty and synthesizes a single summary row from it.
func (s *Scraper) aggregateFallback(ctx context.Context) []review.Review {
	s.log.Warn("no text reviews found, checking general rating")

	var pageHTML string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery)); err != nil {
		s.log.Warn("aggregate rating unavailable", zap.Error(err))
		return nil
	}

	rating := aggregateRating(pageHTML)
	if rating <= 0 {
		s.log.Warn("could not find general rating, try a more specific query")
		return nil
	}

	row := summaryRow(rating)
	s.log.Info("general rating found", zap.Float64("rating", rating), zap.String("verdict", review.Verdict(rating)))
	return []review.Review{row}
}

// summaryRow turns an overall star rating into a single stand-in review.
func summaryRow(rating float64) review.Review {
	return review.Review{
		Author: "Google Summary",
		Rating: rating,
		Text:   fmt.Sprintf("Overall rating is %.1f. Verdict: %s", rating, review.Verdict(rating)),
		Date:   "Today",
	}
}
