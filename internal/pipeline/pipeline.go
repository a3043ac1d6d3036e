// Package pipeline wires one reputation run end to end: cached or live
// review retrieval, model scoring, dataset persistence and history records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/analyze"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/report"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/scrape"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
)

// Retriever fetches live review data for a query.
type Retriever interface {
	Fetch(ctx context.Context, query string) (scrape.Snapshot, error)
}

// Scorer runs sentiment analysis over fetched rows.
type Scorer interface {
	Run(ctx context.Context, rows []review.Review, onProgress analyze.Progress) ([]review.Analyzed, []error)
}

// Hooks stream run updates to an interactive caller. Either field may be nil.
type Hooks struct {
	Phase    func(msg string)
	Progress analyze.Progress
}

// Result is everything one run produced.
type Result struct {
	Query     string
	Rows      []review.Review
	Analyzed  []review.Analyzed
	Metrics   report.Metrics
	FromCache bool
	PlaceURL  string
	Warnings  []string
	Duration  time.Duration
}

// Recommendations returns the run's top improvement suggestions.
func (r *Result) Recommendations() []string {
	return report.TopRecommendations(r.Analyzed, 0)
}

type Pipeline struct {
	data      *store.Datasets
	history   *store.History
	retriever Retriever
	scorer    Scorer
	log       *zap.Logger
}

// New assembles a pipeline. history may be nil, which skips run records.
func New(data *store.Datasets, history *store.History, retriever Retriever, scorer Scorer, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{data: data, history: history, retriever: retriever, scorer: scorer, log: log}
}

// Run executes one full pass for the query. A cache hit skips the browser
// entirely; refresh forces a live fetch. Scoring failures degrade to warnings
// on the result rather than aborting the run.
func (p *Pipeline) Run(ctx context.Context, query string, refresh bool, hooks Hooks) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}

	start := time.Now()
	res := &Result{Query: query}

	if !refresh {
		if rows, ok := p.data.Lookup(query); ok {
			p.log.Info("cache hit", zap.String("query", query), zap.Int("rows", len(rows)))
			p.phase(hooks, fmt.Sprintf("Cache hit: %d reviews loaded", len(rows)))
			res.Rows = rows
			res.FromCache = true
			if err := p.data.SyncRaw(rows); err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("syncing raw dataset: %v", err))
			}
		}
	}

	if !res.FromCache {
		p.phase(hooks, "Connecting to Google Maps...")
		snap, err := p.retriever.Fetch(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetching reviews: %w", err)
		}
		res.Rows = snap.Rows
		res.PlaceURL = snap.PlaceURL
		if len(res.Rows) > 0 {
			if err := p.data.Save(query, res.Rows); err != nil {
				res.Warnings = append(res.Warnings, fmt.Sprintf("saving dataset: %v", err))
			}
		}
		p.phase(hooks, fmt.Sprintf("Fetched %d reviews", len(res.Rows)))
	}

	if len(res.Rows) == 0 {
		res.Metrics = report.Aggregate(nil)
		res.Duration = time.Since(start)
		p.record(res, start)
		return res, nil
	}

	p.phase(hooks, "Scoring reviews with the model...")
	analyzed, errs := p.scorer.Run(ctx, res.Rows, hooks.Progress)
	res.Analyzed = analyzed
	for _, err := range errs {
		res.Warnings = append(res.Warnings, err.Error())
	}
	if ctx.Err() != nil {
		return res, ctx.Err()
	}

	if err := p.data.SaveAnalyzed(analyzed); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("saving analyzed dataset: %v", err))
	}

	res.Metrics = report.Aggregate(analyzed)
	res.Duration = time.Since(start)
	p.record(res, start)
	p.phase(hooks, "Analysis complete")
	return res, nil
}

func (p *Pipeline) phase(hooks Hooks, msg string) {
	if hooks.Phase != nil {
		hooks.Phase(msg)
	}
}

func (p *Pipeline) record(res *Result, start time.Time) {
	if p.history == nil {
		return
	}
	run := store.Run{
		Query:     res.Query,
		CacheKey:  store.Key(res.Query),
		Fetched:   len(res.Rows),
		Analyzed:  len(res.Analyzed),
		Positive:  res.Metrics.Sentiments[review.Positive],
		Neutral:   res.Metrics.Sentiments[review.Neutral],
		Negative:  res.Metrics.Sentiments[review.Negative],
		AvgRating: res.Metrics.AverageRating,
		FromCache: res.FromCache,
		StartedAt: start,
		Duration:  res.Duration,
	}
	if err := p.history.RecordRun(run); err != nil {
		p.log.Warn("recording run failed", zap.Error(err))
	}
	if err := p.history.SetLastQuery(res.Query); err != nil {
		p.log.Warn("persisting last query failed", zap.Error(err))
	}
}
