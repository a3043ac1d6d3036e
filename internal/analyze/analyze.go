package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/llm"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
	"go.uber.org/zap"
)

const reviewPrompt = `You are a business analyst. Analyze this customer review.

Review: "%s"
Rating: %.1f/5.0

Output strictly in this format:
Sentiment: [Positive / Neutral / Negative]
Summary: [1 sentence summary]
Recommendation: [1 actionable tip]`

const (
	// Cushion between calls so hosted endpoints don't rate-limit the loop.
	pauseBetweenCalls = time.Second
	pauseAfterError   = 2 * time.Second
)

// BuildPrompt renders the analyst prompt for one review.
func BuildPrompt(r review.Review) string {
	return fmt.Sprintf(reviewPrompt, r.Text, r.Rating)
}

// ParseReply pulls the three labeled fields out of a model reply. Keys match
// case-insensitively anywhere in a line, values follow the first ':'; a
// missing field reads "N/A". Unrecognized sentiment labels become Neutral.
func ParseReply(reply string) (review.Sentiment, string, string) {
	lines := strings.Split(strings.TrimSpace(reply), "\n")

	extract := func(key string) string {
		for _, line := range lines {
			if !strings.Contains(strings.ToLower(line), key) {
				continue
			}
			if _, value, found := strings.Cut(line, ":"); found {
				return strings.TrimSpace(value)
			}
		}
		return "N/A"
	}

	sentiment := review.ParseSentiment(extract("sentiment"))
	return sentiment, extract("summary"), extract("recommendation")
}

// Progress is called after each row is scored, for live dashboard updates.
type Progress func(done, total int, row review.Analyzed)

// Analyzer scores reviews one at a time against a Model.
type Analyzer struct {
	model    llm.Model
	limit    int
	pause    time.Duration
	errPause time.Duration
	log      *zap.Logger
}

// New returns an Analyzer. limit caps how many rows are scored per run;
// limit <= 0 means score everything.
func New(model llm.Model, limit int, log *zap.Logger) *Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyzer{
		model:    model,
		limit:    limit,
		pause:    pauseBetweenCalls,
		errPause: pauseAfterError,
		log:      log,
	}
}

// Run scores rows sequentially. A failed model call degrades that row to a
// rating-derived sentiment instead of aborting; the returned errors are
// advisory. Cancellation stops the loop and returns what's done so far.
func (a *Analyzer) Run(ctx context.Context, rows []review.Review, onProgress Progress) ([]review.Analyzed, []error) {
	if a.limit > 0 && len(rows) > a.limit {
		rows = rows[:a.limit]
	}

	a.log.Info("starting analysis", zap.Int("rows", len(rows)))

	analyzed := make([]review.Analyzed, 0, len(rows))
	var errs []error

	for i, r := range rows {
		if ctx.Err() != nil {
			return analyzed, append(errs, ctx.Err())
		}

		row := a.scoreRow(ctx, i, r, &errs)
		analyzed = append(analyzed, row)
		if onProgress != nil {
			onProgress(i+1, len(rows), row)
		}
	}

	a.log.Info("analysis finished", zap.Int("rows", len(analyzed)), zap.Int("failures", len(errs)))
	return analyzed, errs
}

func (a *Analyzer) scoreRow(ctx context.Context, i int, r review.Review, errs *[]error) review.Analyzed {
	// Rating-only rows never reach the model.
	if !r.HasText() {
		return review.Analyzed{
			Review:         r,
			Sentiment:      review.Neutral,
			Summary:        "No text provided",
			Recommendation: "N/A",
		}
	}

	reply, err := a.model.Generate(ctx, BuildPrompt(r))
	if err != nil {
		a.log.Warn("model call failed, falling back to rating", zap.Int("row", i+1), zap.Error(err))
		*errs = append(*errs, fmt.Errorf("review #%d: %w", i+1, err))
		sleepCtx(ctx, a.errPause)
		return review.Analyzed{
			Review:         r,
			Sentiment:      review.FromRating(r.Rating),
			Summary:        truncateRunes(r.Text, 100),
			Recommendation: "Review the feedback for improvements.",
		}
	}

	sentiment, summary, recommendation := ParseReply(reply)
	sleepCtx(ctx, a.pause)
	return review.Analyzed{
		Review:         r,
		Sentiment:      sentiment,
		Summary:        summary,
		Recommendation: recommendation,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
