package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/analyze"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/config"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/llm"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/logging"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/report"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the most recently fetched reviews",
	Long: `Run sentiment analysis over the rows written by the last fetch.

Each review is sent to the configured model for a sentiment, a summary, and an
improvement suggestion. Results land next to the raw dataset for the dashboard
and for spreadsheet tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log, err := logging.New(flagDebug)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer log.Sync()

		data := store.NewDatasets(cfg.ResolvedDataDir(), log)
		rows, err := data.LoadRaw()
		if err != nil {
			return err
		}

		model, err := llm.New(&cfg.LLM, cfg.APIKey())
		if err != nil {
			return fmt.Errorf("configuring model: %w", err)
		}

		analyzer := analyze.New(model, cfg.AnalyzeLimit(), log)

		fmt.Printf("Scoring %d review(s) with %s...\n", min(len(rows), cfg.AnalyzeLimit()), cfg.LLM.Provider)
		analyzed, errs := analyzer.Run(context.Background(), rows, func(done, total int, row review.Analyzed) {
			fmt.Printf("  %d/%d  %-20s %s\n", done, total, clip(row.Author, 20), row.Sentiment)
		})
		for _, e := range errs {
			fmt.Printf("  [warn] %v\n", e)
		}

		if err := data.SaveAnalyzed(analyzed); err != nil {
			return fmt.Errorf("saving analysis: %w", err)
		}

		m := report.Aggregate(analyzed)
		fmt.Println()
		fmt.Printf("Total reviews analyzed: %d\n", m.Total)
		fmt.Printf("Average rating:         %.2f\n", m.AverageRating)
		fmt.Printf("Customer satisfaction:  %.1f%%\n", m.PositivePercent)
		fmt.Printf("Sentiment:              %d positive / %d neutral / %d negative\n",
			m.Sentiments[review.Positive], m.Sentiments[review.Neutral], m.Sentiments[review.Negative])

		if recs := report.TopRecommendations(analyzed, 0); len(recs) > 0 {
			fmt.Println("\nSuggestions:")
			for i, rec := range recs {
				fmt.Printf("  %d. %s\n", i+1, rec)
			}
		}
		return nil
	},
}
