package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/config"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/logging"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/scrape"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
)

var flagRefresh bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <business name>",
	Short: "Scrape reviews for a business without analyzing them",
	Long: `Search Google Maps for the business, open its top result, and collect reviews.

Rows are printed and saved to the dataset directory, where a later "repute analyze"
or a dashboard run for the same query picks them up without touching the browser.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return fmt.Errorf("empty query")
		}

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

		if !flagRefresh {
			if rows, ok := data.Lookup(query); ok {
				fmt.Printf("Using %d cached review(s) for %q (use --refresh to re-scrape).\n\n", len(rows), query)
				printRows(rows)
				return nil
			}
		}

		fmt.Printf("Scraping reviews for %q...\n", query)
		scraper := scrape.New(cfg, log)
		snap, err := scraper.Fetch(context.Background(), query)
		if err != nil {
			return fmt.Errorf("fetching reviews: %w", err)
		}

		if len(snap.Rows) == 0 {
			fmt.Println("No reviews found.")
			return nil
		}

		if err := data.Save(query, snap.Rows); err != nil {
			return fmt.Errorf("saving reviews: %w", err)
		}

		printRows(snap.Rows)
		fmt.Printf("\nFetched %d review(s) → %s\n", len(snap.Rows), data.Path(query))
		if snap.PlaceURL != "" {
			fmt.Printf("Listing: %s\n", snap.PlaceURL)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "re-scrape even when a cached dataset exists")
}

func printRows(rows []review.Review) {
	for i, r := range rows {
		fmt.Printf("%3d. %.1f★ %-20s %s\n", i+1, r.Rating, clip(r.Author, 20), clip(r.Text, 70))
	}
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
