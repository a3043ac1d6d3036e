package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/config"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
)

var flagHistoryLimit int

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the saved review datasets",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dataset statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		data := store.NewDatasets(cfg.ResolvedDataDir(), nil)
		files, size, err := data.Stats()
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Datasets: %s\n", data.Dir())
		fmt.Printf("Files: %d\n", files)
		fmt.Printf("Size: %s\n", formatBytes(size))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved review datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		data := store.NewDatasets(cfg.ResolvedDataDir(), nil)
		removed, err := data.Clear()
		if err != nil {
			return fmt.Errorf("clearing datasets: %w", err)
		}

		if removed == 0 {
			fmt.Println("Nothing to clear.")
		} else {
			fmt.Printf("Removed %d file(s). The next run will scrape fresh reviews.\n", removed)
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analysis runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := store.OpenHistory(config.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer history.Close()

		runs, err := history.Recent(flagHistoryLimit)
		if err != nil {
			return fmt.Errorf("reading history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		fmt.Printf("%-19s %-30s %8s %6s %5s %5s %5s %7s %6s\n",
			"STARTED", "QUERY", "REVIEWS", "AVG", "POS", "NEU", "NEG", "SOURCE", "TOOK")
		for _, r := range runs {
			source := "live"
			if r.FromCache {
				source = "cache"
			}
			fmt.Printf("%-19s %-30s %8d %6.2f %5d %5d %5d %7s %6s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"),
				clip(r.Query, 30),
				r.Fetched,
				r.AvgRating,
				r.Positive, r.Neutral, r.Negative,
				source,
				formatDuration(r.Duration),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "number of runs to show")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
