package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/analyze"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/config"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/llm"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/logging"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/mentions"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/pipeline"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/scrape"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/tui"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The dashboard owns the terminal, so logs go to a file.
	log, err := logging.NewFile(config.LogPath(), flagDebug)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer log.Sync()

	model, err := llm.New(&cfg.LLM, cfg.APIKey())
	if err != nil {
		return fmt.Errorf("configuring model: %w", err)
	}

	data := store.NewDatasets(cfg.ResolvedDataDir(), log)

	history, err := store.OpenHistory(config.HistoryPath())
	if err != nil {
		// Runs still work without history, just with a blank input screen.
		log.Warn("history unavailable", zap.Error(err))
		history = nil
	} else {
		defer history.Close()
	}

	scraper := scrape.New(cfg, log)
	analyzer := analyze.New(model, cfg.AnalyzeLimit(), log)
	pipe := pipeline.New(data, history, scraper, analyzer, log)

	opts := tui.RunOpts{
		Version: version,
		Runner:  pipe,
		Log:     log,
	}
	if cfg.Mentions.Enabled {
		opts.Mentions = mentions.New(cfg.MentionsLimit())
	}
	if history != nil {
		opts.LastQuery = history.LastQuery()
		if recent, err := history.Recent(5); err == nil {
			opts.Recent = recent
		}
	}

	return tui.Run(opts)
}
