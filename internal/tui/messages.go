package tui

import (
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/mentions"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/pipeline"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

type phaseMsg struct {
	text string
}

type progressMsg struct {
	done  int
	total int
	row   review.Analyzed
}

type runDoneMsg struct {
	res *pipeline.Result
	err error
}

type mentionsMsg struct {
	items []mentions.Mention
}

type updateMsg struct {
	version string
}

type openErrMsg struct {
	err error
}
