package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/pipeline"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/report"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func resultsApp() *App {
	a := NewApp(RunOpts{})
	a.width, a.height = 100, 30
	a.mode = modeResults
	rows := sampleAnalyzedRows()
	a.res = &pipeline.Result{
		Query:    "tcs chennai",
		Analyzed: rows,
		Metrics:  report.Aggregate(rows),
	}
	return a
}

func TestRunDoneTransitionsToResults(t *testing.T) {
	a := NewApp(RunOpts{})
	a.mode = modeRunning

	rows := sampleAnalyzedRows()
	res := &pipeline.Result{Query: "tcs chennai", Analyzed: rows, Metrics: report.Aggregate(rows)}
	a.Update(runDoneMsg{res: res})

	if a.mode != modeResults {
		t.Fatalf("mode = %d, want results", a.mode)
	}
	if a.res != res {
		t.Fatalf("result not stored")
	}
}

func TestLateRunDoneIsDropped(t *testing.T) {
	a := NewApp(RunOpts{})
	a.mode = modeInput

	a.Update(runDoneMsg{res: &pipeline.Result{Query: "x"}})

	if a.mode != modeInput || a.res != nil {
		t.Fatalf("abandoned run result was applied: mode=%d res=%v", a.mode, a.res)
	}
}

func TestRunDoneFailureReturnsToInput(t *testing.T) {
	a := NewApp(RunOpts{})
	a.mode = modeRunning

	a.Update(runDoneMsg{err: errors.New("fetching reviews: browser gone")})

	if a.mode != modeInput {
		t.Fatalf("mode = %d, want input after hard failure", a.mode)
	}
	if a.err == nil {
		t.Fatalf("failure not surfaced")
	}
}

func TestPhaseAndProgressAccumulate(t *testing.T) {
	a := NewApp(RunOpts{})
	a.mode = modeRunning
	a.events = make(chan tea.Msg, 1)

	a.Update(phaseMsg{text: "Connecting to Google Maps..."})
	a.Update(phaseMsg{text: "Fetched 12 reviews"})
	a.Update(progressMsg{done: 3, total: 10, row: sampleAnalyzedRows()[0]})

	if len(a.phases) != 2 {
		t.Fatalf("phases = %v, want 2 entries", a.phases)
	}
	if a.done != 3 || a.total != 10 {
		t.Fatalf("progress = %d/%d, want 3/10", a.done, a.total)
	}
}

func TestResultsKeyNewQuery(t *testing.T) {
	a := resultsApp()

	a.Update(keyMsg("n"))

	if a.mode != modeInput {
		t.Fatalf("mode = %d, want input", a.mode)
	}
	if a.input.Value() != "" {
		t.Fatalf("input not cleared: %q", a.input.Value())
	}
}

func TestResultsKeyFilterCycles(t *testing.T) {
	a := resultsApp()
	a.cursor = 1

	a.Update(keyMsg("f"))

	if a.filter.label() != "Positive" {
		t.Fatalf("filter = %q, want Positive", a.filter.label())
	}
	if a.cursor != 0 {
		t.Fatalf("cursor not reset on filter change")
	}
}

func TestResultsKeyTabTogglesFocus(t *testing.T) {
	a := resultsApp()

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != focusInsights {
		t.Fatalf("focus = %d, want insights", a.focus)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.focus != focusReviews {
		t.Fatalf("focus = %d, want reviews", a.focus)
	}
}

func TestMentionsArrive(t *testing.T) {
	a := resultsApp()

	a.Update(mentionsMsg{items: nil})
	if a.items != nil {
		t.Fatalf("unexpected items")
	}
}

func TestPlaceURLFallsBackToSearch(t *testing.T) {
	a := resultsApp()

	if got := a.placeURL(); got == "" {
		t.Fatalf("expected search fallback, got empty")
	}

	a.res.PlaceURL = "https://www.google.com/maps/place/TCS"
	if got := a.placeURL(); got != a.res.PlaceURL {
		t.Fatalf("placeURL = %q, want captured listing", got)
	}
}

func TestResultsViewRendersSections(t *testing.T) {
	a := resultsApp()

	view := a.View()
	for _, want := range []string{"Total Reviews Analyzed", "Sentiment Split", "Rating Distribution", "repute"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestEmptyResultsViewWarns(t *testing.T) {
	a := resultsApp()
	a.res.Analyzed = nil
	a.res.Metrics = report.Aggregate(nil)

	view := a.View()
	if !strings.Contains(view, "No reviews found") {
		t.Errorf("empty dataset should warn, got:\n%s", view)
	}
}
