package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/browser"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/mentions"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/pipeline"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/scrape"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/update"
)

// Runner executes one analysis pass. *pipeline.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, query string, refresh bool, hooks pipeline.Hooks) (*pipeline.Result, error)
}

type focusPane int

const (
	focusReviews focusPane = iota
	focusInsights
)

type mode int

const (
	modeInput mode = iota
	modeRunning
	modeResults
	modeHelp
)

type App struct {
	version  string
	run      Runner
	mentions *mentions.Fetcher
	log      *zap.Logger

	mode     mode
	prevMode mode
	focus    focusPane

	width  int
	height int

	// Sub-components
	input   textinput.Model
	spinner spinner.Model
	bar     progress.Model

	// Input screen
	recent      []store.Run
	currentDate string
	updateTo    string

	// Running state
	query   string
	phases  []string
	done    int
	total   int
	lastRow string
	events  chan tea.Msg
	cancel  context.CancelFunc

	// Results state
	res           *pipeline.Result
	items         []mentions.Mention
	filter        sentimentFilter
	cursor        int
	insightScroll int
	err           error
}

// RunOpts holds all parameters for launching the dashboard.
type RunOpts struct {
	Version   string
	LastQuery string
	Recent    []store.Run
	Runner    Runner
	Mentions  *mentions.Fetcher
	Log       *zap.Logger
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Business name and city, e.g. TCS Chennai"
	ti.Prompt = queryPromptStyle.Render("> ")
	ti.CharLimit = 100
	ti.Width = 48
	ti.SetValue(opts.LastQuery)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &App{
		version:     opts.Version,
		run:         opts.Runner,
		mentions:    opts.Mentions,
		log:         log,
		input:       ti,
		spinner:     sp,
		bar:         bar,
		recent:      opts.Recent,
		currentDate: time.Now().Format("Jan 2"),
		mode:        modeInput,
	}
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if a.version != "" {
		cmds = append(cmds, a.checkUpdateCmd())
	}
	return tea.Batch(cmds...)
}

func (a *App) checkUpdateCmd() tea.Cmd {
	ver := a.version
	return func() tea.Msg {
		res := update.Check(context.Background(), ver)
		if res == nil {
			return nil
		}
		return updateMsg{version: res.LatestVersion}
	}
}

// startRun kicks off a full pass in the background. Pipeline hooks stream
// phase and progress events through a channel so the view can narrate the
// run while it happens.
func (a *App) startRun(query string, refresh bool) tea.Cmd {
	a.mode = modeRunning
	a.query = query
	a.phases = nil
	a.done, a.total = 0, 0
	a.lastRow = ""
	a.err = nil
	a.res = nil
	a.items = nil
	a.cursor = 0
	a.insightScroll = 0
	a.filter = sentimentFilter{}

	events := make(chan tea.Msg, 64)
	a.events = events

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	runner := a.run
	return tea.Batch(a.spinner.Tick, listenCmd(events), func() tea.Msg {
		hooks := pipeline.Hooks{
			Phase: func(msg string) { events <- phaseMsg{text: msg} },
			Progress: func(done, total int, row review.Analyzed) {
				events <- progressMsg{done: done, total: total, row: row}
			},
		}
		res, err := runner.Run(ctx, query, refresh, hooks)
		events <- runDoneMsg{res: res, err: err}
		close(events)
		return nil
	})
}

// listenCmd delivers the next streamed event. Re-armed after every event
// until the run closes the channel.
func listenCmd(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (a *App) fetchMentionsCmd(query string) tea.Cmd {
	f := a.mentions
	if f == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		items, err := f.Fetch(ctx, query)
		if err != nil || len(items) == 0 {
			return nil // the panel just stays empty
		}
		return mentionsMsg{items: items}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if w := msg.Width - 24; w > 10 && w < 60 {
			a.bar.Width = w
		}
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case phaseMsg:
		a.phases = append(a.phases, msg.text)
		return a, listenCmd(a.events)

	case progressMsg:
		a.done, a.total = msg.done, msg.total
		a.lastRow = msg.row.Author + " → " + string(msg.row.Sentiment)
		return a, listenCmd(a.events)

	case runDoneMsg:
		return a.handleRunDone(msg)

	case mentionsMsg:
		a.items = msg.items
		return a, nil

	case updateMsg:
		a.updateTo = msg.version
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.mode == modeRunning {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleRunDone(msg runDoneMsg) (tea.Model, tea.Cmd) {
	// A cancelled run may still deliver its result after the user left.
	if a.mode != modeRunning {
		return a, nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	if msg.err != nil && msg.res == nil {
		a.err = msg.err
		a.mode = modeInput
		a.input.Focus()
		return a, textinput.Blink
	}

	a.res = msg.res
	a.err = msg.err
	a.mode = modeResults
	a.focus = focusReviews

	if msg.res.Metrics.Total > 0 {
		return a, a.fetchMentionsCmd(msg.res.Query)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	switch a.mode {
	case modeInput:
		return a.handleInputKey(msg)
	case modeRunning:
		return a.handleRunningKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = a.prevMode
		}
		return a, nil
	}

	return a.handleResultsKey(msg)
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	return a, tea.Quit
}

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		query := strings.TrimSpace(a.input.Value())
		if query == "" {
			return a, nil
		}
		a.input.Blur()
		return a, a.startRun(query, false)
	case "esc":
		if a.res != nil {
			a.mode = modeResults
			a.input.Blur()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleRunningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a.quit()
	case "esc":
		// Abandon the run; the late result is dropped in handleRunDone.
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		a.mode = modeInput
		a.input.Focus()
		return a, textinput.Blink
	}
	return a, nil
}

func (a *App) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a.quit()
	case "n":
		a.mode = modeInput
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink
	case "r":
		if a.res != nil {
			return a, a.startRun(a.res.Query, true)
		}
		return a, nil
	case "j", "down":
		if a.focus == focusReviews {
			if a.cursor < len(a.visibleRows())-1 {
				a.cursor++
			}
		} else {
			a.insightScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusReviews {
			if a.cursor > 0 {
				a.cursor--
			}
		} else if a.insightScroll > 0 {
			a.insightScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusReviews {
			a.focus = focusInsights
		} else {
			a.focus = focusReviews
		}
		return a, nil
	case "o", "enter":
		return a, openBrowserCmd(a.placeURL())
	case "f":
		a.filter.cycle()
		a.cursor = 0
		return a, nil
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.items) {
			return a, openBrowserCmd(a.items[idx].Link)
		}
		return a, nil
	case "?":
		a.prevMode = a.mode
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

// placeURL prefers the listing captured during scraping and falls back to a
// fresh Maps search for the query.
func (a *App) placeURL() string {
	if a.res != nil && a.res.PlaceURL != "" {
		return a.res.PlaceURL
	}
	query := a.query
	if a.res != nil {
		query = a.res.Query
	}
	return scrape.SearchURL(query)
}

func (a *App) visibleRows() []review.Analyzed {
	if a.res == nil {
		return nil
	}
	return a.filter.apply(a.res.Analyzed)
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar("", hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  repute")
	}

	switch a.mode {
	case modeInput:
		errLine := ""
		if a.err != nil {
			errLine = a.err.Error()
		}
		screen := renderInputScreen(a.width, a.height, a.input.View(), a.recent, errLine, a.updateTo)
		return a.withBottomBar(screen, "enter analyze  ctrl+c quit")

	case modeRunning:
		return a.withBottomBar(a.renderRunning(), "esc cancel  q quit")

	case modeHelp:
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	return a.renderResults()
}

func (a *App) renderRunning() string {
	var lines []string
	lines = append(lines, a.spinner.View()+" "+headerStyle.Render("Analyzing \""+a.query+"\""))
	lines = append(lines, "")

	for _, p := range a.phases {
		lines = append(lines, phaseStyle.Render("· "+p))
	}

	if a.total > 0 {
		pct := float64(a.done) / float64(a.total)
		lines = append(lines, "")
		lines = append(lines, a.bar.ViewAs(pct)+fmt.Sprintf("  %d/%d", a.done, a.total))
		if a.lastRow != "" {
			lines = append(lines, phaseStyle.Render(a.lastRow))
		}
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, content)
}

func (a *App) renderResults() string {
	res := a.res

	// Header
	headerLeft := headerStyle.Render("repute") + rowMetaStyle.Render(" · "+res.Query)
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	status := a.renderResultsBar()

	if res.Metrics.Total == 0 {
		warning := renderEmptyWarning(res.Query, a.width, a.height-2)
		return lipgloss.JoinVertical(lipgloss.Left, header, warning, status)
	}

	metrics := renderMetricCells(res.Metrics, a.width)

	contentHeight := a.height - 1 - lipgloss.Height(metrics) - 1 - 2 // header, bar, borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	insightsWidth := int(float64(a.width) * 0.45)
	tableWidth := a.width - insightsWidth - 1 // gap

	// Insights pane with scroll offset
	innerInsightsW := insightsWidth - 4
	insights := renderInsights(res.Metrics, res.Recommendations(), a.items, innerInsightsW)
	insightLines := strings.Split(insights, "\n")
	if a.insightScroll >= len(insightLines) {
		a.insightScroll = len(insightLines) - 1
	}
	if a.insightScroll > 0 {
		insightLines = insightLines[a.insightScroll:]
	}
	if len(insightLines) > contentHeight {
		insightLines = insightLines[:contentHeight]
	}
	insightContent := strings.Join(insightLines, "\n")

	var insightsPane string
	if a.focus == focusInsights {
		insightsPane = paneActiveStyle.Width(insightsWidth - 2).Height(contentHeight).Render(insightContent)
	} else {
		insightsPane = paneStyle.Width(insightsWidth - 2).Height(contentHeight).Render(insightContent)
	}

	// Review table pane: windowed rows on top, selected detail below
	rows := a.visibleRows()
	if a.cursor >= len(rows) {
		a.cursor = max(0, len(rows)-1)
	}
	innerTableW := tableWidth - 4
	detailHeight := contentHeight / 3
	if detailHeight < 4 {
		detailHeight = 4
	}
	listHeight := contentHeight - detailHeight - 1

	var selected *review.Analyzed
	if len(rows) > 0 {
		selected = &rows[a.cursor]
	}

	tableContent := renderReviewTable(rows, a.cursor, listHeight, innerTableW) + "\n" +
		rowMetaStyle.Render(strings.Repeat("─", max(0, innerTableW))) + "\n" +
		renderReviewDetail(selected, innerTableW, detailHeight)

	var tablePane string
	if a.focus == focusReviews {
		tablePane = paneActiveStyle.Width(tableWidth - 2).Height(contentHeight).Render(tableContent)
	} else {
		tablePane = paneStyle.Width(tableWidth - 2).Height(contentHeight).Render(tableContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, insightsPane, tablePane)

	return lipgloss.JoinVertical(lipgloss.Left, header, metrics, content, status)
}

func (a *App) renderResultsBar() string {
	res := a.res

	source := "live"
	if res.FromCache {
		source = "cached"
	}
	left := fmt.Sprintf("%d reviews · %s · %s", res.Metrics.Total, source,
		res.Duration.Round(100*time.Millisecond))
	if a.filter.label() != "All" {
		left += " · filter " + a.filter.label()
	}
	if len(res.Warnings) > 0 {
		left += fmt.Sprintf(" · %d warnings", len(res.Warnings))
	}
	if a.err != nil {
		left = a.err.Error()
	}

	return renderBottomBar(left, "n new  r rerun  o open  tab focus  ? help  q quit", a.width)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("repute")
	dim := helpDimStyle

	help := title + dim.Render(" — Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through reviews or scroll insights\n" +
		"  tab           Switch focus between panes\n\n" +
		dim.Render("Actions") + "\n" +
		"  n             Start a new query\n" +
		"  r             Re-run the query, bypassing cached data\n" +
		"  o, enter      Open the place page in a browser\n" +
		"  1-5           Open a news mention\n" +
		"  f             Cycle sentiment filter\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the dashboard.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
