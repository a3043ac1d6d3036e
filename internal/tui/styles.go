package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorRed       = lipgloss.AdaptiveColor{Light: "#D64545", Dark: "#FF5C5C"}
	colorStar      = lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#E5C07B"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	paneActiveStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorActiveBdr)

	metricCellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Align(lipgloss.Center)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSecondary)

	rowAuthorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	rowMetaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	starStyle = lipgloss.NewStyle().
			Foreground(colorStar)

	detailTextStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	mentionSourceStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	phaseStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	queryPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	errStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)

	positiveStyle = lipgloss.NewStyle().Foreground(colorGreen)
	neutralStyle  = lipgloss.NewStyle().Foreground(colorDim)
	negativeStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// sentimentStyle maps a sentiment to its dashboard swatch: green, gray, red.
func sentimentStyle(s review.Sentiment) lipgloss.Style {
	switch s {
	case review.Positive:
		return positiveStyle
	case review.Negative:
		return negativeStyle
	default:
		return neutralStyle
	}
}
