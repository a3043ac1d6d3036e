package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/mentions"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/report"
	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

const chartBarWidth = 18

func renderMetricCells(m report.Metrics, width int) string {
	cellWidth := width/3 - 2
	if cellWidth < 12 {
		cellWidth = 12
	}

	cell := func(value, label string) string {
		content := metricValueStyle.Render(value) + "\n" + metricLabelStyle.Render(label)
		return metricCellStyle.Width(cellWidth).Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		cell(fmt.Sprintf("%d", m.Total), "Total Reviews Analyzed"),
		cell(fmt.Sprintf("%.2f", m.AverageRating), "Average Rating ★"),
		cell(fmt.Sprintf("%.1f%%", m.PositivePercent), "Customer Satisfaction %"),
	)
}

// barLine draws one labeled chart row, scaling the bar against the largest
// count in the chart.
func barLine(label string, count, maxCount int, style lipgloss.Style) string {
	bar := 0
	if maxCount > 0 && count > 0 {
		bar = chartBarWidth * count / maxCount
		if bar < 1 {
			bar = 1
		}
	}
	return fmt.Sprintf("%-9s %s %d", label, style.Render(strings.Repeat("█", bar)), count)
}

func renderSentimentSplit(m report.Metrics) string {
	order := []review.Sentiment{review.Positive, review.Neutral, review.Negative}
	maxCount := 0
	for _, s := range order {
		if m.Sentiments[s] > maxCount {
			maxCount = m.Sentiments[s]
		}
	}

	lines := []string{sectionTitleStyle.Render("Sentiment Split")}
	for _, s := range order {
		lines = append(lines, barLine(string(s), m.Sentiments[s], maxCount, sentimentStyle(s)))
	}
	return strings.Join(lines, "\n")
}

func renderHistogram(m report.Metrics) string {
	maxCount := 0
	for star := 1; star <= 5; star++ {
		if m.Histogram[star] > maxCount {
			maxCount = m.Histogram[star]
		}
	}

	lines := []string{sectionTitleStyle.Render("Rating Distribution")}
	for star := 5; star >= 1; star-- {
		lines = append(lines, barLine(fmt.Sprintf("%d★", star), m.Histogram[star], maxCount, starStyle))
	}
	if m.Histogram[0] > 0 {
		lines = append(lines, rowMetaStyle.Render(fmt.Sprintf("unrated: %d", m.Histogram[0])))
	}
	return strings.Join(lines, "\n")
}

// renderAspects lists the aspects reviews touch on, with an arrow marking
// which way the sentiment leans for each one.
func renderAspects(m report.Metrics, width int) string {
	if len(m.Aspects) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.Aspects))
	for _, t := range m.Aspects {
		lean := ""
		switch {
		case t.Positive > t.Negative:
			lean = "↑"
		case t.Negative > t.Positive:
			lean = "↓"
		}
		parts = append(parts, fmt.Sprintf("%s %d%s", t.Aspect, t.Count, lean))
	}
	line := truncateStr(strings.Join(parts, " · "), width)
	return sectionTitleStyle.Render("Talked About") + "\n" + rowMetaStyle.Render(line)
}

func renderRecommendations(recs []string, width int) string {
	lines := []string{sectionTitleStyle.Render("AI Strategic Recommendations")}
	if len(recs) == 0 {
		lines = append(lines, rowMetaStyle.Render("No actionable suggestions extracted"))
	}
	for i, rec := range recs {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, truncateStr(rec, width-4)))
	}
	return strings.Join(lines, "\n")
}

func renderMentions(items []mentions.Mention, width int) string {
	lines := []string{sectionTitleStyle.Render("News Mentions")}
	if len(items) == 0 {
		lines = append(lines, rowMetaStyle.Render("No recent news found"))
	}
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("[%d] %s", i+1, truncateStr(item.Title, width-6)))
		lines = append(lines, "    "+mentionSourceStyle.Render(item.Source)+
			rowMetaStyle.Render(" · "+relativeTime(item.Published)))
	}
	if len(items) > 0 {
		lines = append(lines, rowMetaStyle.Render(fmt.Sprintf("press 1-%d to open", len(items))))
	}
	return strings.Join(lines, "\n")
}

// renderInsights stacks the chart and list sections into one scrollable
// column. The caller applies the scroll offset.
func renderInsights(m report.Metrics, recs []string, items []mentions.Mention, width int) string {
	sections := []string{
		renderSentimentSplit(m),
		renderHistogram(m),
	}
	if aspects := renderAspects(m, width); aspects != "" {
		sections = append(sections, aspects)
	}
	sections = append(sections, renderRecommendations(recs, width))
	sections = append(sections, renderMentions(items, width))

	return strings.Join(sections, "\n\n")
}

func renderEmptyWarning(query string, width, height int) string {
	msg := errStyle.Render("No reviews found for \""+query+"\".") + "\n\n" +
		detailTextStyle.Render("The listing may have no public reviews, or the results\npage changed shape before any cards loaded.") + "\n\n" +
		rowMetaStyle.Render("n new query · r retry without cache · q quit")

	card := warnCardStyle.Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
