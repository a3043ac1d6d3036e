package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/review"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderReviewRow(r review.Analyzed, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	head := fmt.Sprintf("%.1f★ %s  %s", r.Rating, r.Sentiment, r.Author)
	var top string
	if selected {
		top = rowSelectedStyle.Render("> " + truncateStr(head, width-4))
	} else {
		top = starStyle.Render("  "+fmt.Sprintf("%.1f★", r.Rating)) + " " +
			sentimentStyle(r.Sentiment).Render(string(r.Sentiment)) + "  " +
			rowAuthorStyle.Render(truncateStr(r.Author, width-16))
	}

	summary := r.Summary
	if summary == "" {
		summary = r.Text
	}
	meta := "  " + rowMetaStyle.Render(truncateStr(summary, width-4))

	return top + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// renderReviewTable lists analyzed rows two lines each, windowed around the
// cursor like a scrolling table.
func renderReviewTable(rows []review.Analyzed, cursor, height, width int) string {
	if len(rows) == 0 {
		return lipglossCenter("No reviews match", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderReviewRow(rows[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderReviewDetail expands the selected row: full author line plus the
// wrapped review text, padded or clipped to the given height.
func renderReviewDetail(r *review.Analyzed, width, height int) string {
	if r == nil {
		return lipglossCenter("Select a review", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	head := rowAuthorStyle.Render(r.Author) + rowMetaStyle.Render(
		fmt.Sprintf(" · %.1f★ · %s · %s", r.Rating, r.Sentiment, r.Date),
	)

	body := detailTextStyle.Width(contentWidth).Render(wrapText(r.Text, contentWidth))

	var parts []string
	parts = append(parts, head, "", body)
	if r.Summary != "" {
		parts = append(parts, "", sectionTitleStyle.Render("Summary: ")+detailTextStyle.Render(r.Summary))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func lipglossCenter(s string, width, height int) string {
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", max(0, (width-len(s))/2)) + s
}
