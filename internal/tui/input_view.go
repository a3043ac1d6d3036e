package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/suruthi88255-dotcom/Business-Reputation-Insights-Analyzer-using-Google-Maps-Reviews-LLMs/internal/store"
)

var asciiLogo = []string{
	`██████╗ ███████╗██████╗ ██╗   ██╗████████╗███████╗`,
	`██╔══██╗██╔════╝██╔══██╗██║   ██║╚══██╔══╝██╔════╝`,
	`██████╔╝█████╗  ██████╔╝██║   ██║   ██║   █████╗  `,
	`██╔══██╗██╔══╝  ██╔═══╝ ██║   ██║   ██║   ██╔══╝  `,
	`██║  ██║███████╗██║     ╚██████╔╝   ██║   ███████╗`,
	`╚═╝  ╚═╝╚══════╝╚═╝      ╚═════╝    ╚═╝   ╚══════╝`,
}

func renderInputScreen(width, height int, input string, recent []store.Run, errLine, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)

	var lines []string
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, taglineStyle.Render("Business reputation insights from Google Maps reviews"))
	lines = append(lines, "", "")

	lines = append(lines, input)
	lines = append(lines, "")
	lines = append(lines, helpDimStyle.Render("enter analyze · esc back · ctrl+c quit"))

	if errLine != "" {
		lines = append(lines, "", errStyle.Render(errLine))
	}

	if len(recent) > 0 {
		lines = append(lines, "", sectionTitleStyle.Render("Recent"))
		for _, run := range recent {
			entry := fmt.Sprintf("%s · %d reviews · avg %.1f · %s",
				run.Query, run.Fetched, run.AvgRating, relativeTime(run.StartedAt))
			lines = append(lines, rowMetaStyle.Render(truncateStr(entry, width-4)))
		}
	}

	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, logoStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
