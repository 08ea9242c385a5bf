package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// urgentSeconds is when the countdown turns red.
const urgentSeconds = 10

// warningView renders the inactivity warning centered in width x height.
// It only presents seconds; the guard owns the countdown.
func warningView(seconds, width, height int) string {
	countdown := countdownStyle
	if seconds <= urgentSeconds {
		countdown = countdownUrgentStyle
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		warningTitleStyle.Render("Are you still there?"),
		"",
		normalStyle.Render("You will be logged out due to inactivity in"),
		countdown.Render(formatCountdown(seconds))+dimStyle.Render(fmt.Sprintf("  (%d seconds)", seconds)),
		"",
		helpEntry("enter", "stay signed in")+"    "+helpEntry("l", "log out now"),
	)

	boxWidth := width - 8
	if boxWidth > 60 {
		boxWidth = 60
	}
	if boxWidth < 40 {
		boxWidth = 40
	}
	box := warningBoxStyle.Width(boxWidth).Align(lipgloss.Center).Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
