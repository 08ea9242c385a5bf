package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestWarningViewShowsCountdown(t *testing.T) {
	view := warningView(25, 100, 30)
	for _, want := range []string{
		"Are you still there?",
		"You will be logged out due to inactivity in",
		"0:25",
		"(25 seconds)",
		"stay signed in",
		"log out now",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("warning view missing %q", want)
		}
	}
}

func TestWarningViewFillsScreen(t *testing.T) {
	view := warningView(5, 100, 30)
	if h := lipgloss.Height(view); h != 30 {
		t.Errorf("height = %d, want 30", h)
	}
	if w := lipgloss.Width(view); w != 100 {
		t.Errorf("width = %d, want 100", w)
	}
	if !strings.Contains(view, "0:05") {
		t.Error("countdown missing")
	}
}

func TestWarningViewUnknownSize(t *testing.T) {
	view := warningView(30, 0, 0)
	if !strings.Contains(view, "0:30") {
		t.Error("countdown missing")
	}
	if w := lipgloss.Width(view); w > 60 {
		t.Errorf("unsized box width = %d, want at most 60", w)
	}
}
