package tui

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/internal/idle"
)

// maxInputLen is the maximum number of runes allowed in search and form inputs.
const maxInputLen = 500

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= maxInputLen {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// activityOf maps terminal input to the activity kind it represents.
// ok is false for messages that are not operator input.
func activityOf(msg tea.Msg) (kind idle.ActivityKind, ok bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return idle.KeyPress, true
	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() {
			return idle.Scroll, true
		}
		switch msg.Action {
		case tea.MouseActionPress:
			return idle.PointerPress, true
		case tea.MouseActionRelease:
			return idle.Click, true
		case tea.MouseActionMotion:
			return idle.PointerMove, true
		}
	}
	return 0, false
}
