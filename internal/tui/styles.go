package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Shimmer animation for the PWEZA logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "P W E Z A" as a wave of amber light running
// from deep bronze (#4a3312) to bright gold (#fbbf24).
func renderShimmerLogo(frame int) string {
	const text = "PWEZA"
	n := len(text)

	var out strings.Builder
	t := float64(frame)

	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)

		tide := math.Sin(t*0.035) * 0.12
		b = b*0.75 + tide + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(74 + b*(251-74))
		g := clampByte(51 + b*(191-51))
		bl := clampByte(18 + b*(36-18))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#34d474"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b45555"))

	goldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606878")).
			Bold(true)

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e2a"))

	// Session warning modal.
	warningBorderColor = lipgloss.Color("#f59e0b")

	warningBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(warningBorderColor).
			Padding(1, 3)

	warningTitleStyle = lipgloss.NewStyle().
				Foreground(warningBorderColor).
				Bold(true)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24")).
			Bold(true)

	countdownUrgentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ef4444")).
				Bold(true)
)

// statusStyles colors the status column of list pages.
var statusStyles = map[string]lipgloss.Style{
	"pending":   goldStyle,
	"approved":  okStyle,
	"active":    okStyle,
	"paid":      okStyle,
	"published": okStyle,
	"won":       okStyle,
	"rejected":  rejectStyle,
	"revoked":   rejectStyle,
	"cancelled": rejectStyle,
	"lost":      rejectStyle,
	"expired":   dimStyle,
	"inactive":  dimStyle,
	"draft":     dimStyle,
	"void":      dimStyle,
	"refunded":  dimStyle,
}

// StatusStyle returns the style for a backend status value.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return normalStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins entries with the standard gap.
func helpBar(entries ...string) string {
	return " " + strings.Join(entries, "  ")
}

// helpView renders the key reference overlay.
func helpView() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fbbf24")).
		Bold(true).
		Render("P W E Z A   A D M I N")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	sections := []struct {
		name string
		rows []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1-9 0 -", "jump to a page"},
			{"tab / shift+tab", "next / previous page"},
			{"L", "log out"},
			{"q", "quit (session is kept)"},
		}},
		{"Lists", []struct{ key, desc string }{
			{"j/k", "move"},
			{"n/p", "next / previous page"},
			{"/", "search"},
			{"f", "cycle status filter"},
			{"v", "cycle result filter (predictions)"},
			{"r", "refresh"},
			{"a", "add"},
			{"c", "copy phone or id"},
			{"o", "open document"},
		}},
		{"Session", []struct{ key, desc string }{
			{"enter / s", "stay signed in when warned"},
			{"l", "log out from the warning"},
		}},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n", title)
	for _, s := range sections {
		fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render(s.name))
		for _, r := range s.rows {
			fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", r.key)), descStyle.Render(r.desc))
		}
	}
	return b.String()
}
