package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/internal/auth"
	"github.com/pweza/pweza-admin/pkg/client"
)

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, phone, password string) (*auth.Session, error)
}

// sessionStartedMsg hands a fresh or restored session to the app.
type sessionStartedMsg struct {
	session *auth.Session
}

type loginFailedMsg struct {
	err error
}

type loginModel struct {
	auth     Authenticator
	phone    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
	notice   string
	width    int
	height   int
}

func newLoginModel(a Authenticator, notice string) loginModel {
	phone := textinput.New()
	phone.Placeholder = "phone number"
	phone.CharLimit = 32
	phone.Prompt = ""
	phone.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{auth: a, phone: phone, password: password, notice: notice}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) setFocus(i int) loginModel {
	m.focus = i
	if i == 0 {
		m.phone.Focus()
		m.password.Blur()
	} else {
		m.phone.Blur()
		m.password.Focus()
	}
	return m
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	phone := strings.TrimSpace(m.phone.Value())
	password := m.password.Value()
	if phone == "" || password == "" {
		m.err = "Phone number and password are required."
		return m, nil
	}
	m.busy = true
	m.err = ""
	a := m.auth
	return m, func() tea.Msg {
		s, err := a.Login(context.Background(), phone, password)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return sessionStartedMsg{session: s}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		m.busy = false
		m.err = client.Message(msg.err)
		m.password.SetValue("")
		return m.setFocus(1), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			return m.setFocus(1 - m.focus), nil
		case "enter":
			if m.focus == 0 {
				return m.setFocus(1), nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.phone, cmd = m.phone.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center(renderShimmerLogo(0), m.width) + "\n")
	b.WriteString(center(metaStyle.Render("admin console"), m.width) + "\n\n")

	if m.notice != "" {
		b.WriteString(center(goldStyle.Render(m.notice), m.width) + "\n\n")
	}

	label := func(s string, focused bool) string {
		if focused {
			return accentStyle.Render("▸ ") + selectedStyle.Render(s)
		}
		return "  " + dimStyle.Render(s)
	}
	b.WriteString(center(label("Phone    ", m.focus == 0)+"  "+m.phone.View(), m.width) + "\n")
	b.WriteString(center(label("Password ", m.focus == 1)+"  "+m.password.View(), m.width) + "\n\n")

	switch {
	case m.busy:
		b.WriteString(center(dimStyle.Render("signing in…"), m.width) + "\n")
	case m.err != "":
		b.WriteString(center(rejectStyle.Render(m.err), m.width) + "\n")
	}
	return b.String()
}

func (m loginModel) Help() string {
	return helpBar(helpEntry("tab", "next"), helpEntry("enter", "sign in"), helpEntry("ctrl+c", "quit"))
}
