package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/internal/validate"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

// notifyModel is the broadcast composer. The form stays open; a successful
// send clears it.
type notifyModel struct {
	client    *client.Client
	tab       tab
	form      formModel
	statusMsg string
	width     int
	height    int
}

func newNotifyModel(c *client.Client, t tab) notifyModel {
	return notifyModel{client: c, tab: t, form: notificationForm(c)}
}

// parseUserIDs reads a comma list of numeric ids. Blank entries are skipped.
func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, validate.Errors{{Field: "user_ids", Message: fmt.Sprintf("%q is not a user id.", part)}}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func notificationForm(c *client.Client) formModel {
	return newForm("Send notification", func(v []string) (request, error) {
		ids, err := parseUserIDs(v[3])
		if err != nil {
			return nil, err
		}
		req, err := validate.Notification(v[0], v[1], v[2], ids)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if err := c.SendNotification(ctx, req); err != nil {
				return "", err
			}
			if len(req.UserIDs) > 0 {
				return fmt.Sprintf("notification sent to %d users", len(req.UserIDs)), nil
			}
			return "notification sent to " + req.Type, nil
		}, nil
	},
		choiceField("Audience", domain.NotificationAudiences, domain.AudienceAll),
		textField("Title", "", ""),
		textField("Message", "", ""),
		textField("User IDs", "optional, comma separated", ""),
	)
}

func (m notifyModel) Refresh() (page, tea.Cmd) {
	return m, textinput.Blink
}

func (m notifyModel) Update(msg tea.Msg) (page, tea.Cmd) {
	if done, ok := msg.(actionDoneMsg); ok {
		if done.err != nil {
			m.form = m.form.fail(client.Message(done.err))
			return m, nil
		}
		m.form = notificationForm(m.client)
		m.statusMsg = done.status
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	switch m.form.state {
	case formCancelled:
		m.form = notificationForm(m.client)
		m.statusMsg = "cleared"
		return m, nil
	case formSubmitted:
		if req := m.form.req; req != nil {
			m.form.req = nil
			t := m.tab
			return m, func() tea.Msg {
				status, err := req(context.Background())
				return actionDoneMsg{tab: t, status: status, err: err, form: true}
			}
		}
	}
	return m, cmd
}

func (m notifyModel) Resize(width, height int) page {
	m.width = width
	m.height = height
	return m
}

// Editing is always true: every key belongs to the composer.
func (m notifyModel) Editing() bool { return true }

func (m notifyModel) Help() string {
	return helpBar(
		helpEntry("tab", "next"),
		helpEntry("←/→", "audience"),
		helpEntry("ctrl+s", "send"),
		helpEntry("esc", "clear"),
		helpEntry("ctrl+n/p", "pages"),
	)
}

func (m notifyModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + m.form.View())
	if m.statusMsg != "" {
		b.WriteString("  " + goldStyle.Render(m.statusMsg) + "\n")
	}
	return b.String()
}
