package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

// dashboardLoadedMsg carries every dashboard figure. Only stats is
// required; the other sections render as unavailable when their call fails.
type dashboardLoadedMsg struct {
	tab         tab
	seq         int64
	stats       *domain.DashboardStats
	withdrawals *domain.WithdrawalStats
	commissions *domain.CommissionStats
	unsettled   int
	err         error
	partial     []string
}

func (m dashboardLoadedMsg) target() tab    { return m.tab }
func (m dashboardLoadedMsg) failure() error { return m.err }

type dashboardModel struct {
	client      *client.Client
	tab         tab
	seq         int64
	stats       *domain.DashboardStats
	withdrawals *domain.WithdrawalStats
	commissions *domain.CommissionStats
	unsettled   int
	partial     []string
	loading     bool
	err         error
	width       int
	height      int
}

func newDashboardModel(c *client.Client, t tab) dashboardModel {
	return dashboardModel{client: c, tab: t, loading: true}
}

func (m dashboardModel) load() tea.Cmd {
	c, t, seq := m.client, m.tab, m.seq
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := c.GetDashboardStats(ctx)
		if err != nil {
			return dashboardLoadedMsg{tab: t, seq: seq, err: err}
		}
		msg := dashboardLoadedMsg{tab: t, seq: seq, stats: stats}
		if msg.withdrawals, err = c.GetWithdrawalStats(ctx); err != nil {
			msg.partial = append(msg.partial, "withdrawals: "+client.Message(err))
		}
		if msg.commissions, err = c.GetCommissionStats(ctx); err != nil {
			msg.partial = append(msg.partial, "commissions: "+client.Message(err))
		}
		unsettled, err := c.PredictionsNeedingResults(ctx)
		if err != nil {
			msg.partial = append(msg.partial, "results: "+client.Message(err))
		}
		msg.unsettled = len(unsettled)
		return msg
	}
}

func (m dashboardModel) Refresh() (page, tea.Cmd) {
	m.loading = true
	m.seq = nextSeq()
	return m, m.load()
}

func (m dashboardModel) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		m.stats = msg.stats
		m.withdrawals = msg.withdrawals
		m.commissions = msg.commissions
		m.unsettled = msg.unsettled
		m.partial = msg.partial
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.Refresh()
		}
	}
	return m, nil
}

func (m dashboardModel) Resize(width, height int) page {
	m.width = width
	m.height = height
	return m
}

func (m dashboardModel) Editing() bool { return false }

func (m dashboardModel) Help() string {
	return helpBar(helpEntry("r", "refresh"), helpEntry("tab", "pages"), helpEntry("h", "help"), helpEntry("q", "quit"))
}

func (m dashboardModel) View() string {
	if m.loading && m.stats == nil {
		return "  " + dimStyle.Render("loading dashboard…") + "\n"
	}
	if m.err != nil {
		return "  " + rejectStyle.Render("error: "+client.Message(m.err)) + "\n"
	}
	if m.stats == nil {
		return ""
	}

	var b strings.Builder
	section := func(title string) {
		fmt.Fprintf(&b, "\n  %s\n", headerStyle.Render(title))
	}
	figure := func(label, value string) {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(fmt.Sprintf("%-22s", label)), selectedStyle.Render(value))
	}

	section("Overview")
	figure("Tipsters", fmt.Sprint(m.stats.TotalTipsters))
	figure("Active customers", fmt.Sprint(m.stats.ActiveCustomers))
	figure("Predictions today", fmt.Sprint(m.stats.PredictionsToday))
	figure("Success rate", fmt.Sprintf("%.1f%%", m.stats.SuccessRate))
	figure("Awaiting results", fmt.Sprint(m.unsettled))

	if w := m.withdrawals; w != nil {
		section("Withdrawals")
		figure("Pending", fmt.Sprintf("%d (%s)", w.Stats.PendingRequests, w.Stats.TotalAmountPending))
		figure("Paid", fmt.Sprintf("%d (%s)", w.Stats.PaidRequests, w.Stats.TotalAmountPaid))
		figure("Rejected", fmt.Sprint(w.Stats.RejectedRequests))
		figure("Requested in total", w.Stats.TotalAmountRequested.String())
		for i, t := range w.TopTipsters {
			if i == 3 {
				break
			}
			figure(fmt.Sprintf("#%d %s", i+1, truncStr(t.Tipster.Name, 18)), fmt.Sprintf("%s in %d requests", t.TotalAmount, t.RequestCount))
		}
	}

	if cs := m.commissions; cs != nil {
		section("Commissions")
		figure("Total earned", cs.TotalCommission.String())
		figure("Active configs", fmt.Sprint(cs.ActiveConfigsCount))
		if cs.DefaultConfig != nil {
			figure("Default", fmt.Sprintf("%s (%s%%)", cs.DefaultConfig.Name, cs.DefaultConfig.CommissionRate))
		}
		for i, t := range cs.TopEarningTipsters {
			if i == 3 {
				break
			}
			figure(fmt.Sprintf("#%d %s", i+1, truncStr(t.Name, 18)), t.TotalEarnings.String())
		}
	}

	if len(m.partial) > 0 {
		b.WriteString("\n")
		for _, p := range m.partial {
			b.WriteString("  " + metaStyle.Render("unavailable "+p) + "\n")
		}
	}
	return b.String()
}
