package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pweza/pweza-admin/internal/auth"
	"github.com/pweza/pweza-admin/internal/idle"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

type tab int

const (
	tabDashboard tab = iota
	tabApprovals
	tabTipsters
	tabPredictions
	tabCustomers
	tabSubscriptions
	tabWithdrawals
	tabCommissions
	tabBookers
	tabAdmins
	tabNotify
	numTabs
)

var tabNames = [numTabs]string{
	"Dashboard", "Approvals", "Tipsters", "Predictions", "Customers", "Subscriptions",
	"Withdrawals", "Commissions", "Bookers", "Admins", "Notify",
}

var tabKeys = [numTabs]string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-"}

// Notices shown on the login view after a session ends.
const (
	noticeInactive  = "Session ended due to inactivity."
	noticeLoggedOut = "You have been logged out."
	noticeExpired   = "Your session has expired. Please sign in again."
)

// chrome is header(2) + tabs(1) + gap(1) + help(1).
const chrome = 5

// Watcher is the part of idle.Watcher the app drives.
type Watcher interface {
	Signal(kind idle.ActivityKind) bool
	Stay()
	LogoutNow()
	// State is the guard's newest state, which can be ahead of the last
	// idleStateMsg the app has seen.
	State() idle.State
	Done() <-chan struct{}
	Stop()
}

// WatchFunc starts an idle guard.
type WatchFunc func(ctx context.Context, opts idle.Options) Watcher

func watchIdle(ctx context.Context, opts idle.Options) Watcher {
	return idle.Watch(ctx, opts)
}

// Options configure the console.
type Options struct {
	Auth Authenticator
	// Session is a restored session. Nil starts at the login view.
	Session *auth.Session
	Idle    idle.Config
	Logger  *zap.Logger
	// Watch starts the idle guard for a session; nil uses idle.Watch.
	Watch WatchFunc
	// Now is the form validation clock; nil uses time.Now.
	Now func() time.Time
}

// idleStateMsg carries a guard state change. gen ties it to one session.
type idleStateMsg struct {
	gen    int
	state  idle.State
	closed bool
}

func listenIdle(ch <-chan idle.State, gen int) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		return idleStateMsg{gen: gen, state: s, closed: !ok}
	}
}

// latestState returns an OnChange hook that keeps only the newest state in
// ch, so the guard never waits on the UI.
func latestState(ch chan idle.State) func(idle.State) {
	return func(s idle.State) {
		for {
			select {
			case ch <- s:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}
}

// App is the root Bubbletea model.
type App struct {
	opts  Options
	log   *zap.Logger
	login loginModel

	session    *auth.Session
	user       domain.User
	watcher    Watcher
	idleStates <-chan idle.State
	guardGen   int
	idle       idle.State
	loggingOut bool

	pages    []page
	tab      tab
	helpOpen bool
	width    int
	height   int
	frame    int
}

// NewApp creates the console. It starts at the login view unless
// opts.Session is set.
func NewApp(opts Options) App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Watch == nil {
		opts.Watch = watchIdle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Idle == (idle.Config{}) {
		opts.Idle = idle.DefaultConfig()
	}
	return App{
		opts:  opts,
		log:   opts.Logger,
		login: newLoginModel(opts.Auth, ""),
	}
}

func newPages(c *client.Client, now func() time.Time) []page {
	pages := make([]page, numTabs)
	pages[tabDashboard] = newDashboardModel(c, tabDashboard)
	pages[tabApprovals] = newTipstersPage(c, tabApprovals, true)
	pages[tabTipsters] = newTipstersPage(c, tabTipsters, false)
	pages[tabPredictions] = newPredictionsPage(c, tabPredictions, now)
	pages[tabCustomers] = newCustomersPage(c, tabCustomers)
	pages[tabSubscriptions] = newSubscriptionsPage(c, tabSubscriptions)
	pages[tabWithdrawals] = newWithdrawalsPage(c, tabWithdrawals)
	pages[tabCommissions] = newCommissionsPage(c, tabCommissions)
	pages[tabBookers] = newBookersPage(c, tabBookers)
	pages[tabAdmins] = newAdminsPage(c, tabAdmins)
	pages[tabNotify] = newNotifyModel(c, tabNotify)
	return pages
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{shimmerTickCmd()}
	if s := a.opts.Session; s != nil {
		cmds = append(cmds, func() tea.Msg { return sessionStartedMsg{session: s} })
	} else {
		cmds = append(cmds, a.login.Init())
	}
	return tea.Batch(cmds...)
}

func (a App) loggedIn() bool { return a.session != nil }

func (a App) bodyHeight() int { return a.height - chrome }

// startSession arms the idle guard and opens the dashboard.
func (a App) startSession(s *auth.Session) (App, tea.Cmd) {
	a.session = s
	a.user = s.User
	a.loggingOut = false
	a.helpOpen = false
	a.guardGen++

	states := make(chan idle.State, 1)
	a.idleStates = states
	a.idle = idle.State{Phase: idle.PhaseActive, SecondsRemaining: a.opts.Idle.Countdown()}
	w := a.opts.Watch(context.Background(), idle.Options{
		Config:     a.opts.Idle,
		Terminator: idle.TerminatorFunc(s.Terminate),
		Logger:     a.log,
		OnChange:   latestState(states),
	})
	a.watcher = w
	go func() {
		<-w.Done()
		close(states)
	}()

	a.pages = newPages(s.Client, a.opts.Now)
	for i := range a.pages {
		a.pages[i] = a.pages[i].Resize(a.width, a.bodyHeight())
	}
	a.tab = tabDashboard
	var cmd tea.Cmd
	a.pages[a.tab], cmd = a.pages[a.tab].Refresh()

	a.log.Info("session started", zap.Int64("user_id", s.User.ID), zap.String("role", s.User.Role))
	return a, tea.Batch(listenIdle(states, a.guardGen), cmd)
}

// endSession stops the guard and returns to the login view with notice.
func (a App) endSession(notice string) (App, tea.Cmd) {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	a.log.Info("session ended", zap.String("reason", notice))
	a.guardGen++
	a.session = nil
	a.user = domain.User{}
	a.pages = nil
	a.helpOpen = false
	a.idle = idle.State{}
	a.login = newLoginModel(a.opts.Auth, notice)
	a.login.width, a.login.height = a.width, a.height
	return a, a.login.Init()
}

func (a App) switchTab(t tab) (App, tea.Cmd) {
	if t == a.tab {
		return a, nil
	}
	a.tab = t
	var cmd tea.Cmd
	a.pages[t], cmd = a.pages[t].Refresh()
	return a, cmd
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.login, _ = a.login.Update(msg)
		for i := range a.pages {
			a.pages[i] = a.pages[i].Resize(msg.Width, a.bodyHeight())
		}
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case sessionStartedMsg:
		return a.startSession(msg.session)

	case idleStateMsg:
		if msg.gen != a.guardGen || msg.closed {
			return a, nil
		}
		a.idle = msg.state
		if msg.state.Phase == idle.PhaseTerminated {
			if a.loggingOut {
				return a.endSession(noticeLoggedOut)
			}
			return a.endSession(noticeInactive)
		}
		return a, listenIdle(a.idleStates, msg.gen)
	}

	if !a.loggedIn() {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if _, ok := msg.(pageMsg); ok {
			return a, nil
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, cmd
	}

	if kind, ok := activityOf(msg); ok {
		if a.idle.Phase != idle.PhaseWarning {
			// The warning may be up before its state message arrives.
			if s := a.watcher.State(); s.Phase == idle.PhaseWarning {
				a.idle = s
			}
		}
		if a.idle.Phase == idle.PhaseWarning {
			return a.handleWarning(msg)
		}
		a.watcher.Signal(kind)
		if _, isMouse := msg.(tea.MouseMsg); isMouse {
			return a, nil
		}
	}

	if pm, ok := msg.(pageMsg); ok {
		if err := pm.failure(); err != nil && client.IsUnauthorized(err) {
			a.session.Terminate()
			return a.endSession(noticeExpired)
		}
		var cmd tea.Cmd
		t := pm.target()
		a.pages[t], cmd = a.pages[t].Update(msg)
		return a, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		if next, cmd, handled := a.handleGlobalKey(key); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	a.pages[a.tab], cmd = a.pages[a.tab].Update(msg)
	return a, cmd
}

// handleWarning answers input while the warning modal is up. Stay and
// log out are explicit; anything else is ordinary activity.
func (a App) handleWarning(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		kind, _ := activityOf(msg)
		a.watcher.Signal(kind)
		return a, nil
	}
	switch key.String() {
	case "enter", "s":
		a.watcher.Stay()
	case "l":
		a.loggingOut = true
		a.watcher.LogoutNow()
	case "ctrl+c":
		a.watcher.Stop()
		return a, tea.Quit
	default:
		a.watcher.Signal(idle.KeyPress)
	}
	return a, nil
}

func (a App) handleGlobalKey(key tea.KeyMsg) (App, tea.Cmd, bool) {
	switch key.String() {
	case "ctrl+c":
		a.watcher.Stop()
		return a, tea.Quit, true
	case "ctrl+n":
		next, cmd := a.switchTab((a.tab + 1) % numTabs)
		return next, cmd, true
	case "ctrl+p":
		next, cmd := a.switchTab((a.tab + numTabs - 1) % numTabs)
		return next, cmd, true
	}

	if a.helpOpen {
		switch key.String() {
		case "h", "esc":
			a.helpOpen = false
		case "q":
			a.watcher.Stop()
			return a, tea.Quit, true
		}
		return a, nil, true
	}

	if a.pages[a.tab].Editing() {
		return a, nil, false
	}

	switch key.String() {
	case "h":
		a.helpOpen = true
		return a, nil, true
	case "q":
		a.watcher.Stop()
		return a, tea.Quit, true
	case "L":
		a.session.Terminate()
		next, cmd := a.endSession(noticeLoggedOut)
		return next, cmd, true
	case "tab":
		next, cmd := a.switchTab((a.tab + 1) % numTabs)
		return next, cmd, true
	case "shift+tab":
		next, cmd := a.switchTab((a.tab + numTabs - 1) % numTabs)
		return next, cmd, true
	}
	for i, k := range tabKeys {
		if key.String() == k {
			next, cmd := a.switchTab(tab(i))
			return next, cmd, true
		}
	}
	return a, nil, false
}

func (a App) View() string {
	if !a.loggedIn() {
		body := strings.TrimRight(truncateToHeight(a.login.View(), a.height-1), "\n")
		return body + "\n" + a.login.Help()
	}

	header := center(renderShimmerLogo(a.frame), a.width)
	who := fmt.Sprintf("%s · %s · %s", a.user.Name, a.user.PhoneNumber, a.user.Role)
	header += "\n" + center(metaStyle.Render(who), a.width)

	var tabBar strings.Builder
	tabBar.WriteString(" ")
	for i, name := range tabNames {
		if tab(i) == a.tab {
			tabBar.WriteString(accentStyle.Render(tabKeys[i]) + " " + selectedStyle.Underline(true).Render(name))
		} else {
			tabBar.WriteString(metaStyle.Render(tabKeys[i]) + " " + dimStyle.Render(name))
		}
		tabBar.WriteString("  ")
	}
	tabs := truncateLine(tabBar.String(), a.width)

	body := a.pages[a.tab].View()
	help := a.pages[a.tab].Help()
	switch {
	case a.idle.Phase == idle.PhaseWarning:
		body = warningView(a.idle.SecondsRemaining, a.width, a.bodyHeight())
		help = helpBar(helpEntry("enter", "stay"), helpEntry("l", "log out"))
	case a.helpOpen:
		body = helpView()
		help = helpBar(helpEntry("esc", "close"), helpEntry("q", "quit"))
	}
	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, tabs, body, help)
}

// truncateLine cuts a styled line to width cells; width <= 0 leaves it.
func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
