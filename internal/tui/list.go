package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/internal/browser"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

// page is one tab of the console.
type page interface {
	// Refresh reloads the page's data.
	Refresh() (page, tea.Cmd)
	Update(msg tea.Msg) (page, tea.Cmd)
	View() string
	Help() string
	// Editing reports whether the page captures plain keys, so global
	// shortcuts must not fire.
	Editing() bool
	Resize(width, height int) page
}

// pageMsg is an async result addressed to one page.
type pageMsg interface {
	target() tab
	failure() error
}

var loadSeq atomic.Int64

// nextSeq numbers loads across every page and session, so a response can
// only ever match the load that asked for it.
func nextSeq() int64 { return loadSeq.Add(1) }

// actionDoneMsg reports a finished row action, form submission, copy or open.
type actionDoneMsg struct {
	tab    tab
	status string
	err    error
	form   bool
	reload bool
}

func (m actionDoneMsg) target() tab    { return m.tab }
func (m actionDoneMsg) failure() error { return m.err }

// listQuery is what a list page asks the backend for.
type listQuery struct {
	Page   int
	Search string
	Status string
	Result string
}

type listResult[T any] struct {
	rows       []T
	pagination domain.Pagination
	summary    string
}

// pageResult adapts a client page to a listResult.
func pageResult[T any](p *domain.Page[T], err error) (listResult[T], error) {
	if err != nil {
		return listResult[T]{}, err
	}
	return listResult[T]{rows: p.Data, pagination: p.Pagination}, nil
}

type listLoadedMsg[T any] struct {
	tab tab
	seq int64
	res listResult[T]
	err error
}

func (m listLoadedMsg[T]) target() tab    { return m.tab }
func (m listLoadedMsg[T]) failure() error { return m.err }

type column[T any] struct {
	title string
	width int
	value func(T) string
	// status renders the value through StatusStyle.
	status bool
}

// rowAction is a key bound to the selected row. It either opens a form,
// asks for confirmation and then runs, or runs directly.
type rowAction[T any] struct {
	key     string
	label   string
	allowed func(T) bool
	form    func(T) formModel
	confirm func(T) string
	run     func(ctx context.Context, row T) (string, error)
}

type listConfig[T any] struct {
	tab        tab
	title      string
	statuses   []string
	// results is a second filter cycle on the v key.
	results    []string
	searchable bool
	fetch      func(ctx context.Context, q listQuery) (listResult[T], error)
	columns    []column[T]
	actions    []rowAction[T]
	create     func() formModel
	copy       func(T) string
	open       func(ctx context.Context, row T) (string, error)
}

// listModel is a paginated, searchable, filterable table.
type listModel[T any] struct {
	cfg       listConfig[T]
	rows      []T
	pg        domain.Pagination
	summary   string
	page      int
	filter    int
	result    int
	search    string
	searching bool
	cursor    int
	loading   bool
	err       error
	statusMsg string
	statusErr bool
	seq       int64
	pending   int
	form      formModel
	formOpen  bool
	width     int
	height    int
}

func newListModel[T any](cfg listConfig[T]) listModel[T] {
	return listModel[T]{cfg: cfg, page: 1, pending: -1, loading: true}
}

// filters returns the status filter cycle, "" meaning all.
func (m listModel[T]) filters() []string {
	if len(m.cfg.statuses) == 0 {
		return nil
	}
	return append([]string{""}, m.cfg.statuses...)
}

func (m listModel[T]) status() string {
	f := m.filters()
	if m.filter < len(f) {
		return f[m.filter]
	}
	return ""
}

func (m listModel[T]) resultFilter() string {
	if len(m.cfg.results) == 0 || m.result == 0 {
		return ""
	}
	return m.cfg.results[m.result-1]
}

func (m listModel[T]) query() listQuery {
	return listQuery{Page: m.page, Search: strings.TrimSpace(m.search), Status: m.status(), Result: m.resultFilter()}
}

func (m listModel[T]) Refresh() (page, tea.Cmd) {
	return m.load()
}

func (m listModel[T]) load() (listModel[T], tea.Cmd) {
	m.seq = nextSeq()
	m.loading = true
	m.err = nil
	q, fetch, tab, seq := m.query(), m.cfg.fetch, m.cfg.tab, m.seq
	return m, func() tea.Msg {
		res, err := fetch(context.Background(), q)
		return listLoadedMsg[T]{tab: tab, seq: seq, res: res, err: err}
	}
}

func (m listModel[T]) run(req request, fromForm, reload bool) tea.Cmd {
	tab := m.cfg.tab
	return func() tea.Msg {
		status, err := req(context.Background())
		return actionDoneMsg{tab: tab, status: status, err: err, form: fromForm, reload: reload && err == nil}
	}
}

func (m listModel[T]) Resize(width, height int) page {
	m.width = width
	m.height = height
	return m
}

func (m listModel[T]) Editing() bool {
	return m.searching || m.formOpen || m.pending >= 0
}

func (m listModel[T]) selected() (T, bool) {
	var zero T
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return zero, false
	}
	return m.rows[m.cursor], true
}

func (m listModel[T]) Update(msg tea.Msg) (page, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg[T]:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rows = msg.res.rows
		m.pg = msg.res.pagination
		m.summary = msg.res.summary
		if m.pg.CurrentPage > 0 {
			m.page = m.pg.CurrentPage
		}
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}
		return m, nil

	case actionDoneMsg:
		if msg.form && m.formOpen {
			if msg.err != nil {
				m.form = m.form.fail(client.Message(msg.err))
				return m, nil
			}
			m.formOpen = false
		}
		if msg.err != nil {
			m.statusMsg, m.statusErr = client.Message(msg.err), true
			return m, nil
		}
		m.statusMsg, m.statusErr = msg.status, false
		if msg.reload {
			return m.load()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.formOpen {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m listModel[T]) handleKey(msg tea.KeyMsg) (page, tea.Cmd) {
	key := msg.String()

	if m.formOpen {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		switch m.form.state {
		case formCancelled:
			m.formOpen = false
			return m, nil
		case formSubmitted:
			if m.form.req != nil {
				req := m.form.req
				m.form.req = nil
				return m, m.run(req, true, true)
			}
		}
		return m, cmd
	}

	if m.pending >= 0 {
		a := m.cfg.actions[m.pending]
		m.pending = -1
		row, ok := m.selected()
		if key != "y" || !ok {
			m.statusMsg, m.statusErr = "cancelled", false
			return m, nil
		}
		m.statusMsg, m.statusErr = "working…", false
		return m, m.run(func(ctx context.Context) (string, error) { return a.run(ctx, row) }, false, true)
	}

	if m.searching {
		switch key {
		case "enter":
			m.searching = false
			m.page = 1
			return m.load()
		case "esc":
			m.searching = false
			m.search = ""
			m.page = 1
			return m.load()
		default:
			m.search = editRune(m.search, key)
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "n":
		if m.pg.HasNext() {
			m.page++
			m.cursor = 0
			return m.load()
		}
		return m, nil
	case "p":
		if m.pg.HasPrev() {
			m.page--
			m.cursor = 0
			return m.load()
		}
		return m, nil
	case "/":
		if m.cfg.searchable {
			m.searching = true
		}
		return m, nil
	case "f":
		if f := m.filters(); len(f) > 0 {
			m.filter = (m.filter + 1) % len(f)
			m.page = 1
			m.cursor = 0
			return m.load()
		}
		return m, nil
	case "v":
		if n := len(m.cfg.results); n > 0 {
			m.result = (m.result + 1) % (n + 1)
			m.page = 1
			m.cursor = 0
			return m.load()
		}
		return m, nil
	case "r":
		return m.load()
	case "a":
		if m.cfg.create != nil {
			m.form = m.cfg.create()
			m.formOpen = true
			return m, textinput.Blink
		}
		return m, nil
	case "c":
		row, ok := m.selected()
		if !ok || m.cfg.copy == nil {
			return m, nil
		}
		text := m.cfg.copy(row)
		return m, m.run(func(context.Context) (string, error) {
			if err := clipboard.WriteAll(text); err != nil {
				return "", fmt.Errorf("copy failed: %w", err)
			}
			return "copied " + text, nil
		}, false, false)
	case "o":
		row, ok := m.selected()
		if !ok || m.cfg.open == nil {
			return m, nil
		}
		resolve := m.cfg.open
		return m, m.run(func(ctx context.Context) (string, error) {
			url, err := resolve(ctx, row)
			if err != nil {
				return "", err
			}
			if url == "" {
				return "", errors.New("no document attached")
			}
			if err := browser.Open(url); err != nil {
				return "", fmt.Errorf("open %s: %w", url, err)
			}
			return "opened " + url, nil
		}, false, false)
	}

	for i, a := range m.cfg.actions {
		if a.key != key {
			continue
		}
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		if a.allowed != nil && !a.allowed(row) {
			m.statusMsg, m.statusErr = "cannot "+a.label+" this row", true
			return m, nil
		}
		switch {
		case a.form != nil:
			m.form = a.form(row)
			m.formOpen = true
			return m, textinput.Blink
		case a.confirm != nil:
			m.pending = i
			m.statusMsg, m.statusErr = a.confirm(row)+"? y/n", false
			return m, nil
		default:
			m.statusMsg, m.statusErr = "working…", false
			return m, m.run(func(ctx context.Context) (string, error) { return a.run(ctx, row) }, false, true)
		}
	}
	return m, nil
}

func (m listModel[T]) View() string {
	var b strings.Builder

	title := " " + selectedStyle.Render(m.cfg.title)
	if f := m.filters(); len(f) > 0 {
		label := m.status()
		if label == "" {
			label = "all"
		}
		title += metaStyle.Render(" · ") + dimStyle.Render("status: ") + StatusStyle(label).Render(label)
	}
	if len(m.cfg.results) > 0 {
		label := m.resultFilter()
		if label == "" {
			label = "all"
		}
		title += metaStyle.Render(" · ") + dimStyle.Render("result: ") + StatusStyle(label).Render(label)
	}
	if m.searching {
		title += metaStyle.Render(" · ") + searchStyle.Render("/ "+m.search+"█")
	} else if m.search != "" {
		title += metaStyle.Render(" · ") + dimStyle.Render("search: "+m.search)
	}
	b.WriteString(title + "\n")
	if m.summary != "" {
		b.WriteString(" " + metaStyle.Render(m.summary) + "\n")
	}
	b.WriteString("\n")

	if m.formOpen {
		b.WriteString(m.form.View())
		return b.String()
	}

	switch {
	case m.loading && len(m.rows) == 0:
		b.WriteString("  " + dimStyle.Render("loading…") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString("  " + rejectStyle.Render("error: "+client.Message(m.err)) + "\n")
		return b.String()
	case len(m.rows) == 0:
		b.WriteString("  " + dimStyle.Render("nothing here") + "\n")
		return b.String()
	}

	var header strings.Builder
	header.WriteString("   ")
	for _, c := range m.cfg.columns {
		header.WriteString(cell(c.title, c.width) + " ")
	}
	b.WriteString(headerStyle.Render(strings.TrimRight(header.String(), " ")) + "\n")

	visible := m.height - 7
	if m.summary != "" {
		visible--
	}
	if visible < 3 {
		visible = 3
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.rows))

	for i := start; i < end; i++ {
		row := m.rows[i]
		var line strings.Builder
		for _, c := range m.cfg.columns {
			v := cell(c.value(row), c.width)
			if c.status {
				v = StatusStyle(strings.TrimSpace(v)).Render(v)
			} else if i == m.cursor {
				v = selectedStyle.Render(v)
			} else {
				v = normalStyle.Render(v)
			}
			line.WriteString(v + " ")
		}
		if i == m.cursor {
			b.WriteString(" " + accentStyle.Render("▸") + " " + selectedRowBg.Render(line.String()) + "\n")
		} else {
			b.WriteString("   " + line.String() + "\n")
		}
	}

	b.WriteString("\n " + metaStyle.Render(fmt.Sprintf("page %d/%d · %d total", max(m.page, 1), m.pg.Pages(), m.pg.Total)))
	if m.loading {
		b.WriteString(metaStyle.Render(" · loading…"))
	}
	b.WriteString("\n")
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(" " + rejectStyle.Render(m.statusMsg) + "\n")
		} else {
			b.WriteString(" " + goldStyle.Render(m.statusMsg) + "\n")
		}
	}
	return b.String()
}

func (m listModel[T]) Help() string {
	switch {
	case m.formOpen:
		return m.form.Help()
	case m.searching:
		return helpBar(helpEntry("enter", "search"), helpEntry("esc", "clear"))
	case m.pending >= 0:
		return helpBar(helpEntry("y", "confirm"), helpEntry("any", "cancel"))
	}
	entries := []string{helpEntry("j/k", "nav"), helpEntry("n/p", "page")}
	if m.cfg.searchable {
		entries = append(entries, helpEntry("/", "search"))
	}
	if len(m.cfg.statuses) > 0 {
		entries = append(entries, helpEntry("f", "filter"))
	}
	if len(m.cfg.results) > 0 {
		entries = append(entries, helpEntry("v", "result"))
	}
	if m.cfg.create != nil {
		entries = append(entries, helpEntry("a", "add"))
	}
	for _, a := range m.cfg.actions {
		entries = append(entries, helpEntry(a.key, a.label))
	}
	if m.cfg.copy != nil {
		entries = append(entries, helpEntry("c", "copy"))
	}
	if m.cfg.open != nil {
		entries = append(entries, helpEntry("o", "open"))
	}
	entries = append(entries, helpEntry("r", "refresh"), helpEntry("h", "help"))
	return helpBar(entries...)
}
