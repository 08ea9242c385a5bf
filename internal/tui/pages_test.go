package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

type apiCall struct {
	method string
	path   string
	query  string
	body   map[string]any
}

// fakeAPI serves canned admin API responses keyed by "METHOD /path" and
// records every request.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	routes map[string]string
}

func newFakeAPI(t *testing.T, routes map[string]string) (*fakeAPI, *client.Client) {
	t.Helper()
	api := &fakeAPI{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		}
		api.mu.Lock()
		api.calls = append(api.calls, apiCall{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: body})
		api.mu.Unlock()

		resp, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Not found"}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(resp)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return api, client.New(srv.URL, "tok")
}

func (a *fakeAPI) find(method, path string) (apiCall, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.calls {
		if c.method == method && c.path == path {
			return c, true
		}
	}
	return apiCall{}, false
}

// drain executes cmd and feeds its message back, following one reload.
func drain(t *testing.T, p page, cmd tea.Cmd) page {
	t.Helper()
	p, cmd = feed(t, p, cmd)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			p, _ = p.Update(msg)
		}
	}
	return p
}

const pendingTipsters = `{"data":[
	{"id":5,"name":"Odds Guru","phone_number":"0722000111","status":"pending","weekly_subscription_amount":"500.00"},
	{"id":6,"name":"Banker Ke","phone_number":"0722000222","status":"approved"}
],"pagination":{"current_page":1,"last_page":1,"per_page":20,"total":2}}`

func TestApprovalsPageApprovesTipster(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{
		"GET /admin/tipsters":             pendingTipsters,
		"PATCH /admin/tipsters/5/approve": `{"message":"Tipster approved","tipster":{"id":5,"name":"Odds Guru","status":"approved"}}`,
	})

	p, cmd := newTipstersPage(c, tabApprovals, true).Resize(120, 40).Refresh()
	p = drain(t, p, cmd)

	list, ok := api.find(http.MethodGet, "/admin/tipsters")
	if !ok || !strings.Contains(list.query, "status=pending") {
		t.Fatalf("approvals should request pending tipsters, got %+v", list)
	}
	view := p.View()
	for _, want := range []string{"Approvals", "Odds Guru", "0722000111", "500.00"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	p, _ = press(p, "y")
	p, cmd = press(p, "y")
	p = drain(t, p, cmd)

	if _, ok := api.find(http.MethodPatch, "/admin/tipsters/5/approve"); !ok {
		t.Fatal("approve should PATCH /admin/tipsters/5/approve")
	}
	if !strings.Contains(p.View(), "Odds Guru approved") {
		t.Errorf("status missing:\n%s", p.View())
	}
}

func TestTipstersPageRejectNeedsReason(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{
		"GET /admin/tipsters":            pendingTipsters,
		"PATCH /admin/tipsters/5/reject": `{"message":"Tipster rejected","tipster":{"id":5,"status":"rejected"}}`,
	})

	p, cmd := newTipstersPage(c, tabTipsters, false).Resize(120, 40).Refresh()
	p = drain(t, p, cmd)

	p, _ = press(p, "x")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(p.View(), "Please provide a reason for rejection.") {
		t.Fatalf("empty reason should be refused:\n%s", p.View())
	}

	p, _ = press(p, "I", "D", " ", "b", "l", "u", "r", "r", "y")
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	drain(t, p, cmd)

	call, ok := api.find(http.MethodPatch, "/admin/tipsters/5/reject")
	if !ok {
		t.Fatal("reject should PATCH /admin/tipsters/5/reject")
	}
	if call.body["admin_notes"] != "ID blurry" {
		t.Errorf("admin_notes = %v", call.body["admin_notes"])
	}
}

func TestTipstersPageApproveOnlyPending(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{"GET /admin/tipsters": pendingTipsters})
	p, cmd := newTipstersPage(c, tabTipsters, false).Resize(120, 40).Refresh()
	p = drain(t, p, cmd)

	p, _ = press(p, "j", "y")
	if !strings.Contains(p.View(), "cannot approve this row") {
		t.Errorf("approved tipster should not be approvable:\n%s", p.View())
	}
	if _, ok := api.find(http.MethodPatch, "/admin/tipsters/6/approve"); ok {
		t.Error("no request should be sent")
	}
}

func TestWithdrawalsPageMarkPaid(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{
		"GET /admin/withdrawals": `{"data":{"data":[{"id":12,"tipster":{"id":5,"name":"Odds Guru","phone_number":"0722000111"},"amount":"1500.00","status":"pending"}],
			"current_page":1,"last_page":1,"per_page":20,"total":1},
			"summary":{"total_pending":1,"total_paid":4,"total_rejected":0,"total_amount_pending":"1500.00","total_amount_paid":"9000.00"}}`,
		"PATCH /admin/withdrawals/12/mark-paid": `{"message":"Marked as paid"}`,
	})

	p, cmd := newWithdrawalsPage(c, tabWithdrawals).Resize(120, 40).Refresh()
	p = drain(t, p, cmd)
	if !strings.Contains(p.View(), "1 pending (1,500.00) · 4 paid (9,000.00) · 0 rejected") {
		t.Errorf("summary missing:\n%s", p.View())
	}

	p, _ = press(p, "y")
	p, _ = press(p, "M", "P", "1")
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, p, cmd)

	call, ok := api.find(http.MethodPatch, "/admin/withdrawals/12/mark-paid")
	if !ok {
		t.Fatal("mark paid should PATCH /admin/withdrawals/12/mark-paid")
	}
	if call.body["notes"] != "MP1" {
		t.Errorf("notes = %v", call.body["notes"])
	}
}

func TestNotifyPageSends(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{
		"POST /admin/notifications": `{"message":"Notification sent"}`,
	})

	var p page = newNotifyModel(c, tabNotify)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = press(p, "K", "i", "c", "k", "o", "f", "f")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = press(p, "G", "a", "m", "e", " ", "a", "t", " ", "8")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = press(p, "3", ",", " ", "9")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p, _ = feed(t, p, cmd)

	call, ok := api.find(http.MethodPost, "/admin/notifications")
	if !ok {
		t.Fatal("send should POST /admin/notifications")
	}
	if call.body["type"] != domain.AudienceTipster || call.body["title"] != "Kickoff" {
		t.Errorf("body = %v", call.body)
	}
	if ids, _ := call.body["user_ids"].([]any); len(ids) != 2 {
		t.Errorf("user_ids = %v", call.body["user_ids"])
	}
	if !strings.Contains(p.View(), "notification sent to 2 users") {
		t.Errorf("status missing:\n%s", p.View())
	}
}

func TestNotifyPageRejectsBadUserIDs(t *testing.T) {
	_, c := newFakeAPI(t, nil)
	var p page = newNotifyModel(c, tabNotify)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = press(p, "T")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = press(p, "M")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, _ = press(p, "a", "b")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("bad ids should not be sent")
	}
	if !strings.Contains(p.View(), `"ab" is not a user id.`) {
		t.Errorf("view missing id error:\n%s", p.View())
	}
}

func TestParseUserIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"1, 2,3", 3, false},
		{"4,,", 1, false},
		{"x", 0, true},
		{"-2", 0, true},
	}
	for _, tt := range tests {
		ids, err := parseUserIDs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseUserIDs(%q) err = %v", tt.in, err)
			continue
		}
		if len(ids) != tt.want {
			t.Errorf("parseUserIDs(%q) = %v", tt.in, ids)
		}
	}
}

func TestDashboardShowsPartialFailures(t *testing.T) {
	_, c := newFakeAPI(t, map[string]string{
		"GET /admin/dashboard": `{"total_tipsters":42,"active_customers":310,"predictions_today":7,"success_rate":63.5}`,
	})
	p, cmd := newDashboardModel(c, tabDashboard).Refresh()
	if !strings.Contains(p.View(), "loading dashboard") {
		t.Error("dashboard should show loading")
	}
	p, _ = feed(t, p, cmd)

	view := p.View()
	for _, want := range []string{"Overview", "42", "310", "63.5%", "unavailable withdrawals", "unavailable commissions"} {
		if !strings.Contains(view, want) {
			t.Errorf("dashboard missing %q:\n%s", want, view)
		}
	}
}

func TestDashboardFailsWithoutStats(t *testing.T) {
	_, c := newFakeAPI(t, nil)
	p, cmd := newDashboardModel(c, tabDashboard).Refresh()
	p, _ = feed(t, p, cmd)
	if !strings.Contains(p.View(), "error:") {
		t.Errorf("dashboard should show the error:\n%s", p.View())
	}
}

func TestSubscriptionsPageCyclesStatus(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{
		"GET /admin/subscriptions": `{"data":[{"id":31,"user":{"id":2,"name":"Otieno"},"tipster":{"id":5,"name":"Odds Guru"},"plan_type":"weekly","price":"500.00","status":"active"}],
			"pagination":{"current_page":1,"last_page":1,"per_page":20,"total":1}}`,
		"PATCH /admin/subscriptions/31/status": `{"message":"Updated","subscription":{"id":31,"status":"expired"}}`,
	})

	p, cmd := newSubscriptionsPage(c, tabSubscriptions).Resize(120, 40).Refresh()
	p = drain(t, p, cmd)
	if !strings.Contains(p.View(), "Otieno") {
		t.Fatalf("subscription row missing:\n%s", p.View())
	}

	p, _ = press(p, "t")
	if !strings.Contains(p.View(), "set subscription #31 to expired? y/n") {
		t.Fatalf("confirm prompt missing:\n%s", p.View())
	}
	p, cmd = press(p, "y")
	drain(t, p, cmd)

	call, ok := api.find(http.MethodPatch, "/admin/subscriptions/31/status")
	if !ok {
		t.Fatal("status change should PATCH /admin/subscriptions/31/status")
	}
	if call.body["status"] != domain.SubscriptionExpired {
		t.Errorf("status = %v", call.body["status"])
	}
}

func TestNextSubscriptionStatus(t *testing.T) {
	tests := map[string]string{
		domain.SubscriptionActive:    domain.SubscriptionExpired,
		domain.SubscriptionExpired:   domain.SubscriptionCancelled,
		domain.SubscriptionCancelled: domain.SubscriptionActive,
		"unknown":                    domain.SubscriptionActive,
	}
	for in, want := range tests {
		if got := nextSubscriptionStatus(in); got != want {
			t.Errorf("nextSubscriptionStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRowFormatters(t *testing.T) {
	price := domain.Amount(1250)
	zero := domain.Amount(0)
	if got := amountOrDash(&price); got != "1,250.00" {
		t.Errorf("amountOrDash = %q", got)
	}
	if amountOrDash(nil) != "-" || amountOrDash(&zero) != "-" {
		t.Error("missing price should render as -")
	}
	if got := tipsterRating(domain.Tipster{Rating: &domain.TipsterRating{StarRating: 4.25, WinRate: 61}}); got != "4.2★ 61%" && got != "4.3★ 61%" {
		t.Errorf("tipsterRating = %q", got)
	}
	if tipsterRating(domain.Tipster{}) != "-" {
		t.Error("unrated tipster should render as -")
	}
	if refName(nil) != "-" || refName(&domain.Ref{Name: "Odds Guru"}) != "Odds Guru" {
		t.Error("refName mismatch")
	}
	if activeStatus(true) != "active" || activeStatus(false) != "inactive" {
		t.Error("activeStatus mismatch")
	}
}

// lastQuery returns the query string of the newest request to path.
func (a *fakeAPI) lastQuery(method, path string) (url.Values, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.calls) - 1; i >= 0; i-- {
		if c := a.calls[i]; c.method == method && c.path == path {
			q, _ := url.ParseQuery(c.query)
			return q, true
		}
	}
	return nil, false
}

const onePrediction = `{"data":[
	{"id":9,"tipster_id":3,"booker_id":2,"title":"Arsenal vs Spurs","odds_total":"2.50",
	 "kickoff_at":"2020-05-01T18:00:00Z","confidence_level":3,"is_premium":false,
	 "status":"published","result_status":"pending","booking_codes":[{"code":"AB12"},"CD34"]}
],"pagination":{"current_page":1,"last_page":1,"per_page":20,"total":1}}`

func TestPredictionsPageEditsPrediction(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{
		"GET /admin/predictions":     onePrediction,
		"PATCH /admin/predictions/9": `{"message":"Prediction updated","prediction":{"id":9,"status":"expired"}}`,
	})
	now := func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	p, cmd := newPredictionsPage(c, tabPredictions, now).Resize(140, 40).Refresh()
	p = drain(t, p, cmd)

	p, _ = press(p, "e")
	if !p.Editing() || !strings.Contains(p.View(), "Edit #9 Arsenal vs Spurs") {
		t.Fatalf("e should open the edit form:\n%s", p.View())
	}
	// Status is the ninth field; move it from published to expired.
	for i := 0; i < 8; i++ {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	p = drain(t, p, cmd)

	call, ok := api.find(http.MethodPatch, "/admin/predictions/9")
	if !ok {
		t.Fatal("edit should PATCH /admin/predictions/9")
	}
	b := call.body
	if b["title"] != "Arsenal vs Spurs" || b["booker_id"] != 2.0 || b["odds_total"] != 2.5 || b["confidence_level"] != 3.0 {
		t.Errorf("body = %v", b)
	}
	if b["status"] != "expired" || b["is_premium"] != false {
		t.Errorf("status/premium = %v/%v", b["status"], b["is_premium"])
	}
	if codes, _ := b["booking_codes"].([]any); len(codes) != 2 || codes[0] != "AB12" || codes[1] != "CD34" {
		t.Errorf("booking_codes = %v", b["booking_codes"])
	}
	kickoff, err := time.Parse(time.RFC3339, fmt.Sprint(b["kickoff_at"]))
	if err != nil || !kickoff.Equal(time.Date(2020, 5, 1, 18, 0, 0, 0, time.UTC)) {
		t.Errorf("kickoff_at = %v, a past kickoff must survive an edit", b["kickoff_at"])
	}
	if p.Editing() || !strings.Contains(p.View(), "prediction #9 updated") {
		t.Errorf("form should close with a status:\n%s", p.View())
	}
}

func TestPredictionsPageFilterQuery(t *testing.T) {
	api, c := newFakeAPI(t, map[string]string{"GET /admin/predictions": onePrediction})
	p, cmd := newPredictionsPage(c, tabPredictions, time.Now).Resize(140, 40).Refresh()
	p = drain(t, p, cmd)

	query := func() url.Values {
		t.Helper()
		q, ok := api.lastQuery(http.MethodGet, "/admin/predictions")
		if !ok {
			t.Fatal("no prediction list request")
		}
		return q
	}

	p, cmd = press(p, "v")
	p = drain(t, p, cmd)
	if got := query().Get("result_status"); got != domain.ResultPending {
		t.Errorf("result_status = %q, want pending", got)
	}
	p, cmd = press(p, "v")
	p = drain(t, p, cmd)
	if !strings.Contains(p.View(), "result: won") {
		t.Errorf("title should show the result filter:\n%s", p.View())
	}

	p, _ = press(p, "/")
	p, _ = press(p, strings.Split("7 2030-01-01..2030-01-31", "")...)
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = drain(t, p, cmd)
	q := query()
	for key, want := range map[string]string{
		"tipster_id":    "7",
		"date_from":     "2030-01-01",
		"date_to":       "2030-01-31",
		"result_status": "won",
		"page":          "1",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}

	p, _ = press(p, "/")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p, _ = press(p, "/")
	p, _ = press(p, strings.Split("odds guru ..2030-02-01", "")...)
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(t, p, cmd)
	q = query()
	if q.Get("tipster_name") != "odds guru" || q.Get("date_to") != "2030-02-01" || q.Has("date_from") || q.Has("tipster_id") {
		t.Errorf("query = %v", q)
	}
}

func TestPredictionFilter(t *testing.T) {
	tests := []struct {
		search  string
		want    domain.PredictionFilter
		wantErr string
	}{
		{"", domain.PredictionFilter{Page: 1}, ""},
		{"12", domain.PredictionFilter{Page: 1, TipsterID: 12}, ""},
		{"2030-01-01..", domain.PredictionFilter{Page: 1, DateFrom: "2030-01-01"}, ""},
		{"banker ke", domain.PredictionFilter{Page: 1, TipsterName: "banker ke"}, ""},
		{"2030-13-01..", domain.PredictionFilter{}, "dates must look like"},
		{"2030-02-01..2030-01-01", domain.PredictionFilter{}, "ends before it starts"},
	}
	for _, tt := range tests {
		got, err := predictionFilter(listQuery{Page: 1, Search: tt.search})
		if tt.wantErr != "" {
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("predictionFilter(%q) err = %v, want %q", tt.search, err, tt.wantErr)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("predictionFilter(%q) = %+v, %v", tt.search, got, err)
		}
	}
}
