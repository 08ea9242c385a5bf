package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/pweza/pweza-admin/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.PhoneNumber != "0712345678" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{ //nolint:errcheck
			Message: "ok",
			User:    domain.User{ID: 1, Name: "Admin", Role: domain.RoleAdmin},
			Token:   "tok-123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	resp, err := c.Login(context.Background(), "0712345678", "secret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("Token = %q, want %q", resp.Token, "tok-123")
	}
	if !resp.User.IsAdmin() {
		t.Errorf("User.Role = %q, want admin", resp.User.Role)
	}

	_, err = c.Login(context.Background(), "0712345678", "wrong")
	if !IsUnauthorized(err) {
		t.Fatalf("Login() with bad password error = %v, want 401", err)
	}
	if got := Message(err); got != "Invalid credentials" {
		t.Errorf("Message(err) = %q, want %q", got, "Invalid credentials")
	}
}

func TestGetMe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"user": domain.User{ID: 7, Name: "Wanjiku", PhoneNumber: "0700000000", Role: "admin"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token")
	me, err := c.GetMe(context.Background())
	if err != nil {
		t.Fatalf("GetMe() error: %v", err)
	}
	if me.Name != "Wanjiku" {
		t.Errorf("Name = %q, want %q", me.Name, "Wanjiku")
	}

	_, err = c.WithToken("bad").GetMe(context.Background())
	if err == nil {
		t.Fatal("expected error for unauthorized request")
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 401") {
		t.Errorf("error = %q, want it to contain 'HTTP 401'", got)
	}
}

func TestWithToken_DoesNotMutateOriginal(t *testing.T) {
	c := New("http://example.test", "a")
	c2 := c.WithToken("b")
	if c.Token() != "a" || c2.Token() != "b" {
		t.Errorf("tokens = %q, %q, want a, b", c.Token(), c2.Token())
	}
}

func TestLogout(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logout" && r.Method == http.MethodPost {
			called = true
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if err := New(srv.URL, "tok").Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if !called {
		t.Error("logout endpoint was not called")
	}
}

func TestListTipsters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/tipsters" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("search") != "otieno" || q.Get("status") != "pending" {
			t.Errorf("query = %q, want page=2 search=otieno status=pending", r.URL.RawQuery)
		}
		io.WriteString(w, `{
			"data": [{"id": 4, "name": "Otieno", "status": "pending", "weekly_subscription_amount": "500.00"}],
			"pagination": {"current_page": 2, "last_page": 3, "per_page": 15, "total": 31}
		}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	page, err := c.ListTipsters(context.Background(), domain.ListFilter{Page: 2, Search: "otieno", Status: "pending"})
	if err != nil {
		t.Fatalf("ListTipsters() error: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("got %d tipsters, want 1", len(page.Data))
	}
	if p, ok := page.Data[0].PlanPrice(domain.PlanWeekly); !ok || p != 500 {
		t.Errorf("weekly price = %v, %v, want 500, true", float64(p), ok)
	}
	if page.Pagination.Total != 31 || !page.Pagination.HasNext() {
		t.Errorf("pagination = %+v, want total 31 with a next page", page.Pagination)
	}
}

func TestListTipsters_NoFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		io.WriteString(w, `{"data": [], "pagination": {}}`) //nolint:errcheck
	}))
	defer srv.Close()

	page, err := New(srv.URL, "tok").ListTipsters(context.Background(), domain.ListFilter{})
	if err != nil {
		t.Fatalf("ListTipsters() error: %v", err)
	}
	if len(page.Data) != 0 {
		t.Errorf("got %d tipsters, want 0", len(page.Data))
	}
}

func TestRejectTipster_SendsNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/admin/tipsters/9/reject" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		if body["admin_notes"] != "blurry ID" {
			t.Errorf("admin_notes = %q, want %q", body["admin_notes"], "blurry ID")
		}
		io.WriteString(w, `{"message": "rejected", "tipster": {"id": 9, "status": "rejected"}}`) //nolint:errcheck
	}))
	defer srv.Close()

	tip, err := New(srv.URL, "tok").RejectTipster(context.Background(), 9, "blurry ID")
	if err != nil {
		t.Fatalf("RejectTipster() error: %v", err)
	}
	if tip.Status != domain.TipsterRejected {
		t.Errorf("Status = %q, want %q", tip.Status, domain.TipsterRejected)
	}
}

func TestCreatePrediction_Multipart(t *testing.T) {
	dir := t.TempDir()
	slip := filepath.Join(dir, "slip.png")
	if err := os.WriteFile(slip, []byte("\x89PNG fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/admin/predictions" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm error: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		checks := map[string]string{
			"tipster_id":       "3",
			"booker_id":        "2",
			"title":            "Arsenal vs Spurs",
			"odds_total":       "3.25",
			"confidence_level": "4",
			"is_premium":       "0",
			"status":           "draft",
			"result_status":    "pending",
			"booking_codes[0]": "AB12",
			"booking_codes[1]": "CD34",
		}
		for k, want := range checks {
			if got := r.FormValue(k); got != want {
				t.Errorf("field %s = %q, want %q", k, got, want)
			}
		}
		if _, hdr, err := r.FormFile("betting_slip"); err != nil || hdr.Filename != "slip.png" {
			t.Errorf("betting_slip missing: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"message": "created", "prediction": {"id": 11, "title": "Arsenal vs Spurs", "odds_total": "3.25"}}`) //nolint:errcheck
	}))
	defer srv.Close()

	p, err := New(srv.URL, "tok").CreatePrediction(context.Background(), domain.CreatePredictionRequest{
		TipsterID:       3,
		BookerID:        2,
		Title:           "Arsenal vs Spurs",
		OddsTotal:       3.25,
		KickoffAt:       "2030-01-01T15:00",
		ConfidenceLevel: 4,
		BookingCodes:    []string{"AB12", "CD34"},
		BettingSlip:     slip,
	})
	if err != nil {
		t.Fatalf("CreatePrediction() error: %v", err)
	}
	if p.ID != 11 || p.OddsTotal != 3.25 {
		t.Errorf("prediction = %+v, want id 11 odds 3.25", p)
	}
}

func TestCreatePrediction_MissingSlipFile(t *testing.T) {
	c := New("http://127.0.0.1:0", "tok")
	_, err := c.CreatePrediction(context.Background(), domain.CreatePredictionRequest{
		BettingSlip: filepath.Join(t.TempDir(), "nope.jpg"),
	})
	if err == nil {
		t.Fatal("expected error for missing slip file")
	}
}

func TestListWithdrawals_FlattensPaginator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/withdrawals" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("status") != "pending" {
			t.Errorf("status = %q, want pending", r.URL.Query().Get("status"))
		}
		io.WriteString(w, `{
			"success": true,
			"data": {
				"data": [{"id": 1, "tipster": {"id": 4, "name": "Otieno", "phone_number": "0711"}, "amount": "2500.00", "status": "pending"}],
				"current_page": 1, "last_page": 2, "per_page": 20, "total": 21
			},
			"summary": {"total_pending": 21, "total_amount_pending": 52000}
		}`) //nolint:errcheck
	}))
	defer srv.Close()

	page, err := New(srv.URL, "tok").ListWithdrawals(context.Background(), domain.WithdrawalFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("ListWithdrawals() error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Amount != 2500 {
		t.Fatalf("data = %+v, want one withdrawal of 2500", page.Data)
	}
	if page.Pagination.LastPage != 2 || page.Pagination.Total != 21 {
		t.Errorf("pagination = %+v, want last_page 2 total 21", page.Pagination)
	}
	if page.Summary.TotalPending != 21 {
		t.Errorf("summary.TotalPending = %d, want 21", page.Summary.TotalPending)
	}
}

func TestSendNotification_EmptyUserIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"user_ids":[]`) {
			t.Errorf("body = %s, want user_ids as empty array", body)
		}
		io.WriteString(w, `{"message": "sent"}`) //nolint:errcheck
	}))
	defer srv.Close()

	err := New(srv.URL, "tok").SendNotification(context.Background(), domain.NotificationRequest{
		Type: domain.AudienceAll, Title: "Hi", Message: "Weekend picks are live",
	})
	if err != nil {
		t.Fatalf("SendNotification() error: %v", err)
	}
}

func TestHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusInternalServerError, `{"message": "boom"}`, "boom"},
		{"error field", http.StatusBadRequest, `{"error": "bad input"}`, "bad input"},
		{"validation errors", http.StatusUnprocessableEntity, `{"errors": {"name": ["The name field is required."]}}`, "The name field is required."},
		{"plain body", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty body", http.StatusServiceUnavailable, ``, "HTTP error! status: 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			_, err := New(srv.URL, "tok").GetDashboardStats(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(err, %d) = false for %v", tt.status, err)
			}
			if got := Message(err); got != tt.want {
				t.Errorf("Message(err) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDoRequest_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
		io.WriteString(w, `{}`)     //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.GetMe(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestLimiter_HonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{}`) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	c.SetLimiter(rate.NewLimiter(rate.Every(time.Hour), 1))
	if _, err := c.GetDashboardStats(context.Background()); err != nil {
		t.Fatalf("first request error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.GetDashboardStats(ctx); err == nil {
		t.Fatal("expected rate limit error once the bucket is empty")
	}
}
