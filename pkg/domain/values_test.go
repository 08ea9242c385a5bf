package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Amount
	}{
		{"number", `15.5`, 15.5},
		{"quoted decimal", `"15.00"`, 15},
		{"quoted with separators", `"10,000.25"`, 10000.25},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if a != tt.want {
				t.Errorf("Amount = %v, want %v", float64(a), float64(tt.want))
			}
		})
	}
}

func TestAmountUnmarshal_Invalid(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`"abc"`), &a); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		in   Amount
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-2500, "-2,500.00"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Amount(%v).String() = %q, want %q", float64(tt.in), got, tt.want)
		}
	}
}

func TestTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"rfc3339 micro", `"2025-03-01T10:30:00.000000Z"`, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"sql datetime", `"2025-03-01 10:30:00"`, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2025-03-01"`, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Time
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Time = %v, want %v", got.Time, tt.want)
			}
		})
	}
}

func TestTipsterPlanPrice(t *testing.T) {
	weekly := Amount(500)
	zero := Amount(0)
	tip := Tipster{WeeklySubscriptionAmount: &weekly, MonthlySubscriptionAmount: &zero}

	if p, ok := tip.PlanPrice(PlanWeekly); !ok || p != 500 {
		t.Errorf("PlanPrice(weekly) = %v, %v, want 500, true", float64(p), ok)
	}
	if _, ok := tip.PlanPrice(PlanMonthly); ok {
		t.Error("PlanPrice(monthly) should be unset for a zero amount")
	}
	if _, ok := tip.PlanPrice(PlanDaily); ok {
		t.Error("PlanPrice(daily) should never be set")
	}
}

func TestPagination(t *testing.T) {
	p := Pagination{CurrentPage: 1, LastPage: 3}
	if p.HasPrev() {
		t.Error("page 1 should have no previous page")
	}
	if !p.HasNext() {
		t.Error("page 1 of 3 should have a next page")
	}
	if got := (Pagination{}).Pages(); got != 1 {
		t.Errorf("empty Pagination.Pages() = %d, want 1", got)
	}
}

func TestBookingCodeUnmarshal(t *testing.T) {
	var codes []BookingCode
	if err := json.Unmarshal([]byte(`["ABC123", {"code": "XYZ"}]`), &codes); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(codes) != 2 || codes[0].Code != "ABC123" || codes[1].Code != "XYZ" {
		t.Errorf("codes = %+v, want ABC123 and XYZ", codes)
	}
}
