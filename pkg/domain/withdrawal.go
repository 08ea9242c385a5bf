package domain

// Withdrawal states.
const (
	WithdrawalPending   = "pending"
	WithdrawalPaid      = "paid"
	WithdrawalRejected  = "rejected"
	WithdrawalCancelled = "cancelled"
)

// WithdrawalStatuses is the filter cycle for withdrawal lists.
var WithdrawalStatuses = []string{WithdrawalPending, WithdrawalPaid, WithdrawalRejected, WithdrawalCancelled}

// Withdrawal is a tipster's payout request.
type Withdrawal struct {
	ID          int64  `json:"id"`
	Tipster     Ref    `json:"tipster"`
	Amount      Amount `json:"amount"`
	Status      string `json:"status"`
	RequestedAt Time   `json:"requested_at"`
	PaidAt      Time   `json:"paid_at"`
	Admin       *Ref   `json:"admin,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   Time   `json:"created_at"`
}

// WithdrawalSummary totals the withdrawal queue.
type WithdrawalSummary struct {
	TotalPending       int    `json:"total_pending"`
	TotalPaid          int    `json:"total_paid"`
	TotalRejected      int    `json:"total_rejected"`
	TotalAmountPending Amount `json:"total_amount_pending"`
	TotalAmountPaid    Amount `json:"total_amount_paid"`
}

// EarningsSummary is the balance block attached to withdrawal lists.
type EarningsSummary struct {
	TotalEarnings      Amount `json:"total_earnings"`
	AvailableBalance   Amount `json:"available_balance"`
	MinWithdrawalLimit Amount `json:"min_withdrawal_limit"`
}

// WithdrawalPage is a withdrawal list flattened into the common envelope.
type WithdrawalPage struct {
	Data            []Withdrawal      `json:"data"`
	Summary         WithdrawalSummary `json:"summary"`
	EarningsSummary *EarningsSummary  `json:"earnings_summary,omitempty"`
	Pagination      Pagination        `json:"pagination"`
}

// WithdrawalFilter narrows a withdrawal list.
type WithdrawalFilter struct {
	Page     int
	Status   string
	Search   string
	DateFrom string
	DateTo   string
}

// WithdrawalStats is the aggregate payout report.
type WithdrawalStats struct {
	Stats struct {
		TotalRequests        int    `json:"total_requests"`
		PendingRequests      int    `json:"pending_requests"`
		PaidRequests         int    `json:"paid_requests"`
		RejectedRequests     int    `json:"rejected_requests"`
		CancelledRequests    int    `json:"cancelled_requests"`
		TotalAmountRequested Amount `json:"total_amount_requested"`
		TotalAmountPaid      Amount `json:"total_amount_paid"`
		TotalAmountPending   Amount `json:"total_amount_pending"`
	} `json:"stats"`
	MonthlyTrends []MonthlyTrend `json:"monthly_trends"`
	TopTipsters   []TopTipster   `json:"top_tipsters"`
}

// MonthlyTrend is one month of withdrawal volume.
type MonthlyTrend struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Count       int    `json:"count"`
	TotalAmount Amount `json:"total_amount"`
}

// TopTipster is one row of the heaviest withdrawers.
type TopTipster struct {
	TipsterID    int64  `json:"tipster_id"`
	RequestCount int    `json:"request_count"`
	TotalAmount  Amount `json:"total_amount"`
	Tipster      Ref    `json:"tipster"`
}
