package domain

// Tipster approval states.
const (
	TipsterPending  = "pending"
	TipsterApproved = "approved"
	TipsterRejected = "rejected"
	TipsterRevoked  = "revoked"
)

// TipsterStatuses is the filter cycle for tipster lists.
var TipsterStatuses = []string{TipsterPending, TipsterApproved, TipsterRejected, TipsterRevoked}

// Tipster is a platform user who publishes paid predictions.
type Tipster struct {
	ID                        int64             `json:"id"`
	Name                      string            `json:"name"`
	PhoneNumber               string            `json:"phone_number"`
	Role                      string            `json:"role"`
	Status                    string            `json:"status"`
	AdminNotes                string            `json:"admin_notes,omitempty"`
	CommissionConfigID        *int64            `json:"commission_config_id,omitempty"`
	CommissionConfig          *CommissionConfig `json:"commission_config,omitempty"`
	WeeklySubscriptionAmount  *Amount           `json:"weekly_subscription_amount,omitempty"`
	MonthlySubscriptionAmount *Amount           `json:"monthly_subscription_amount,omitempty"`
	Rating                    *TipsterRating    `json:"tipster_rating,omitempty"`
	CreatedAt                 Time              `json:"created_at"`
}

// TipsterRating summarizes a tipster's track record.
type TipsterRating struct {
	WinRate          float64 `json:"win_rate"`
	TotalPredictions int     `json:"total_predictions"`
	StarRating       float64 `json:"star_rating"`
	RatingTier       string  `json:"rating_tier"`
	SubscribersCount int     `json:"subscribers_count"`
}

// PlanPrice returns the tipster's configured price for a plan and whether
// one is set.
func (t Tipster) PlanPrice(plan string) (Amount, bool) {
	var p *Amount
	switch plan {
	case PlanWeekly:
		p = t.WeeklySubscriptionAmount
	case PlanMonthly:
		p = t.MonthlySubscriptionAmount
	}
	if p == nil || *p <= 0 {
		return 0, false
	}
	return *p, true
}

// UpdateTipsterRequest is the payload for editing a tipster.
type UpdateTipsterRequest struct {
	Name                      string   `json:"name"`
	PhoneNumber               string   `json:"phone_number"`
	CommissionConfigID        *int64   `json:"commission_config_id"`
	WeeklySubscriptionAmount  *float64 `json:"weekly_subscription_amount"`
	MonthlySubscriptionAmount *float64 `json:"monthly_subscription_amount"`
}

// TipsterResponse is returned by tipster mutations.
type TipsterResponse struct {
	Message string  `json:"message"`
	Tipster Tipster `json:"tipster"`
}
