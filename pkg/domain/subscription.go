package domain

// Subscription plans.
const (
	PlanDaily   = "daily"
	PlanWeekly  = "weekly"
	PlanMonthly = "monthly"
)

// Subscription states.
const (
	SubscriptionActive    = "active"
	SubscriptionExpired   = "expired"
	SubscriptionCancelled = "cancelled"
)

// SubscriptionStatuses is the filter and status-change cycle for subscriptions.
var SubscriptionStatuses = []string{SubscriptionActive, SubscriptionExpired, SubscriptionCancelled}

// Customer is a platform user who subscribes to tipsters.
type Customer struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	PhoneNumber   string         `json:"phone_number"`
	Role          string         `json:"role"`
	CreatedAt     Time           `json:"created_at"`
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
}

// ActiveSubscriptions counts the customer's active subscriptions.
func (c Customer) ActiveSubscriptions() int {
	n := 0
	for _, s := range c.Subscriptions {
		if s.Status == SubscriptionActive {
			n++
		}
	}
	return n
}

// Subscription is a customer's paid access to one tipster.
type Subscription struct {
	ID                 int64             `json:"id"`
	UserID             int64             `json:"user_id"`
	TipsterID          int64             `json:"tipster_id"`
	PlanType           string            `json:"plan_type"`
	Price              Amount            `json:"price"`
	Currency           string            `json:"currency"`
	StartAt            Time              `json:"start_at"`
	EndAt              Time              `json:"end_at"`
	Status             string            `json:"status"`
	CommissionRate     Amount            `json:"commission_rate"`
	CommissionAmount   Amount            `json:"commission_amount"`
	TipsterEarnings    Amount            `json:"tipster_earnings"`
	CommissionConfigID *int64            `json:"commission_config_id,omitempty"`
	CreatedAt          Time              `json:"created_at"`
	Tipster            *Ref              `json:"tipster,omitempty"`
	User               *Ref              `json:"user,omitempty"`
	CommissionConfig   *CommissionConfig `json:"commission_config,omitempty"`
}

// SubscriptionFilter narrows a subscription list.
type SubscriptionFilter struct {
	Page      int
	TipsterID int64
	Status    string
	Search    string
}

// CreateSubscriptionRequest subscribes a customer to a tipster on their behalf.
type CreateSubscriptionRequest struct {
	UserID             int64  `json:"user_id"`
	TipsterID          int64  `json:"tipster_id"`
	PlanType           string `json:"plan_type"`
	CommissionConfigID *int64 `json:"commission_config_id,omitempty"`
}

// SubscriptionResponse is returned by subscription mutations.
type SubscriptionResponse struct {
	Message      string       `json:"message"`
	Subscription Subscription `json:"subscription"`
}

// RegisterUserRequest registers a customer or tipster from the console.
type RegisterUserRequest struct {
	Name                      string   `json:"name"`
	PhoneNumber               string   `json:"phone_number"`
	Password                  string   `json:"password"`
	Role                      string   `json:"role"`
	IDDocument                string   `json:"id_document,omitempty"`
	CommissionConfigID        *int64   `json:"commission_config_id,omitempty"`
	WeeklySubscriptionAmount  *float64 `json:"weekly_subscription_amount,omitempty"`
	MonthlySubscriptionAmount *float64 `json:"monthly_subscription_amount,omitempty"`
}

// RegisterUserResponse is returned by user registration.
type RegisterUserResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
