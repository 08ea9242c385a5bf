package validate

import (
	"strconv"
	"strings"

	"github.com/pweza/pweza-admin/pkg/domain"
)

type commission struct {
	Name string  `json:"name" validate:"notblank"`
	Rate float64 `json:"commission_rate" validate:"gte=0,lte=100"`
}

// CommissionConfig validates the commission config form. Rate is a percent.
func CommissionConfig(name, rate, description string, active bool) (domain.CommissionConfigRequest, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
	if err != nil {
		return domain.CommissionConfigRequest{}, Errors{{Field: "commission_rate", Message: "Commission rate must be a number."}}
	}
	errs := check(commission{Name: name, Rate: r}, map[string]string{
		"name":            "Name is required.",
		"commission_rate": "Commission rate must be between 0 and 100.",
	})
	if len(errs) > 0 {
		return domain.CommissionConfigRequest{}, errs
	}
	return domain.CommissionConfigRequest{
		Name:           strings.TrimSpace(name),
		CommissionRate: r,
		Description:    strings.TrimSpace(description),
		IsActive:       active,
	}, nil
}

// Withdrawal actions an admin can take.
const (
	ActionMarkPaid = "paid"
	ActionReject   = "reject"
)

type withdrawalAction struct {
	Action string `json:"action" validate:"oneof=paid reject"`
	Notes  string `json:"notes" validate:"required_if=Action reject,omitempty,notblank"`
}

// WithdrawalAction validates a payout decision. Rejections need notes.
func WithdrawalAction(action, notes string) (string, error) {
	errs := check(withdrawalAction{Action: action, Notes: notes}, map[string]string{
		"action": "Unknown withdrawal action.",
		"notes":  "Please provide a reason for rejecting this withdrawal.",
	})
	return strings.TrimSpace(notes), errs.orNil()
}

type booker struct {
	Name string `json:"name" validate:"notblank"`
}

// Booker validates the booker form.
func Booker(name, notes string, active bool) (domain.BookerRequest, error) {
	errs := check(booker{Name: name}, map[string]string{
		"name": "Booker name is required.",
	})
	if len(errs) > 0 {
		return domain.BookerRequest{}, errs
	}
	return domain.BookerRequest{
		Name:     strings.TrimSpace(name),
		Notes:    strings.TrimSpace(notes),
		IsActive: &active,
	}, nil
}

type notification struct {
	Type    string `json:"type" validate:"oneof=tipster customer all"`
	Title   string `json:"title" validate:"notblank,max=255"`
	Message string `json:"message" validate:"notblank"`
}

// Notification validates the broadcast composer.
func Notification(audience, title, message string, userIDs []int64) (domain.NotificationRequest, error) {
	errs := check(notification{Type: audience, Title: title, Message: message}, map[string]string{
		"type":           "Choose tipsters, customers or everyone.",
		"title.notblank": "Title is required.",
		"title.max":      "Title must be at most 255 characters.",
		"message":        "Message is required.",
	})
	if len(errs) > 0 {
		return domain.NotificationRequest{}, errs
	}
	if userIDs == nil {
		userIDs = []int64{}
	}
	return domain.NotificationRequest{
		Type:    audience,
		UserIDs: userIDs,
		Title:   strings.TrimSpace(title),
		Message: strings.TrimSpace(message),
	}, nil
}

type subscription struct {
	UserID    int64  `json:"user_id" validate:"gt=0"`
	TipsterID int64  `json:"tipster_id" validate:"gt=0"`
	PlanType  string `json:"plan_type" validate:"oneof=weekly monthly"`
}

// Subscription validates subscribing a customer on their behalf. The
// tipster must have a price for the chosen plan.
func Subscription(customerID int64, tipster domain.Tipster, plan string) (domain.CreateSubscriptionRequest, error) {
	const pick = "Please select both a customer and a tipster."
	errs := check(subscription{UserID: customerID, TipsterID: tipster.ID, PlanType: plan}, map[string]string{
		"user_id":    pick,
		"tipster_id": pick,
		"plan_type":  "Choose a weekly or monthly plan.",
	})
	if len(errs) > 0 {
		return domain.CreateSubscriptionRequest{}, errs
	}
	if _, ok := tipster.PlanPrice(plan); !ok {
		return domain.CreateSubscriptionRequest{}, Errors{{
			Field:   "plan_type",
			Message: "The selected tipster has not configured a price for this plan type.",
		}}
	}
	return domain.CreateSubscriptionRequest{
		UserID:             customerID,
		TipsterID:          tipster.ID,
		PlanType:           plan,
		CommissionConfigID: tipster.CommissionConfigID,
	}, nil
}

type admin struct {
	Name     string `json:"name" validate:"notblank"`
	Phone    string `json:"phone_number" validate:"notblank"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required_if=Existing false,omitempty,min=8"`
	Existing bool   `json:"-"`
}

// Admin validates the operator form. A password is required only when
// creating an account.
func Admin(name, phone, email, password string, creating bool) (domain.AdminRequest, error) {
	errs := check(admin{Name: name, Phone: phone, Email: strings.TrimSpace(email), Password: password, Existing: !creating}, map[string]string{
		"name":                 "Name is required.",
		"phone_number":         "Phone number is required.",
		"email":                "Email address is not valid.",
		"password.required_if": "Password is required for new admins.",
		"password.min":         "Password must be at least 8 characters.",
	})
	if len(errs) > 0 {
		return domain.AdminRequest{}, errs
	}
	return domain.AdminRequest{
		Name:        strings.TrimSpace(name),
		PhoneNumber: strings.TrimSpace(phone),
		Email:       strings.TrimSpace(email),
		Password:    password,
	}, nil
}
