package validate

import (
	"strings"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// Subscription price ceilings, in shillings.
const (
	WeeklyLimit  = 10000
	MonthlyLimit = 40000
)

type pricing struct {
	Weekly  *float64 `json:"weekly_subscription_amount" validate:"omitempty,gt=0,lte=10000"`
	Monthly *float64 `json:"monthly_subscription_amount" validate:"omitempty,gt=0,lte=40000"`
}

const (
	weeklyMsg  = "Weekly subscription amount must be greater than 0 and not exceed 10,000 /=."
	monthlyMsg = "Monthly subscription amount must be greater than 0 and not exceed 40,000 /=."
)

// optionalAmount parses an amount field; blank means unset.
func optionalAmount(field, raw string) (*float64, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	f, err := domain.ParseAmount(raw)
	if err != nil {
		return nil, &FieldError{Field: field, Message: "Amounts must be numbers."}
	}
	return &f, nil
}

// TipsterPricing validates the optional weekly and monthly prices. Blank
// fields stay unset; when both are set monthly must exceed weekly.
func TipsterPricing(weekly, monthly string) (*float64, *float64, error) {
	var errs Errors
	w, fe := optionalAmount("weekly_subscription_amount", weekly)
	if fe != nil {
		errs = append(errs, *fe)
	}
	m, fe := optionalAmount("monthly_subscription_amount", monthly)
	if fe != nil {
		errs = append(errs, *fe)
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}

	errs = check(pricing{Weekly: w, Monthly: m}, map[string]string{
		"weekly_subscription_amount":  weeklyMsg,
		"monthly_subscription_amount": monthlyMsg,
	})
	if len(errs) == 0 && w != nil && m != nil && *m <= *w {
		errs = append(errs, FieldError{
			Field:   "monthly_subscription_amount",
			Message: "Monthly subscription amount must be greater than the weekly amount.",
		})
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}
	return w, m, nil
}

type tipsterProfile struct {
	Name  string `json:"name" validate:"notblank"`
	Phone string `json:"phone_number" validate:"notblank"`
}

// TipsterUpdate validates the tipster edit form.
func TipsterUpdate(name, phone, weekly, monthly string, commissionConfigID *int64) (domain.UpdateTipsterRequest, error) {
	errs := check(tipsterProfile{Name: name, Phone: phone}, map[string]string{
		"name":         "Please fill in all required fields.",
		"phone_number": "Please fill in all required fields.",
	})
	if len(errs) > 0 {
		return domain.UpdateTipsterRequest{}, errs
	}
	w, m, err := TipsterPricing(weekly, monthly)
	if err != nil {
		return domain.UpdateTipsterRequest{}, err
	}
	return domain.UpdateTipsterRequest{
		Name:                      strings.TrimSpace(name),
		PhoneNumber:               strings.TrimSpace(phone),
		CommissionConfigID:        commissionConfigID,
		WeeklySubscriptionAmount:  w,
		MonthlySubscriptionAmount: m,
	}, nil
}

type rejection struct {
	Notes string `json:"admin_notes" validate:"notblank"`
}

// Rejection requires a reason when a tipster application is rejected.
func Rejection(notes string) (string, error) {
	errs := check(rejection{Notes: notes}, map[string]string{
		"admin_notes": "Please provide a reason for rejection.",
	})
	return strings.TrimSpace(notes), errs.orNil()
}

type registration struct {
	Name     string `json:"name" validate:"notblank"`
	Phone    string `json:"phone_number" validate:"notblank"`
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

// Customer validates console registration of a customer.
func Customer(name, phone, password, confirm string) (domain.RegisterUserRequest, error) {
	const allRequired = "All fields are required."
	errs := check(registration{Name: name, Phone: phone, Password: password, Confirm: confirm}, map[string]string{
		"name":                           allRequired,
		"phone_number":                   allRequired,
		"password":                       allRequired,
		"password_confirmation.required": allRequired,
		"password_confirmation.eqfield":  "Passwords do not match.",
	})
	if len(errs) > 0 {
		return domain.RegisterUserRequest{}, errs
	}
	return domain.RegisterUserRequest{
		Name:        strings.TrimSpace(name),
		PhoneNumber: strings.TrimSpace(phone),
		Password:    password,
		Role:        domain.RoleCustomer,
	}, nil
}
