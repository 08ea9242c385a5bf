package domain

// CommissionConfig is a named platform commission rate (percent).
type CommissionConfig struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	CommissionRate Amount `json:"commission_rate"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"is_active"`
	CreatedAt      Time   `json:"created_at"`
	UpdatedAt      Time   `json:"updated_at"`
}

// CommissionConfigRequest is the create/update payload.
type CommissionConfigRequest struct {
	Name           string  `json:"name"`
	CommissionRate float64 `json:"commission_rate"`
	Description    string  `json:"description,omitempty"`
	IsActive       bool    `json:"is_active"`
}

// CommissionConfigResponse is returned by commission config mutations.
type CommissionConfigResponse struct {
	Message string           `json:"message"`
	Config  CommissionConfig `json:"config"`
}

// CommissionStats summarizes platform commission earnings.
type CommissionStats struct {
	TotalCommission    Amount            `json:"total_commission"`
	ActiveConfigsCount int               `json:"active_configs_count"`
	DefaultConfig      *CommissionConfig `json:"default_config,omitempty"`
	TopEarningTipsters []TipsterEarning  `json:"top_earning_tipsters"`
}

// TipsterEarning is one row of the top-earners table.
type TipsterEarning struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	TotalEarnings Amount `json:"total_earnings"`
}
