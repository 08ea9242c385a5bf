package domain

// Notification audiences.
const (
	AudienceTipster  = "tipster"
	AudienceCustomer = "customer"
	AudienceAll      = "all"
)

// NotificationAudiences is the audience cycle in the composer.
var NotificationAudiences = []string{AudienceAll, AudienceTipster, AudienceCustomer}

// NotificationRequest broadcasts a push notification. An empty UserIDs
// targets everyone in the audience.
type NotificationRequest struct {
	Type    string  `json:"type"`
	UserIDs []int64 `json:"user_ids"`
	Title   string  `json:"title"`
	Message string  `json:"message"`
}

// DashboardStats is the console landing summary.
type DashboardStats struct {
	TotalTipsters      int     `json:"total_tipsters"`
	ActiveCustomers    int     `json:"active_customers"`
	PredictionsToday   int     `json:"predictions_today"`
	SuccessRate        float64 `json:"success_rate"`
	WeeklyPredictions  []any   `json:"weekly_predictions,omitempty"`
	SubscriptionTrends []any   `json:"subscription_trends,omitempty"`
}

// AdminUser is a console operator account.
type AdminUser struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	IsActive    *bool  `json:"is_active,omitempty"`
	CreatedAt   Time   `json:"created_at"`
	UpdatedAt   Time   `json:"updated_at"`
}

// Active reports whether the account is enabled. Accounts without the flag
// are treated as active.
func (a AdminUser) Active() bool {
	return a.IsActive == nil || *a.IsActive
}

// AdminRequest is the create/update payload for an admin account.
type AdminRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
}

// AdminResponse is returned by admin mutations.
type AdminResponse struct {
	Message string    `json:"message"`
	Admin   AdminUser `json:"admin"`
}

// ListFilter is the page/search/status triple shared by the simpler lists.
type ListFilter struct {
	Page   int
	Search string
	Status string
}
