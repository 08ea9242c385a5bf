package domain

// Roles a backend user can hold.
const (
	RoleAdmin    = "admin"
	RoleTipster  = "tipster"
	RoleCustomer = "customer"
)

// User is the authenticated account returned by login and /me.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// IsAdmin reports whether the user may use the admin console.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// LoginResponse is returned by a successful admin login.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// MessageResponse is the generic acknowledgement most mutations return.
type MessageResponse struct {
	Message string `json:"message"`
}
