package domain

// Booker is a bookmaker predictions are placed with.
type Booker struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Notes     string `json:"notes,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt Time   `json:"created_at"`
	UpdatedAt Time   `json:"updated_at"`
}

// BookerRequest is the create/update payload for a booker.
type BookerRequest struct {
	Name     string `json:"name"`
	Notes    string `json:"notes,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// BookerFilter narrows a booker list. Simple asks for the unpaginated
// id/name form used to fill pickers.
type BookerFilter struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	Simple  bool
}

// BookerResponse is returned by booker mutations.
type BookerResponse struct {
	Message string `json:"message"`
	Booker  Booker `json:"booker"`
}
