package domain

// Pagination is the paging block of a list envelope.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Pages returns LastPage, treating a missing block as a single page.
func (p Pagination) Pages() int {
	if p.LastPage < 1 {
		return 1
	}
	return p.LastPage
}

// HasNext reports whether a page follows the current one.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.Pages()
}

// HasPrev reports whether a page precedes the current one.
func (p Pagination) HasPrev() bool {
	return p.CurrentPage > 1
}

// Page is the {data, pagination} envelope used by every list endpoint.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Ref is the compact {id, name} form of a related record.
type Ref struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
