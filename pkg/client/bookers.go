package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// ListBookers fetches bookers. With Simple set the backend returns every
// booker without pagination.
func (c *Client) ListBookers(ctx context.Context, f domain.BookerFilter) (*domain.Page[domain.Booker], error) {
	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.Simple {
		params.Set("simple", "1")
	}

	var page domain.Page[domain.Booker]
	if err := c.get(ctx, withQuery("/admin/bookers", params), &page); err != nil {
		return nil, fmt.Errorf("client.ListBookers: %w", err)
	}
	return &page, nil
}

// CreateBooker adds a booker.
func (c *Client) CreateBooker(ctx context.Context, req domain.BookerRequest) (*domain.Booker, error) {
	var resp domain.BookerResponse
	if err := c.post(ctx, "/admin/bookers", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateBooker: %w", err)
	}
	return &resp.Booker, nil
}

// UpdateBooker edits a booker.
func (c *Client) UpdateBooker(ctx context.Context, id int64, req domain.BookerRequest) (*domain.Booker, error) {
	var resp domain.BookerResponse
	if err := c.patch(ctx, idPath("/admin/bookers", id, ""), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateBooker: %w", err)
	}
	return &resp.Booker, nil
}

// DeleteBooker removes a booker.
func (c *Client) DeleteBooker(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/admin/bookers", id, ""), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteBooker: %w", err)
	}
	return nil
}
