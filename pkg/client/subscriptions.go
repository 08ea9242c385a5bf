package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// ListCustomers fetches a page of customers with their subscriptions.
func (c *Client) ListCustomers(ctx context.Context, f domain.ListFilter) (*domain.Page[domain.Customer], error) {
	var page domain.Page[domain.Customer]
	if err := c.get(ctx, withQuery("/admin/customers", listParams(f)), &page); err != nil {
		return nil, fmt.Errorf("client.ListCustomers: %w", err)
	}
	return &page, nil
}

// ListSubscriptions fetches a page of subscriptions.
func (c *Client) ListSubscriptions(ctx context.Context, f domain.SubscriptionFilter) (*domain.Page[domain.Subscription], error) {
	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.TipsterID > 0 {
		params.Set("tipster_id", strconv.FormatInt(f.TipsterID, 10))
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}

	var page domain.Page[domain.Subscription]
	if err := c.get(ctx, withQuery("/admin/subscriptions", params), &page); err != nil {
		return nil, fmt.Errorf("client.ListSubscriptions: %w", err)
	}
	return &page, nil
}

// CreateSubscription subscribes a customer to a tipster.
func (c *Client) CreateSubscription(ctx context.Context, req domain.CreateSubscriptionRequest) (*domain.Subscription, error) {
	var resp domain.SubscriptionResponse
	if err := c.post(ctx, "/admin/subscriptions", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateSubscription: %w", err)
	}
	return &resp.Subscription, nil
}

// UpdateSubscriptionStatus moves a subscription to status.
func (c *Client) UpdateSubscriptionStatus(ctx context.Context, id int64, status string) (*domain.Subscription, error) {
	var resp domain.SubscriptionResponse
	body := map[string]string{"status": status}
	if err := c.patch(ctx, idPath("/admin/subscriptions", id, "/status"), body, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateSubscriptionStatus: %w", err)
	}
	return &resp.Subscription, nil
}
