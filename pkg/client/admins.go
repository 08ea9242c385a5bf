package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// ListAdmins fetches a page of console operators.
func (c *Client) ListAdmins(ctx context.Context, f domain.ListFilter) (*domain.Page[domain.AdminUser], error) {
	var page domain.Page[domain.AdminUser]
	if err := c.get(ctx, withQuery("/admin/users", listParams(f)), &page); err != nil {
		return nil, fmt.Errorf("client.ListAdmins: %w", err)
	}
	return &page, nil
}

// CreateAdmin adds an operator account.
func (c *Client) CreateAdmin(ctx context.Context, req domain.AdminRequest) (*domain.AdminUser, error) {
	var resp domain.AdminResponse
	if err := c.post(ctx, "/admin/users", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateAdmin: %w", err)
	}
	return &resp.Admin, nil
}

// UpdateAdmin edits an operator account. An empty password leaves it unchanged.
func (c *Client) UpdateAdmin(ctx context.Context, id int64, req domain.AdminRequest) (*domain.AdminUser, error) {
	var resp domain.AdminResponse
	if err := c.patch(ctx, idPath("/admin/users", id, ""), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateAdmin: %w", err)
	}
	return &resp.Admin, nil
}

// DeleteAdmin removes an operator account.
func (c *Client) DeleteAdmin(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/admin/users", id, ""), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteAdmin: %w", err)
	}
	return nil
}

// ToggleAdminStatus enables or disables an operator account.
func (c *Client) ToggleAdminStatus(ctx context.Context, id int64) (*domain.AdminUser, error) {
	var resp domain.AdminResponse
	if err := c.patch(ctx, idPath("/admin/users", id, "/toggle-status"), nil, &resp); err != nil {
		return nil, fmt.Errorf("client.ToggleAdminStatus: %w", err)
	}
	return &resp.Admin, nil
}

// ListCommissionConfigs fetches a page of commission configs.
func (c *Client) ListCommissionConfigs(ctx context.Context, f domain.ListFilter) (*domain.Page[domain.CommissionConfig], error) {
	var page domain.Page[domain.CommissionConfig]
	if err := c.get(ctx, withQuery("/admin/commission-configs", listParams(f)), &page); err != nil {
		return nil, fmt.Errorf("client.ListCommissionConfigs: %w", err)
	}
	return &page, nil
}

// CreateCommissionConfig adds a commission config.
func (c *Client) CreateCommissionConfig(ctx context.Context, req domain.CommissionConfigRequest) (*domain.CommissionConfig, error) {
	var resp domain.CommissionConfigResponse
	if err := c.post(ctx, "/admin/commission-configs", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateCommissionConfig: %w", err)
	}
	return &resp.Config, nil
}

// UpdateCommissionConfig edits a commission config.
func (c *Client) UpdateCommissionConfig(ctx context.Context, id int64, req domain.CommissionConfigRequest) (*domain.CommissionConfig, error) {
	var resp domain.CommissionConfigResponse
	if err := c.patch(ctx, idPath("/admin/commission-configs", id, ""), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateCommissionConfig: %w", err)
	}
	return &resp.Config, nil
}

// DeleteCommissionConfig removes a commission config.
func (c *Client) DeleteCommissionConfig(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/admin/commission-configs", id, ""), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteCommissionConfig: %w", err)
	}
	return nil
}

// GetCommissionStats returns platform commission totals.
func (c *Client) GetCommissionStats(ctx context.Context) (*domain.CommissionStats, error) {
	var stats domain.CommissionStats
	if err := c.get(ctx, "/admin/commission-stats", &stats); err != nil {
		return nil, fmt.Errorf("client.GetCommissionStats: %w", err)
	}
	return &stats, nil
}
