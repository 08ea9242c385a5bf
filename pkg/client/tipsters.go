package client

import (
	"context"
	"fmt"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// ListTipsters fetches a page of tipsters.
func (c *Client) ListTipsters(ctx context.Context, f domain.ListFilter) (*domain.Page[domain.Tipster], error) {
	var page domain.Page[domain.Tipster]
	if err := c.get(ctx, withQuery("/admin/tipsters", listParams(f)), &page); err != nil {
		return nil, fmt.Errorf("client.ListTipsters: %w", err)
	}
	return &page, nil
}

type adminNotes struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

// ApproveTipster approves a pending tipster.
func (c *Client) ApproveTipster(ctx context.Context, id int64, notes string) (*domain.Tipster, error) {
	var resp domain.TipsterResponse
	if err := c.patch(ctx, idPath("/admin/tipsters", id, "/approve"), adminNotes{notes}, &resp); err != nil {
		return nil, fmt.Errorf("client.ApproveTipster: %w", err)
	}
	return &resp.Tipster, nil
}

// RejectTipster rejects a tipster application. Notes are shown to the tipster.
func (c *Client) RejectTipster(ctx context.Context, id int64, notes string) (*domain.Tipster, error) {
	var resp domain.TipsterResponse
	if err := c.patch(ctx, idPath("/admin/tipsters", id, "/reject"), adminNotes{notes}, &resp); err != nil {
		return nil, fmt.Errorf("client.RejectTipster: %w", err)
	}
	return &resp.Tipster, nil
}

// UpdateTipster edits a tipster's profile and pricing.
func (c *Client) UpdateTipster(ctx context.Context, id int64, req domain.UpdateTipsterRequest) (*domain.Tipster, error) {
	var resp domain.TipsterResponse
	if err := c.patch(ctx, idPath("/admin/tipsters", id, ""), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateTipster: %w", err)
	}
	return &resp.Tipster, nil
}

// GetTipsterIDDocument returns the URL of the tipster's identity document.
func (c *Client) GetTipsterIDDocument(ctx context.Context, id int64) (string, error) {
	var resp struct {
		IDDocument string `json:"id_document"`
	}
	if err := c.get(ctx, idPath("/admin/tipsters", id, "/id-document"), &resp); err != nil {
		return "", fmt.Errorf("client.GetTipsterIDDocument: %w", err)
	}
	return resp.IDDocument, nil
}

// RegisterUser registers a customer or tipster on their behalf.
func (c *Client) RegisterUser(ctx context.Context, req domain.RegisterUserRequest) (*domain.User, error) {
	var resp domain.RegisterUserResponse
	if err := c.post(ctx, "/admin/register-user", req, &resp); err != nil {
		return nil, fmt.Errorf("client.RegisterUser: %w", err)
	}
	return &resp.User, nil
}
