package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// withdrawalEnvelope is the raw list response; the paginator is nested
// under data instead of the usual pagination block.
type withdrawalEnvelope struct {
	Data struct {
		Data        []domain.Withdrawal `json:"data"`
		CurrentPage int                 `json:"current_page"`
		LastPage    int                 `json:"last_page"`
		PerPage     int                 `json:"per_page"`
		Total       int                 `json:"total"`
	} `json:"data"`
	Summary         domain.WithdrawalSummary `json:"summary"`
	EarningsSummary *domain.EarningsSummary  `json:"earnings_summary,omitempty"`
}

// ListWithdrawals fetches a page of withdrawal requests flattened into the
// common {data, pagination} shape.
func (c *Client) ListWithdrawals(ctx context.Context, f domain.WithdrawalFilter) (*domain.WithdrawalPage, error) {
	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.DateFrom != "" {
		params.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		params.Set("date_to", f.DateTo)
	}

	var env withdrawalEnvelope
	if err := c.get(ctx, withQuery("/admin/withdrawals", params), &env); err != nil {
		return nil, fmt.Errorf("client.ListWithdrawals: %w", err)
	}
	return &domain.WithdrawalPage{
		Data:            env.Data.Data,
		Summary:         env.Summary,
		EarningsSummary: env.EarningsSummary,
		Pagination: domain.Pagination{
			CurrentPage: env.Data.CurrentPage,
			LastPage:    env.Data.LastPage,
			PerPage:     env.Data.PerPage,
			Total:       env.Data.Total,
		},
	}, nil
}

type withdrawalNotes struct {
	Notes string `json:"notes,omitempty"`
}

// MarkWithdrawalPaid records a payout as sent.
func (c *Client) MarkWithdrawalPaid(ctx context.Context, id int64, notes string) error {
	if err := c.patch(ctx, idPath("/admin/withdrawals", id, "/mark-paid"), withdrawalNotes{notes}, nil); err != nil {
		return fmt.Errorf("client.MarkWithdrawalPaid: %w", err)
	}
	return nil
}

// RejectWithdrawal declines a payout request.
func (c *Client) RejectWithdrawal(ctx context.Context, id int64, notes string) error {
	if err := c.patch(ctx, idPath("/admin/withdrawals", id, "/reject"), withdrawalNotes{notes}, nil); err != nil {
		return fmt.Errorf("client.RejectWithdrawal: %w", err)
	}
	return nil
}

// GetWithdrawalStats returns the aggregate payout report.
func (c *Client) GetWithdrawalStats(ctx context.Context) (*domain.WithdrawalStats, error) {
	var stats domain.WithdrawalStats
	if err := c.get(ctx, "/admin/withdrawal-stats", &stats); err != nil {
		return nil, fmt.Errorf("client.GetWithdrawalStats: %w", err)
	}
	return &stats, nil
}
