package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pweza/pweza-admin/internal/validate"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

// newTipstersPage lists tipsters. With pendingOnly it is the approvals
// queue: the status filter is fixed to pending.
func newTipstersPage(c *client.Client, t tab, pendingOnly bool) listModel[domain.Tipster] {
	cfg := listConfig[domain.Tipster]{
		tab:        t,
		title:      "Tipsters",
		statuses:   domain.TipsterStatuses,
		searchable: true,
		columns: []column[domain.Tipster]{
			{title: "ID", width: 6, value: func(t domain.Tipster) string { return strconv.FormatInt(t.ID, 10) }},
			{title: "Name", width: 22, value: func(t domain.Tipster) string { return t.Name }},
			{title: "Phone", width: 14, value: func(t domain.Tipster) string { return t.PhoneNumber }},
			{title: "Status", width: 9, value: func(t domain.Tipster) string { return t.Status }, status: true},
			{title: "Weekly", width: 10, value: func(t domain.Tipster) string { return amountOrDash(t.WeeklySubscriptionAmount) }},
			{title: "Monthly", width: 10, value: func(t domain.Tipster) string { return amountOrDash(t.MonthlySubscriptionAmount) }},
			{title: "Rating", width: 12, value: tipsterRating},
			{title: "Joined", width: 10, value: func(t domain.Tipster) string { return formatTime(t.CreatedAt.Time) }},
		},
		copy: func(t domain.Tipster) string { return t.PhoneNumber },
		open: func(ctx context.Context, t domain.Tipster) (string, error) {
			return c.GetTipsterIDDocument(ctx, t.ID)
		},
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Tipster], error) {
		return pageResult(c.ListTipsters(ctx, domain.ListFilter{Page: q.Page, Search: q.Search, Status: q.Status}))
	}

	isPending := func(t domain.Tipster) bool { return t.Status == domain.TipsterPending }
	cfg.actions = []rowAction[domain.Tipster]{
		{
			key:     "y",
			label:   "approve",
			allowed: isPending,
			confirm: func(t domain.Tipster) string { return "approve " + t.Name },
			run: func(ctx context.Context, t domain.Tipster) (string, error) {
				if _, err := c.ApproveTipster(ctx, t.ID, ""); err != nil {
					return "", err
				}
				return t.Name + " approved", nil
			},
		},
		{
			key:     "x",
			label:   "reject",
			allowed: isPending,
			form:    func(t domain.Tipster) formModel { return rejectTipsterForm(c, t) },
		},
	}

	if pendingOnly {
		cfg.title = "Approvals"
		cfg.statuses = nil
		cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Tipster], error) {
			return pageResult(c.ListTipsters(ctx, domain.ListFilter{Page: q.Page, Search: q.Search, Status: domain.TipsterPending}))
		}
		return newListModel(cfg)
	}

	cfg.actions = append(cfg.actions,
		rowAction[domain.Tipster]{
			key:   "e",
			label: "edit",
			form:  func(t domain.Tipster) formModel { return editTipsterForm(c, t) },
		},
		rowAction[domain.Tipster]{
			key:     "s",
			label:   "subscribe",
			allowed: func(t domain.Tipster) bool { return t.Status == domain.TipsterApproved },
			form:    func(t domain.Tipster) formModel { return subscribeForm(c, t) },
		},
	)
	return newListModel(cfg)
}

func amountOrDash(a *domain.Amount) string {
	if a == nil || *a <= 0 {
		return "-"
	}
	return a.String()
}

func tipsterRating(t domain.Tipster) string {
	if t.Rating == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f★ %.0f%%", t.Rating.StarRating, t.Rating.WinRate)
}

func rejectTipsterForm(c *client.Client, t domain.Tipster) formModel {
	return newForm("Reject "+t.Name, func(v []string) (request, error) {
		notes, err := validate.Rejection(v[0])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if _, err := c.RejectTipster(ctx, t.ID, notes); err != nil {
				return "", err
			}
			return t.Name + " rejected", nil
		}, nil
	}, textField("Reason", "why the application is rejected", ""))
}

func editTipsterForm(c *client.Client, t domain.Tipster) formModel {
	price := func(a *domain.Amount) string {
		if a == nil || *a <= 0 {
			return ""
		}
		return strconv.FormatFloat(float64(*a), 'f', -1, 64)
	}
	return newForm("Edit "+t.Name, func(v []string) (request, error) {
		req, err := validate.TipsterUpdate(v[0], v[1], v[2], v[3], t.CommissionConfigID)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if _, err := c.UpdateTipster(ctx, t.ID, req); err != nil {
				return "", err
			}
			return req.Name + " updated", nil
		}, nil
	},
		textField("Name", "", t.Name),
		textField("Phone", "", t.PhoneNumber),
		textField("Weekly price", "empty for none", price(t.WeeklySubscriptionAmount)),
		textField("Monthly price", "empty for none", price(t.MonthlySubscriptionAmount)),
	)
}

func subscribeForm(c *client.Client, t domain.Tipster) formModel {
	return newForm("Subscribe a customer to "+t.Name, func(v []string) (request, error) {
		customerID, _ := strconv.ParseInt(strings.TrimSpace(v[0]), 10, 64)
		req, err := validate.Subscription(customerID, t, v[1])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			sub, err := c.CreateSubscription(ctx, req)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("subscription #%d created", sub.ID), nil
		}, nil
	},
		textField("Customer ID", "numeric id", ""),
		choiceField("Plan", []string{domain.PlanWeekly, domain.PlanMonthly}, domain.PlanWeekly),
	)
}
