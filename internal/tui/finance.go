package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pweza/pweza-admin/internal/validate"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

func newWithdrawalsPage(c *client.Client, t tab) listModel[domain.Withdrawal] {
	cfg := listConfig[domain.Withdrawal]{
		tab:        t,
		title:      "Withdrawals",
		statuses:   domain.WithdrawalStatuses,
		searchable: true,
		columns: []column[domain.Withdrawal]{
			{title: "ID", width: 6, value: func(w domain.Withdrawal) string { return strconv.FormatInt(w.ID, 10) }},
			{title: "Tipster", width: 20, value: func(w domain.Withdrawal) string { return w.Tipster.Name }},
			{title: "Phone", width: 14, value: func(w domain.Withdrawal) string { return w.Tipster.PhoneNumber }},
			{title: "Amount", width: 12, value: func(w domain.Withdrawal) string { return w.Amount.String() }},
			{title: "Requested", width: 16, value: func(w domain.Withdrawal) string { return formatDate(w.RequestedAt.Time) }},
			{title: "Status", width: 9, value: func(w domain.Withdrawal) string { return w.Status }, status: true},
			{title: "Notes", width: 20, value: func(w domain.Withdrawal) string { return w.Notes }},
		},
		copy: func(w domain.Withdrawal) string { return w.Tipster.PhoneNumber },
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Withdrawal], error) {
		wp, err := c.ListWithdrawals(ctx, domain.WithdrawalFilter{Page: q.Page, Status: q.Status, Search: q.Search})
		if err != nil {
			return listResult[domain.Withdrawal]{}, err
		}
		s := wp.Summary
		return listResult[domain.Withdrawal]{
			rows:       wp.Data,
			pagination: wp.Pagination,
			summary: fmt.Sprintf("%d pending (%s) · %d paid (%s) · %d rejected",
				s.TotalPending, s.TotalAmountPending, s.TotalPaid, s.TotalAmountPaid, s.TotalRejected),
		}, nil
	}

	isPending := func(w domain.Withdrawal) bool { return w.Status == domain.WithdrawalPending }
	cfg.actions = []rowAction[domain.Withdrawal]{
		{
			key:     "y",
			label:   "mark paid",
			allowed: isPending,
			form: func(w domain.Withdrawal) formModel {
				return withdrawalActionForm(c, w, validate.ActionMarkPaid, "optional, e.g. transaction reference")
			},
		},
		{
			key:     "x",
			label:   "reject",
			allowed: isPending,
			form: func(w domain.Withdrawal) formModel {
				return withdrawalActionForm(c, w, validate.ActionReject, "reason for rejecting")
			},
		},
	}
	return newListModel(cfg)
}

func withdrawalActionForm(c *client.Client, w domain.Withdrawal, action, hint string) formModel {
	title := fmt.Sprintf("Mark #%d paid: %s to %s", w.ID, w.Amount, w.Tipster.Name)
	if action == validate.ActionReject {
		title = fmt.Sprintf("Reject #%d: %s from %s", w.ID, w.Amount, w.Tipster.Name)
	}
	return newForm(title, func(v []string) (request, error) {
		notes, err := validate.WithdrawalAction(action, v[0])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if action == validate.ActionReject {
				if err := c.RejectWithdrawal(ctx, w.ID, notes); err != nil {
					return "", err
				}
				return fmt.Sprintf("withdrawal #%d rejected", w.ID), nil
			}
			if err := c.MarkWithdrawalPaid(ctx, w.ID, notes); err != nil {
				return "", err
			}
			return fmt.Sprintf("withdrawal #%d marked paid", w.ID), nil
		}, nil
	}, textField("Notes", hint, ""))
}

func newCommissionsPage(c *client.Client, t tab) listModel[domain.CommissionConfig] {
	cfg := listConfig[domain.CommissionConfig]{
		tab:   t,
		title: "Commission configs",
		columns: []column[domain.CommissionConfig]{
			{title: "ID", width: 6, value: func(cc domain.CommissionConfig) string { return strconv.FormatInt(cc.ID, 10) }},
			{title: "Name", width: 20, value: func(cc domain.CommissionConfig) string { return cc.Name }},
			{title: "Rate", width: 8, value: func(cc domain.CommissionConfig) string {
				return strconv.FormatFloat(float64(cc.CommissionRate), 'f', -1, 64) + "%"
			}},
			{title: "Active", width: 6, value: func(cc domain.CommissionConfig) string { return yesNo(cc.IsActive) }},
			{title: "Description", width: 30, value: func(cc domain.CommissionConfig) string { return cc.Description }},
		},
		copy:   func(cc domain.CommissionConfig) string { return strconv.FormatInt(cc.ID, 10) },
		create: func() formModel { return commissionForm(c, nil) },
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.CommissionConfig], error) {
		return pageResult(c.ListCommissionConfigs(ctx, domain.ListFilter{Page: q.Page}))
	}
	cfg.actions = []rowAction[domain.CommissionConfig]{
		{
			key:   "e",
			label: "edit",
			form:  func(cc domain.CommissionConfig) formModel { return commissionForm(c, &cc) },
		},
		{
			key:     "x",
			label:   "delete",
			confirm: func(cc domain.CommissionConfig) string { return "delete commission config " + cc.Name },
			run: func(ctx context.Context, cc domain.CommissionConfig) (string, error) {
				if err := c.DeleteCommissionConfig(ctx, cc.ID); err != nil {
					return "", err
				}
				return cc.Name + " deleted", nil
			},
		},
	}
	return newListModel(cfg)
}

func commissionForm(c *client.Client, existing *domain.CommissionConfig) formModel {
	title := "New commission config"
	name, rate, desc, active := "", "", "", "yes"
	if existing != nil {
		title = "Edit " + existing.Name
		name = existing.Name
		rate = strconv.FormatFloat(float64(existing.CommissionRate), 'f', -1, 64)
		desc = existing.Description
		active = yesNo(existing.IsActive)
	}
	return newForm(title, func(v []string) (request, error) {
		req, err := validate.CommissionConfig(v[0], v[1], v[2], v[3] == "yes")
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if existing == nil {
				cc, err := c.CreateCommissionConfig(ctx, req)
				if err != nil {
					return "", err
				}
				return cc.Name + " created", nil
			}
			cc, err := c.UpdateCommissionConfig(ctx, existing.ID, req)
			if err != nil {
				return "", err
			}
			return cc.Name + " updated", nil
		}, nil
	},
		textField("Name", "", name),
		textField("Rate (%)", "0-100", rate),
		textField("Description", "optional", desc),
		choiceField("Active", []string{"yes", "no"}, active),
	)
}
