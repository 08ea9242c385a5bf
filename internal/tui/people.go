package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pweza/pweza-admin/internal/validate"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

func newCustomersPage(c *client.Client, t tab) listModel[domain.Customer] {
	cfg := listConfig[domain.Customer]{
		tab:        t,
		title:      "Customers",
		searchable: true,
		columns: []column[domain.Customer]{
			{title: "ID", width: 6, value: func(u domain.Customer) string { return strconv.FormatInt(u.ID, 10) }},
			{title: "Name", width: 24, value: func(u domain.Customer) string { return u.Name }},
			{title: "Phone", width: 14, value: func(u domain.Customer) string { return u.PhoneNumber }},
			{title: "Active subs", width: 11, value: func(u domain.Customer) string { return strconv.Itoa(u.ActiveSubscriptions()) }},
			{title: "Joined", width: 16, value: func(u domain.Customer) string { return formatDate(u.CreatedAt.Time) }},
		},
		copy: func(u domain.Customer) string { return u.PhoneNumber },
		create: func() formModel {
			return newForm("Register customer", func(v []string) (request, error) {
				req, err := validate.Customer(v[0], v[1], v[2], v[3])
				if err != nil {
					return nil, err
				}
				return func(ctx context.Context) (string, error) {
					u, err := c.RegisterUser(ctx, req)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("%s registered (#%d)", u.Name, u.ID), nil
				}, nil
			},
				textField("Name", "", ""),
				textField("Phone", "", ""),
				secretField("Password", ""),
				secretField("Confirm", ""),
			)
		},
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Customer], error) {
		return pageResult(c.ListCustomers(ctx, domain.ListFilter{Page: q.Page, Search: q.Search}))
	}
	return newListModel(cfg)
}

// nextSubscriptionStatus cycles active → expired → cancelled → active.
func nextSubscriptionStatus(status string) string {
	for i, s := range domain.SubscriptionStatuses {
		if s == status {
			return domain.SubscriptionStatuses[(i+1)%len(domain.SubscriptionStatuses)]
		}
	}
	return domain.SubscriptionActive
}

func newSubscriptionsPage(c *client.Client, t tab) listModel[domain.Subscription] {
	cfg := listConfig[domain.Subscription]{
		tab:        t,
		title:      "Subscriptions",
		statuses:   domain.SubscriptionStatuses,
		searchable: true,
		columns: []column[domain.Subscription]{
			{title: "ID", width: 6, value: func(s domain.Subscription) string { return strconv.FormatInt(s.ID, 10) }},
			{title: "Customer", width: 18, value: func(s domain.Subscription) string { return refName(s.User) }},
			{title: "Tipster", width: 18, value: func(s domain.Subscription) string { return refName(s.Tipster) }},
			{title: "Plan", width: 8, value: func(s domain.Subscription) string { return s.PlanType }},
			{title: "Price", width: 10, value: func(s domain.Subscription) string { return s.Price.String() }},
			{title: "Ends", width: 16, value: func(s domain.Subscription) string { return formatDate(s.EndAt.Time) }},
			{title: "Status", width: 9, value: func(s domain.Subscription) string { return s.Status }, status: true},
		},
		copy: func(s domain.Subscription) string { return strconv.FormatInt(s.ID, 10) },
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Subscription], error) {
		return pageResult(c.ListSubscriptions(ctx, domain.SubscriptionFilter{Page: q.Page, Status: q.Status, Search: q.Search}))
	}
	cfg.actions = []rowAction[domain.Subscription]{{
		key:   "t",
		label: "cycle status",
		confirm: func(s domain.Subscription) string {
			return fmt.Sprintf("set subscription #%d to %s", s.ID, nextSubscriptionStatus(s.Status))
		},
		run: func(ctx context.Context, s domain.Subscription) (string, error) {
			next := nextSubscriptionStatus(s.Status)
			if _, err := c.UpdateSubscriptionStatus(ctx, s.ID, next); err != nil {
				return "", err
			}
			return fmt.Sprintf("subscription #%d is now %s", s.ID, next), nil
		},
	}}
	return newListModel(cfg)
}

func newAdminsPage(c *client.Client, t tab) listModel[domain.AdminUser] {
	activeLabel := func(a domain.AdminUser) string { return activeStatus(a.Active()) }
	cfg := listConfig[domain.AdminUser]{
		tab:        t,
		title:      "Admins",
		searchable: true,
		columns: []column[domain.AdminUser]{
			{title: "ID", width: 6, value: func(a domain.AdminUser) string { return strconv.FormatInt(a.ID, 10) }},
			{title: "Name", width: 22, value: func(a domain.AdminUser) string { return a.Name }},
			{title: "Phone", width: 14, value: func(a domain.AdminUser) string { return a.PhoneNumber }},
			{title: "Email", width: 24, value: func(a domain.AdminUser) string { return a.Email }},
			{title: "Status", width: 9, value: activeLabel, status: true},
		},
		copy:   func(a domain.AdminUser) string { return a.PhoneNumber },
		create: func() formModel { return adminForm(c, nil) },
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.AdminUser], error) {
		return pageResult(c.ListAdmins(ctx, domain.ListFilter{Page: q.Page, Search: q.Search}))
	}
	cfg.actions = []rowAction[domain.AdminUser]{
		{
			key:   "e",
			label: "edit",
			form:  func(a domain.AdminUser) formModel { return adminForm(c, &a) },
		},
		{
			key:   "t",
			label: "toggle",
			confirm: func(a domain.AdminUser) string {
				if a.Active() {
					return "deactivate " + a.Name
				}
				return "activate " + a.Name
			},
			run: func(ctx context.Context, a domain.AdminUser) (string, error) {
				updated, err := c.ToggleAdminStatus(ctx, a.ID)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s is now %s", updated.Name, activeLabel(*updated)), nil
			},
		},
		{
			key:     "x",
			label:   "delete",
			confirm: func(a domain.AdminUser) string { return "delete admin " + a.Name },
			run: func(ctx context.Context, a domain.AdminUser) (string, error) {
				if err := c.DeleteAdmin(ctx, a.ID); err != nil {
					return "", err
				}
				return a.Name + " deleted", nil
			},
		},
	}
	return newListModel(cfg)
}

// adminForm creates an admin when existing is nil, otherwise edits it.
func adminForm(c *client.Client, existing *domain.AdminUser) formModel {
	title := "New admin"
	var name, phone, email string
	if existing != nil {
		title = "Edit " + existing.Name
		name, phone, email = existing.Name, existing.PhoneNumber, existing.Email
	}
	passwordHint := "at least 8 characters"
	if existing != nil {
		passwordHint = "leave empty to keep"
	}
	return newForm(title, func(v []string) (request, error) {
		req, err := validate.Admin(v[0], v[1], v[2], v[3], existing == nil)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if existing == nil {
				a, err := c.CreateAdmin(ctx, req)
				if err != nil {
					return "", err
				}
				return a.Name + " created", nil
			}
			a, err := c.UpdateAdmin(ctx, existing.ID, req)
			if err != nil {
				return "", err
			}
			return a.Name + " updated", nil
		}, nil
	},
		textField("Name", "", name),
		textField("Phone", "", phone),
		textField("Email", "optional", email),
		secretField("Password", passwordHint),
	)
}
