package tui

import (
	"context"
	"strconv"

	"github.com/pweza/pweza-admin/internal/validate"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

var bookerStatuses = []string{"active", "inactive"}

func newBookersPage(c *client.Client, t tab) listModel[domain.Booker] {
	cfg := listConfig[domain.Booker]{
		tab:        t,
		title:      "Bookers",
		statuses:   bookerStatuses,
		searchable: true,
		columns: []column[domain.Booker]{
			{title: "ID", width: 6, value: func(b domain.Booker) string { return strconv.FormatInt(b.ID, 10) }},
			{title: "Name", width: 22, value: func(b domain.Booker) string { return b.Name }},
			{title: "Status", width: 9, value: func(b domain.Booker) string { return activeStatus(b.IsActive) }, status: true},
			{title: "Notes", width: 30, value: func(b domain.Booker) string { return b.Notes }},
			{title: "Updated", width: 10, value: func(b domain.Booker) string { return formatTime(b.UpdatedAt.Time) }},
		},
		copy:   func(b domain.Booker) string { return b.Name },
		create: func() formModel { return bookerForm(c, nil) },
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Booker], error) {
		return pageResult(c.ListBookers(ctx, domain.BookerFilter{Page: q.Page, Search: q.Search, Status: q.Status}))
	}
	cfg.actions = []rowAction[domain.Booker]{
		{
			key:   "e",
			label: "edit",
			form:  func(b domain.Booker) formModel { return bookerForm(c, &b) },
		},
		{
			key:     "x",
			label:   "delete",
			confirm: func(b domain.Booker) string { return "delete booker " + b.Name },
			run: func(ctx context.Context, b domain.Booker) (string, error) {
				if err := c.DeleteBooker(ctx, b.ID); err != nil {
					return "", err
				}
				return b.Name + " deleted", nil
			},
		},
	}
	return newListModel(cfg)
}

func activeStatus(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func bookerForm(c *client.Client, existing *domain.Booker) formModel {
	title := "New booker"
	name, notes, active := "", "", "yes"
	if existing != nil {
		title = "Edit " + existing.Name
		name, notes, active = existing.Name, existing.Notes, yesNo(existing.IsActive)
	}
	return newForm(title, func(v []string) (request, error) {
		req, err := validate.Booker(v[0], v[1], v[2] == "yes")
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if existing == nil {
				b, err := c.CreateBooker(ctx, req)
				if err != nil {
					return "", err
				}
				return b.Name + " created", nil
			}
			b, err := c.UpdateBooker(ctx, existing.ID, req)
			if err != nil {
				return "", err
			}
			return b.Name + " updated", nil
		}, nil
	},
		textField("Name", "", name),
		textField("Notes", "optional", notes),
		choiceField("Active", []string{"yes", "no"}, active),
	)
}
