package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pweza/pweza-admin/internal/validate"
	"github.com/pweza/pweza-admin/pkg/client"
	"github.com/pweza/pweza-admin/pkg/domain"
)

func newPredictionsPage(c *client.Client, t tab, now func() time.Time) listModel[domain.Prediction] {
	cfg := listConfig[domain.Prediction]{
		tab:        t,
		title:      "Predictions",
		statuses:   domain.PredictionStatuses,
		results:    domain.ResultStatuses,
		searchable: true,
		columns: []column[domain.Prediction]{
			{title: "ID", width: 6, value: func(p domain.Prediction) string { return strconv.FormatInt(p.ID, 10) }},
			{title: "Title", width: 26, value: func(p domain.Prediction) string { return p.Title }},
			{title: "Tipster", width: 16, value: func(p domain.Prediction) string { return refName(p.Tipster) }},
			{title: "Odds", width: 7, value: func(p domain.Prediction) string { return strconv.FormatFloat(float64(p.OddsTotal), 'f', 2, 64) }},
			{title: "Kickoff", width: 16, value: func(p domain.Prediction) string { return formatDate(p.KickoffAt.Time) }},
			{title: "Status", width: 9, value: func(p domain.Prediction) string { return p.Status }, status: true},
			{title: "Result", width: 8, value: func(p domain.Prediction) string { return p.ResultStatus }, status: true},
			{title: "Premium", width: 7, value: func(p domain.Prediction) string { return yesNo(p.IsPremium) }},
		},
		copy: func(p domain.Prediction) string {
			codes := make([]string, len(p.BookingCodes))
			for i, bc := range p.BookingCodes {
				codes[i] = bc.Code
			}
			if len(codes) == 0 {
				return strconv.FormatInt(p.ID, 10)
			}
			return strings.Join(codes, ", ")
		},
		open: func(_ context.Context, p domain.Prediction) (string, error) {
			if p.WinningSlipURL != "" {
				return p.WinningSlipURL, nil
			}
			return p.BettingSlipURL, nil
		},
		create: func() formModel { return createPredictionForm(c, now) },
	}
	cfg.fetch = func(ctx context.Context, q listQuery) (listResult[domain.Prediction], error) {
		f, err := predictionFilter(q)
		if err != nil {
			return listResult[domain.Prediction]{}, err
		}
		return pageResult(c.ListPredictions(ctx, f))
	}
	cfg.actions = []rowAction[domain.Prediction]{
		{
			key:   "e",
			label: "edit",
			form:  func(p domain.Prediction) formModel { return editPredictionForm(c, p) },
		},
		{
			key:   "s",
			label: "settle",
			allowed: func(p domain.Prediction) bool {
				return p.ResultStatus == "" || p.ResultStatus == domain.ResultPending
			},
			form: func(p domain.Prediction) formModel { return settleForm(c, p) },
		},
		{
			key:     "x",
			label:   "delete",
			confirm: func(p domain.Prediction) string { return fmt.Sprintf("delete prediction #%d %q", p.ID, p.Title) },
			run: func(ctx context.Context, p domain.Prediction) (string, error) {
				if err := c.DeletePrediction(ctx, p.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("prediction #%d deleted", p.ID), nil
			},
		},
	}
	return newListModel(cfg)
}

// predictionFilter reads the search box: a number is a tipster id, a
// from..to pair bounds kickoff dates (either side may be empty), and any
// other words match the tipster's name.
func predictionFilter(q listQuery) (domain.PredictionFilter, error) {
	f := domain.PredictionFilter{Page: q.Page, Status: q.Status, ResultStatus: q.Result}
	var name []string
	for _, word := range strings.Fields(q.Search) {
		if from, to, ok := strings.Cut(word, ".."); ok {
			for _, d := range []string{from, to} {
				if _, err := time.Parse(time.DateOnly, d); d != "" && err != nil {
					return f, fmt.Errorf("dates must look like 2030-01-31, got %q", d)
				}
			}
			if from != "" && to != "" && to < from {
				return f, fmt.Errorf("date range %s ends before it starts", word)
			}
			f.DateFrom, f.DateTo = from, to
			continue
		}
		if id, err := strconv.ParseInt(word, 10, 64); err == nil && id > 0 {
			f.TipsterID = id
			continue
		}
		name = append(name, word)
	}
	f.TipsterName = strings.Join(name, " ")
	return f, nil
}

func refName(r *domain.Ref) string {
	if r == nil {
		return "-"
	}
	return r.Name
}

func createPredictionForm(c *client.Client, now func() time.Time) formModel {
	return newForm("New prediction", func(v []string) (request, error) {
		req, err := validate.Prediction(validate.PredictionInput{
			TipsterID:       v[0],
			BookerID:        v[1],
			Title:           v[2],
			Description:     v[3],
			BookingCodes:    v[4],
			OddsTotal:       v[5],
			KickoffAt:       v[6],
			KickendAt:       v[7],
			ConfidenceLevel: v[8],
			BettingSlip:     v[9],
			Publish:         v[10] == "publish",
		}, now())
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			p, err := c.CreatePrediction(ctx, req)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("prediction #%d created", p.ID), nil
		}, nil
	},
		textField("Tipster ID", "numeric id", ""),
		textField("Booker ID", "numeric id", ""),
		textField("Title", "", ""),
		textField("Description", "optional", ""),
		textField("Booking codes", "comma separated", ""),
		textField("Total odds", "e.g. 3.5", ""),
		textField("Kickoff", "YYYY-MM-DD HH:MM", ""),
		textField("Kickend", "optional, YYYY-MM-DD HH:MM", ""),
		textField("Confidence", "1-5", ""),
		textField("Betting slip", "optional path to .jpg or .png", ""),
		choiceField("Save as", []string{"draft", "publish"}, "draft"),
	)
}

func settleForm(c *client.Client, p domain.Prediction) formModel {
	settled := []string{domain.ResultWon, domain.ResultLost, domain.ResultVoid, domain.ResultRefunded}
	return newForm(fmt.Sprintf("Settle #%d %s", p.ID, p.Title), func(v []string) (request, error) {
		req, err := validate.Result(v[0], v[1], v[2])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if _, err := c.UpdatePredictionResult(ctx, p.ID, req); err != nil {
				return "", err
			}
			return fmt.Sprintf("prediction #%d marked %s", p.ID, req.ResultStatus), nil
		}, nil
	},
		choiceField("Result", settled, domain.ResultWon),
		textField("Notes", "optional", ""),
		textField("Winning slip", "path to .jpg or .png, required for won", ""),
	)
}

const editTimeLayout = "2006-01-02 15:04"

func editPredictionForm(c *client.Client, p domain.Prediction) formModel {
	var booker string
	if p.BookerID != nil {
		booker = strconv.FormatInt(*p.BookerID, 10)
	}
	codes := make([]string, len(p.BookingCodes))
	for i, bc := range p.BookingCodes {
		codes[i] = bc.Code
	}
	localTime := func(t domain.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.In(time.Local).Format(editTimeLayout)
	}
	var confidence string
	if p.ConfidenceLevel > 0 {
		confidence = strconv.Itoa(p.ConfidenceLevel)
	}
	status := p.Status
	if status == "" {
		status = domain.PredictionDraft
	}

	return newForm(fmt.Sprintf("Edit #%d %s", p.ID, p.Title), func(v []string) (request, error) {
		req, err := validate.PredictionUpdate(validate.PredictionEdit{
			BookerID:        v[0],
			Title:           v[1],
			Description:     v[2],
			BookingCodes:    v[3],
			OddsTotal:       v[4],
			KickoffAt:       v[5],
			KickendAt:       v[6],
			ConfidenceLevel: v[7],
			Status:          v[8],
			Premium:         v[9] == "yes",
		})
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context) (string, error) {
			if _, err := c.UpdatePrediction(ctx, p.ID, req); err != nil {
				return "", err
			}
			return fmt.Sprintf("prediction #%d updated", p.ID), nil
		}, nil
	},
		textField("Booker ID", "numeric id", booker),
		textField("Title", "", p.Title),
		textField("Description", "optional", p.Description),
		textField("Booking codes", "comma separated", strings.Join(codes, ", ")),
		textField("Total odds", "e.g. 3.5", strconv.FormatFloat(float64(p.OddsTotal), 'f', -1, 64)),
		textField("Kickoff", "YYYY-MM-DD HH:MM", localTime(p.KickoffAt)),
		textField("Kickend", "optional, YYYY-MM-DD HH:MM", localTime(p.KickendAt)),
		textField("Confidence", "1-5", confidence),
		choiceField("Status", domain.PredictionStatuses, status),
		choiceField("Premium", []string{"no", "yes"}, yesNo(p.IsPremium)),
	)
}
