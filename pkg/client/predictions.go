package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// ListPredictions fetches a page of predictions.
func (c *Client) ListPredictions(ctx context.Context, f domain.PredictionFilter) (*domain.Page[domain.Prediction], error) {
	params := url.Values{}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.TipsterID > 0 {
		params.Set("tipster_id", strconv.FormatInt(f.TipsterID, 10))
	}
	if f.TipsterName != "" {
		params.Set("tipster_name", f.TipsterName)
	}
	if f.Status != "" {
		params.Set("status", f.Status)
	}
	if f.ResultStatus != "" {
		params.Set("result_status", f.ResultStatus)
	}
	if f.DateFrom != "" {
		params.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		params.Set("date_to", f.DateTo)
	}

	var page domain.Page[domain.Prediction]
	if err := c.get(ctx, withQuery("/admin/predictions", params), &page); err != nil {
		return nil, fmt.Errorf("client.ListPredictions: %w", err)
	}
	return &page, nil
}

// CreatePrediction schedules a prediction. The request goes out as multipart
// so an optional betting slip image can ride along.
func (c *Client) CreatePrediction(ctx context.Context, req domain.CreatePredictionRequest) (*domain.Prediction, error) {
	status := req.Status
	if status == "" {
		status = domain.PredictionDraft
	}
	premium := "0"
	if req.IsPremium {
		premium = "1"
	}
	fields := []formField{
		{"tipster_id", strconv.FormatInt(req.TipsterID, 10)},
		{"booker_id", strconv.FormatInt(req.BookerID, 10)},
		{"title", req.Title},
	}
	if req.Description != "" {
		fields = append(fields, formField{"description", req.Description})
	}
	fields = append(fields,
		formField{"odds_total", strconv.FormatFloat(req.OddsTotal, 'f', -1, 64)},
		formField{"kickoff_at", req.KickoffAt},
	)
	if req.KickendAt != "" {
		fields = append(fields, formField{"kickend_at", req.KickendAt})
	}
	fields = append(fields,
		formField{"confidence_level", strconv.Itoa(req.ConfidenceLevel)},
		formField{"is_premium", premium},
		formField{"status", status},
		formField{"result_status", domain.ResultPending},
	)
	for i, code := range req.BookingCodes {
		fields = append(fields, formField{fmt.Sprintf("booking_codes[%d]", i), code})
	}
	var files []formFile
	if req.BettingSlip != "" {
		files = append(files, formFile{field: "betting_slip", path: req.BettingSlip})
	}

	var resp domain.PredictionResponse
	if err := c.doMultipart(ctx, http.MethodPost, "/admin/predictions", fields, files, &resp); err != nil {
		return nil, fmt.Errorf("client.CreatePrediction: %w", err)
	}
	return &resp.Prediction, nil
}

// UpdatePrediction patches a prediction's editable fields.
func (c *Client) UpdatePrediction(ctx context.Context, id int64, req domain.UpdatePredictionRequest) (*domain.Prediction, error) {
	var resp domain.PredictionResponse
	if err := c.patch(ctx, idPath("/admin/predictions", id, ""), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdatePrediction: %w", err)
	}
	return &resp.Prediction, nil
}

// DeletePrediction deletes a prediction.
func (c *Client) DeletePrediction(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, idPath("/admin/predictions", id, ""), nil, nil); err != nil {
		return fmt.Errorf("client.DeletePrediction: %w", err)
	}
	return nil
}

// PredictionsNeedingResults lists finished predictions still awaiting a result.
func (c *Client) PredictionsNeedingResults(ctx context.Context) ([]domain.Prediction, error) {
	var resp struct {
		Predictions []domain.Prediction `json:"predictions"`
	}
	if err := c.get(ctx, "/predictions/needing-results", &resp); err != nil {
		return nil, fmt.Errorf("client.PredictionsNeedingResults: %w", err)
	}
	return resp.Predictions, nil
}

// UpdatePredictionResult settles a prediction, attaching the winning slip
// when one is given.
func (c *Client) UpdatePredictionResult(ctx context.Context, id int64, req domain.UpdateResultRequest) (*domain.Prediction, error) {
	fields := []formField{{"result_status", req.ResultStatus}}
	if req.ResultNotes != "" {
		fields = append(fields, formField{"result_notes", req.ResultNotes})
	}
	var files []formFile
	if req.WinningSlip != "" {
		files = append(files, formFile{field: "winning_slip", path: req.WinningSlip})
	}

	var resp domain.PredictionResponse
	if err := c.doMultipart(ctx, http.MethodPost, idPath("/predictions", id, "/update-result"), fields, files, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdatePredictionResult: %w", err)
	}
	return &resp.Prediction, nil
}
