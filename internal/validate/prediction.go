package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/pweza/pweza-admin/pkg/domain"
)

// PredictionInput is the raw prediction form.
type PredictionInput struct {
	TipsterID       string
	BookerID        string
	Title           string
	Description     string
	BookingCodes    string
	OddsTotal       string
	KickoffAt       string
	KickendAt       string
	ConfidenceLevel string
	BettingSlip     string
	Publish         bool
}

type predictionFields struct {
	TipsterID       string `json:"tipster_id" validate:"required,number"`
	BookerID        string `json:"booker_id" validate:"required,number"`
	Title           string `json:"title" validate:"notblank"`
	OddsTotal       string `json:"odds_total" validate:"required,numeric"`
	KickoffAt       string `json:"kickoff_at" validate:"required"`
	ConfidenceLevel string `json:"confidence_level" validate:"required,number"`
	BettingSlip     string `json:"betting_slip" validate:"omitempty,slipimage"`
}

// Prediction validates the schedule form. Kickoff must lie after now;
// an optional kickend must lie after kickoff.
func Prediction(in PredictionInput, now time.Time) (domain.CreatePredictionRequest, error) {
	const required = "Please fill in all required fields."
	errs := check(predictionFields{
		TipsterID:       strings.TrimSpace(in.TipsterID),
		BookerID:        strings.TrimSpace(in.BookerID),
		Title:           in.Title,
		OddsTotal:       strings.TrimSpace(in.OddsTotal),
		KickoffAt:       strings.TrimSpace(in.KickoffAt),
		ConfidenceLevel: strings.TrimSpace(in.ConfidenceLevel),
		BettingSlip:     strings.TrimSpace(in.BettingSlip),
	}, map[string]string{
		"tipster_id":       required,
		"booker_id":        required,
		"title":            required,
		"odds_total":       required,
		"kickoff_at":       required,
		"confidence_level": required,
		"betting_slip":     "Betting slip must be a JPG or PNG image.",
	})
	if len(errs) > 0 {
		return domain.CreatePredictionRequest{}, errs
	}

	kickoff, kickend, err := Schedule(in.KickoffAt, in.KickendAt)
	if err != nil {
		return domain.CreatePredictionRequest{}, err
	}
	if !kickoff.After(now) {
		return domain.CreatePredictionRequest{}, Errors{{Field: "kickoff_at", Message: "Kickoff time must be in the future."}}
	}

	tipsterID, _ := strconv.ParseInt(strings.TrimSpace(in.TipsterID), 10, 64)
	bookerID, _ := strconv.ParseInt(strings.TrimSpace(in.BookerID), 10, 64)
	odds, _ := strconv.ParseFloat(strings.TrimSpace(in.OddsTotal), 64)
	confidence, _ := strconv.Atoi(strings.TrimSpace(in.ConfidenceLevel))

	req := domain.CreatePredictionRequest{
		TipsterID:       tipsterID,
		BookerID:        bookerID,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		BookingCodes:    BookingCodes(in.BookingCodes),
		OddsTotal:       odds,
		KickoffAt:       kickoff.Format(time.RFC3339),
		ConfidenceLevel: confidence,
		BettingSlip:     strings.TrimSpace(in.BettingSlip),
		Status:          domain.PredictionDraft,
	}
	if !kickend.IsZero() {
		req.KickendAt = kickend.Format(time.RFC3339)
	}
	if in.Publish {
		req.Status = domain.PredictionPublished
	}
	return req, nil
}

// PredictionEdit is the raw edit form. The tipster and betting slip are
// fixed once a prediction exists.
type PredictionEdit struct {
	BookerID        string
	Title           string
	Description     string
	BookingCodes    string
	OddsTotal       string
	KickoffAt       string
	KickendAt       string
	ConfidenceLevel string
	Status          string
	Premium         bool
}

type predictionEditFields struct {
	BookerID        string `json:"booker_id" validate:"required,number"`
	Title           string `json:"title" validate:"notblank"`
	OddsTotal       string `json:"odds_total" validate:"required,numeric"`
	KickoffAt       string `json:"kickoff_at" validate:"required"`
	ConfidenceLevel string `json:"confidence_level" validate:"required,number"`
	Status          string `json:"status" validate:"oneof=draft published expired"`
}

// PredictionUpdate validates the edit form. Unlike Prediction it accepts a
// kickoff in the past.
func PredictionUpdate(in PredictionEdit) (domain.UpdatePredictionRequest, error) {
	const required = "Please fill in all required fields for the prediction."
	errs := check(predictionEditFields{
		BookerID:        strings.TrimSpace(in.BookerID),
		Title:           in.Title,
		OddsTotal:       strings.TrimSpace(in.OddsTotal),
		KickoffAt:       strings.TrimSpace(in.KickoffAt),
		ConfidenceLevel: strings.TrimSpace(in.ConfidenceLevel),
		Status:          in.Status,
	}, map[string]string{
		"booker_id":        required,
		"title":            required,
		"odds_total":       required,
		"kickoff_at":       required,
		"confidence_level": required,
		"status":           "Choose draft, published or expired.",
	})
	if len(errs) > 0 {
		return domain.UpdatePredictionRequest{}, errs
	}

	kickoff, kickend, err := Schedule(in.KickoffAt, in.KickendAt)
	if err != nil {
		return domain.UpdatePredictionRequest{}, err
	}

	bookerID, _ := strconv.ParseInt(strings.TrimSpace(in.BookerID), 10, 64)
	odds, _ := strconv.ParseFloat(strings.TrimSpace(in.OddsTotal), 64)
	confidence, _ := strconv.Atoi(strings.TrimSpace(in.ConfidenceLevel))
	premium := in.Premium

	req := domain.UpdatePredictionRequest{
		BookerID:        &bookerID,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		BookingCodes:    BookingCodes(in.BookingCodes),
		OddsTotal:       &odds,
		KickoffAt:       kickoff.Format(time.RFC3339),
		ConfidenceLevel: &confidence,
		Status:          in.Status,
		IsPremium:       &premium,
	}
	if !kickend.IsZero() {
		req.KickendAt = kickend.Format(time.RFC3339)
	}
	return req, nil
}

// Schedule parses kickoff and an optional kickend and checks their order.
// It does not compare against the current time, so edits of past
// predictions stay possible.
func Schedule(kickoffRaw, kickendRaw string) (kickoff, kickend time.Time, err error) {
	kickoff, perr := domain.ParseTimeIn(kickoffRaw, time.Local)
	if perr != nil {
		return time.Time{}, time.Time{}, Errors{{Field: "kickoff_at", Message: "Please choose a valid kickoff date and time."}}
	}
	if strings.TrimSpace(kickendRaw) == "" {
		return kickoff, time.Time{}, nil
	}
	kickend, perr = domain.ParseTimeIn(kickendRaw, time.Local)
	if perr != nil {
		return time.Time{}, time.Time{}, Errors{{Field: "kickend_at", Message: "Please choose a valid kickend date and time."}}
	}
	if !kickend.After(kickoff) {
		return time.Time{}, time.Time{}, Errors{{Field: "kickend_at", Message: "Kickend time must be after kickoff time."}}
	}
	return kickoff, kickend, nil
}

// BookingCodes splits a comma list, trimming blanks.
func BookingCodes(raw string) []string {
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

type result struct {
	Status string `json:"result_status" validate:"oneof=won lost void refunded"`
	Slip   string `json:"winning_slip" validate:"required_if=Status won,omitempty,slipimage"`
}

// Result validates settling a prediction. A win needs a JPG or PNG slip.
func Result(status, notes, slip string) (domain.UpdateResultRequest, error) {
	slip = strings.TrimSpace(slip)
	errs := check(result{Status: status, Slip: slip}, map[string]string{
		"result_status":            "Choose won, lost, void or refunded.",
		"winning_slip.required_if": "Winning slip is required for won predictions.",
		"winning_slip.slipimage":   "Winning slip must be a JPG or PNG image.",
	})
	if len(errs) > 0 {
		return domain.UpdateResultRequest{}, errs
	}
	return domain.UpdateResultRequest{
		ResultStatus: status,
		ResultNotes:  strings.TrimSpace(notes),
		WinningSlip:  slip,
	}, nil
}
