package domain

import "encoding/json"

// Prediction publication states.
const (
	PredictionDraft     = "draft"
	PredictionPublished = "published"
	PredictionExpired   = "expired"
)

// Prediction result states.
const (
	ResultPending  = "pending"
	ResultWon      = "won"
	ResultLost     = "lost"
	ResultVoid     = "void"
	ResultRefunded = "refunded"
)

// PredictionStatuses is the filter cycle for prediction lists.
var PredictionStatuses = []string{PredictionDraft, PredictionPublished, PredictionExpired}

// ResultStatuses lists every result a prediction can settle to.
var ResultStatuses = []string{ResultPending, ResultWon, ResultLost, ResultVoid, ResultRefunded}

// Prediction is a tipster's paid pick.
type Prediction struct {
	ID              int64         `json:"id"`
	TipsterID       int64         `json:"tipster_id"`
	BookerID        *int64        `json:"booker_id,omitempty"`
	Title           string        `json:"title"`
	Description     string        `json:"description,omitempty"`
	ImageURL        string        `json:"image_url,omitempty"`
	WinningSlipURL  string        `json:"winning_slip_url,omitempty"`
	BettingSlipURL  string        `json:"betting_slip_url,omitempty"`
	BookingCodes    []BookingCode `json:"booking_codes,omitempty"`
	OddsTotal       Amount        `json:"odds_total,omitempty"`
	KickoffAt       Time          `json:"kickoff_at"`
	KickendAt       Time          `json:"kickend_at"`
	ConfidenceLevel int           `json:"confidence_level,omitempty"`
	IsPremium       bool          `json:"is_premium"`
	Status          string        `json:"status"`
	ResultStatus    string        `json:"result_status"`
	ResultNotes     string        `json:"result_notes,omitempty"`
	ResultUpdatedAt Time          `json:"result_updated_at"`
	PublishAt       Time          `json:"publish_at"`
	LockAt          Time          `json:"lock_at"`
	CreatedAt       Time          `json:"created_at"`
	Tipster         *Ref          `json:"tipster,omitempty"`
	Booker          *Ref          `json:"booker,omitempty"`
}

// BookingCode is one bookmaker code attached to a prediction.
type BookingCode struct {
	Code string `json:"code"`
}

// UnmarshalJSON accepts either a bare string or an object with a code field.
func (b *BookingCode) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Code)
	}
	type raw BookingCode
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*b = BookingCode(r)
	return nil
}

// PredictionFilter narrows a prediction list.
type PredictionFilter struct {
	Page         int
	TipsterID    int64
	TipsterName  string
	Status       string
	ResultStatus string
	DateFrom     string
	DateTo       string
}

// CreatePredictionRequest is the multipart payload for scheduling a prediction.
type CreatePredictionRequest struct {
	TipsterID       int64
	BookerID        int64
	Title           string
	Description     string
	BookingCodes    []string
	OddsTotal       float64
	KickoffAt       string
	KickendAt       string
	ConfidenceLevel int
	IsPremium       bool
	Status          string
	// BettingSlip is an optional local image path.
	BettingSlip string
}

// UpdatePredictionRequest is the JSON patch for editing a prediction.
type UpdatePredictionRequest struct {
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	OddsTotal       *float64 `json:"odds_total,omitempty"`
	KickoffAt       string   `json:"kickoff_at,omitempty"`
	KickendAt       string   `json:"kickend_at,omitempty"`
	ConfidenceLevel *int     `json:"confidence_level,omitempty"`
	Status          string   `json:"status,omitempty"`
	BookerID        *int64   `json:"booker_id,omitempty"`
	BookingCodes    []string `json:"booking_codes,omitempty"`
	IsPremium       *bool    `json:"is_premium,omitempty"`
}

// UpdateResultRequest settles a prediction.
type UpdateResultRequest struct {
	ResultStatus string
	ResultNotes  string
	// WinningSlip is a local image path, required when ResultStatus is won.
	WinningSlip string
}

// PredictionResponse is returned by prediction mutations.
type PredictionResponse struct {
	Message    string     `json:"message"`
	Prediction Prediction `json:"prediction"`
}

