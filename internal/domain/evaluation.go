package domain

import "fmt"

type Reason string

const (
	ReasonNone                Reason = ""
	ReasonUnknownAirport      Reason = "unknown overseas airport code"
	ReasonUnknownAircraft     Reason = "unknown aircraft type"
	ReasonRangeInsufficient   Reason = "range insufficient"
	ReasonTooManySeats        Reason = "too many seats booked"
	ReasonTooManyEconomy      Reason = "too many economy seats booked"
	ReasonTooManyBusiness     Reason = "too many business seats booked"
	ReasonTooManyFirstClass   Reason = "too many first-class seats booked"
	ReasonMalformedFlightData Reason = "malformed flight record"
)

func (r Reason) String() string {
	return string(r)
}

// OverbookedReason maps a seat class to its per-class capacity reason.
func OverbookedReason(class SeatClass) Reason {
	switch class {
	case SeatClassEconomy:
		return ReasonTooManyEconomy
	case SeatClassBusiness:
		return ReasonTooManyBusiness
	default:
		return ReasonTooManyFirstClass
	}
}

type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason Reason `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func Invalid(reason Reason, format string, args ...any) ValidationResult {
	detail := reason.String()
	if format != "" {
		detail = fmt.Sprintf("%s: %s", reason, fmt.Sprintf(format, args...))
	}
	return ValidationResult{Reason: reason, Detail: detail}
}

// Message is the human readable failure text, empty for a valid result.
func (r ValidationResult) Message() string {
	if r.Valid {
		return ""
	}
	if r.Detail != "" {
		return r.Detail
	}
	return r.Reason.String()
}

type ProfitBreakdown struct {
	Distance   float64 `json:"distance_km"`
	Revenue    float64 `json:"revenue"`
	SeatsTaken int     `json:"seats_taken"`
	UnitCost   float64 `json:"unit_cost"`
	TotalCost  float64 `json:"total_cost"`
	Profit     float64 `json:"profit"`
}

type Evaluation struct {
	RunID     string           `json:"run_id,omitempty"`
	Flight    FlightRequest    `json:"flight"`
	Result    ValidationResult `json:"result"`
	Breakdown *ProfitBreakdown `json:"breakdown,omitempty"`
}

// Profit is zero for invalid flights.
func (e Evaluation) Profit() float64 {
	if e.Breakdown == nil {
		return 0
	}
	return e.Breakdown.Profit
}

type Summary struct {
	Total       int     `json:"total"`
	Valid       int     `json:"valid"`
	Invalid     int     `json:"invalid"`
	TotalProfit float64 `json:"total_profit"`
}

func (s *Summary) Add(e Evaluation) {
	s.Total++
	if !e.Result.Valid {
		s.Invalid++
		return
	}
	s.Valid++
	s.TotalProfit += e.Profit()
}
