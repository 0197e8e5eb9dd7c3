package domain

type SeatClass string

const (
	SeatClassEconomy  SeatClass = "economy"
	SeatClassBusiness SeatClass = "business"
	SeatClassFirst    SeatClass = "first-class"
)

// SeatClasses lists the classes in the order capacity rules check them.
var SeatClasses = []SeatClass{SeatClassEconomy, SeatClassBusiness, SeatClassFirst}

type SeatCounts struct {
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"first_class"`
}

func (s SeatCounts) Total() int {
	return s.Economy + s.Business + s.FirstClass
}

func (s SeatCounts) Of(class SeatClass) int {
	switch class {
	case SeatClassEconomy:
		return s.Economy
	case SeatClassBusiness:
		return s.Business
	case SeatClassFirst:
		return s.FirstClass
	default:
		return 0
	}
}

type Fares struct {
	Economy    float64 `json:"economy"`
	Business   float64 `json:"business"`
	FirstClass float64 `json:"first_class"`
}

func (f Fares) Of(class SeatClass) float64 {
	switch class {
	case SeatClassEconomy:
		return f.Economy
	case SeatClassBusiness:
		return f.Business
	case SeatClassFirst:
		return f.FirstClass
	default:
		return 0
	}
}

type FlightRequest struct {
	Row          int        `json:"row,omitempty"`
	Origin       string     `json:"origin"`
	Destination  string     `json:"destination"`
	AircraftType string     `json:"aircraft_type"`
	Seats        SeatCounts `json:"seats"`
	Fares        Fares      `json:"fares"`
	// ParseError is set by the loader when the row could not be turned into
	// typed fields. Such a request never passes validation.
	ParseError string `json:"-"`
}
