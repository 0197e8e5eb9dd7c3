package evaluation

import (
	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/reference"
)

// ruleTracer receives every rule decision when verbose tracing is on.
type ruleTracer func(rule string, passed bool, attrs ...any)

func noTrace(string, bool, ...any) {}

// Validate applies the operability rules in order and reports the first one
// the flight breaks.
func Validate(f domain.FlightRequest, idx *reference.Index) domain.ValidationResult {
	return validate(f, idx, noTrace)
}

func validate(f domain.FlightRequest, idx *reference.Index, trace ruleTracer) domain.ValidationResult {
	if f.ParseError != "" {
		trace("parse", false, "error", f.ParseError)
		return domain.Invalid(domain.ReasonMalformedFlightData, "%s", f.ParseError)
	}

	for _, class := range domain.SeatClasses {
		if n := f.Seats.Of(class); n < 0 {
			trace("parse", false, "class", string(class), "seats", n)
			return domain.Invalid(domain.ReasonMalformedFlightData, "negative %s seat count: %d", class, n)
		}
	}

	airport, ok := idx.Airport(f.Destination)
	trace("airport", ok, "destination", f.Destination)
	if !ok {
		return domain.Invalid(domain.ReasonUnknownAirport, "%s", f.Destination)
	}

	aircraft, ok := idx.Aircraft(f.AircraftType)
	trace("aircraft", ok, "aircraft", f.AircraftType)
	if !ok {
		return domain.Invalid(domain.ReasonUnknownAircraft, "%s", f.AircraftType)
	}

	distance := idx.RouteDistance(f.Origin, airport)
	inRange := distance <= aircraft.MaxRange
	trace("range", inRange, "distance_km", distance, "max_range_km", aircraft.MaxRange)
	if !inRange {
		return domain.Invalid(domain.ReasonRangeInsufficient, "%g km > %g km", distance, aircraft.MaxRange)
	}

	booked := bookedSeats(f.Seats)
	fits := booked <= float64(aircraft.TotalSeats)
	trace("capacity", fits, "booked", booked, "total_seats", aircraft.TotalSeats)
	if !fits {
		return domain.Invalid(domain.ReasonTooManySeats, "%.0f > %d", booked, aircraft.TotalSeats)
	}

	for _, class := range domain.SeatClasses {
		seats, capacity := f.Seats.Of(class), aircraft.Capacity(class)
		fits := seats <= capacity
		trace("class_capacity", fits, "class", string(class), "booked", seats, "capacity", capacity)
		if !fits {
			return domain.Invalid(domain.OverbookedReason(class), "%d > %d", seats, capacity)
		}
	}

	return domain.Valid()
}

// bookedSeats sums in float64 so very large class counts cannot wrap around.
func bookedSeats(s domain.SeatCounts) float64 {
	var total float64
	for _, class := range domain.SeatClasses {
		total += float64(s.Of(class))
	}
	return total
}
