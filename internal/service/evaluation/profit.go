package evaluation

import (
	"fmt"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/reference"
)

// ComputeProfit returns fare revenue minus operating cost for a flight that
// has already passed Validate.
func ComputeProfit(f domain.FlightRequest, idx *reference.Index) float64 {
	return Breakdown(f, idx).Profit
}

// Breakdown computes the intermediate figures behind ComputeProfit. Calling
// it for a flight whose airport or aircraft is not indexed is a programming
// error and panics.
func Breakdown(f domain.FlightRequest, idx *reference.Index) domain.ProfitBreakdown {
	airport, ok := idx.Airport(f.Destination)
	if !ok {
		panic(fmt.Sprintf("evaluation: profit requested for unvalidated flight to unknown airport %q", f.Destination))
	}
	aircraft, ok := idx.Aircraft(f.AircraftType)
	if !ok {
		panic(fmt.Sprintf("evaluation: profit requested for unvalidated flight with unknown aircraft %q", f.AircraftType))
	}

	var revenue float64
	for _, class := range domain.SeatClasses {
		revenue += float64(f.Seats.Of(class)) * f.Fares.Of(class)
	}

	distance := idx.RouteDistance(f.Origin, airport)
	seatsTaken := f.Seats.Total()
	unitCost := aircraft.CostPerSeatPer100km * (distance / 100)
	totalCost := unitCost * float64(seatsTaken)

	return domain.ProfitBreakdown{
		Distance:   distance,
		Revenue:    revenue,
		SeatsTaken: seatsTaken,
		UnitCost:   unitCost,
		TotalCost:  totalCost,
		Profit:     revenue - totalCost,
	}
}
