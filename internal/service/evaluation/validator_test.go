package evaluation

import (
	"testing"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/reference"
	"github.com/stretchr/testify/assert"
)

func jetIndex() *reference.Index {
	return reference.NewIndex(
		[]domain.Airport{
			{Code: "DST", DistanceFromA: 500, DistanceFromB: 650},
			{Code: "FAR", DistanceFromA: 1200, DistanceFromB: 900},
		},
		[]domain.Aircraft{{
			TypeCode:            "JET",
			CostPerSeatPer100km: 5,
			MaxRange:            1000,
			TotalSeats:          150,
			EconomySeats:        120,
			BusinessSeats:       20,
			FirstClassSeats:     10,
		}},
		reference.WithOriginA("A"),
	)
}

func mixedCabinFlight() domain.FlightRequest {
	return domain.FlightRequest{
		Origin:       "A",
		Destination:  "DST",
		AircraftType: "JET",
		Seats:        domain.SeatCounts{Economy: 100, Business: 10, FirstClass: 5},
		Fares:        domain.Fares{Economy: 200, Business: 500, FirstClass: 900},
	}
}

func TestValidate_MixedCabinBookingWithinLimits(t *testing.T) {
	result := Validate(mixedCabinFlight(), jetIndex())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Message())
}

func TestValidate_Rules(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(f *domain.FlightRequest)
		reason domain.Reason
		detail string
	}{
		{
			name:   "economy overbooked",
			mutate: func(f *domain.FlightRequest) { f.Seats.Economy = 130 },
			reason: domain.ReasonTooManyEconomy,
			detail: "too many economy seats booked: 130 > 120",
		},
		{
			name: "unknown airport wins over everything",
			mutate: func(f *domain.FlightRequest) {
				f.Destination = "XXX"
				f.AircraftType = "NOPE"
				f.Seats.Economy = 999
			},
			reason: domain.ReasonUnknownAirport,
			detail: "unknown overseas airport code: XXX",
		},
		{
			name:   "range insufficient reports both values",
			mutate: func(f *domain.FlightRequest) { f.Destination = "FAR" },
			reason: domain.ReasonRangeInsufficient,
			detail: "range insufficient: 1200 km > 1000 km",
		},
		{
			name:   "unknown aircraft",
			mutate: func(f *domain.FlightRequest) { f.AircraftType = "NOPE" },
			reason: domain.ReasonUnknownAircraft,
			detail: "unknown aircraft type: NOPE",
		},
		{
			name: "range checked before total capacity",
			mutate: func(f *domain.FlightRequest) {
				f.Destination = "FAR"
				f.Seats = domain.SeatCounts{Economy: 200, Business: 20, FirstClass: 10}
			},
			reason: domain.ReasonRangeInsufficient,
		},
		{
			name:   "total capacity",
			mutate: func(f *domain.FlightRequest) { f.Seats = domain.SeatCounts{Economy: 120, Business: 20, FirstClass: 11} },
			reason: domain.ReasonTooManySeats,
			detail: "too many seats booked: 151 > 150",
		},
		{
			name:   "business overbooked",
			mutate: func(f *domain.FlightRequest) { f.Seats = domain.SeatCounts{Economy: 10, Business: 21, FirstClass: 0} },
			reason: domain.ReasonTooManyBusiness,
		},
		{
			name:   "first class overbooked",
			mutate: func(f *domain.FlightRequest) { f.Seats = domain.SeatCounts{Economy: 10, Business: 0, FirstClass: 11} },
			reason: domain.ReasonTooManyFirstClass,
			detail: "too many first-class seats booked: 11 > 10",
		},
		{
			name: "economy reported before business",
			mutate: func(f *domain.FlightRequest) {
				f.Seats = domain.SeatCounts{Economy: 121, Business: 21, FirstClass: 0}
			},
			reason: domain.ReasonTooManyEconomy,
		},
		{
			name:   "origin B uses second distance",
			mutate: func(f *domain.FlightRequest) { f.Origin = "B"; f.Destination = "FAR" },
			reason: domain.ReasonNone,
		},
		{
			name:   "negative economy count",
			mutate: func(f *domain.FlightRequest) { f.Seats = domain.SeatCounts{Economy: -500, Business: 10, FirstClass: 5} },
			reason: domain.ReasonMalformedFlightData,
			detail: "malformed flight record: negative economy seat count: -500",
		},
		{
			name: "negative count checked before airport",
			mutate: func(f *domain.FlightRequest) {
				f.Destination = "XXX"
				f.Seats.FirstClass = -1
			},
			reason: domain.ReasonMalformedFlightData,
		},
		{
			name: "huge class counts do not wrap the total",
			mutate: func(f *domain.FlightRequest) {
				f.Seats = domain.SeatCounts{Economy: 1 << 62, Business: 1 << 62, FirstClass: 1 << 62}
			},
			reason: domain.ReasonTooManySeats,
		},
		{
			name:   "malformed row",
			mutate: func(f *domain.FlightRequest) { f.ParseError = "economy_seats: not a number" },
			reason: domain.ReasonMalformedFlightData,
			detail: "malformed flight record: economy_seats: not a number",
		},
	}

	idx := jetIndex()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := mixedCabinFlight()
			tc.mutate(&f)

			result := Validate(f, idx)

			assert.Equal(t, tc.reason, result.Reason)
			assert.Equal(t, tc.reason == domain.ReasonNone, result.Valid)
			if tc.detail != "" {
				assert.Equal(t, tc.detail, result.Message())
			}
		})
	}
}

func TestValidate_ReasonText(t *testing.T) {
	assert.Equal(t, "unknown overseas airport code", domain.ReasonUnknownAirport.String())
	assert.Equal(t, "unknown aircraft type", domain.ReasonUnknownAircraft.String())
	assert.Equal(t, "range insufficient", domain.ReasonRangeInsufficient.String())
	assert.Equal(t, "too many seats booked", domain.ReasonTooManySeats.String())
	assert.Equal(t, "too many economy seats booked", domain.ReasonTooManyEconomy.String())
}

func TestValidate_Idempotent(t *testing.T) {
	idx := jetIndex()
	f := mixedCabinFlight()
	f.Seats.Economy = 130

	first := Validate(f, idx)
	second := Validate(f, idx)

	assert.Equal(t, first, second)
}
