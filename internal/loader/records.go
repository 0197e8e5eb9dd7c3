package loader

import (
	"fmt"

	"github.com/Domenick1991/routeprofit/internal/domain"
)

// FieldError is returned by the row parsers; the loader wraps it into a
// LoadError carrying the file and row.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}

func wantFields(row []string, counts ...int) error {
	for _, c := range counts {
		if len(row) == c {
			return nil
		}
	}
	return fieldErr("row", fmt.Errorf("expected %v fields, got %d", counts, len(row)))
}

// ParseAirportRow accepts [code, distanceFromA, distanceFromB] and the
// named layout [code, name, distanceFromA, distanceFromB].
func ParseAirportRow(row []string) (domain.Airport, error) {
	if err := wantFields(row, 3, 4); err != nil {
		return domain.Airport{}, err
	}

	a := domain.Airport{Code: row[0]}
	distances := row[1:]
	if len(row) == 4 {
		a.Name = row[1]
		distances = row[2:]
	}
	if a.Code == "" {
		return domain.Airport{}, fieldErr("code", fmt.Errorf("empty"))
	}

	var err error
	if a.DistanceFromA, err = parseNumber(distances[0]); err != nil {
		return domain.Airport{}, fieldErr("distance_from_a", err)
	}
	if a.DistanceFromB, err = parseNumber(distances[1]); err != nil {
		return domain.Airport{}, fieldErr("distance_from_b", err)
	}
	return a, nil
}

// ParseAircraftRow accepts [typeCode, costPerSeatPer100km, maxRange,
// totalSeats, economy, business, firstClass].
func ParseAircraftRow(row []string) (domain.Aircraft, error) {
	if err := wantFields(row, 7); err != nil {
		return domain.Aircraft{}, err
	}

	a := domain.Aircraft{TypeCode: row[0]}
	if a.TypeCode == "" {
		return domain.Aircraft{}, fieldErr("type_code", fmt.Errorf("empty"))
	}

	var err error
	if a.CostPerSeatPer100km, err = parseMoney(row[1]); err != nil {
		return domain.Aircraft{}, fieldErr("cost_per_seat_per_100km", err)
	}
	if a.MaxRange, err = parseNumber(row[2]); err != nil {
		return domain.Aircraft{}, fieldErr("max_range", err)
	}

	counts := []struct {
		name string
		dst  *int
	}{
		{"total_seats", &a.TotalSeats},
		{"economy_seats", &a.EconomySeats},
		{"business_seats", &a.BusinessSeats},
		{"first_class_seats", &a.FirstClassSeats},
	}
	for i, c := range counts {
		if *c.dst, err = parseCount(row[3+i]); err != nil {
			return domain.Aircraft{}, fieldErr(c.name, err)
		}
	}
	return a, nil
}

// ParseFlightRow accepts [origin, destination, aircraftType, economySeats,
// businessSeats, firstClassSeats, economyFare, businessFare, firstClassFare].
func ParseFlightRow(row []string) (domain.FlightRequest, error) {
	if err := wantFields(row, 9); err != nil {
		f := domain.FlightRequest{}
		if len(row) >= 3 {
			f.Origin, f.Destination, f.AircraftType = row[0], row[1], row[2]
		}
		return f, err
	}

	f := domain.FlightRequest{
		Origin:       row[0],
		Destination:  row[1],
		AircraftType: row[2],
	}

	var err error
	if f.Seats.Economy, err = parseCount(row[3]); err != nil {
		return f, fieldErr("economy_seats", err)
	}
	if f.Seats.Business, err = parseCount(row[4]); err != nil {
		return f, fieldErr("business_seats", err)
	}
	if f.Seats.FirstClass, err = parseCount(row[5]); err != nil {
		return f, fieldErr("first_class_seats", err)
	}
	if f.Fares.Economy, err = parseMoney(row[6]); err != nil {
		return f, fieldErr("economy_fare", err)
	}
	if f.Fares.Business, err = parseMoney(row[7]); err != nil {
		return f, fieldErr("business_fare", err)
	}
	if f.Fares.FirstClass, err = parseMoney(row[8]); err != nil {
		return f, fieldErr("first_class_fare", err)
	}
	return f, nil
}
