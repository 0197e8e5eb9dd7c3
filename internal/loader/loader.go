package loader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/routeprofit/internal/domain"
)

var ErrCapacityExceeded = errors.New("class capacities exceed total seats")

type Loader struct {
	delimiter      rune
	strictCapacity bool
	logger         *slog.Logger
}

type Option func(*Loader)

func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		l.delimiter = d
	}
}

// WithStrictCapacity rejects aircraft whose class capacities add up to more
// than their total seats instead of only warning about them.
func WithStrictCapacity(strict bool) Option {
	return func(l *Loader) {
		l.strictCapacity = strict
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func New(opts ...Option) *Loader {
	l := &Loader{
		delimiter: ',',
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Airports(path string) ([]domain.Airport, error) {
	rows, err := ReadTable(path, l.delimiter)
	if err != nil {
		return nil, err
	}
	return l.AirportsFromRows(path, rows)
}

func (l *Loader) AirportsFromRows(name string, rows [][]string) ([]domain.Airport, error) {
	airports := make([]domain.Airport, 0, len(rows))
	for i, row := range rows {
		a, err := ParseAirportRow(row)
		if err != nil {
			return nil, rowError(name, i+1, err)
		}
		airports = append(airports, a)
	}
	l.logger.Debug("airports loaded", "path", name, "count", len(airports))
	return airports, nil
}

func (l *Loader) Aircraft(path string) ([]domain.Aircraft, error) {
	rows, err := ReadTable(path, l.delimiter)
	if err != nil {
		return nil, err
	}
	return l.AircraftFromRows(path, rows)
}

func (l *Loader) AircraftFromRows(name string, rows [][]string) ([]domain.Aircraft, error) {
	aircraft := make([]domain.Aircraft, 0, len(rows))
	for i, row := range rows {
		a, err := ParseAircraftRow(row)
		if err != nil {
			return nil, rowError(name, i+1, err)
		}
		if err := l.checkCapacity(name, i+1, a); err != nil {
			return nil, err
		}
		aircraft = append(aircraft, a)
	}
	l.logger.Debug("aircraft loaded", "path", name, "count", len(aircraft))
	return aircraft, nil
}

func (l *Loader) checkCapacity(name string, row int, a domain.Aircraft) error {
	if a.ClassCapacity() <= a.TotalSeats {
		return nil
	}
	if l.strictCapacity {
		return &LoadError{
			Path:  name,
			Row:   row,
			Field: "total_seats",
			Err:   fmt.Errorf("%w: %s has %d class seats, %d total", ErrCapacityExceeded, a.TypeCode, a.ClassCapacity(), a.TotalSeats),
		}
	}
	l.logger.Warn("aircraft class capacities exceed total seats",
		"path", name,
		"row", row,
		"aircraft", a.TypeCode,
		"class_capacity", a.ClassCapacity(),
		"total_seats", a.TotalSeats,
	)
	return nil
}

// Flights never fails on a bad row: the request is returned with ParseError
// set so the run can report it and move on.
func (l *Loader) Flights(path string) ([]domain.FlightRequest, error) {
	rows, err := ReadTable(path, l.delimiter)
	if err != nil {
		return nil, err
	}
	return l.FlightsFromRows(path, rows), nil
}

func (l *Loader) FlightsFromRows(name string, rows [][]string) []domain.FlightRequest {
	flights := make([]domain.FlightRequest, 0, len(rows))
	for i, row := range rows {
		f, err := ParseFlightRow(row)
		f.Row = i + 1
		if err != nil {
			f.ParseError = err.Error()
			l.logger.Warn("malformed flight row", "path", name, "row", f.Row, "error", err)
		}
		flights = append(flights, f)
	}
	l.logger.Debug("flights loaded", "path", name, "count", len(flights))
	return flights
}

func rowError(name string, row int, err error) error {
	le := &LoadError{Path: name, Row: row, Err: err}
	var fe *FieldError
	if errors.As(err, &fe) {
		le.Field = fe.Field
		le.Err = fe.Err
	}
	return le
}
