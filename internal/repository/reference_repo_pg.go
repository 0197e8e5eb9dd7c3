package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PGReferenceRepository struct {
	db     Querier
	logger *slog.Logger
}

func NewPGReferenceRepository(db Querier, logger *slog.Logger) ReferenceRepository {
	return &PGReferenceRepository{db: db, logger: logger}
}

func (r *PGReferenceRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT code, COALESCE(name, ''), distance_from_a::float8, distance_from_b::float8 FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Code, &a.Name, &a.DistanceFromA, &a.DistanceFromB); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGReferenceRepository) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	rows, err := r.db.Query(ctx, `SELECT type_code, cost_per_seat_per_100km::float8, max_range::float8, total_seats, economy_seats, business_seats, first_class_seats FROM aircraft ORDER BY type_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aircraft := make([]domain.Aircraft, 0)
	for rows.Next() {
		var a domain.Aircraft
		if err := rows.Scan(&a.TypeCode, &a.CostPerSeatPer100km, &a.MaxRange, &a.TotalSeats, &a.EconomySeats, &a.BusinessSeats, &a.FirstClassSeats); err != nil {
			return nil, err
		}
		if a.ClassCapacity() > a.TotalSeats {
			r.logger.Warn("aircraft class capacities exceed total seats",
				"aircraft", a.TypeCode,
				"class_capacity", a.ClassCapacity(),
				"total_seats", a.TotalSeats,
			)
		}
		aircraft = append(aircraft, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read aircraft rows: %w", err)
	}
	return aircraft, nil
}

var _ ReferenceRepository = (*PGReferenceRepository)(nil)
