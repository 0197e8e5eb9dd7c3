package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/reference"
)

var ErrUnknownSource = errors.New("unknown reference source")

// ReferenceRepository supplies the airport and aircraft tables.
type ReferenceRepository interface {
	ListAirports(ctx context.Context) ([]domain.Airport, error)
	ListAircraft(ctx context.Context) ([]domain.Aircraft, error)
}

// BuildIndex loads both tables and indexes them. Any load failure aborts:
// a partial index would silently reject valid flights.
func BuildIndex(ctx context.Context, repo ReferenceRepository, opts ...reference.Option) (*reference.Index, error) {
	airports, err := repo.ListAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	aircraft, err := repo.ListAircraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aircraft: %w", err)
	}
	return reference.NewIndex(airports, aircraft, opts...), nil
}
