package repository

import (
	"context"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/loader"
)

type CSVReferenceRepository struct {
	loader       *loader.Loader
	airportsPath string
	aircraftPath string
}

func NewCSVReferenceRepository(l *loader.Loader, airportsPath, aircraftPath string) ReferenceRepository {
	return &CSVReferenceRepository{loader: l, airportsPath: airportsPath, aircraftPath: aircraftPath}
}

func (r *CSVReferenceRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.loader.Airports(r.airportsPath)
}

func (r *CSVReferenceRepository) ListAircraft(ctx context.Context) ([]domain.Aircraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.loader.Aircraft(r.aircraftPath)
}

var _ ReferenceRepository = (*CSVReferenceRepository)(nil)
