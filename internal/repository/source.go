package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/loader"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open returns the reference repository selected by cfg.Reference.Source and
// a function releasing whatever it holds open.
func Open(ctx context.Context, cfg *config.Config, l *loader.Loader, logger *slog.Logger) (ReferenceRepository, func(), error) {
	switch cfg.Reference.Source {
	case "csv":
		return NewCSVReferenceRepository(l, cfg.Input.AirportsPath, cfg.Input.AircraftPath), func() {}, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return NewPGReferenceRepository(pool, logger), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Reference.Source)
	}
}
