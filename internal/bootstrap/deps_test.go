package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIndex_CSV(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input.AirportsPath = filepath.Join(dir, "airports.csv")
	cfg.Input.AircraftPath = filepath.Join(dir, "aeroplanes.csv")
	cfg.Input.Delimiter = ";"
	cfg.Network.OriginA = "LHR"
	require.NoError(t, os.WriteFile(cfg.Input.AirportsPath, []byte("code;a;b\nJFK;5375;5540\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg.Input.AircraftPath, []byte("h\nA321;£0.10;3500;200;180;20;0\n"), 0o644))

	index, err := LoadIndex(context.Background(), cfg, NewLoader(cfg, logging.Discard()), logging.Discard())

	require.NoError(t, err)
	assert.Equal(t, 1, index.AirportCount())
	assert.Equal(t, 1, index.AircraftCount())
	assert.Equal(t, "LHR", index.OriginA())
}

func TestLoadIndex_MissingFile(t *testing.T) {
	cfg := config.Default()
	cfg.Input.AirportsPath = filepath.Join(t.TempDir(), "nope.csv")

	_, err := LoadIndex(context.Background(), cfg, NewLoader(cfg, logging.Discard()), logging.Discard())

	assert.Error(t, err)
}

func TestServiceOptions_NoBackends(t *testing.T) {
	opts, release, err := ServiceOptions(context.Background(), config.Default(), logging.Discard())

	require.NoError(t, err)
	assert.Len(t, opts, 3)
	release()
}
