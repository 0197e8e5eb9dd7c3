package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
input:
  airports_path: data/airports.csv
  delimiter: ";"
network:
  origin_a: A
evaluation:
  workers: 4
kafka:
  brokers: ["localhost:9092"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/airports.csv", cfg.Input.AirportsPath)
	assert.Equal(t, "aeroplanes.csv", cfg.Input.AircraftPath)
	assert.Equal(t, ';', cfg.DelimiterRune())
	assert.Equal(t, "A", cfg.Network.OriginA)
	assert.Equal(t, 4, cfg.Evaluation.Workers)
	assert.Equal(t, "£", cfg.Report.CurrencySymbol)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "flight-evaluations", cfg.Kafka.EvaluationsTopic)
}

func TestLoadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "multi char delimiter", body: "input:\n  delimiter: \"::\"\n"},
		{name: "zero workers", body: "evaluation:\n  workers: 0\n"},
		{name: "unknown source", body: "reference:\n  source: sqlite\n"},
		{name: "unknown color", body: "report:\n  color: sometimes\n"},
		{name: "zero burst", body: "worker:\n  burst: 0\n"},
		{name: "zero rate", body: "worker:\n  rate_per_second: 0\n"},
		{name: "negative rate", body: "worker:\n  rate_per_second: -5\n"},
		{name: "bad yaml", body: "input: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadOptional_MissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "routes", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=routes sslmode=disable", d.DSN())
}
