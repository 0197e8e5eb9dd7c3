package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeTables(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	airports := writeFile(t, dir, "airports.csv", "code,name,from_man,from_other\nCDG,Paris Charles de Gaulle,700,350\nAMS,Amsterdam Schiphol,500,370\n")
	aircraft := writeFile(t, dir, "aeroplanes.csv", "type,cost,range,total,economy,business,first\nA321,£0.10,3500,200,180,20,0\n")
	flights := writeFile(t, dir, "flights.csv", strings.Join([]string{
		"origin,destination,type,economy,business,first,economy_fare,business_fare,first_fare",
		"MAN,CDG,A321,100,10,0,50,200,0",
		"LHR,AMS,A321,190,0,0,40,0,0",
		"MAN,XXX,A321,10,0,0,40,0,0",
		"",
		"MAN,CDG,A321,1",
	}, "\n")+"\n")

	return dir, []string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--airports", airports,
		"--aircraft", aircraft,
		"--flights", flights,
		"--color", "never",
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Report(t *testing.T) {
	_, args := writeTables(t)

	stdout, stderr, err := execute(t, append(args, "--summary", "--workers", "4")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Flight from MAN to CDG with A321: Profit = £6923.00", lines[0])
	assert.Equal(t, "Flights: 4, valid: 1, invalid: 3, total profit: £6923.00", lines[1])

	invalid := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, invalid, 3)
	assert.True(t, strings.HasPrefix(invalid[0], "Invalid flight: LHR to AMS with A321 - too many economy seats booked"))
	assert.Equal(t, "Invalid flight: MAN to XXX with A321 - unknown overseas airport code: XXX", invalid[1])
	assert.True(t, strings.HasPrefix(invalid[2], "Invalid flight: MAN to CDG with A321 - malformed flight record"))
}

func TestRootCmd_ConfiguredOriginA(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "config.yaml", strings.Join([]string{
		"input:",
		"  airports_path: " + writeFile(t, dir, "airports.csv", "code,from_a,from_b\nDST,500,650\n"),
		"  aircraft_path: " + writeFile(t, dir, "aeroplanes.csv", "type,cost,range,total,economy,business,first\nJET,5,1000,150,120,20,10\n"),
		"  flights_path: " + writeFile(t, dir, "flights.csv", strings.Join([]string{
			"origin,destination,type,economy,business,first,economy_fare,business_fare,first_fare",
			"A,DST,JET,100,10,5,200,500,900",
			"B,DST,JET,100,10,5,200,500,900",
		}, "\n")+"\n"),
		"network:",
		"  origin_a: A",
		"report:",
		"  color: never",
	}, "\n")+"\n")

	stdout, _, err := execute(t, "--config", configPath)
	require.NoError(t, err)

	// 29500 revenue; cost 5 per seat per 100 km over 500 km (A) or 650 km (B) for 115 seats.
	assert.Equal(t, "Flight from A to DST with JET: Profit = £26625.00\n"+
		"Flight from B to DST with JET: Profit = £25762.50\n", stdout)
}

func TestRootCmd_PositionalFlights(t *testing.T) {
	dir, args := writeTables(t)
	other := writeFile(t, dir, "other.csv", "header\nMAN,AMS,A321,0,0,0,0,0,0\n")

	stdout, _, err := execute(t, append(args, other)...)
	require.NoError(t, err)

	assert.Equal(t, "Flight from MAN to AMS with A321: Profit = £0.00\n", stdout)
}

func TestRootCmd_MissingReferenceTable(t *testing.T) {
	dir, args := writeTables(t)

	_, stderr, err := execute(t, append(args, "--airports", filepath.Join(dir, "nope.csv"))...)

	require.Error(t, err)
	assert.Contains(t, stderr, "Error:")
	assert.Contains(t, stderr, "nope.csv")
}

func TestRootCmd_InvalidFlag(t *testing.T) {
	_, args := writeTables(t)

	_, _, err := execute(t, append(args, "--delimiter", "::")...)

	assert.Error(t, err)
}
