// Package reference holds the read-only airport and aircraft lookups shared
// by every flight evaluation in a run.
package reference

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/Domenick1991/routeprofit/internal/domain"
)

// Index is built once and never mutated afterwards, so it is safe for
// concurrent readers.
type Index struct {
	airports map[string]domain.Airport
	aircraft map[string]domain.Aircraft
	originA  string
	version  string
}

type Option func(*Index)

// WithOriginA sets the origin code whose flights use an airport's first
// distance column. Flights from any other origin use the second one.
func WithOriginA(code string) Option {
	return func(i *Index) {
		i.originA = code
	}
}

// NewIndex keys records by code. Later duplicates replace earlier ones.
func NewIndex(airports []domain.Airport, aircraft []domain.Aircraft, opts ...Option) *Index {
	idx := &Index{
		airports: make(map[string]domain.Airport, len(airports)),
		aircraft: make(map[string]domain.Aircraft, len(aircraft)),
		originA:  "MAN",
	}
	for _, opt := range opts {
		opt(idx)
	}
	for _, a := range airports {
		idx.airports[a.Code] = a
	}
	for _, a := range aircraft {
		idx.aircraft[a.TypeCode] = a
	}
	idx.version = idx.fingerprint()
	return idx
}

// Version identifies the indexed data. Two indexes built from the same
// records and origin share a version.
func (i *Index) Version() string {
	return i.version
}

func (i *Index) fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "origin=%s\n", i.originA)
	for _, a := range i.Airports() {
		fmt.Fprintf(h, "airport=%s|%g|%g\n", a.Code, a.DistanceFromA, a.DistanceFromB)
	}
	for _, a := range i.AircraftTypes() {
		fmt.Fprintf(h, "aircraft=%s|%g|%g|%d|%d|%d|%d\n", a.TypeCode, a.CostPerSeatPer100km, a.MaxRange,
			a.TotalSeats, a.EconomySeats, a.BusinessSeats, a.FirstClassSeats)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (i *Index) Airport(code string) (domain.Airport, bool) {
	a, ok := i.airports[code]
	return a, ok
}

func (i *Index) Aircraft(typeCode string) (domain.Aircraft, bool) {
	a, ok := i.aircraft[typeCode]
	return a, ok
}

func (i *Index) OriginA() string {
	return i.originA
}

// RouteDistance picks the airport's distance from the flight's origin.
func (i *Index) RouteDistance(origin string, a domain.Airport) float64 {
	if origin == i.originA {
		return a.DistanceFromA
	}
	return a.DistanceFromB
}

func (i *Index) AirportCount() int {
	return len(i.airports)
}

func (i *Index) AircraftCount() int {
	return len(i.aircraft)
}

// Airports returns the indexed airports sorted by code.
func (i *Index) Airports() []domain.Airport {
	out := make([]domain.Airport, 0, len(i.airports))
	for _, a := range i.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].Code < out[y].Code })
	return out
}

// AircraftTypes returns the indexed aircraft sorted by type code.
func (i *Index) AircraftTypes() []domain.Aircraft {
	out := make([]domain.Aircraft, 0, len(i.aircraft))
	for _, a := range i.aircraft {
		out = append(out, a)
	}
	sort.Slice(out, func(x, y int) bool { return out[x].TypeCode < out[y].TypeCode })
	return out
}
