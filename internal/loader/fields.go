package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// currencySymbols may prefix any monetary field.
const currencySymbols = "£$€"

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

func parseMoney(s string) (float64, error) {
	return parseNumber(strings.TrimLeft(strings.TrimSpace(s), currencySymbols))
}

// parseCount reads a seat count or capacity. Fractional values are
// truncated toward zero rather than rejected.
func parseCount(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	v = math.Trunc(v)
	if v < 0 {
		return 0, fmt.Errorf("negative count: %q", s)
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("count out of range: %q", s)
	}
	return int(v), nil
}
