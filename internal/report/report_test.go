package report

import (
	"bytes"
	"testing"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWriter_Evaluation(t *testing.T) {
	flight := domain.FlightRequest{Origin: "MAN", Destination: "JFK", AircraftType: "A321"}

	testCases := []struct {
		name     string
		eval     domain.Evaluation
		expected string
	}{
		{
			name: "profit",
			eval: domain.Evaluation{
				Flight:    flight,
				Result:    domain.Valid(),
				Breakdown: &domain.ProfitBreakdown{Profit: 26625},
			},
			expected: "Flight from MAN to JFK with A321: Profit = £26625.00\n",
		},
		{
			name: "loss",
			eval: domain.Evaluation{
				Flight:    flight,
				Result:    domain.Valid(),
				Breakdown: &domain.ProfitBreakdown{Profit: -12.499},
			},
			expected: "Flight from MAN to JFK with A321: Profit = -£12.50\n",
		},
		{
			name: "invalid",
			eval: domain.Evaluation{
				Flight: flight,
				Result: domain.Invalid(domain.ReasonRangeInsufficient, "%g km > %g km", 5375.0, 3200.0),
			},
			expected: "Invalid flight: MAN to JFK with A321 - range insufficient: 5375 km > 3200 km\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, WithColor("never"))

			w.Evaluation(tc.eval)

			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestWriter_SeparateErrorOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewWriter(&out, WithColor("auto"), WithErrorOutput(&errOut))

	w.Evaluations([]domain.Evaluation{
		{Flight: domain.FlightRequest{Origin: "LHR", Destination: "XXX", AircraftType: "A321"},
			Result: domain.Invalid(domain.ReasonUnknownAirport, "%s", "XXX")},
		{Flight: domain.FlightRequest{Origin: "LHR", Destination: "CDG", AircraftType: "A321"},
			Result: domain.Valid(), Breakdown: &domain.ProfitBreakdown{Profit: 1}},
	})

	assert.Equal(t, "Invalid flight: LHR to XXX with A321 - unknown overseas airport code: XXX\n", errOut.String())
	assert.Equal(t, "Flight from LHR to CDG with A321: Profit = £1.00\n", out.String())
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithCurrency("$"))

	w.Summary(domain.Summary{Total: 3, Valid: 2, Invalid: 1, TotalProfit: 1234.5})

	assert.Equal(t, "Flights: 3, valid: 2, invalid: 1, total profit: $1234.50\n", buf.String())
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "£0.00", FormatMoney("£", -0.001))
	assert.Equal(t, "£0.10", FormatMoney("£", 0.1))
	assert.Equal(t, "-£5.00", FormatMoney("£", -5))
}
