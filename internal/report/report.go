// Package report renders evaluation results as console lines.
package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

type Writer struct {
	out      io.Writer
	errOut   io.Writer
	currency string
	color    bool

	invalidStyle lipgloss.Style
	profitStyle  lipgloss.Style
	lossStyle    lipgloss.Style
}

type Option func(*Writer)

func WithCurrency(symbol string) Option {
	return func(w *Writer) {
		w.currency = symbol
	}
}

// WithColor accepts auto, always or never. Auto colours only when the
// output is a terminal.
func WithColor(mode string) Option {
	return func(w *Writer) {
		switch mode {
		case "always":
			w.color = true
		case "never":
			w.color = false
		default:
			w.color = isTerminal(w.out)
		}
	}
}

// WithErrorOutput sends invalid-flight lines to a separate stream.
func WithErrorOutput(errOut io.Writer) Option {
	return func(w *Writer) {
		w.errOut = errOut
	}
}

func NewWriter(out io.Writer, opts ...Option) *Writer {
	w := &Writer{
		out:          out,
		errOut:       out,
		currency:     "£",
		invalidStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		profitStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		lossStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Evaluation writes the single line describing e.
func (w *Writer) Evaluation(e domain.Evaluation) {
	f := e.Flight
	if !e.Result.Valid {
		line := fmt.Sprintf("Invalid flight: %s to %s with %s - %s", f.Origin, f.Destination, f.AircraftType, e.Result.Message())
		_, _ = fmt.Fprintln(w.errOut, w.style(w.invalidStyle, line))
		return
	}

	profit := e.Profit()
	style := w.profitStyle
	if profit < 0 {
		style = w.lossStyle
	}
	line := fmt.Sprintf("Flight from %s to %s with %s: Profit = %s", f.Origin, f.Destination, f.AircraftType, w.Money(profit))
	_, _ = fmt.Fprintln(w.out, w.style(style, line))
}

func (w *Writer) Evaluations(evaluations []domain.Evaluation) {
	for _, e := range evaluations {
		w.Evaluation(e)
	}
}

func (w *Writer) Summary(s domain.Summary) {
	_, _ = fmt.Fprintf(w.out, "Flights: %d, valid: %d, invalid: %d, total profit: %s\n",
		s.Total, s.Valid, s.Invalid, w.Money(s.TotalProfit))
}

// Money formats an amount with two decimals, sign before the symbol.
func (w *Writer) Money(amount float64) string {
	return FormatMoney(w.currency, amount)
}

func FormatMoney(symbol string, amount float64) string {
	rounded := math.Round(amount*100) / 100
	if rounded < 0 {
		return fmt.Sprintf("-%s%.2f", symbol, -rounded)
	}
	// Avoid printing -0.00 for tiny negative amounts.
	return fmt.Sprintf("%s%.2f", symbol, math.Abs(rounded))
}

func (w *Writer) style(s lipgloss.Style, line string) string {
	if !w.color {
		return line
	}
	return s.Render(line)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
