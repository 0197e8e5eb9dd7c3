package main

import (
	"fmt"
	"os"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/bootstrap"
	"github.com/Domenick1991/routeprofit/internal/logging"
	"github.com/Domenick1991/routeprofit/internal/report"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	airports   string
	aircraft   string
	flights    string
	delimiter  string
	verbose    bool
	workers    int
	summary    bool
	strict     bool
	color      string
}

// NewRootCmd builds the planner command: load the reference tables, evaluate
// every flight in the flights table and print one line per flight.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "planner [flights.csv]",
		Short: "Validate planned flights and report their profit",
		Long: `planner checks each planned flight against the airport and aircraft
tables, rejecting unknown codes, routes beyond the aircraft's range and
bookings above its seat capacity, and prints the profit of every valid one.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.flights = args[0]
			}
			return run(cmd, opts)
		},
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config.yaml"
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", defaultConfig, "YAML config file; defaults apply when it does not exist")
	flags.StringVar(&opts.airports, "airports", "", "airports table")
	flags.StringVar(&opts.aircraft, "aircraft", "", "aircraft table")
	flags.StringVar(&opts.flights, "flights", "", "flights table")
	flags.StringVar(&opts.delimiter, "delimiter", "", "field delimiter of the input tables")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every rule decision and profit breakdown")
	flags.IntVar(&opts.workers, "workers", 0, "flights evaluated concurrently")
	flags.BoolVar(&opts.summary, "summary", false, "print a summary line after the report")
	flags.BoolVar(&opts.strict, "strict-capacity", false, "reject aircraft whose class capacities exceed the total")
	flags.StringVar(&opts.color, "color", "", "auto, always or never")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return fail(cmd, err)
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return fail(cmd, err)
	}

	logger := logging.New(cfg.Log, cfg.Evaluation.Verbose)
	ctx := cmd.Context()

	l := bootstrap.NewLoader(cfg, logger)
	index, err := bootstrap.LoadIndex(ctx, cfg, l, logger)
	if err != nil {
		return fail(cmd, err)
	}

	flights, err := l.Flights(cfg.Input.FlightsPath)
	if err != nil {
		return fail(cmd, err)
	}

	serviceOpts, release, err := bootstrap.ServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fail(cmd, err)
	}
	defer release()

	svc := evaluation.NewEvaluationService(index, serviceOpts...)
	evaluations, summary, err := svc.EvaluateAll(ctx, flights)
	if err != nil {
		return fail(cmd, err)
	}

	w := report.NewWriter(cmd.OutOrStdout(),
		report.WithCurrency(cfg.Report.CurrencySymbol),
		report.WithColor(cfg.Report.Color),
		report.WithErrorOutput(cmd.ErrOrStderr()),
	)
	w.Evaluations(evaluations)
	if cfg.Report.Summary {
		w.Summary(summary)
	}
	return nil
}

// applyFlags overrides config values with the flags given on the command
// line, then re-validates.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	flags := cmd.Flags()
	if opts.airports != "" {
		cfg.Input.AirportsPath = opts.airports
	}
	if opts.aircraft != "" {
		cfg.Input.AircraftPath = opts.aircraft
	}
	if opts.flights != "" {
		cfg.Input.FlightsPath = opts.flights
	}
	if flags.Changed("delimiter") {
		cfg.Input.Delimiter = opts.delimiter
	}
	if flags.Changed("verbose") {
		cfg.Evaluation.Verbose = opts.verbose
	}
	if flags.Changed("workers") {
		cfg.Evaluation.Workers = opts.workers
	}
	if flags.Changed("summary") {
		cfg.Report.Summary = opts.summary
	}
	if flags.Changed("strict-capacity") {
		cfg.Input.StrictCapacity = opts.strict
	}
	if flags.Changed("color") {
		cfg.Report.Color = opts.color
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// fail reports err once on stderr; main turns it into a non-zero exit.
func fail(cmd *cobra.Command, err error) error {
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return err
}
