package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/joho/godotenv"

	"home-loan-calculator/cli"
	"home-loan-calculator/domain"
	"home-loan-calculator/logging"
	"home-loan-calculator/report"
	"home-loan-calculator/service"
)

func main() {
	_ = godotenv.Load()

	err := run(os.Args[1:])
	code := exitCode(err)
	if code == 1 {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(code)
}

// exitCode maps run's error to the process status. -h is a clean exit.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, terminal.InterruptErr):
		return 130
	default:
		return 1
	}
}

func run(args []string) error {
	defaults := cli.Defaults()

	fs := flag.NewFlagSet("mortgage-cli", flag.ContinueOnError)
	homePrice := fs.Float64("home-price", defaults.HomePrice, "purchase price of the residence")
	downPayment := fs.Float64("down-payment", defaults.DownPayment, "amount paid up front")
	rate := fs.Float64("rate", defaults.AnnualInterestRatePercent, "annual interest rate in percent")
	termYears := fs.Int("term", defaults.TermYears, "loan term in years")
	extra := fs.Float64("extra", defaults.ExtraMonthlyPrincipal, "additional principal paid each month")
	tax := fs.Float64("property-tax", defaults.AnnualPropertyTax, "annual property tax")
	insurance := fs.Float64("home-insurance", defaults.AnnualHomeInsurance, "annual home insurance")
	pmi := fs.Float64("mortgage-insurance", defaults.AnnualMortgageInsurance, "annual mortgage insurance")
	scenario := fs.String("scenario", "", "YAML file with loan inputs; flags are ignored when set")
	interactive := fs.Bool("interactive", false, "prompt for every input")
	schedule := fs.Bool("schedule", false, "print the month-by-month schedule")
	logLevel := fs.String("log-level", os.Getenv("LOG_LEVEL"), "debug, info, warn or error; empty keeps the CLI quiet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.Discard()
	if *logLevel != "" {
		logger = logging.New(logging.Config{
			Level:     logging.ParseLevel(*logLevel),
			Component: logging.ComponentCLI,
		})
	}

	in := domain.LoanInputs{
		HomePrice:                 *homePrice,
		DownPayment:               *downPayment,
		AnnualInterestRatePercent: *rate,
		TermYears:                 *termYears,
		ExtraMonthlyPrincipal:     *extra,
		AnnualPropertyTax:         *tax,
		AnnualHomeInsurance:       *insurance,
		AnnualMortgageInsurance:   *pmi,
	}

	var err error
	switch {
	case *scenario != "":
		in, err = cli.LoadScenario(*scenario)
	case *interactive:
		in, err = cli.PromptLoanInputs(in)
	default:
		err = cli.CheckFormRanges(in)
	}
	if err != nil {
		return err
	}

	// No cache: every run computes once.
	svc := service.NewMortgageService(nil, 0, logger)
	result, err := svc.CalculateMortgage(context.Background(), in)
	if err != nil {
		return err
	}

	if err := report.WriteSummary(os.Stdout, result); err != nil {
		return err
	}
	if *schedule {
		fmt.Fprintln(os.Stdout)
		return report.WriteSchedule(os.Stdout, result.Schedule)
	}
	return nil
}
