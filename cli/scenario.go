package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"home-loan-calculator/domain"
	"home-loan-calculator/service"
)

// Defaults are the values the calculator form starts with.
func Defaults() domain.LoanInputs {
	return domain.LoanInputs{
		HomePrice:                 250000,
		DownPayment:               50000,
		AnnualInterestRatePercent: 4.5,
		TermYears:                 30,
		ExtraMonthlyPrincipal:     0,
		AnnualPropertyTax:         3000,
		AnnualHomeInsurance:       1200,
		AnnualMortgageInsurance:   0,
	}
}

// LoadScenario reads a YAML loan scenario. Fields left out keep their
// form defaults; unknown fields are rejected.
func LoadScenario(path string) (domain.LoanInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.LoanInputs{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	in, err := ParseScenario(data)
	if err != nil {
		return domain.LoanInputs{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return in, nil
}

func ParseScenario(data []byte) (domain.LoanInputs, error) {
	in := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return domain.LoanInputs{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := CheckFormRanges(in); err != nil {
		return domain.LoanInputs{}, err
	}
	return in, nil
}

// CheckFormRanges enforces the ranges the calculator form accepts.
func CheckFormRanges(in domain.LoanInputs) error {
	switch {
	case in.HomePrice < service.MinHomePrice || in.HomePrice > service.MaxHomePrice:
		return &service.InvalidInputError{Field: "home_price", Reason: fmt.Sprintf("must be between %.0f and %.0f", service.MinHomePrice, service.MaxHomePrice)}
	case in.DownPayment < 0 || in.DownPayment > service.MaxDownPayment:
		return &service.InvalidInputError{Field: "down_payment", Reason: fmt.Sprintf("must be between 0 and %.0f", service.MaxDownPayment)}
	case in.AnnualInterestRatePercent < 0 || in.AnnualInterestRatePercent > service.MaxInterestRatePercent:
		return &service.InvalidInputError{Field: "annual_interest_rate_percent", Reason: fmt.Sprintf("must be between 0 and %.0f", service.MaxInterestRatePercent)}
	case in.TermYears < service.MinTermYears || in.TermYears > service.MaxTermYears:
		return &service.InvalidInputError{Field: "term_years", Reason: fmt.Sprintf("must be between %d and %d", service.MinTermYears, service.MaxTermYears)}
	}
	return service.ValidateLoanInputs(in)
}
