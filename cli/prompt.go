package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"home-loan-calculator/domain"
	"home-loan-calculator/service"
)

type numberQuestion struct {
	message string
	help    string
	min     float64
	max     float64
	integer bool
	target  func(in *domain.LoanInputs) *float64
}

// PromptLoanInputs asks for every loan input in turn, starting from defaults.
func PromptLoanInputs(defaults domain.LoanInputs, opts ...survey.AskOpt) (domain.LoanInputs, error) {
	in := defaults
	termYears := float64(defaults.TermYears)

	questions := []numberQuestion{
		{"Home price (USD):", "Purchase price of the residence", service.MinHomePrice, service.MaxHomePrice, false,
			func(in *domain.LoanInputs) *float64 { return &in.HomePrice }},
		{"Down payment (USD):", "Amount paid up front", 0, service.MaxDownPayment, false,
			func(in *domain.LoanInputs) *float64 { return &in.DownPayment }},
		{"Annual interest rate (%):", "e.g. 4.5 for 4.5%", 0, service.MaxInterestRatePercent, false,
			func(in *domain.LoanInputs) *float64 { return &in.AnnualInterestRatePercent }},
		{"Loan term (years):", "Total repayment period in years", service.MinTermYears, service.MaxTermYears, true,
			func(*domain.LoanInputs) *float64 { return &termYears }},
		{"Additional principal per month (USD):", "Extra principal paid with each installment", 0, math.Inf(1), false,
			func(in *domain.LoanInputs) *float64 { return &in.ExtraMonthlyPrincipal }},
		{"Annual property tax (USD):", "Property tax payable per year", 0, math.Inf(1), false,
			func(in *domain.LoanInputs) *float64 { return &in.AnnualPropertyTax }},
		{"Annual home insurance (USD):", "Home insurance premium per year", 0, math.Inf(1), false,
			func(in *domain.LoanInputs) *float64 { return &in.AnnualHomeInsurance }},
		{"Annual mortgage insurance (USD):", "Mortgage insurance payable per year", 0, math.Inf(1), false,
			func(in *domain.LoanInputs) *float64 { return &in.AnnualMortgageInsurance }},
	}

	for _, q := range questions {
		dst := q.target(&in)
		def := strconv.FormatFloat(*dst, 'f', 2, 64)
		if q.integer {
			def = strconv.FormatFloat(*dst, 'f', 0, 64)
		}

		var raw string
		prompt := &survey.Input{Message: q.message, Default: def, Help: q.help}
		askOpts := append([]survey.AskOpt{survey.WithValidator(NumberInRange(q.min, q.max, q.integer))}, opts...)
		if err := survey.AskOne(prompt, &raw, askOpts...); err != nil {
			return domain.LoanInputs{}, err
		}

		v, err := parseNumber(raw)
		if err != nil {
			return domain.LoanInputs{}, err
		}
		*dst = v
	}
	in.TermYears = int(termYears)

	if err := CheckFormRanges(in); err != nil {
		return domain.LoanInputs{}, err
	}
	return in, nil
}

// NumberInRange validates a survey answer as a number within [min, max].
func NumberInRange(min, max float64, integer bool) survey.Validator {
	return func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("expected text answer, got %T", ans)
		}
		v, err := parseNumber(s)
		if err != nil {
			return err
		}
		if integer && v != math.Trunc(v) {
			return fmt.Errorf("must be a whole number")
		}
		if v < min || v > max {
			if math.IsInf(max, 1) {
				return fmt.Errorf("must be at least %g", min)
			}
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}
