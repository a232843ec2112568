package http

import "home-loan-calculator/domain"

// mortgageRequest carries the calculator form ranges. The engine checks the
// domain constraints again on its own.
type mortgageRequest struct {
	HomePrice                 float64 `json:"home_price" validate:"gte=10000,lte=10000000"`
	DownPayment               float64 `json:"down_payment" validate:"gte=0,lte=10000000,ltfield=HomePrice"`
	AnnualInterestRatePercent float64 `json:"annual_interest_rate_percent" validate:"gte=0,lte=20"`
	TermYears                 int     `json:"term_years" validate:"gte=1,lte=50"`
	ExtraMonthlyPrincipal     float64 `json:"extra_monthly_principal" validate:"gte=0"`
	AnnualPropertyTax         float64 `json:"annual_property_tax" validate:"gte=0"`
	AnnualHomeInsurance       float64 `json:"annual_home_insurance" validate:"gte=0"`
	AnnualMortgageInsurance   float64 `json:"annual_mortgage_insurance" validate:"gte=0"`
}

func (r mortgageRequest) toDomain() domain.LoanInputs {
	return domain.LoanInputs(r)
}

type compareExtraRequest struct {
	Loan               mortgageRequest `json:"loan"`
	ExtraAmounts       []float64       `json:"extra_amounts" validate:"required,min=1,max=10,dive,gte=0"`
	TargetPayoffMonths int             `json:"target_payoff_months" validate:"gte=0,lte=600"`
}

func (r compareExtraRequest) toDomain() domain.ExtraPaymentComparisonInput {
	return domain.ExtraPaymentComparisonInput{
		Loan:               r.Loan.toDomain(),
		ExtraAmounts:       r.ExtraAmounts,
		TargetPayoffMonths: r.TargetPayoffMonths,
	}
}
