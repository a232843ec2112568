package domain

type ExtraPaymentComparisonInput struct {
	Loan               LoanInputs `json:"loan"`
	ExtraAmounts       []float64  `json:"extra_amounts"`
	TargetPayoffMonths int        `json:"target_payoff_months,omitempty"`
}

type ExtraPaymentScenario struct {
	ExtraMonthlyPrincipal float64 `json:"extra_monthly_principal"`
	MonthsToPayoff        int     `json:"months_to_payoff"`
	TotalInterest         float64 `json:"total_interest"`
	InterestSaved         float64 `json:"interest_saved"`
	MonthsSaved           int     `json:"months_saved"`
}

type ExtraPaymentComparisonResult struct {
	BasePayment           float64                `json:"base_payment"`
	BaselineMonths        int                    `json:"baseline_months"`
	BaselineTotalInterest float64                `json:"baseline_total_interest"`
	Scenarios             []ExtraPaymentScenario `json:"scenarios"`

	// RequiredExtraForTarget is set only when a target payoff was requested.
	RequiredExtraForTarget *float64 `json:"required_extra_for_target,omitempty"`
}
