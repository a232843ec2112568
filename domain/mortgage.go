package domain

// LoanInputs are the validated numeric inputs of one calculation.
type LoanInputs struct {
	HomePrice                 float64 `json:"home_price" yaml:"home_price"`
	DownPayment               float64 `json:"down_payment" yaml:"down_payment"`
	AnnualInterestRatePercent float64 `json:"annual_interest_rate_percent" yaml:"annual_interest_rate_percent"`
	TermYears                 int     `json:"term_years" yaml:"term_years"`
	ExtraMonthlyPrincipal     float64 `json:"extra_monthly_principal" yaml:"extra_monthly_principal"`
	AnnualPropertyTax         float64 `json:"annual_property_tax" yaml:"annual_property_tax"`
	AnnualHomeInsurance       float64 `json:"annual_home_insurance" yaml:"annual_home_insurance"`
	AnnualMortgageInsurance   float64 `json:"annual_mortgage_insurance" yaml:"annual_mortgage_insurance"`
}

// Principal is the loan amount after the down payment.
func (in LoanInputs) Principal() float64 {
	return in.HomePrice - in.DownPayment
}

type AnomalyCode string

const (
	// AnomalyNonConvergence: the level payment never retires the loan in the
	// scheduled number of payments (negative amortization).
	AnomalyNonConvergence AnomalyCode = "non_convergence"
	// AnomalyScheduleNotPaidOff: the emitted schedule ends with a balance left.
	AnomalyScheduleNotPaidOff AnomalyCode = "schedule_not_paid_off"
)

type Anomaly struct {
	Code            AnomalyCode `json:"code"`
	Message         string      `json:"message"`
	ResidualBalance float64     `json:"residual_balance"`
}

type PaymentSummary struct {
	Principal                       float64   `json:"principal"`
	MonthlyInterestRate             float64   `json:"monthly_interest_rate"`
	TotalScheduledPayments          int       `json:"total_scheduled_payments"`
	BasePrincipalAndInterestPayment float64   `json:"base_principal_and_interest_payment"`
	MonthlyPropertyTax              float64   `json:"monthly_property_tax"`
	MonthlyHomeInsurance            float64   `json:"monthly_home_insurance"`
	MonthlyMortgageInsurance        float64   `json:"monthly_mortgage_insurance"`
	TotalMonthlyPayment             float64   `json:"total_monthly_payment"`
	TotalInterestOriginal           float64   `json:"total_interest_original"`
	TotalInterestActual             float64   `json:"total_interest_actual"`
	InterestSaved                   float64   `json:"interest_saved"`
	HasSavings                      bool      `json:"has_savings"`
	MonthsToPayoff                  int       `json:"months_to_payoff"`
	Anomalies                       []Anomaly `json:"anomalies,omitempty"`
}

// AmortizationRow is one installment of the schedule. Rows are never mutated
// after the schedule is built.
type AmortizationRow struct {
	InstallmentNumber        int     `json:"installment_number"`
	BeginningBalance         float64 `json:"beginning_balance"`
	ScheduledPayment         float64 `json:"scheduled_payment"`
	ExtraPrincipal           float64 `json:"extra_principal"`
	InterestPaid             float64 `json:"interest_paid"`
	PrincipalPaid            float64 `json:"principal_paid"`
	EndingBalance            float64 `json:"ending_balance"`
	MortgageInsurancePortion float64 `json:"mortgage_insurance_portion"`
}

type MortgageResult struct {
	Summary  PaymentSummary    `json:"summary"`
	Schedule []AmortizationRow `json:"schedule"`
}
