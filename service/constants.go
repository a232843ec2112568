package service

const (
	MonthsPerYear = 12

	// Input contract of the calculator form.
	MinHomePrice           = 10_000.0
	MaxHomePrice           = 10_000_000.0
	MaxDownPayment         = 10_000_000.0
	MaxInterestRatePercent = 20.0
	MinTermYears           = 1
	MaxTermYears           = 50 // bounds every schedule loop at 600 iterations

	MaxExtraScenarios = 10

	// BalanceTolerance is the residual above which a loan counts as not paid off.
	BalanceTolerance = 0.01

	// paidOffEpsilon absorbs float dust so a zero balance never emits one more row.
	paidOffEpsilon = 1e-9
)
