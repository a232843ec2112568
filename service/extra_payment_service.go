package service

import (
	"context"
	"math"
	"sort"

	"home-loan-calculator/domain"
	"home-loan-calculator/logging"
)

type ExtraPaymentService struct {
	log *logging.Logger
}

func NewExtraPaymentService(logger *logging.Logger) *ExtraPaymentService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ExtraPaymentService{log: logger.WithComponent(logging.ComponentMortgage)}
}

// CompareExtraPayments runs the loan once per extra monthly principal amount
// and reports how much each one shortens the loan and saves in interest.
func (s *ExtraPaymentService) CompareExtraPayments(
	ctx context.Context,
	input domain.ExtraPaymentComparisonInput,
) (domain.ExtraPaymentComparisonResult, error) {

	loan := input.Loan
	loan.ExtraMonthlyPrincipal = 0
	if err := ValidateLoanInputs(loan); err != nil {
		return domain.ExtraPaymentComparisonResult{}, err
	}
	if len(input.ExtraAmounts) == 0 {
		return domain.ExtraPaymentComparisonResult{}, invalidInput("extra_amounts", "at least one amount is required")
	}
	if len(input.ExtraAmounts) > MaxExtraScenarios {
		return domain.ExtraPaymentComparisonResult{}, invalidInput("extra_amounts", "at most %d amounts are allowed, got %d", MaxExtraScenarios, len(input.ExtraAmounts))
	}
	for _, amount := range input.ExtraAmounts {
		if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
			return domain.ExtraPaymentComparisonResult{}, invalidInput("extra_amounts", "every amount must be a non-negative number")
		}
	}
	if input.TargetPayoffMonths < 0 {
		return domain.ExtraPaymentComparisonResult{}, invalidInput("target_payoff_months", "must be at least 1 when given, got %d", input.TargetPayoffMonths)
	}

	baseline, err := ComputeSummary(loan)
	if err != nil {
		return domain.ExtraPaymentComparisonResult{}, err
	}

	result := domain.ExtraPaymentComparisonResult{
		BasePayment:           baseline.Summary.BasePrincipalAndInterestPayment,
		BaselineMonths:        baseline.Summary.MonthsToPayoff,
		BaselineTotalInterest: baseline.Summary.TotalInterestActual,
	}

	for _, amount := range distinctAscending(input.ExtraAmounts) {
		scenario := loan
		scenario.ExtraMonthlyPrincipal = amount

		computed, err := ComputeSummary(scenario)
		if err != nil {
			return domain.ExtraPaymentComparisonResult{}, err
		}
		result.Scenarios = append(result.Scenarios, domain.ExtraPaymentScenario{
			ExtraMonthlyPrincipal: amount,
			MonthsToPayoff:        computed.Summary.MonthsToPayoff,
			TotalInterest:         computed.Summary.TotalInterestActual,
			InterestSaved:         math.Max(0, result.BaselineTotalInterest-computed.Summary.TotalInterestActual),
			MonthsSaved:           result.BaselineMonths - computed.Summary.MonthsToPayoff,
		})
	}

	if input.TargetPayoffMonths > 0 {
		required, err := RequiredExtraPayment(loan, input.TargetPayoffMonths)
		if err != nil {
			return domain.ExtraPaymentComparisonResult{}, err
		}
		result.RequiredExtraForTarget = &required
	}

	s.log.DebugContext(ctx, "compared extra payments",
		logging.FieldOperation, logging.OpCompare,
		"scenarios", len(result.Scenarios),
	)
	return result, nil
}

// RequiredExtraPayment finds the smallest extra monthly principal, to the
// cent, that retires the loan within targetMonths installments. It searches
// by bisection, relying on payoff months never increasing as extra grows.
func RequiredExtraPayment(loan domain.LoanInputs, targetMonths int) (float64, error) {
	if targetMonths < 1 {
		return 0, invalidInput("target_payoff_months", "must be at least 1, got %d", targetMonths)
	}
	loan.ExtraMonthlyPrincipal = 0
	if err := ValidateLoanInputs(loan); err != nil {
		return 0, err
	}

	principal := loan.Principal()
	monthlyRate := loan.AnnualInterestRatePercent / 100 / MonthsPerYear
	numPayments := loan.TermYears * MonthsPerYear

	basePayment, err := ComputeBasePayment(principal, monthlyRate, numPayments)
	if err != nil {
		return 0, err
	}

	meetsTarget := func(cents int64) bool {
		rows, _, months := BuildAmortizationSchedule(principal, monthlyRate, basePayment, float64(cents)/100, 0, numPayments)
		if n := len(rows); n > 0 && rows[n-1].EndingBalance > BalanceTolerance {
			return false
		}
		return months <= targetMonths
	}

	if meetsTarget(0) {
		return 0, nil
	}

	// Paying the whole principal as extra clears the loan in the first installment.
	lo, hi := int64(0), int64(math.Ceil(principal*100))
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if meetsTarget(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return roundToCents(float64(hi) / 100), nil
}

func distinctAscending(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
