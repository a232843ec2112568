package service

import (
	"fmt"
	"math"

	"home-loan-calculator/domain"
)

// ValidateLoanInputs checks the domain constraints the engine relies on. The
// presentation ranges of the form are enforced by the delivery layers.
func ValidateLoanInputs(in domain.LoanInputs) error {
	amounts := []struct {
		field string
		value float64
	}{
		{"home_price", in.HomePrice},
		{"down_payment", in.DownPayment},
		{"annual_interest_rate_percent", in.AnnualInterestRatePercent},
		{"extra_monthly_principal", in.ExtraMonthlyPrincipal},
		{"annual_property_tax", in.AnnualPropertyTax},
		{"annual_home_insurance", in.AnnualHomeInsurance},
		{"annual_mortgage_insurance", in.AnnualMortgageInsurance},
	}
	for _, a := range amounts {
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return invalidInput(a.field, "must be a finite number")
		}
		if a.value < 0 {
			return invalidInput(a.field, "must not be negative, got %.2f", a.value)
		}
	}

	if in.DownPayment > in.HomePrice {
		return invalidInput("down_payment", "must not exceed home price (%.2f > %.2f)", in.DownPayment, in.HomePrice)
	}
	if in.Principal() <= 0 {
		return invalidInput("home_price", "must be greater than down payment")
	}
	if in.TermYears < MinTermYears {
		return invalidInput("term_years", "must be at least %d, got %d", MinTermYears, in.TermYears)
	}
	if in.TermYears > MaxTermYears {
		return invalidInput("term_years", "must be at most %d, got %d", MaxTermYears, in.TermYears)
	}
	return nil
}

// ComputeBasePayment returns the level principal and interest payment that
// retires principal in numPayments installments at monthlyRate.
func ComputeBasePayment(principal, monthlyRate float64, numPayments int) (float64, error) {
	if numPayments <= 0 {
		return 0, invalidInput("num_payments", "must be greater than 0, got %d", numPayments)
	}
	if !(principal > 0) || math.IsInf(principal, 0) {
		return 0, invalidInput("principal", "must be a positive number")
	}
	if monthlyRate < 0 || math.IsNaN(monthlyRate) {
		return 0, invalidInput("monthly_rate", "must not be negative")
	}

	if monthlyRate == 0 {
		return principal / float64(numPayments), nil
	}

	// (1+r)^n - 1 through Expm1/Log1p keeps its digits at rates near zero.
	growthMinusOne := math.Expm1(float64(numPayments) * math.Log1p(monthlyRate))
	if growthMinusOne == 0 {
		return principal / float64(numPayments), nil
	}
	return principal * monthlyRate * (growthMinusOne + 1) / growthMinusOne, nil
}

// SimulateOriginalSchedule runs the loan with the level payment only and
// returns the interest paid and the balance left after numPayments. A
// residual above BalanceTolerance means the payment never covered the loan.
func SimulateOriginalSchedule(principal, monthlyRate, payment float64, numPayments int) (totalInterest, residualBalance float64) {
	balance := principal
	for i := 0; i < numPayments; i++ {
		if paidOff(balance) {
			break
		}
		interest := balance * monthlyRate
		totalInterest += interest
		balance -= payment - interest
		if balance < 0 {
			balance = 0
		}
	}
	return totalInterest, balance
}

// BuildAmortizationSchedule emits one row per installment until the balance
// is retired or numPayments is reached. It returns the rows, the interest
// actually paid and the number of installments made.
func BuildAmortizationSchedule(
	principal, monthlyRate, basePayment, extraPrincipal, monthlyInsurance float64,
	numPayments int,
) ([]domain.AmortizationRow, float64, int) {
	rows := make([]domain.AmortizationRow, 0, numPayments)
	balance := principal
	totalInterest := 0.0

	for i := 1; i <= numPayments; i++ {
		if paidOff(balance) {
			break
		}

		interest := balance * monthlyRate
		principalPaid := basePayment - interest + extraPrincipal
		if balance < principalPaid {
			principalPaid = balance
		}
		ending := balance - principalPaid

		rows = append(rows, domain.AmortizationRow{
			InstallmentNumber:        i,
			BeginningBalance:         ending + principalPaid,
			ScheduledPayment:         basePayment,
			ExtraPrincipal:           extraPrincipal,
			InterestPaid:             interest,
			PrincipalPaid:            principalPaid,
			EndingBalance:            math.Max(0, ending),
			MortgageInsurancePortion: monthlyInsurance,
		})

		balance = ending
		totalInterest += interest
	}

	return rows, totalInterest, len(rows)
}

// ComputeSummary validates in and produces the payment summary together with
// the full schedule under the requested extra principal.
func ComputeSummary(in domain.LoanInputs) (domain.MortgageResult, error) {
	if err := ValidateLoanInputs(in); err != nil {
		return domain.MortgageResult{}, err
	}

	principal := in.Principal()
	monthlyRate := in.AnnualInterestRatePercent / 100 / MonthsPerYear
	numPayments := in.TermYears * MonthsPerYear

	basePayment, err := ComputeBasePayment(principal, monthlyRate, numPayments)
	if err != nil {
		return domain.MortgageResult{}, err
	}

	originalInterest, residual := SimulateOriginalSchedule(principal, monthlyRate, basePayment, numPayments)

	monthlyTax := in.AnnualPropertyTax / MonthsPerYear
	monthlyHomeInsurance := in.AnnualHomeInsurance / MonthsPerYear
	monthlyMortgageInsurance := in.AnnualMortgageInsurance / MonthsPerYear

	rows, actualInterest, months := BuildAmortizationSchedule(
		principal, monthlyRate, basePayment, in.ExtraMonthlyPrincipal, monthlyMortgageInsurance, numPayments,
	)

	saved := originalInterest - actualInterest
	summary := domain.PaymentSummary{
		Principal:                       principal,
		MonthlyInterestRate:             monthlyRate,
		TotalScheduledPayments:          numPayments,
		BasePrincipalAndInterestPayment: basePayment,
		MonthlyPropertyTax:              monthlyTax,
		MonthlyHomeInsurance:            monthlyHomeInsurance,
		MonthlyMortgageInsurance:        monthlyMortgageInsurance,
		TotalMonthlyPayment:             basePayment + monthlyTax + monthlyHomeInsurance + monthlyMortgageInsurance,
		TotalInterestOriginal:           originalInterest,
		TotalInterestActual:             actualInterest,
		InterestSaved:                   math.Max(0, saved),
		HasSavings:                      saved > 0,
		MonthsToPayoff:                  months,
	}

	summary.Anomalies = detectAnomalies(basePayment, residual, rows, numPayments)

	return domain.MortgageResult{Summary: summary, Schedule: rows}, nil
}

// detectAnomalies flags a level payment that never retires the loan and a
// schedule that ends with money still owed.
func detectAnomalies(basePayment, residual float64, rows []domain.AmortizationRow, numPayments int) []domain.Anomaly {
	var anomalies []domain.Anomaly
	if residual > BalanceTolerance {
		anomalies = append(anomalies, domain.Anomaly{
			Code:            domain.AnomalyNonConvergence,
			Message:         fmt.Sprintf("level payment %.2f leaves %.2f unpaid after %d payments", basePayment, residual, numPayments),
			ResidualBalance: residual,
		})
	}
	if n := len(rows); n > 0 && rows[n-1].EndingBalance > BalanceTolerance {
		left := rows[n-1].EndingBalance
		anomalies = append(anomalies, domain.Anomaly{
			Code:            domain.AnomalyScheduleNotPaidOff,
			Message:         fmt.Sprintf("schedule ends with %.2f outstanding after %d installments", left, n),
			ResidualBalance: left,
		})
	}
	return anomalies
}

func paidOff(balance float64) bool {
	return balance <= paidOffEpsilon
}

func roundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}
