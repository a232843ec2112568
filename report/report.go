// Package report renders calculation results for people: two decimals,
// thousands separators, one installment per line.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"home-loan-calculator/domain"
)

// Money formats v with thousands separators and exactly two decimals.
func Money(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}

func WriteSummary(w io.Writer, result domain.MortgageResult) error {
	s := result.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	lines := []struct {
		label string
		value string
	}{
		{"Loan amount after down payment", Money(s.Principal)},
		{"Monthly payment (principal & interest)", Money(s.BasePrincipalAndInterestPayment)},
		{"Scheduled payments", fmt.Sprintf("%d months", s.TotalScheduledPayments)},
		{"Monthly property tax", Money(s.MonthlyPropertyTax)},
		{"Monthly home insurance", Money(s.MonthlyHomeInsurance)},
		{"Monthly mortgage insurance", Money(s.MonthlyMortgageInsurance)},
		{"Total monthly payment", Money(s.TotalMonthlyPayment)},
		{"Total interest (no extra payments)", Money(s.TotalInterestOriginal)},
		{"Total interest (with extra payments)", Money(s.TotalInterestActual)},
		{"Months to payoff", fmt.Sprintf("%d", s.MonthsToPayoff)},
		{"Months saved", fmt.Sprintf("%d", max(0, s.TotalScheduledPayments-s.MonthsToPayoff))},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", l.label, l.value); err != nil {
			return err
		}
	}

	saved := "no savings"
	if s.HasSavings {
		saved = Money(s.InterestSaved)
	}
	if _, err := fmt.Fprintf(tw, "Interest saved:\t%s\n", saved); err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, a := range s.Anomalies {
		if _, err := fmt.Fprintf(w, "WARNING [%s]: %s\n", a.Code, a.Message); err != nil {
			return err
		}
	}
	return nil
}

func WriteSchedule(w io.Writer, rows []domain.AmortizationRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "Installment\tBeginning\tPayment (P&I)\tExtra\tInterest\tPrincipal\tEnding\tMortgage ins.\t"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.InstallmentNumber,
			Money(r.BeginningBalance),
			Money(r.ScheduledPayment),
			Money(r.ExtraPrincipal),
			Money(r.InterestPaid),
			Money(r.PrincipalPaid),
			Money(r.EndingBalance),
			Money(r.MortgageInsurancePortion),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
