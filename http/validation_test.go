package http

import (
	"errors"
	"testing"

	"home-loan-calculator/service"
)

func TestToFieldErrors_InvalidInputError(t *testing.T) {
	err := &service.InvalidInputError{Field: "term_years", Reason: "must be at least 1, got 0"}

	got := ToFieldErrors(err)

	if len(got) != 1 || got[0].Field != "term_years" || got[0].Message != err.Reason {
		t.Errorf("unexpected field errors %+v", got)
	}
}

func TestToFieldErrors_UnknownError(t *testing.T) {
	got := ToFieldErrors(errors.New("boom"))

	if len(got) != 1 || got[0].Field != "_" || got[0].Message != "boom" {
		t.Errorf("unexpected field errors %+v", got)
	}
}

func TestToFieldErrors_Messages(t *testing.T) {
	v := NewValidator()
	err := v.Validate(mortgageRequest{
		HomePrice:                 250000,
		DownPayment:               300000,
		AnnualInterestRatePercent: 4.5,
		TermYears:                 60,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := map[string]string{}
	for _, fe := range ToFieldErrors(err) {
		got[fe.Field] = fe.Message
	}
	if got["down_payment"] != "must be less than home_price" {
		t.Errorf("down_payment message = %q", got["down_payment"])
	}
	if got["term_years"] != "must be less than or equal to 50" {
		t.Errorf("term_years message = %q", got["term_years"])
	}
}

func TestFieldLabel(t *testing.T) {
	if got := fieldLabel("HomePrice"); got != "home_price" {
		t.Errorf("fieldLabel = %q", got)
	}
}
