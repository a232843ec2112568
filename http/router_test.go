package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home-loan-calculator/domain"
	"home-loan-calculator/repository"
	"home-loan-calculator/service"
)

func newTestRouter(t *testing.T, capacity int) (http.Handler, *repository.MemoryVisitCounter) {
	t.Helper()
	limiter := NewRateLimiter(capacity, time.Minute)
	t.Cleanup(limiter.Stop)

	counter := repository.NewMemoryVisitCounter("app_access_counter")
	router := NewRouter(Dependencies{
		Mortgage:      service.NewMortgageService(repository.NewMemoryCache(), time.Minute, nil),
		ExtraPayments: service.NewExtraPaymentService(nil),
		Visits:        counter,
		RateLimiter:   limiter,
	})
	return router, counter
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t, 5)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRouter_CalculationIsCountedAndVisible(t *testing.T) {
	router, counter := newTestRouter(t, 5)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, postJSON("/mortgage/calculate", loanJSON))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	if n, _ := counter.Count(context.Background()); n != 2 {
		t.Errorf("expected 2 visits, got %d", n)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/visits", nil))
	var got domain.VisitCount
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("expected /visits to report 2, got %d", got.Count)
	}
}

func TestRouter_RateLimitsCalculations(t *testing.T) {
	router, counter := newTestRouter(t, 1)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/mortgage/calculate", loanJSON))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, postJSON("/mortgage/compare-extra", `{"loan": `+loanJSON+`, "extra_amounts": [100]}`))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}

	if n, _ := counter.Count(context.Background()); n != 1 {
		t.Errorf("limited requests must not be counted, got %d", n)
	}
}
