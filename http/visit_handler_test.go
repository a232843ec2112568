package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"home-loan-calculator/domain"
	"home-loan-calculator/logging"
	"home-loan-calculator/repository"
)

type failingCounter struct{}

func (failingCounter) Name() string { return "broken" }

func (failingCounter) Increment(context.Context) (int64, error) {
	return 0, errors.New("store unavailable")
}

func (failingCounter) Count(context.Context) (int64, error) {
	return 0, errors.New("store unavailable")
}

func TestVisitCounterMiddleware_Counts(t *testing.T) {
	counter := repository.NewMemoryVisitCounter("app_access_counter")
	called := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called++ })
	handler := VisitCounterMiddleware(counter, logging.Discard(), next)

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}

	if called != 3 {
		t.Errorf("expected next to run 3 times, got %d", called)
	}
	if n, _ := counter.Count(context.Background()); n != 3 {
		t.Errorf("expected 3 visits, got %d", n)
	}
}

func TestVisitCounterMiddleware_FailureDoesNotBlock(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	handler := VisitCounterMiddleware(failingCounter{}, logging.Discard(), next)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	if !called || w.Code != http.StatusOK {
		t.Errorf("request should pass through, called=%v code=%d", called, w.Code)
	}
}

func TestVisitHandler_OK(t *testing.T) {
	counter := repository.NewMemoryVisitCounter("app_access_counter")
	_, _ = counter.Increment(context.Background())
	_, _ = counter.Increment(context.Background())

	w := httptest.NewRecorder()
	NewVisitHandler(counter, nil).Visits(w, httptest.NewRequest(http.MethodGet, "/visits", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.VisitCount
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Name != "app_access_counter" || got.Count != 2 {
		t.Errorf("unexpected count %+v", got)
	}
}

func TestVisitHandler_Unavailable(t *testing.T) {
	w := httptest.NewRecorder()
	NewVisitHandler(failingCounter{}, nil).Visits(w, httptest.NewRequest(http.MethodGet, "/visits", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestVisitHandler_MethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NewVisitHandler(failingCounter{}, nil).Visits(w, httptest.NewRequest(http.MethodDelete, "/visits", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
