package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type MockCache struct {
	Data       map[string]string
	TTLs       map[string]time.Duration
	GetCalls   int
	SetCalls   int
	ForceError bool
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]string),
		TTLs: make(map[string]time.Duration),
	}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.GetCalls++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.SetCalls++
	if m.ForceError {
		return errors.New("cache unavailable")
	}
	m.Data[key] = value
	m.TTLs[key] = ttl
	return nil
}

func TestCalculateMortgage_CachesResult(t *testing.T) {
	cache := NewMockCache()
	service := NewMortgageService(cache, 5*time.Minute, nil)
	ctx := context.Background()

	first, err := service.CalculateMortgage(ctx, standardLoan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetCalls != 1 {
		t.Fatalf("expected result to be cached once, got %d", cache.SetCalls)
	}
	key := CacheKey(standardLoan())
	if cache.TTLs[key] != 5*time.Minute {
		t.Errorf("expected ttl 5m, got %v", cache.TTLs[key])
	}

	second, err := service.CalculateMortgage(ctx, standardLoan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.SetCalls != 1 {
		t.Errorf("cache hit should not write again, got %d writes", cache.SetCalls)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
}

func TestCalculateMortgage_CacheFailureIsNotFatal(t *testing.T) {
	cache := NewMockCache()
	cache.ForceError = true
	service := NewMortgageService(cache, time.Minute, nil)

	result, err := service.CalculateMortgage(context.Background(), standardLoan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.MonthsToPayoff != 360 {
		t.Errorf("expected 360 months, got %d", result.Summary.MonthsToPayoff)
	}
}

func TestCalculateMortgage_CorruptCacheEntryIsRecomputed(t *testing.T) {
	cache := NewMockCache()
	cache.Data[CacheKey(standardLoan())] = "{not json"
	service := NewMortgageService(cache, time.Minute, nil)

	result, err := service.CalculateMortgage(context.Background(), standardLoan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Schedule) != 360 {
		t.Errorf("expected recomputed schedule, got %d rows", len(result.Schedule))
	}
	if cache.SetCalls != 1 {
		t.Errorf("expected corrupt entry to be overwritten")
	}
}

func TestCalculateMortgage_InvalidInputSkipsCache(t *testing.T) {
	cache := NewMockCache()
	service := NewMortgageService(cache, time.Minute, nil)

	in := standardLoan()
	in.TermYears = 0

	_, err := service.CalculateMortgage(context.Background(), in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if cache.GetCalls != 0 || cache.SetCalls != 0 {
		t.Errorf("cache should not be touched, got %d gets %d sets", cache.GetCalls, cache.SetCalls)
	}
}

func TestCalculateMortgage_WithoutCache(t *testing.T) {
	service := NewMortgageService(nil, 0, nil)

	result, err := service.CalculateMortgage(context.Background(), standardLoan())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Summary.Principal != 200000 {
		t.Errorf("principal = %.2f", result.Summary.Principal)
	}
}

func TestCacheKey(t *testing.T) {
	a := standardLoan()
	b := standardLoan()
	b.ExtraMonthlyPrincipal = 0.01

	if CacheKey(a) != CacheKey(standardLoan()) {
		t.Errorf("expected equal inputs to share a key")
	}
	if CacheKey(a) == CacheKey(b) {
		t.Errorf("expected different extra principal to change the key")
	}
	if !strings.HasPrefix(CacheKey(a), "mortgage:") || len(CacheKey(a)) != len("mortgage:")+16 {
		t.Errorf("unexpected key format %q", CacheKey(a))
	}
}
