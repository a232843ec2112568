package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"home-loan-calculator/domain"
	"home-loan-calculator/logging"
	"home-loan-calculator/repository"
)

const cacheKeyPrefix = "mortgage:"

type MortgageService struct {
	cache repository.CacheRepository
	ttl   time.Duration
	log   *logging.Logger
}

// NewMortgageService builds the service. A nil cache disables memoization.
func NewMortgageService(
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *logging.Logger,
) *MortgageService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MortgageService{
		cache: cache,
		ttl:   ttl,
		log:   logger.WithComponent(logging.ComponentMortgage),
	}
}

// CalculateMortgage returns the summary and schedule for input, serving
// repeated requests from the cache when one is configured.
func (s *MortgageService) CalculateMortgage(
	ctx context.Context,
	input domain.LoanInputs,
) (domain.MortgageResult, error) {

	if err := ValidateLoanInputs(input); err != nil {
		return domain.MortgageResult{}, err
	}

	key := CacheKey(input)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	result, err := ComputeSummary(input)
	if err != nil {
		return domain.MortgageResult{}, err
	}

	s.log.DebugContext(ctx, "mortgage calculated",
		logging.FieldOperation, logging.OpCalculate,
		logging.FieldPrincipal, result.Summary.Principal,
		logging.FieldMonths, result.Summary.MonthsToPayoff,
	)
	for _, a := range result.Summary.Anomalies {
		s.log.WarnContext(ctx, "calculation anomaly",
			logging.FieldAnomaly, a.Code,
			logging.FieldPrincipal, result.Summary.Principal,
			logging.FieldTermYears, input.TermYears,
		)
	}

	// Caching is best effort.
	if s.cache != nil {
		if payload, err := json.Marshal(result); err != nil {
			s.log.WarnContext(ctx, "encode result for cache", logging.FieldError, err)
		} else if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
			s.log.WarnContext(ctx, "failed to cache result", logging.FieldCacheKey, key, logging.FieldError, err)
		}
	}

	return result, nil
}

func (s *MortgageService) fromCache(ctx context.Context, key string) (domain.MortgageResult, bool) {
	if s.cache == nil {
		return domain.MortgageResult{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.MortgageResult{}, false
	}
	var result domain.MortgageResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		s.log.WarnContext(ctx, "discarding unreadable cache entry", logging.FieldCacheKey, key, logging.FieldError, err)
		return domain.MortgageResult{}, false
	}
	s.log.DebugContext(ctx, "cache hit", logging.FieldCacheKey, key)
	return result, true
}

// CacheKey derives a stable key from every input that affects the result.
func CacheKey(in domain.LoanInputs) string {
	var b strings.Builder
	for _, v := range []float64{
		in.HomePrice,
		in.DownPayment,
		in.AnnualInterestRatePercent,
		in.ExtraMonthlyPrincipal,
		in.AnnualPropertyTax,
		in.AnnualHomeInsurance,
		in.AnnualMortgageInsurance,
	} {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('|')
	}
	b.WriteString(strconv.Itoa(in.TermYears))
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64String(b.String()))
}
