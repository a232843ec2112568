package http

import (
	"net/http"
	"time"

	"home-loan-calculator/logging"
	"home-loan-calculator/repository"
	"home-loan-calculator/service"
)

type Dependencies struct {
	Mortgage      *service.MortgageService
	ExtraPayments *service.ExtraPaymentService
	Visits        repository.VisitCounter
	RateLimiter   *RateLimiter
	Logger        *logging.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	mortgageHandler := NewMortgageHandler(deps.Mortgage, logger)
	extraPaymentHandler := NewExtraPaymentHandler(deps.ExtraPayments, logger)
	visitHandler := NewVisitHandler(deps.Visits, logger)
	limitLog := logger.WithComponent(logging.ComponentRateLimit)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle(
		"/mortgage/calculate",
		RateLimitMiddleware(
			deps.RateLimiter,
			limitLog,
			VisitCounterMiddleware(
				deps.Visits,
				logger.WithComponent(logging.ComponentCounter),
				http.HandlerFunc(mortgageHandler.CalculateMortgage),
			),
		),
	)

	mux.Handle(
		"/mortgage/compare-extra",
		RateLimitMiddleware(
			deps.RateLimiter,
			limitLog,
			http.HandlerFunc(extraPaymentHandler.CompareExtraPayments),
		),
	)

	mux.HandleFunc("/visits", visitHandler.Visits)

	return LoggingMiddleware(logger.WithComponent(logging.ComponentHTTP), mux)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs one line per request with its status and duration.
func LoggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logger.InfoContext(r.Context(), "request",
			logging.FieldMethod, r.Method,
			logging.FieldPath, r.URL.Path,
			logging.FieldStatusCode, rec.status,
			logging.FieldDuration, time.Since(start).Milliseconds(),
		)
	})
}
