package http

import (
	"net/http"

	"home-loan-calculator/domain"
	"home-loan-calculator/logging"
	"home-loan-calculator/repository"
)

type VisitHandler struct {
	counter repository.VisitCounter
	log     *logging.Logger
}

func NewVisitHandler(counter repository.VisitCounter, logger *logging.Logger) *VisitHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &VisitHandler{counter: counter, log: logger.WithComponent(logging.ComponentCounter)}
}

func (h *VisitHandler) Visits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n, err := h.counter.Count(r.Context())
	if err != nil {
		h.log.Warn("Failed to load visit count", logging.FieldCounter, h.counter.Name(), logging.FieldError, err)
		writeError(w, h.log, http.StatusServiceUnavailable, "visit count unavailable", nil)
		return
	}

	writeJSON(w, h.log, http.StatusOK, domain.VisitCount{Name: h.counter.Name(), Count: n})
}

// VisitCounterMiddleware counts every request that reaches next. A failing
// counter is logged and never blocks the request.
func VisitCounterMiddleware(
	counter repository.VisitCounter,
	logger *logging.Logger,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := counter.Increment(r.Context()); err != nil {
			logger.Warn("Failed to increment visit count",
				logging.FieldOperation, logging.OpVisit,
				logging.FieldCounter, counter.Name(),
				logging.FieldError, err,
			)
		}
		next.ServeHTTP(w, r)
	})
}
