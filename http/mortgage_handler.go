package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"home-loan-calculator/logging"
	"home-loan-calculator/service"
)

type MortgageHandler struct {
	service   *service.MortgageService
	validator *CustomValidator
	log       *logging.Logger
}

func NewMortgageHandler(service *service.MortgageService, logger *logging.Logger) *MortgageHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &MortgageHandler{
		service:   service,
		validator: NewValidator(),
		log:       logger.WithComponent(logging.ComponentHTTP),
	}
}

func (h *MortgageHandler) CalculateMortgage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !isJSON(r) {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req mortgageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("Error decoding request body", logging.FieldError, err)
		writeError(w, h.log, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "invalid input", ToFieldErrors(err))
		return
	}

	result, err := h.service.CalculateMortgage(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

func isJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
