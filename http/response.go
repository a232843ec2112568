package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"home-loan-calculator/logging"
	"home-loan-calculator/service"
)

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, logger *logging.Logger, status int, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		logger.Error("Error encoding response", logging.FieldError, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("Error writing response", logging.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, logger *logging.Logger, status int, msg string, details []FieldError) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg, Details: details})
}

// writeServiceError maps invalid input to 400 and anything else to 500.
func writeServiceError(w http.ResponseWriter, logger *logging.Logger, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, logger, http.StatusBadRequest, "invalid input", ToFieldErrors(err))
		return
	}
	logger.Error("calculation failed", logging.FieldError, err)
	writeError(w, logger, http.StatusInternalServerError, "internal server error", nil)
}
