package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/avidela/rentas/internal/adapter/http/dto"
	"github.com/avidela/rentas/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrReceiptNotFound),
		errors.Is(err, domain.ErrTenantNotFound),
		errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReceiptNotEditable),
		errors.Is(err, domain.ErrReceiptNotConfirmable),
		errors.Is(err, domain.ErrReceiptNotPayable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentExceedsBalance),
		errors.Is(err, domain.ErrInsufficientCash),
		errors.Is(err, domain.ErrEmptyRegister):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidPaymentAmount),
		errors.Is(err, domain.ErrNegativeInstrument),
		errors.Is(err, domain.ErrInvalidDeliveryAmount),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidMethod),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrImportRead),
		errors.Is(err, domain.ErrImportInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
