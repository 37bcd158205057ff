package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avelora/fincore/internal/adapter/http/dto"
	"github.com/avelora/fincore/internal/domain"
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

// writeDomainError maps a domain error to a status and writes it.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		insufficientErr *domain.InsufficientBalanceError
		bucketErr       *domain.InsufficientBucketBalanceError
		transitionErr   *domain.IllegalTransitionError
		conversionErr   *domain.ConversionFailedError
	)

	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrConversionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountNotActive),
		errors.Is(err, domain.ErrAccountSuspended),
		errors.Is(err, domain.ErrAccountNotClosable),
		errors.Is(err, domain.ErrCurrencyInUse),
		errors.Is(err, domain.ErrConversionNotReversible),
		errors.Is(err, domain.ErrConversionAlreadyReversed),
		errors.Is(err, domain.ErrAssetConversionNotReversible):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrSameCurrency),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrCurrencyNotHeld),
		errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.As(err, &insufficientErr), errors.As(err, &bucketErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &conversionErr):
		return http.StatusBadGateway
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

// parseTimeQuery parses an RFC 3339 query parameter, zero when absent.
func parseTimeQuery(r *http.Request, key string) time.Time {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}
	}
	return t
}
